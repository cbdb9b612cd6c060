// Package gen contains the two generator roles and the pass driver that
// feeds them.
//
// A Provider resolves a Selection against the API description and hands
// every matching <command> and <enum> node to a Visitor, in declared order.
// Two visitors exist:
//
//   - Trampoline writes one forwarding function per matched command,
//     immediately and without deduplication.
//   - Collector accumulates commands and enums across many selections.
//     Finish sorts and deduplicates the commands; enums are kept in an
//     insertion-ordered table where the first writer of a value wins.
//
// Drive issues selections strictly in order. Ordering is part of the
// contract: issuing every core-only selection before any extension
// selection is what lets a standardised enum keep its unsuffixed name.
package gen
