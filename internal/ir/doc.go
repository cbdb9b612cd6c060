// Package ir provides the record types shared by the glgen pipeline.
//
// This package contains type definitions only. All other internal packages
// import ir; ir imports nothing internal. This keeps the records produced by
// the registry, the declaration extractor and the generators in one
// foundational layer with no circular dependencies.
//
// Key constraints:
//   - Records are values. A TypedName or Command is never mutated after the
//     extractor builds it.
//   - Command equality is structural: return type, name and the full ordered
//     parameter list.
//   - Digests are computed over NFC-normalised canonical text with domain
//     separation, never over Go's default formatting.
package ir
