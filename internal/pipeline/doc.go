// Package pipeline runs a generation plan against a provider.
//
// Run renders every artifact in memory. Trampoline artifacts are filled in
// plan order, then the collector's selections are driven and finalised into
// the entries, trace and enums tables. Nothing touches the file system, so a
// failed run leaves existing artifacts untouched and a successful one can be
// compared against disk (check) or written atomically (generate).
package pipeline
