// Package registry loads a Khronos-style API registry and resolves
// selections against it.
//
// The document is read once. Features (<feature>), extensions
// (<extension>), commands and enums are indexed by name; an element that
// carries an api attribute is additionally keyed by (name, api) and wins
// lookups for that API.
//
// ForEachMatch resolves one selection in two passes. Pass 1 walks every
// selected feature and extension and tags the commands and enums named by
// matching <require> blocks as required, and those named by matching
// <remove> blocks as not required. Pass 2 walks the same list again and
// delivers each required, not yet declared item to the visitor, marking it
// declared. Core features of an extension selection are walked but not
// emitted, so anything core already provides is never delivered again by
// an extension.
//
// Tags are per call: a Registry can serve any number of selections.
package registry
