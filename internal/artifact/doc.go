// Package artifact writes rendered artifacts to disk and compares them
// against what is already there.
//
// WriteAll stages every changed artifact in a temporary file next to its
// destination before replacing any of them, so a failure while staging
// leaves every existing artifact as it was.
package artifact
