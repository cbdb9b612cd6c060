// Package plan describes a generation run: which registry to read, which
// selections feed each trampoline artifact, which selections feed the
// collector, where the artifacts go and which macro names wrap them.
//
// Plans are YAML or CUE files. Both forms are validated against the
// embedded CUE schema (schema.cue) before use, and YAML is additionally
// decoded strictly so misspelled keys fail early. Relative paths resolve
// against the plan file's directory.
//
// Default returns the reference plan for the GLES wrapper libraries. Its
// paths are relative to the generator directory (opengl/tools/glgen2).
package plan
