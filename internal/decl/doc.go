// Package decl turns mixed-content declaration nodes into typed names and
// renders them back into the textual shapes the generated artifacts need.
//
// A declaration node looks like the registry's <proto> and <param> elements:
//
//	<proto>const <ptype>GLubyte</ptype> *<name>glGetString</name></proto>
//
// Every fragment before the <name> child forms the type; the <name> child's
// text is the declared name. The formatters are shared by every generator so
// a command renders identically in trampolines, entries and traces.
package decl
