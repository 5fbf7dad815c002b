// Package toolchain is the boundary between the interpreter and the external
// C++ compiler. A Toolchain compiles an assembled source into a binary and
// executes that binary, in two strictly sequential phases, timing each one.
//
// Native is the process-based strategy. It writes the source into a work
// directory, invokes the configured compiler with an explicit argument list
// (never through a shell) and runs the produced executable. Artifacts are
// overwritten on every compile, so a work directory must not be shared by
// two sessions at the same time.
package toolchain
