// Package display renders everything the user sees besides the prompt: the
// highlighted buffer, program output, compiler diagnostics, the banner and
// the settings table. A Renderer is built from a settings value and has no
// other source of configuration.
package display
