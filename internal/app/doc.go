// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the session lifecycle: settings, work
// directory, compiler toolchain and the interactive loop, decoupled from any
// specific entrypoint like a CLI.
package app
