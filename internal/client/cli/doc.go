// Package cli provides the interactive AcadMate command-line client.
//
// It wires configuration, the key/value store, the registries and services,
// and an interactive REPL. Typical flow: resume a persisted session (or
// prompt the user to register/log in), start the Pomodoro ticker in the
// background, and execute user commands until exit.
//
// Key features:
//   - Register / Login / Logout, profile and password management
//   - Notes: list with search, add, edit, delete
//   - PDF library: folders, upload, delete and a paged text viewer
//   - AI study assistant chat (Gemini), Pomodoro timer, portal launcher
//   - Snapshot backup and restore
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
