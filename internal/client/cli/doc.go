// Package cli provides the interactive gophtodo command-line client.
//
// It wires configuration, local storage and the auth and task services into
// a line-oriented REPL. Typical flow: restore a remembered session if there
// is one, otherwise sign up or log in, then manage the task list.
//
// Key features:
//   - Signup with a live password strength meter
//   - Login with optional "remember me", logout
//   - Password reset via a printed demo token
//   - Add / edit / delete / toggle tasks, clear completed, filter, list
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
