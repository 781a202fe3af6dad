package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// printFn writes the prompt without a trailing newline.
var printFn = fmt.Print

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
// Handlers receive the words after the command name.
type execIface interface {
	isLoggedIn() bool

	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Forgot(ctx context.Context) error
	Reset(ctx context.Context, args []string) error
	Strength(ctx context.Context) error

	Add(ctx context.Context, text string) error
	Edit(ctx context.Context, rest string) error
	Delete(ctx context.Context, args []string) error
	Toggle(ctx context.Context, args []string) error
	Clear(ctx context.Context) error
	Filter(ctx context.Context, args []string) error
	List(ctx context.Context) error
	Whoami(ctx context.Context) error
	Logout(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: signup, login, forgot, reset [email] [token], strength, exit"
	helpLoggedIn  = "Available commands: add <text>, edit <id> [text], delete <id>, toggle <id>, clear, " +
		"filter <all|active|completed>, (l)ist, whoami, strength, logout, exit"
)

// commands that need a logged-in user
var loggedInOnly = map[string]bool{
	"add": true, "edit": true, "delete": true, "rm": true, "toggle": true, "done": true,
	"clear": true, "filter": true, "list": true, "l": true, "whoami": true, "logout": true,
}

// commands that make no sense once logged in
var loggedOutOnly = map[string]bool{
	"signup": true, "login": true, "forgot": true, "reset": true,
}

// runREPL starts a simple read–eval–print loop for the gophtodo CLI.
//
// It reads a line from reader, parses the first word as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF or when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help                  show available commands
//	  - signup                create an account
//	  - login                 authenticate
//	  - forgot                request a password reset token
//	  - reset [email] [token] set a new password with a token
//	  - strength              rate a password
//	  - exit | quit           leave the program
//
//	Logged in:
//	  - add <text>            add a task
//	  - edit <id> [text]      change a task's text
//	  - delete | rm <id>      delete a task
//	  - toggle | done <id>    complete or reopen a task
//	  - clear                 remove completed tasks
//	  - filter <mode>         all, active or completed
//	  - (l)ist                show tasks
//	  - whoami                show the current user
//	  - strength              rate a password
//	  - logout                log out
//	  - exit | quit           leave the program
//
// Task ids may be shortened to any unique prefix.
//
// Errors returned by handlers are ignored here; handlers report their own
// errors to the user. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printFn(fmt.Sprintf("todo %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			printlnFn()
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := strings.ToLower(parts[0])
		args := parts[1:]
		rest := strings.TrimSpace(line[len(parts[0]):])

		switch {
		case loggedInOnly[cmd] && !a.isLoggedIn():
			printlnFn("Please log in first (type 'login' or 'signup').")
			continue
		case loggedOutOnly[cmd] && a.isLoggedIn():
			printlnFn("You are already logged in. Type 'logout' first.")
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "signup":
			_ = a.Signup(ctx)

		case "login":
			_ = a.Login(ctx)

		case "forgot":
			_ = a.Forgot(ctx)

		case "reset":
			_ = a.Reset(ctx, args)

		case "strength":
			_ = a.Strength(ctx)

		case "add":
			_ = a.Add(ctx, rest)

		case "edit":
			_ = a.Edit(ctx, rest)

		case "delete", "rm":
			_ = a.Delete(ctx, args)

		case "toggle", "done":
			_ = a.Toggle(ctx, args)

		case "clear":
			_ = a.Clear(ctx)

		case "filter":
			_ = a.Filter(ctx, args)

		case "l", "list":
			_ = a.List(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", parts[0])
		}
	}
}
