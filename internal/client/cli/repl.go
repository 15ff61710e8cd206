package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn and printFn are test seams for user-facing output. In tests,
// replace them with stubs.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	History(ctx context.Context) error
	Export(ctx context.Context) error
	Chat(ctx context.Context, text string) error
}

// runREPL reads lines from reader until EOF, "exit" or "quit". A line that
// is exactly a command word runs that command; any other non-empty line,
// including one that merely starts with a command word, is sent as a chat
// message. Command errors are reported by the handlers
// themselves and do not stop the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printFn(fmt.Sprintf("chat (%s)> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch line {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Commands: history, export, logout, exit. Anything else is sent to the assistant.")
			} else {
				printlnFn("Commands: signup, login, history, exit. Anything else is sent to the assistant.")
			}

		case "signup", "register":
			_ = a.Signup(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "history":
			_ = a.History(ctx)

		case "export":
			_ = a.Export(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			_ = a.Chat(ctx, line)
		}
	}
}
