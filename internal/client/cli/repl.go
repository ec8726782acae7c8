package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	SetName(ctx context.Context) error
	SetPassword(ctx context.Context) error
	Send(ctx context.Context, args []string) error
	Sent(ctx context.Context, args []string) error
	Pending(ctx context.Context, args []string) error
	Received(ctx context.Context, args []string) error
	Accept(ctx context.Context, args []string) error
	Download(ctx context.Context, args []string) error
}

// runREPL starts a simple read–eval–print loop for the Aerofy CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// The prompt shows the current status (from statusFn). Commands that reach
// a protected view run the navigation guard and a session re-check first,
// so their handlers never see an unauthenticated state.
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("aerofy %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: send <file>..., sent [page], pending [page], received [page], accept <shared_id>, download <shared_id> [name], whoami, setname, setpassword, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "setname":
			_ = a.SetName(ctx)

		case "setpassword":
			_ = a.SetPassword(ctx)

		case "send":
			_ = a.Send(ctx, args)

		case "sent":
			_ = a.Sent(ctx, args)

		case "pending":
			_ = a.Pending(ctx, args)

		case "received":
			_ = a.Received(ctx, args)

		case "accept":
			_ = a.Accept(ctx, args)

		case "download":
			_ = a.Download(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
