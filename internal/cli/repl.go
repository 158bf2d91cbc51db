package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the minimal command surface the root REPL needs. The
// real App satisfies it; tests provide a stub.
type execIface interface {
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	ForgotPassword(ctx context.Context) error
	Backups(ctx context.Context) error
	ViewAuditLog(ctx context.Context) error
}

// runREPL is the anonymous top-level loop. It reads a command per line
// and dispatches; portals run their own loops from inside Login. The
// loop exits on EOF or "exit"/"quit". Handler errors are already
// reported to the user by the handlers, so they are ignored here.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	fmt.Fprintln(w, "Welcome to gradebook (type 'help' for commands)")

	for {
		fmt.Fprintf(w, "gradebook %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "help":
			fmt.Fprintln(w, "Available commands: register, login, forgot, backup, audit, exit")

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "forgot":
			_ = a.ForgotPassword(ctx)

		case "backup":
			_ = a.Backups(ctx)

		case "audit":
			_ = a.ViewAuditLog(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Goodbye.")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", parts[0])
		}
	}
}
