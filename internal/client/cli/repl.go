package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests provide a stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Dialogs(ctx context.Context) error
	Messages(ctx context.Context, args []string) error
	Send(ctx context.Context, args []string) error
	Ping(ctx context.Context) error
	Session(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads a line from reader, parses the first token as the command
// and dispatches to methods on a. The loop exits on EOF or when the user
// types "exit" or "quit".
//
//	Not logged in:
//	  - help           show available commands
//	  - login          sign in with phone, code and optional password
//	  - ping           check the proxy is reachable
//	  - exit | quit    leave the program
//
//	Logged in:
//	  - (d)ialogs              list recent conversations
//	  - (m)essages <peer> [n]  show the last n messages of a conversation
//	  - send <peer>            send a message (multi-line input)
//	  - session                print the session id for later -s use
//	  - logout                 forget the session locally
//
// Command errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	fmt.Fprintln(w, "tgproxy CLI (type 'help' for commands)")
	for {
		fmt.Fprintf(w, "tg %s> ", statusFn())
		line, err := reader.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, "Available commands: (d)ialogs, (m)essages <peer> [limit], send <peer>, session, ping, logout, exit")
			} else {
				fmt.Fprintln(w, "Available commands: login, ping, exit")
			}

		case "login":
			cmdErr = a.Login(ctx)

		case "d", "dialogs":
			cmdErr = a.Dialogs(ctx)

		case "m", "messages":
			cmdErr = a.Messages(ctx, args)

		case "send":
			cmdErr = a.Send(ctx, args)

		case "ping":
			cmdErr = a.Ping(ctx)

		case "session":
			cmdErr = a.Session(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			fmt.Fprintln(w, "Error:", cmdErr)
		}
		if err != nil {
			return
		}
	}
}
