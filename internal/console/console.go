package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"

	"formidamail/internal/app"
	"formidamail/internal/util"
)

// ErrQuit is returned by Exec for the quit command.
var ErrQuit = errors.New("quit requested")

var errUsage = errors.New("usage: ls | rm ID | undo | login | logout | quit")

// Exec runs one command line against the scope and writes any output to w.
// It must run on the scope's owner goroutine.
func Exec(line string, scope *app.Scope, w io.Writer) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch cmd, args := fields[0], fields[1:]; cmd {
	case "ls", "list":
		return list(scope, w)
	case "rm", "remove":
		if len(args) != 1 {
			return errUsage
		}
		if !scope.Auth.IsAuthenticated() {
			fmt.Fprintln(w, "access denied: log in first")
			return nil
		}
		if scope.Store.Remove(args[0]) {
			fmt.Fprintf(w, "removed %s\n", args[0])
		} else {
			fmt.Fprintf(w, "no email with id %s\n", args[0])
		}
	case "undo":
		if !scope.Auth.IsAuthenticated() {
			fmt.Fprintln(w, "access denied: log in first")
			return nil
		}
		if scope.Store.Undo() {
			fmt.Fprintln(w, "restored")
		} else {
			fmt.Fprintln(w, "nothing to undo")
		}
	case "login":
		scope.Auth.Login()
		fmt.Fprintln(w, "logged in")
	case "logout":
		scope.Auth.Logout()
		fmt.Fprintln(w, "logged out")
	case "quit", "exit":
		return ErrQuit
	default:
		return errUsage
	}
	return nil
}

func list(scope *app.Scope, w io.Writer) error {
	if !scope.Auth.IsAuthenticated() {
		_, err := fmt.Fprintln(w, "access denied: log in first")
		return err
	}

	st := scope.Store.Snapshot()
	if len(st.Emails) == 0 {
		fmt.Fprintln(w, "inbox empty")
	}
	for i, e := range st.Emails {
		if st.Removed != nil && st.Removed.Index == i {
			fmt.Fprintf(w, "   [undo %s]\n", st.Removed.Record.ID)
		}
		fmt.Fprintf(w, "%2d %s  %s  %s\n", i, e.ID, util.FormatSender(e.Name, e.Email), e.Title)
	}
	if st.Removed != nil && st.Removed.Index >= len(st.Emails) {
		fmt.Fprintf(w, "   [undo %s]\n", st.Removed.Record.ID)
	}
	return nil
}

// Serve reads command lines from r and runs each one through call, which
// must execute the closure on the scope's owner goroutine and wait for it.
// It returns when r is exhausted, quit is entered or ctx ends.
func Serve(ctx context.Context, r io.Reader, w io.Writer, scope *app.Scope, call func(func()) bool) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		line := scanner.Text()

		var err error
		ran := call(func() {
			err = Exec(line, scope, w)
			if err != nil && !errors.Is(err, ErrQuit) {
				log.WithError(err).WithField("line", line).Debug("console_bad_command")
				fmt.Fprintln(w, err)
			}
		})
		if !ran || errors.Is(err, ErrQuit) {
			return nil
		}
	}
	return scanner.Err()
}
