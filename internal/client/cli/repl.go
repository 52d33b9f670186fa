package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/kballard/go-shellquote"
	"golang.org/x/term"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// interactive reports whether stdin is a terminal; the prompt is only
// printed for interactive sessions.
var interactive = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	List(ctx context.Context) error
	Upload(ctx context.Context, path string) error
	Download(ctx context.Context, name, dest string) error
	Delete(ctx context.Context, name string) error
	Refresh(ctx context.Context) error
}

const helpText = `Available commands:
  (l)ist | ls              list files
  upload <path>            upload a local file
  download <name> [dest]   print a download link, or save to dest
  delete <name>            delete a file
  refresh                  reload the list from the server
  exit | quit              leave the program

Quote names and paths that contain spaces: upload "./my notes.txt"`

// runREPL reads commands from scanner and dispatches them to a until EOF,
// "exit" or "quit". Command errors are reported by the handlers themselves,
// so the loop only deals with parsing and usage.
func runREPL(ctx context.Context, a execIface, scanner *bufio.Scanner) {
	for {
		if interactive() {
			fmt.Print("dogbox> ")
		}
		if !scanner.Scan() {
			return
		}
		parts, err := shellquote.Split(scanner.Text())
		if err != nil {
			printlnFn("Cannot parse command:", err.Error())
			continue
		}
		if len(parts) == 0 {
			continue
		}

		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpText)

		case "l", "ls", "list":
			_ = a.List(ctx)

		case "upload":
			if len(args) != 1 {
				printlnFn("Usage: upload <path>")
				continue
			}
			_ = a.Upload(ctx, args[0])

		case "download":
			if len(args) < 1 || len(args) > 2 {
				printlnFn("Usage: download <name> [dest]")
				continue
			}
			dest := ""
			if len(args) == 2 {
				dest = args[1]
			}
			_ = a.Download(ctx, args[0], dest)

		case "delete", "rm":
			if len(args) != 1 {
				printlnFn("Usage: delete <name>")
				continue
			}
			_ = a.Delete(ctx, args[0])

		case "refresh", "sync":
			_ = a.Refresh(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if ctx.Err() != nil {
			return
		}
	}
}
