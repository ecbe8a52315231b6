/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

// Command shellspawn runs one command line through the shellspawn
// library, demonstrating each output/input binding kind from the flag
// line.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/shellspawn/shellspawn"
)

func main() {
	shellspawn.MaybeRunPTYProxy() // no-op unless this process is the re-exec'd pty proxy

	var (
		mode        = flag.String("stdout", "lines", "stdout binding: discard|buffer|lines|callback")
		interactive = flag.Bool("interactive", false, "drive stdin via a Callback, reading lines from this program's own stdin")
		auditDSN    = flag.String("audit", "", "sqlite DSN to record this invocation to")
		tunables    = flag.String("tunables", "", "yaml file of proxy/resolver timing overrides")
	)
	flag.Parse()
	command := flag.Arg(0)
	if command == "" {
		fmt.Fprintln(os.Stderr, "usage: shellspawn [flags] 'command line'")
		os.Exit(2)
	}

	if *tunables != "" {
		if _, err := shellspawn.WatchTunablesFile(*tunables); err != nil {
			fmt.Fprintln(os.Stderr, "shellspawn: tunables:", err)
			os.Exit(1)
		}
	}
	if *auditDSN != "" {
		closeLog, err := shellspawn.EnableAuditLog(*auditDSN)
		if err != nil {
			fmt.Fprintln(os.Stderr, "shellspawn: audit log:", err)
			os.Exit(1)
		}
		defer closeLog()
	}

	inv := &shellspawn.Invocation{Command: command}

	switch *mode {
	case "discard":
		inv.Stdout = shellspawn.Discard{}
	case "buffer":
		inv.Stdout = &shellspawn.Buffer{}
	case "lines":
		inv.Stdout = &shellspawn.Lines{}
	case "callback":
		inv.Stdout = &shellspawn.Callback{Output: func(chunk []byte) { os.Stdout.Write(chunk) }}
	default:
		fmt.Fprintln(os.Stderr, "shellspawn: unknown -stdout mode", *mode)
		os.Exit(2)
	}
	inv.Stderr = &shellspawn.Handle{File: os.Stderr}

	if *interactive {
		scanner := bufio.NewScanner(os.Stdin)
		inv.Stdin = &shellspawn.Callback{
			Input: func() (dst []byte, closeInput bool) {
				if !scanner.Scan() {
					return nil, true
				}
				return append(scanner.Bytes(), '\n'), false
			},
		}
	}

	if err := shellspawn.Spawn(inv); err != nil {
		fmt.Fprintln(os.Stderr, "shellspawn: internal error:", err)
		os.Exit(1)
	}

	switch inv.Status {
	case shellspawn.StatusOK:
		if buf, ok := inv.Stdout.(*shellspawn.Buffer); ok {
			os.Stdout.Write(buf.Data)
		}
		if lines, ok := inv.Stdout.(*shellspawn.Lines); ok {
			for _, line := range lines.Lines {
				fmt.Println(line)
			}
		}
		os.Exit(inv.ExitCode)
	case shellspawn.StatusNotFound:
		fmt.Fprintln(os.Stderr, "shellspawn: command not found:", command)
		os.Exit(4)
	default:
		fmt.Fprintln(os.Stderr, "shellspawn:", inv.Status, inv.Err)
		os.Exit(5)
	}
}
