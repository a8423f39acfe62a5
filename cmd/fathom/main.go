// Command fathom is a concurrent directory, DNS, virtual-host, and HTTP
// fuzzing enumeration tool sharing one worker-pool engine across its four
// subcommands.
package main

import (
	"fmt"
	"log/slog"
	"os"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: fathom <dir|dns|vhost|fuzz> [options]")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "dir":
		err = runDir(os.Args[2:])
	case "dns":
		err = runDNS(os.Args[2:])
	case "vhost":
		err = runVhost(os.Args[2:])
	case "fuzz":
		err = runFuzz(os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "fathom:", err)
		os.Exit(1)
	}
}

// newLogger builds the process-wide structured logger. FATHOM_LOG
// (debug|info|warn|error) sets the baseline level, unset defaulting to
// warn; each repeated -v lowers it by one step (warn -> info -> debug).
func newLogger(verbosity int) *slog.Logger {
	level := slog.LevelWarn
	level.UnmarshalText([]byte(os.Getenv("FATHOM_LOG")))
	level -= slog.Level(verbosity * 4) // slog levels step by 4 per name

	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}
