package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/mattn/go-isatty"

	"github.com/lixenwraith/termdeck/deck"
	"github.com/lixenwraith/termdeck/logging"
	"github.com/lixenwraith/termdeck/profile"
	"github.com/lixenwraith/termdeck/terminal"
)

var (
	profileFlag = flag.String("profile", "", "path to a TOML profile (embedded default when empty)")
	logFlag     = flag.String("log", "", "log file path (default termdeck.log)")
	traceFlag   = flag.Bool("trace", false, "write JSONL trace entries to the log")
	listFlag    = flag.Bool("list", false, "print sections and items, then exit")
)

func main() {
	// Panic recovery: restore the terminal before anything else so the
	// shell is usable and the stack trace is readable.
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\ntermdeck crashed: %v\r\n", r)
			fmt.Fprintf(os.Stderr, "%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	logging.Configure(*logFlag)
	logging.SetTraceEnabled(*traceFlag)

	prof, err := loadProfile(*profileFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "termdeck: %v\n", err)
		os.Exit(2)
	}

	if *listFlag || !isatty.IsTerminal(os.Stdin.Fd()) {
		listProfile(os.Stdout, prof)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d, err := deck.New(terminal.New(), prof.MenuSections(), deck.Config{Title: prof.Title})
	if err != nil {
		fmt.Fprintf(os.Stderr, "termdeck: %v\n", err)
		os.Exit(2)
	}

	if err := d.Run(ctx); err != nil {
		logging.Error(err)
		if errors.Is(err, terminal.ErrNotTerminal) {
			listProfile(os.Stdout, prof)
			return
		}
		fmt.Fprintf(os.Stderr, "termdeck: %v\n", err)
		os.Exit(1)
	}
}

func loadProfile(path string) (*profile.Profile, error) {
	if path == "" {
		return profile.Default(), nil
	}
	return profile.Load(path)
}

// listProfile prints the profile as plain text for non-interactive
// callers (piped stdin, cron, CI).
func listProfile(w io.Writer, p *profile.Profile) {
	fmt.Fprintln(w, p.Title)
	for _, sec := range p.Sections {
		fmt.Fprintf(w, "\n%s\n", sec.Label)
		for i, item := range sec.Items {
			desc := item.Desc
			if desc == "" && item.Command != "" {
				desc = item.Command
			}
			fmt.Fprintf(w, "  %d. %-20s %s\n", i, item.Label, desc)
			for _, sub := range item.Sub {
				fmt.Fprintf(w, "       - %-15s %s\n", sub.Label, sub.Command)
			}
		}
	}
}
