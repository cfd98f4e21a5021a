package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/HerbHall/kartstats/internal/search"
	"github.com/HerbHall/kartstats/internal/state"
	"github.com/HerbHall/kartstats/pkg/models"
)

func runSearch(args []string) {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPath := fs.String("config", "", "path to configuration file")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := bootstrap(ctx, *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		os.Exit(1)
	}
	defer a.close()

	if err := a.hydrate(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "dataset unavailable: %v\n", err)
		os.Exit(1)
	}

	deb := search.NewDebouncer(a.settings.Search.Debounce, nil)
	if err := streamSearch(ctx, os.Stdin, os.Stdout, a.state, deb); err != nil {
		fmt.Fprintf(os.Stderr, "search: %v\n", err)
		os.Exit(1)
	}
}

// streamSearch submits each input line to a debounced session and prints
// every published update. It returns once input is exhausted and the last
// submitted query has been published.
func streamSearch(ctx context.Context, in io.Reader, out io.Writer, st *state.Store, deb *search.Debouncer) error {
	updates := make(chan search.Update, 16)
	sess := search.NewSession(
		func() []models.Entity { return st.Roster().All() },
		func(u search.Update) { updates <- u },
		search.WithDebouncer(deb),
		search.WithRecorder(st),
	)
	defer sess.Cancel()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- sc.Err()
	}()

	var (
		last    uint64
		pending bool
		eof     bool
	)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				lines, eof = nil, true
				break
			}
			last, pending = sess.Submit(line), true
		case u := <-updates:
			printUpdate(out, u, st)
			if u.Generation == last {
				pending = false
			}
		}
		if eof && !pending {
			select {
			case err := <-scanErr:
				return err
			default:
				return nil
			}
		}
	}
}

func printUpdate(out io.Writer, u search.Update, st *state.Store) {
	if u.Mode == search.ModeHistory {
		fmt.Fprintln(out, "recent searches:")
		for _, h := range st.History() {
			fmt.Fprintf(out, "  %s (%d)\n", h.Query, h.ResultCount)
		}
		return
	}
	fmt.Fprintf(out, "%q: %d result(s)\n", u.Query, len(u.Results))
	for _, r := range u.Results {
		fmt.Fprintf(out, "  %5.1f  %s / %s [%s]\n", r.Score, r.Entity.LocalName, r.Entity.ReferenceName, r.Entity.Kind)
	}
}
