// monsterdex: a breeding catalog for monster-raising games.
//
// Loads the creature, usage and parentage flat files into an in-memory
// catalog and serves it through an interactive session or one-shot commands.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/monsterdex/monsterdex/internal/catalog"
)

// Build information (set via ldflags)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		slog.Info("received shutdown signal", "signal", sig)
		cancel()

		// Force exit after timeout
		time.AfterFunc(10*time.Second, func() {
			slog.Error("forced shutdown after timeout")
			os.Exit(1)
		})
	}()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// reportError prints err to w. Catalog load failures get the offending file,
// line number and raw text on separate lines.
func reportError(w io.Writer, err error) {
	var loadErr *catalog.LoadError
	if !errors.As(err, &loadErr) {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}

	fmt.Fprintf(w, "Error: the catalog could not be loaded\n")
	if loadErr.Line == 0 {
		fmt.Fprintf(w, "  file:   %s\n", loadErr.File)
	} else {
		fmt.Fprintf(w, "  file:   %s:%d\n", loadErr.File, loadErr.Line)
		fmt.Fprintf(w, "  line:   %s\n", loadErr.Raw)
	}
	fmt.Fprintf(w, "  reason: %v\n", loadErr.Err)
}
