package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/oasdelta/internal/cliutil"
	"github.com/erraggy/oasdelta/internal/httpserver"
	"github.com/erraggy/oasdelta/parser"
	"github.com/erraggy/oasdelta/refiner"
)

// ServeFlags contains flags for the serve command
type ServeFlags struct {
	Addr string
}

// SetupServeFlags creates the flag set for the serve command.
func SetupServeFlags() (*flag.FlagSet, *ServeFlags) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	flags := &ServeFlags{}

	fs.StringVar(&flags.Addr, "addr", "", "listen address (overrides OASDELTA_HTTP_ADDR)")

	fs.Usage = func() {
		output := fs.Output()
		cliutil.Writef(output, "Usage: oasdelta serve [flags]\n\n")
		cliutil.Writef(output, "Run the HTTP comparison service until interrupted.\n\n")
		cliutil.Writef(output, "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(output, "\nEnvironment:\n")
		cliutil.Writef(output, "  OASDELTA_HTTP_ADDR              Listen address (default :8080)\n")
		cliutil.Writef(output, "  OASDELTA_HTTP_READ_TIMEOUT      Request read timeout (default 30s)\n")
		cliutil.Writef(output, "  OASDELTA_HTTP_WRITE_TIMEOUT     Response write timeout (default 60s)\n")
		cliutil.Writef(output, "  OASDELTA_HTTP_SHUTDOWN_TIMEOUT  Graceful shutdown drain (default 10s)\n")
		cliutil.Writef(output, "  OPENAI_API_KEY                  Enables verdict refinement when set\n")
		cliutil.Writef(output, "\nExamples:\n")
		cliutil.Writef(output, "  oasdelta serve\n")
		cliutil.Writef(output, "  oasdelta serve --addr :9090\n")
	}

	return fs, flags
}

// HandleServe processes the serve command. It blocks until the context
// is cancelled by SIGINT or SIGTERM.
func HandleServe(args []string) error {
	fs, flags := SetupServeFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("serve command takes no arguments")
	}

	cfg := httpserver.ConfigFromEnv()
	if flags.Addr != "" {
		cfg.Addr = flags.Addr
	}

	logger := parser.NewSlogAdapter(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	comp, err := newComparator("", false, false)
	if err != nil {
		return err
	}
	comp.Logger = logger
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		comp.Refiner = refiner.NewOpenAI(refiner.Config{APIKey: key, Logger: logger})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return httpserver.New(cfg, comp, logger).Run(ctx)
}
