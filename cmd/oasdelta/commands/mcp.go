package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/oasdelta/internal/cliutil"
	"github.com/erraggy/oasdelta/internal/mcpserver"
)

// SetupMCPFlags creates the flag set for the mcp command.
func SetupMCPFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)

	fs.Usage = func() {
		output := fs.Output()
		cliutil.Writef(output, "Usage: oasdelta mcp\n\n")
		cliutil.Writef(output, "Run the MCP server on stdio for AI agent integration.\n")
		cliutil.Writef(output, "The server exposes the diff_openapi and generate_report tools\n")
		cliutil.Writef(output, "and logs to stderr; stdout carries only protocol messages.\n\n")
		cliutil.Writef(output, "Configuration comes from OASDELTA_MCP_* environment variables;\n")
		cliutil.Writef(output, "see the server instructions for the full list.\n")
	}

	return fs
}

// HandleMCP processes the mcp command. It blocks until the client
// disconnects or the context is cancelled by SIGINT or SIGTERM.
func HandleMCP(args []string) error {
	fs := SetupMCPFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no arguments")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return mcpserver.Run(ctx)
}
