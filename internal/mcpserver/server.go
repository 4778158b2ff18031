// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oasdelta comparisons as MCP tools over stdio.
package mcpserver

import (
	"context"
	"log/slog"
	"os"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasdelta"
	"github.com/erraggy/oasdelta/parser"
)

const serverInstructions = `oasdelta MCP server — compares OpenAPI documents and reports what changed.

Tools:
- diff_openapi: compare two documents and get a verdict with classified changes. Use offset/limit to page through large change lists.
- generate_report: render the full Markdown change report, optionally writing it to disk.

Documents can be given as a file path, a URL, or inline content (JSON or YAML). Any OAS version parses; the comparison is structural and version-agnostic.

Configuration: All defaults are configurable via OASDELTA_MCP_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- OASDELTA_MCP_LOG_LEVEL (default: warn) — stderr log level (debug, info, warn, error)
- OASDELTA_MCP_TOOL_TIMEOUT (default: 60s) — per-tool-call timeout
- OASDELTA_MCP_CHANGES_LIMIT (default: 50) — default page size for classified changes
- OASDELTA_MCP_MAX_LIMIT (default: 500) — hard cap on a requested page size
- OASDELTA_MCP_MAX_INLINE_SIZE (default: 10485760) — inline content size limit in bytes
- OASDELTA_MCP_ALLOW_PRIVATE_IPS (default: false) — allow URL inputs that resolve to private addresses
- OASDELTA_MCP_CACHE_ENABLED (default: true) — disable document caching entirely
- OASDELTA_MCP_CACHE_TTL (default: 5m) — cache TTL for parsed documents

Caching: Parsed documents are cached per session, so re-diffing against an unchanged base skips the reload. File entries use path+mtime as key (auto-invalidated on change).`

// srvLogger is the logger handed to pipeline components, set once in Run.
// Tool handlers see a no-op logger until the server starts.
var srvLogger parser.Logger = parser.NopLogger{}

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled. Logs go to stderr at the
// configured level; stdout belongs to the protocol.
func Run(ctx context.Context) error {
	srvLogger = parser.NewSlogAdapter(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasdelta-mcp", Version: oasdelta.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)

	srvLogger.Info("mcp server listening on stdio", "version", oasdelta.Version())
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "diff_openapi",
		Description: "Compare two OpenAPI documents and report what changed. Returns a verdict (No Changes, Production Update, API Change), per-category counts, and the classified changes at their deepest divergent paths. Source and target each accept a file path, URL, or inline content. Use offset/limit to paginate through large change lists; the default page size is configurable via OASDELTA_MCP_CHANGES_LIMIT.",
	}, handleDiffOpenAPI)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_report",
		Description: "Render the Markdown change report for two OpenAPI documents: verdict headline, per-category sections, and the raw differences listing. Set save=true with repo_name to also write the artifact as {repo_name}-{date}-open-api-diff.md under output_dir (default \"updates\"). Use raw_diff=true to append a unified diff of the canonicalized documents.",
	}, handleGenerateReport)
}

// toolContext applies the per-call timeout on top of the request context.
func toolContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, cfg.ToolTimeout)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ChangesLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ChangesLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
