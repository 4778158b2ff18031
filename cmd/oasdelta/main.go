package main

import (
	"fmt"
	"os"

	"github.com/erraggy/oasdelta"
	"github.com/erraggy/oasdelta/cmd/oasdelta/commands"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("oasdelta v%s\n", oasdelta.Version())
	case "help", "-h", "--help":
		printUsage()
	case "diff":
		if err := commands.HandleDiff(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "report":
		if err := commands.HandleReport(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "compare-git":
		if err := commands.HandleCompareGit(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "serve":
		if err := commands.HandleServe(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		if err := commands.HandleMCP(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}
}

var knownCommands = []string{"diff", "report", "compare-git", "serve", "mcp", "version", "help"}

// suggestCommand returns the closest known command within edit distance
// 2 of input, or "" when nothing is close enough. Ties resolve to the
// first command in declaration order.
func suggestCommand(input string) string {
	best := ""
	bestDist := 3
	for _, cmd := range knownCommands {
		if d := levenshtein(input, cmd); d < bestDist {
			best = cmd
			bestDist = d
		}
	}
	return best
}

// levenshtein computes the edit distance between two strings.
func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func printUsage() {
	fmt.Println(`oasdelta - OpenAPI Specification Change Analysis

Usage:
  oasdelta <command> [options]

Commands:
  diff         Compare two OpenAPI specifications and summarize the changes
  report       Generate a Markdown change report for two specifications
  compare-git  Compare one specification across two git revisions
  serve        Run the HTTP comparison service
  mcp          Run the MCP server on stdio
  version      Show version information
  help         Show this help message

Examples:
  oasdelta diff api-v1.yaml api-v2.yaml
  oasdelta diff --format json api-v1.yaml https://example.com/openapi.json
  oasdelta report --save --repo-name petstore api-v1.yaml api-v2.yaml
  oasdelta compare-git --save ./repo api/openapi.yaml v1.0.0 v2.0.0
  oasdelta serve --addr :8080
  oasdelta mcp

Run 'oasdelta <command> --help' for more information on a command.`)
}
