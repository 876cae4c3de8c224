// Command reactor runs the keyed-list benchmark in memory or serves it
// live over WebSocket.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/reactor/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.Print(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "reactor",
		Short: "Fine-grained reactive keyed-list benchmark",
		Long: `Reactor drives a table of rows through a reactive signal graph and a
keyed list reconciler.

  • bench   times create, replace, update, select, swap, remove and clear
  • render  prints the table as HTML
  • serve   mirrors a live app into the browser over WebSocket
  • load    drives many WebSocket sessions against a live app`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to "+configFileHint)

	rootCmd.AddCommand(
		benchCmd(&configPath),
		renderCmd(&configPath),
		serveCmd(&configPath),
		loadCmd(&configPath),
		versionCmd(),
	)
	return rootCmd
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
