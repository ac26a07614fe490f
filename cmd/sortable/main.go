package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vango-dev/sortable/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌─┐┌─┐┬─┐┌┬┐┌─┐┌┐ ┬  ┌─┐
  └─┐│ │├┬┘ │ ├─┤├┴┐│  ├┤
  └─┘└─┘┴└─ ┴ ┴ ┴└─┘┴─┘└─┘
`

func main() {
	if err := rootCmd().Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sortable",
		Short: "Drag-and-drop list reordering",
		Long: `Sortable reorders lists with drag and drop.

It can compute a single move, serve a list to browsers over
WebSocket, or let you drag rows around in the terminal:

  • shift   apply one move to a list of items
  • serve   run the WebSocket list server
  • tui     reorder a list with the mouse in the terminal`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		shiftCmd(),
		serveCmd(),
		tuiCmd(),
		versionCmd(),
	)
	return root
}

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

// printBanner prints the ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("%s %s\n", green("✓"), fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("%s %s\n", yellow("⚠"), fmt.Sprintf(format, args...))
}
