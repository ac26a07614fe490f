package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/vango-dev/sortable/internal/config"
	"github.com/vango-dev/sortable/pkg/term"
)

var defaultTUIItems = []string{"alpha", "bravo", "charlie", "delta", "echo"}

func tuiCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "tui [items...]",
		Short: "Reorder a list with the mouse in the terminal",
		Long: `Show a list in the terminal and reorder it by dragging rows with
the mouse. Press q, Esc or Ctrl-C to quit; the final order is
printed on exit.

Items given as arguments replace the configured items.

Examples:
  sortable tui
  sortable tui apples pears plums`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if len(args) > 0 {
				cfg.List.Items = args
			}
			if len(cfg.List.Items) == 0 {
				cfg.List.Items = defaultTUIItems
			}
			return runTUI(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file (default: sortable.json/.yaml in the working directory)")

	return cmd
}

func runTUI(ctx context.Context, cfg *config.Config, out io.Writer) error {
	opts, err := cfg.ListOptions()
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}

	list := term.New(screen, cfg.List.Items, opts...)
	// The screen owns the terminal until Fini.
	list.SetLogger(cfg.Log.NewLogger(io.Discard))

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = list.Run(ctx)
	screen.Fini()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, strings.Join(list.Items(), " "))
	return nil
}
