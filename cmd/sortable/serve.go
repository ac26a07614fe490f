package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/sortable/internal/config"
	"github.com/vango-dev/sortable/internal/errors"
	"github.com/vango-dev/sortable/pkg/server"
)

func serveCmd() *cobra.Command {
	var (
		configPath string
		port       int
		host       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the WebSocket list server",
		Long: `Serve the configured list to browsers over WebSocket.

Routes:
  /ws          drag session per connection
  /api/items   last committed order as JSON
  /metrics     Prometheus metrics
  /healthz     liveness probe

Examples:
  sortable serve
  sortable serve --config sortable.yaml
  sortable serve --port=8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}
			if host != "" {
				cfg.Server.Host = host
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file (default: sortable.json/.yaml in the working directory)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")

	return cmd
}

func runServe(ctx context.Context, cfg *config.Config) error {
	opts, err := cfg.ListOptions()
	if err != nil {
		return err
	}
	logger := cfg.Log.NewLogger(os.Stderr)

	srvCfg := server.DefaultConfig()
	srvCfg.Address = cfg.Server.Address()
	srvCfg.Items = cfg.List.Items
	srvCfg.Options = opts
	srvCfg.ReadTimeout = cfg.Server.ReadTimeoutDuration()
	srvCfg.WriteTimeout = cfg.Server.WriteTimeoutDuration()
	srvCfg.HeartbeatInterval = cfg.Server.HeartbeatDuration()
	srv := server.New(srvCfg, logger)

	printBanner()
	fmt.Println("  serve")
	fmt.Println()
	if path := cfg.Path(); path != "" {
		info("Config:  %s", path)
	}
	info("Items:   %d", len(cfg.List.Items))
	success("Listening on http://%s", srvCfg.Address)
	fmt.Println()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}

// loadConfig loads path, or the config in the working directory when path
// is empty. A missing config in the working directory yields the defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	cfg, err := config.Load(".")
	if errors.HasCode(err, "E101") {
		warn("No config file found, using defaults")
		return config.New(), nil
	}
	return cfg, err
}
