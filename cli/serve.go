package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/fretforge/fretforge/engine/infra/server"
	"github.com/fretforge/fretforge/pkg/config"
	"github.com/fretforge/fretforge/pkg/logger"
	"github.com/spf13/cobra"
)

// ServeCmd returns the serve command, which runs the configurator HTTP API.
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the configurator API server",
		RunE:  handleServeCmd,
	}
	cmd.Flags().Int("port", 0, "Port to bind the server to (env: FRETFORGE_SERVER_PORT)")
	cmd.Flags().String("host", "", "Host to bind the server to (env: FRETFORGE_SERVER_HOST)")
	addCommonFlags(cmd)
	return cmd
}

func handleServeCmd(cmd *cobra.Command, _ []string) error {
	ctx, err := setupContext(cmd)
	if err != nil {
		return err
	}
	cfg := config.FromContext(ctx)
	if cmd.Flags().Changed("host") {
		host, flagErr := cmd.Flags().GetString("host")
		if flagErr != nil {
			return fmt.Errorf("failed to get host flag: %w", flagErr)
		}
		cfg.Server.Host = host
	}
	if cmd.Flags().Changed("port") {
		port, flagErr := cmd.Flags().GetInt("port")
		if flagErr != nil {
			return fmt.Errorf("failed to get port flag: %w", flagErr)
		}
		cfg.Server.Port = port
	}
	service, err := buildService(cfg)
	if err != nil {
		return err
	}
	log := logger.FromContext(ctx)
	srv := server.NewServer(cfg, log, service)
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return srv.Start(ctx)
}
