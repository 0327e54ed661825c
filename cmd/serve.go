package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/killallgit/podcast-catalog/api"
	"github.com/killallgit/podcast-catalog/pkg/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the catalog server",
	Long: `Start the catalog server with the configured settings.

The server renders the catalog page at / and /podcasts/:id and serves the
JSON API under /api/v1.

Example:
  catalog serve
  catalog serve --port 9090
  catalog serve --host 127.0.0.1 --port 8080`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("host", "", "server host (overrides config)")
	serveCmd.Flags().Int("port", 0, "server port (overrides config)")

	_ = viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := requireConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, closeDB, err := buildDependencies(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	server := api.NewServer(cfg, deps)
	if err := server.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
		close(serverErr)
	}()

	logging.Info().Str("addr", server.Addr()).Msg("catalog server listening")

	var runErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("shutting down server")
	case runErr = <-serverErr:
		if runErr != nil {
			logging.Error().Err(runErr).Msg("server stopped")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("server forced to shutdown")
		return err
	}

	logging.Info().Msg("server stopped gracefully")
	return runErr
}
