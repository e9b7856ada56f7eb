package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/osresearch/p5.projection/internal/calibration"
	"github.com/osresearch/p5.projection/internal/server"
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the calibration server",
	Long: `Start an HTTP server exposing the calibration over REST and WebSocket.
A browser calibration UI can drag individual screen corners over the
WebSocket and receives the re-solved render matrix after every move.

Endpoints:
  GET  /health       server health
  GET  /calibration  current calibration and solved matrices
  PUT  /calibration  replace the calibration
  GET  /matrix       forward, inverse and render matrices
  POST /map          map a point through the calibration
  GET  /ws           live corner dragging
  GET  /metrics      Prometheus metrics

Examples:
  projection serve
  projection serve --port 9000 --calibration cal/left.yaml`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		cfg := GetConfig()

		host, _ := cmd.Flags().GetString("host")
		if host == "" {
			host = cfg.Server.Host
		}
		port, _ := cmd.Flags().GetInt("port")
		if port == 0 {
			port = cfg.Server.Port
		}
		corsOrigin, _ := cmd.Flags().GetString("cors-origin")
		shutdownTimeout, _ := cmd.Flags().GetInt("shutdown-timeout")

		// Fall back to the identity calibration when none is saved yet;
		// the whole point of serving is dragging corners into place.
		cal, err := loadCalibration(cfg)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return err
			}
			slog.Info("No calibration file found, starting from identity",
				"path", cfg.CalibrationFile,
				"surface", fmt.Sprintf("%dx%d", cfg.Surface.Width, cfg.Surface.Height))
			cal = calibration.Default(cfg.Surface.Width, cfg.Surface.Height)
		}

		calServer, err := server.NewServer(server.Config{
			Host:        host,
			Port:        port,
			CORSOrigin:  corsOrigin,
			TimeoutSec:  cfg.Server.TimeoutSeconds,
			Calibration: cal,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize server: %w", err)
		}

		mux := http.NewServeMux()
		calServer.SetupRoutes(mux)

		httpServer := &http.Server{
			Addr:              fmt.Sprintf("%s:%d", host, port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
			WriteTimeout:      time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		}

		go func() {
			slog.Info("Starting calibration server", "host", host, "port", port)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("Server error", "error", err)
				cancel()
			}
		}()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

		select {
		case sig := <-sigChan:
			slog.Info("Received shutdown signal", "signal", sig.String())
		case <-ctx.Done():
			slog.Info("Context cancelled, initiating shutdown")
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(),
			time.Duration(shutdownTimeout)*time.Second)
		defer shutdownCancel()

		slog.Info("Shutting down HTTP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("HTTP server shutdown error", "error", err)
			return err
		}
		slog.Info("Graceful shutdown completed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("host", "H", "", "server host (defaults to server.host)")
	serveCmd.Flags().IntP("port", "p", 0, "server port (defaults to server.port)")
	serveCmd.Flags().String("cors-origin", "*", "CORS allowed origins")
	serveCmd.Flags().Int("shutdown-timeout", 10, "shutdown timeout in seconds")
}
