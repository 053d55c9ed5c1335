package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/killallgit/moviepreview/api"
	"github.com/killallgit/moviepreview/api/types"
	"github.com/killallgit/moviepreview/internal/services/itunes"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		serverHost string
		serverPort int
	)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long: `Start the Movie Preview API server with the configured settings.

The server answers movie searches over HTTP and serves its Swagger
documentation under /docs.

Example:
  moviepreview serve
  moviepreview serve --port 9090
  moviepreview serve --host 0.0.0.0 --port 8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runServer(cmd.Context(), serverHost, serverPort)
		},
	}

	// Server flags
	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")

	return serveCmd
}

func (a *app) runServer(ctx context.Context, host string, port int) error {
	cfg := a.cfg

	// Use config values if flags not provided
	if host == "" {
		host = cfg.Server.Host
	}
	if port == 0 {
		port = cfg.Server.Port
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	client := itunes.NewClient(itunes.Config{
		BaseURL:   cfg.ITunes.BaseURL,
		Timeout:   cfg.ITunes.Timeout,
		UserAgent: cfg.ITunes.UserAgent,
		Country:   cfg.ITunes.Country,
		Logger:    a.logger,
	})

	server := api.NewServer(api.ServerConfig{
		Address:        net.JoinHostPort(host, strconv.Itoa(port)),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}, &types.Dependencies{
		Searcher:  client,
		Logger:    a.logger,
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
	})
	server.Initialize()

	// Channel to receive server errors
	serverErr := make(chan error, 1)

	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	// Wait for cancellation (interrupt signal) or server error
	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("shutting down server")
	case runErr = <-serverErr:
		a.logger.Error("server failed, shutting down", "error", runErr)
	}

	// Create a context with timeout for shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	a.logger.Info("server gracefully stopped", "metrics", client.GetMetrics())
	return runErr
}
