package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/crimegrid/patrolboard/internal/api"
	"github.com/crimegrid/patrolboard/internal/demo"
	"github.com/crimegrid/patrolboard/internal/session"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		units, err := demo.LoadUnits(cfg.Demo.UnitsFile)
		if err != nil {
			return eris.Wrap(err, "serve: load patrol units")
		}

		holder := session.New(units, cfg.Demo.IncidentCount)
		server := api.NewServer(holder, api.Options{
			MaxUploadBytes: int64(cfg.Ingest.MaxUploadMB) << 20,
			UploadRate:     rate.Limit(float64(cfg.Ingest.UploadsPerMin) / 60),
			UploadBurst:    cfg.Ingest.UploadBurst,
			AllowedOrigins: cfg.Server.AllowedOrigins,
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: server.Router(),
		}

		ln, err := net.Listen("tcp", srv.Addr)
		if err != nil {
			return eris.Wrapf(err, "serve: listen on %s", srv.Addr)
		}

		zap.L().Info("starting server",
			zap.Int("port", port),
			zap.Int("demo_incidents", len(holder.Incidents())),
		)
		return runServer(ctx, srv, ln)
	},
}

const shutdownGrace = 15 * time.Second

// runServer serves until ctx is canceled, then drains in-flight requests on a
// fresh context; the trigger context is already canceled by the time shutdown
// starts, so it cannot be used as the drain deadline.
func runServer(ctx context.Context, srv *http.Server, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		zap.L().Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zap.L().Warn("server shutdown", zap.Error(err))
		}
	}()

	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "server listen")
	}
	return nil
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
