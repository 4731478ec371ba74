// Package cmd - serve command
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httpadapter "crewcost/adapters/http"
	"crewcost/adapters/storage"
	"crewcost/internal/config"
	"crewcost/internal/logging"
)

var serveAddress string

// serveCmd runs the quoting API server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the quoting API server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddress, "addr", "", "listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	store, err := storage.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	httpCfg := httpadapter.DefaultConfig()
	httpCfg.Address = cfg.Server.Address
	if serveAddress != "" {
		httpCfg.Address = serveAddress
	}
	httpCfg.ReadTimeout = time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second
	httpCfg.WriteTimeout = time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second

	adapter := httpadapter.New(store, httpCfg)

	errCh := make(chan error, 1)
	go func() {
		logging.Info("server listening", zap.String("address", httpCfg.Address))
		errCh <- adapter.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-stop:
		logging.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return adapter.Shutdown(ctx)
	}
}
