// Package main - Entry point for the crewcost quoting server
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httpadapter "crewcost/adapters/http"
	"crewcost/adapters/storage"
	"crewcost/internal/config"
	"crewcost/internal/logging"
)

func main() {
	addr := flag.String("addr", "", "listen address (default from config)")
	cfgFile := flag.String("config", "", "config file path")
	flag.Parse()

	cfg := config.Get()
	if *cfgFile != "" {
		loaded, err := config.Load(*cfgFile)
		if err != nil {
			logging.Fatal("load config", zap.Error(err))
		}
		config.Set(loaded)
		cfg = loaded
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		logging.Fatal("initialize logging", zap.Error(err))
	}
	defer logging.Sync()

	store, err := storage.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		logging.Fatal("open store", zap.Error(err))
	}
	defer store.Close()

	httpCfg := httpadapter.DefaultConfig()
	httpCfg.Address = cfg.Server.Address
	if *addr != "" {
		httpCfg.Address = *addr
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
		logging.Fatal("server error", zap.Error(err))
	case <-stop:
		logging.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := adapter.Shutdown(ctx); err != nil {
			logging.Error("shutdown", zap.Error(err))
		}
	}
}
