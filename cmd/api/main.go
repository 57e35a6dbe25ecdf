package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "ranch-roster/docs"
	mem "ranch-roster/internal/adapters/storage/memory"
	"ranch-roster/internal/adapters/storage/sqlite"
	"ranch-roster/internal/domain/roster"
	"ranch-roster/internal/platform/config"
	"ranch-roster/internal/platform/logger"
	"ranch-roster/internal/router"
)

// @title Ranch Roster API
// @version 1.0
// @description API local para trackear animales de cría por personaje (Once Human).
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	appLog := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	var store roster.Store
	var closeStore func() error
	if cfg.DataPath != "" {
		kv, err := sqlite.Open(cfg.DataPath)
		if err != nil {
			log.Fatalf("open storage %s: %v", cfg.DataPath, err)
		}
		store = kv
		closeStore = kv.Close
		appLog.Info("storage ready", map[string]any{"path": cfg.DataPath})
	} else {
		store = mem.NewKV()
		appLog.Warn("DATA_PATH empty: in-memory storage, nothing survives a restart", nil)
	}

	handler, rosterSvc := router.NewRouter(router.Options{
		Store:    store,
		Logger:   appLog,
		Debounce: cfg.SaveDebounce,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		appLog.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(shutdownCtx)

	// flush del save con debounce antes de soltar el store
	if err := rosterSvc.Flush(shutdownCtx); err != nil {
		appLog.Error("final flush failed", map[string]any{"err": err.Error()})
	}
	if closeStore != nil {
		_ = closeStore()
	}

	appLog.Info("bye", nil)
}
