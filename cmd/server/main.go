package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"

	"github.com/docpress/go-html2pdf/internal/config"
	"github.com/docpress/go-html2pdf/internal/convert"
	"github.com/docpress/go-html2pdf/internal/logger"
	"github.com/docpress/go-html2pdf/internal/server"
)

const shutdownTimeout = 15 * time.Second

func main() {
	fs := config.Flags()
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	cfg, err := config.Load(fs)
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() {
		_ = log.Sync()
	}()

	// Respect container CPU quotas.
	if _, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		log.Sugar().Infof(format, args...)
	})); err != nil {
		log.Warn("setting GOMAXPROCS", zap.Error(err))
	}

	log.Info("starting html2pdf service",
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("work_dir", cfg.Convert.WorkDir),
	)

	svc := convert.New(
		convert.WithWorkDir(cfg.Convert.WorkDir),
		convert.WithRenderTimeout(cfg.Convert.RenderTimeout),
		convert.WithOfficeTimeout(cfg.Convert.OfficeTimeout),
		convert.WithBrowserBin(cfg.Convert.BrowserBin),
		convert.WithLogger(log),
	)
	defer func() {
		if err := svc.Close(); err != nil {
			log.Error("closing conversion service", zap.Error(err))
		}
	}()

	handler := server.NewHandler(svc, log)
	router := server.NewRouter(cfg, handler, log)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()
	log.Info("server listening", zap.String("addr", srv.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}
