package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Arch-4ng3l/TimetableGenerator/internal/app"
	"github.com/Arch-4ng3l/TimetableGenerator/internal/config"
	appLog "github.com/Arch-4ng3l/TimetableGenerator/internal/log"
	"github.com/Arch-4ng3l/TimetableGenerator/internal/server"
)

func main() {
	configPath := flag.String("config", "", "Path to optional YAML settings file")
	listen := flag.String("listen", "", "HTTP listen address (overrides HTTP_ADDR)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", *configPath)
		os.Exit(1)
	}
	appLog.SetLevel(cfg.LogLevel)
	if *listen != "" {
		cfg.HTTPAddr = *listen
	}
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg)
	if err != nil {
		appLog.Error("failed to create model client", err, "provider", cfg.Provider)
		os.Exit(1)
	}
	defer application.Close()

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.New(application.Pipeline, cfg.OutputDir, cfg.CORSOrigins).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			appLog.Error("http shutdown error", err)
		}
	}()

	appLog.Info("timetable server listening",
		"addr", cfg.HTTPAddr,
		"provider", cfg.Provider,
		"model", cfg.Model,
		"output_dir", cfg.OutputDir,
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		appLog.Error("http server error", err)
		os.Exit(1)
	}
	appLog.Info("timetable server stopped")
}
