package main

import (
	"context"
	"flag"
	"os"

	"github.com/Arch-4ng3l/TimetableGenerator/internal/app"
	"github.com/Arch-4ng3l/TimetableGenerator/internal/cli"
	"github.com/Arch-4ng3l/TimetableGenerator/internal/config"
	appLog "github.com/Arch-4ng3l/TimetableGenerator/internal/log"
)

func main() {
	configPath := flag.String("config", "", "Path to optional YAML settings file")
	outputDir := flag.String("out", "", "Directory for generated .ics files (overrides OUTPUT_DIR)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", *configPath)
		os.Exit(1)
	}
	appLog.SetLevel(cfg.LogLevel)
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}

	// Interrupts keep their default behaviour; the shell blocks on stdin.
	ctx := context.Background()

	application, err := app.New(ctx, cfg)
	if err != nil {
		appLog.Error("failed to create model client", err, "provider", cfg.Provider)
		os.Exit(1)
	}
	defer application.Close()

	appLog.Debug("effective config",
		"provider", cfg.Provider,
		"model", cfg.Model,
		"output_dir", cfg.OutputDir,
		"extract_mode", cfg.ExtractMode,
	)

	shell := cli.NewShell(os.Stdin, os.Stdout, application.Pipeline, cfg.OutputDir)
	if err := shell.Run(ctx); err != nil {
		appLog.Error("interactive session ended with error", err)
		os.Exit(1)
	}
}
