package app

import (
	"context"

	"github.com/Arch-4ng3l/TimetableGenerator/internal/config"
	"github.com/Arch-4ng3l/TimetableGenerator/internal/ics"
	"github.com/Arch-4ng3l/TimetableGenerator/internal/llm"
	"github.com/Arch-4ng3l/TimetableGenerator/internal/timetable"
)

// App owns the model client and the pipeline built on it.
type App struct {
	Pipeline *Pipeline
	client   llm.Client
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	client, err := llm.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	pipeline := NewPipeline(client, timetable.ExtractorFor(cfg.ExtractMode), ics.NewSerializer())
	return &App{Pipeline: pipeline, client: client}, nil
}

func (a *App) Close() error {
	return a.client.Close()
}
