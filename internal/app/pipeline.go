package app

import (
	"context"

	"github.com/Arch-4ng3l/TimetableGenerator/internal/ics"
	"github.com/Arch-4ng3l/TimetableGenerator/internal/llm"
	appLog "github.com/Arch-4ng3l/TimetableGenerator/internal/log"
	"github.com/Arch-4ng3l/TimetableGenerator/internal/timetable"
)

// Result is one generation: the raw model reply, the JSON span taken from it
// and the parsed document.
type Result struct {
	Raw      string
	JSON     string
	Document timetable.Document
}

// Pipeline is prompt -> model -> extraction, plus calendar rendering. It keeps
// no state between calls.
type Pipeline struct {
	generator llm.Generator
	extract   timetable.ExtractFunc
	calendar  *ics.Serializer
}

func NewPipeline(generator llm.Generator, extract timetable.ExtractFunc, calendar *ics.Serializer) *Pipeline {
	if extract == nil {
		extract = timetable.Extract
	}
	if calendar == nil {
		calendar = ics.NewSerializer()
	}
	return &Pipeline{
		generator: generator,
		extract:   extract,
		calendar:  calendar,
	}
}

// Generate runs one request through the model. Failures are returned as-is;
// nothing is retried.
func (p *Pipeline) Generate(ctx context.Context, req timetable.Request) (*Result, error) {
	prompt := timetable.BuildPrompt(req)
	appLog.Debug("prompt built", "name", req.Name, "subjects", len(req.Subjects))

	raw, err := p.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	ex, err := p.extract(raw)
	if err != nil {
		return nil, err
	}

	appLog.Info("timetable generated", "name", req.Name, "events", len(ex.Document.Events))
	return &Result{Raw: raw, JSON: ex.JSON, Document: ex.Document}, nil
}

// Calendar renders doc as calendar text.
func (p *Pipeline) Calendar(doc timetable.Document) (string, error) {
	return p.calendar.Serialize(doc)
}

// SaveCalendar renders doc and writes it to dir as "{name}_timetable.ics".
// Nothing is written when rendering fails.
func (p *Pipeline) SaveCalendar(dir, name string, doc timetable.Document) (string, error) {
	text, err := p.Calendar(doc)
	if err != nil {
		return "", err
	}

	path, err := ics.WriteFile(dir, name, text)
	if err != nil {
		return "", err
	}
	appLog.Info("calendar written", "path", path, "events", len(doc.Events))
	return path, nil
}
