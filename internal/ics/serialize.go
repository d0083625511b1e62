package ics

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Arch-4ng3l/TimetableGenerator/internal/timetable"
)

const (
	stampLayout = "20060102T150405Z"
	localLayout = "20060102T150405"
)

// isoLayouts are the ISO-8601 shapes accepted for event start/end, most
// specific first. Fractional seconds are accepted by the seconds layouts.
var isoLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02T15",
	"2006-01-02",
}

// TimestampError reports an event start or end that is not ISO-8601.
type TimestampError struct {
	Index int
	Field string
	Value string
	Err   error
}

func (e *TimestampError) Error() string {
	return fmt.Sprintf("event %d: invalid %s %q: %v", e.Index, e.Field, e.Value, e.Err)
}

func (e *TimestampError) Unwrap() error {
	return e.Err
}

// Serializer renders a timetable.Document as calendar text.
type Serializer struct {
	now    func() time.Time
	newUID func() string
}

// Option customizes a Serializer.
type Option func(*Serializer)

// WithClock fixes the DTSTAMP source.
func WithClock(now func() time.Time) Option {
	return func(s *Serializer) { s.now = now }
}

// WithUIDs replaces the random UID source.
func WithUIDs(newUID func() string) Option {
	return func(s *Serializer) { s.newUID = newUID }
}

func NewSerializer(opts ...Option) *Serializer {
	s := &Serializer{
		now:    time.Now,
		newUID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Serialize renders every event of doc in order. Titles are copied verbatim.
// Any unparseable timestamp fails the whole document.
func (s *Serializer) Serialize(doc timetable.Document) (string, error) {
	stamp := s.now().UTC().Format(stampLayout)

	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\nVERSION:2.0\nCALSCALE:GREGORIAN\n")

	for i, ev := range doc.Events {
		start, err := parseISO(ev.Start)
		if err != nil {
			return "", &TimestampError{Index: i, Field: "start", Value: ev.Start, Err: err}
		}
		end, err := parseISO(ev.End)
		if err != nil {
			return "", &TimestampError{Index: i, Field: "end", Value: ev.End, Err: err}
		}

		b.WriteString("BEGIN:VEVENT\n")
		b.WriteString("UID:" + s.newUID() + "\n")
		b.WriteString("DTSTAMP:" + stamp + "\n")
		b.WriteString("SUMMARY:" + ev.Title + "\n")
		b.WriteString("DTSTART:" + start.Format(localLayout) + "\n")
		b.WriteString("DTEND:" + end.Format(localLayout) + "\n")
		b.WriteString("END:VEVENT\n")
	}

	b.WriteString("END:VCALENDAR")
	return b.String(), nil
}

// parseISO parses v and keeps its wall clock; any offset is discarded on output.
func parseISO(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if len(v) > 10 && v[10] == ' ' {
		v = v[:10] + "T" + v[11:]
	}

	var firstErr error
	for _, layout := range isoLayouts {
		t, err := time.Parse(layout, v)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}
