package ics

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arch-4ng3l/TimetableGenerator/internal/timetable"
)

func fixedClock() time.Time {
	return time.Date(2024, 1, 1, 8, 30, 15, 0, time.UTC)
}

func threeEvents() timetable.Document {
	return timetable.Document{Events: []timetable.Event{
		{Title: "Math", Start: "2024-01-01T09:00:00", End: "2024-01-01T10:00:00"},
		{Title: "Physics", Start: "2024-01-01T10:15:00", End: "2024-01-01T11:15:00"},
		{Title: "History", Start: "2024-01-02T09:00:00", End: "2024-01-02T10:00:00"},
	}}
}

func TestSerialize_SingleEventLines(t *testing.T) {
	doc := timetable.Document{Events: []timetable.Event{
		{Title: "Math", Start: "2024-01-01T09:00:00", End: "2024-01-01T10:00:00"},
	}}

	out, err := NewSerializer(WithClock(fixedClock), WithUIDs(func() string { return "uid-1" })).Serialize(doc)
	require.NoError(t, err)

	want := "BEGIN:VCALENDAR\nVERSION:2.0\nCALSCALE:GREGORIAN\n" +
		"BEGIN:VEVENT\n" +
		"UID:uid-1\n" +
		"DTSTAMP:20240101T083015Z\n" +
		"SUMMARY:Math\n" +
		"DTSTART:20240101T090000\n" +
		"DTEND:20240101T100000\n" +
		"END:VEVENT\n" +
		"END:VCALENDAR"
	assert.Equal(t, want, out)
}

func TestSerialize_BlocksInOrderWithUniqueUIDs(t *testing.T) {
	out, err := NewSerializer().Serialize(threeEvents())
	require.NoError(t, err)

	assert.Equal(t, 3, strings.Count(out, "BEGIN:VEVENT\n"))
	assert.Equal(t, 3, strings.Count(out, "END:VEVENT\n"))

	var titles []string
	seen := map[string]bool{}
	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.HasPrefix(line, "SUMMARY:"):
			titles = append(titles, strings.TrimPrefix(line, "SUMMARY:"))
		case strings.HasPrefix(line, "UID:"):
			uid := strings.TrimPrefix(line, "UID:")
			_, err := uuid.Parse(uid)
			assert.NoError(t, err, "uid %q", uid)
			assert.False(t, seen[uid], "duplicate uid %q", uid)
			seen[uid] = true
		}
	}
	assert.Equal(t, []string{"Math", "Physics", "History"}, titles)
}

func TestSerialize_EmptyDocument(t *testing.T) {
	out, err := NewSerializer().Serialize(timetable.Document{})
	require.NoError(t, err)
	assert.Equal(t, "BEGIN:VCALENDAR\nVERSION:2.0\nCALSCALE:GREGORIAN\nEND:VCALENDAR", out)
}

func TestSerialize_AcceptedTimestampShapes(t *testing.T) {
	cases := map[string]string{
		"2024-03-05T07:08:09":        "20240305T070809",
		"2024-03-05T07:08":           "20240305T070800",
		"2024-03-05 07:08:09":        "20240305T070809",
		"2024-03-05T07:08:09.123456": "20240305T070809",
		"2024-03-05T07:08:09Z":       "20240305T070809",
		"2024-03-05T07:08:09+02:00":  "20240305T070809",
		"2024-03-05":                 "20240305T000000",
	}
	for in, want := range cases {
		t.Run(in, func(t *testing.T) {
			doc := timetable.Document{Events: []timetable.Event{{Title: "x", Start: in, End: in}}}
			out, err := NewSerializer().Serialize(doc)
			require.NoError(t, err)
			assert.Contains(t, out, "DTSTART:"+want+"\n")
			assert.Contains(t, out, "DTEND:"+want+"\n")
		})
	}
}

func TestSerialize_BadTimestampFailsWholeDocument(t *testing.T) {
	doc := threeEvents()
	doc.Events[1].End = "tomorrow at ten"

	out, err := NewSerializer().Serialize(doc)
	require.Error(t, err)
	assert.Empty(t, out)

	var tsErr *TimestampError
	require.ErrorAs(t, err, &tsErr)
	assert.Equal(t, 1, tsErr.Index)
	assert.Equal(t, "end", tsErr.Field)
	assert.Equal(t, "tomorrow at ten", tsErr.Value)
}

func TestSerialize_TitleNotEscaped(t *testing.T) {
	doc := timetable.Document{Events: []timetable.Event{
		{Title: "Math; Algebra, ch. 1", Start: "2024-01-01T09:00:00", End: "2024-01-01T10:00:00"},
	}}
	out, err := NewSerializer().Serialize(doc)
	require.NoError(t, err)
	assert.Contains(t, out, "SUMMARY:Math; Algebra, ch. 1\n")
}

func TestSerialize_ImportableByCalendarParser(t *testing.T) {
	out, err := NewSerializer().Serialize(threeEvents())
	require.NoError(t, err)

	crlf := strings.ReplaceAll(out, "\n", "\r\n") + "\r\n"
	cal, err := ical.ParseCalendar(strings.NewReader(crlf))
	require.NoError(t, err)

	events := cal.Events()
	require.Len(t, events, 3)
	for i, want := range []string{"Math", "Physics", "History"} {
		summary := events[i].GetProperty(ical.ComponentPropertySummary)
		require.NotNil(t, summary)
		assert.Equal(t, want, summary.Value)
		assert.NotNil(t, events[i].GetProperty(ical.ComponentPropertyUniqueId))
	}
	start := events[0].GetProperty(ical.ComponentPropertyDtStart)
	require.NotNil(t, start)
	assert.Equal(t, "20240101T090000", start.Value)
}

func TestFileName(t *testing.T) {
	cases := map[string]string{
		"Ana":       "Ana_timetable.ics",
		"":          "_timetable.ics",
		"../etc/pw": ".._etc_pw_timetable.ics",
		`a\b`:       "a_b_timetable.ics",
		"..":        "__timetable.ics",
	}
	for in, want := range cases {
		assert.Equal(t, want, FileName(in), fmt.Sprintf("name %q", in))
	}
}

func TestWriteFile_OverwritesPrevious(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	path, err := WriteFile(dir, "Ana", "first")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Ana_timetable.ics"), path)

	_, err = WriteFile(dir, "Ana", "second")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}
