package timetable

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRequest() Request {
	return Request{
		Name:        "Ana",
		StartDate:   "2024-01-01",
		Days:        5,
		HoursPerDay: 3,
		Subjects:    []string{"Math", "Physics", "History"},
		Preferences: "mornings, short breaks",
	}
}

func TestBuildPrompt_InterpolatesEveryField(t *testing.T) {
	p := BuildPrompt(sampleRequest())

	assert.Contains(t, p, "Create a structured timetable for Ana.")
	assert.Contains(t, p, "- Start date: 2024-01-01")
	assert.Contains(t, p, "- 5 days")
	assert.Contains(t, p, "- 3 hours per day")
	assert.Contains(t, p, "- Subjects: Math, Physics, History")
	assert.Contains(t, p, "- Preferences: mornings, short breaks")
}

func TestBuildPrompt_SchemaAndRules(t *testing.T) {
	p := BuildPrompt(sampleRequest())

	assert.Contains(t, p, `"events": [`)
	assert.Contains(t, p, `"title": "Subject Name"`)
	assert.Contains(t, p, `"start": "YYYY-MM-DDTHH:MM:SS"`)
	assert.Contains(t, p, `"end": "YYYY-MM-DDTHH:MM:SS"`)
	assert.Contains(t, p, "Do not include explanations or text outside JSON.")
	assert.Contains(t, p, "Ensure valid JSON only.")
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	assert.Equal(t, BuildPrompt(sampleRequest()), BuildPrompt(sampleRequest()))
}

func TestBuildPrompt_EmptySubjectsAndPreferences(t *testing.T) {
	req := sampleRequest()
	req.Subjects = nil
	req.Preferences = ""

	p := BuildPrompt(req)
	assert.Contains(t, p, "- Subjects: \n")
	assert.Contains(t, p, "- Preferences: \n")
}

func TestExtract_ProseAroundObject(t *testing.T) {
	ex, err := Extract(`prefix text {"events":[]} suffix`)
	require.NoError(t, err)

	assert.Equal(t, `{"events":[]}`, ex.JSON)
	assert.NotNil(t, ex.Document.Events)
	assert.Empty(t, ex.Document.Events)
}

func TestExtract_FencedModelOutput(t *testing.T) {
	raw := "Sure! Here is your timetable:\n```json\n{\n  \"events\": [\n    {\"title\": \"Math\", \"start\": \"2024-01-01T09:00:00\", \"end\": \"2024-01-01T10:00:00\"}\n  ]\n}\n```"

	ex, err := Extract(raw)
	require.NoError(t, err)
	require.Len(t, ex.Document.Events, 1)
	assert.Equal(t, Event{Title: "Math", Start: "2024-01-01T09:00:00", End: "2024-01-01T10:00:00"}, ex.Document.Events[0])
	assert.True(t, strings.HasPrefix(ex.JSON, "{"))
	assert.True(t, strings.HasSuffix(ex.JSON, "}"))
}

func TestExtract_NoJSON(t *testing.T) {
	raw := "no json here"
	_, err := Extract(raw)
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, raw, perr.Raw)
}

func TestExtract_MissingEventsField(t *testing.T) {
	_, err := Extract(`{"schedule": []}`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoEvents))

	_, err = Extract(`{"events": null}`)
	assert.True(t, errors.Is(err, ErrNoEvents))
}

// The greedy span runs from the first '{' to the last '}', so two objects
// separated by prose are captured together and fail to parse.
func TestExtract_GreedySpansTwoObjects(t *testing.T) {
	raw := `{"events":[]} and another one: {"events":[]}`

	_, err := Extract(raw)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, raw, perr.Raw)
}

func TestExtract_GreedyTrailingBrace(t *testing.T) {
	_, err := Extract(`{"events":[]} note: use {curly} braces`)
	assert.Error(t, err)
}

func TestExtractBalanced_FirstObjectOnly(t *testing.T) {
	ex, err := ExtractBalanced(`{"events":[{"title":"A","start":"2024-01-01T09:00:00","end":"2024-01-01T10:00:00"}]} and another one: {"events":[]}`)
	require.NoError(t, err)
	require.Len(t, ex.Document.Events, 1)
	assert.Equal(t, "A", ex.Document.Events[0].Title)
}

func TestExtractBalanced_BracesInsideStrings(t *testing.T) {
	raw := `Result: {"events":[{"title":"Set {A} \"}\"","start":"2024-01-01T09:00:00","end":"2024-01-01T10:00:00"}]} done }`

	ex, err := ExtractBalanced(raw)
	require.NoError(t, err)
	require.Len(t, ex.Document.Events, 1)
	assert.Equal(t, `Set {A} "}"`, ex.Document.Events[0].Title)
}

func TestExtractBalanced_UnbalancedFallsBackToRaw(t *testing.T) {
	_, err := ExtractBalanced(`{"events": [`)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func TestExtractorFor(t *testing.T) {
	raw := `{"events":[]} trailing {x}`

	_, err := ExtractorFor(ModeGreedy)(raw)
	assert.Error(t, err)

	ex, err := ExtractorFor(ModeBalanced)(raw)
	require.NoError(t, err)
	assert.Equal(t, `{"events":[]}`, ex.JSON)

	_, err = ExtractorFor("")(raw)
	assert.Error(t, err, "unknown mode falls back to greedy")
}
