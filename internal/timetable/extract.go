package timetable

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
)

const (
	ModeGreedy   = "greedy"
	ModeBalanced = "balanced"
)

// ErrNoEvents is wrapped by ParseError when the JSON has no top-level events field.
var ErrNoEvents = errors.New(`missing top-level "events" field`)

// ParseError reports model output that could not be turned into a Document.
// Raw is the unmodified model text, kept for diagnostics.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("model output is not a valid timetable: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Extraction is the JSON span selected from the model output and its parsed form.
type Extraction struct {
	JSON     string
	Document Document
}

// ExtractFunc turns raw model output into a Document.
type ExtractFunc func(raw string) (*Extraction, error)

// ExtractorFor returns the extractor for mode; unknown modes get the greedy one.
func ExtractorFor(mode string) ExtractFunc {
	if mode == ModeBalanced {
		return ExtractBalanced
	}
	return Extract
}

// jsonBlock spans from the first '{' to the last '}' in the text.
var jsonBlock = regexp.MustCompile(`\{[\s\S]*\}`)

// Extract narrows raw to the span between its first '{' and its last '}' and
// parses that. Trailing prose containing a '}' ends up inside the span.
func Extract(raw string) (*Extraction, error) {
	text := raw
	if m := jsonBlock.FindString(raw); m != "" {
		text = m
	}
	return parse(raw, text)
}

// ExtractBalanced narrows raw to the first brace-balanced object, skipping
// braces inside string literals. Without one it parses raw unchanged.
func ExtractBalanced(raw string) (*Extraction, error) {
	text := raw
	if start, end, ok := balancedSpan(raw); ok {
		text = raw[start:end]
	}
	return parse(raw, text)
}

func balancedSpan(s string) (int, int, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if start < 0 {
			if c == '{' {
				start = i
				depth = 1
			}
			continue
		}

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return start, i + 1, true
			}
		}
	}
	return 0, 0, false
}

func parse(raw, text string) (*Extraction, error) {
	var body struct {
		Events *[]Event `json:"events"`
	}
	if err := json.Unmarshal([]byte(text), &body); err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}
	if body.Events == nil {
		return nil, &ParseError{Raw: raw, Err: ErrNoEvents}
	}

	return &Extraction{
		JSON:     text,
		Document: Document{Events: *body.Events},
	}, nil
}
