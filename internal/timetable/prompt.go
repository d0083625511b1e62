package timetable

import (
	"fmt"
	"strings"
)

const promptTemplate = `Create a structured timetable for %s.

Details:
- Start date: %s
- %d days
- %d hours per day
- Subjects: %s
- Preferences: %s

Output in strict JSON format with this schema:
{
    "events": [
        {
            "title": "Subject Name",
            "start": "YYYY-MM-DDTHH:MM:SS",
            "end": "YYYY-MM-DDTHH:MM:SS"
        }
    ]
}

Rules:
- Do not include explanations or text outside JSON.
- Ensure valid JSON only.
`

// BuildPrompt renders req into the instruction sent to the model. Every field
// is interpolated verbatim.
func BuildPrompt(req Request) string {
	return fmt.Sprintf(promptTemplate,
		req.Name,
		req.StartDate,
		req.Days,
		req.HoursPerDay,
		strings.Join(req.Subjects, ", "),
		req.Preferences,
	)
}
