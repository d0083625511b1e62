package timetable

// Request carries the scheduling parameters a user supplies for one generation.
// Nothing beyond the integer types is validated; the model is trusted to
// respect the bounds.
type Request struct {
	Name        string   `json:"name"`
	StartDate   string   `json:"startDate"`
	Days        int      `json:"numberOfDays"`
	HoursPerDay int      `json:"hoursPerDay"`
	Subjects    []string `json:"subjects"`
	Preferences string   `json:"preferences"`
}

// Event is a single timed entry as returned by the model. Start and End are
// ISO-8601 strings without timezone and are not checked for ordering or overlap.
type Event struct {
	Title string `json:"title"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// Document is the parsed model output.
type Document struct {
	Events []Event `json:"events"`
}
