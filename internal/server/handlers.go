package server

import (
	"errors"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	appLog "github.com/Arch-4ng3l/TimetableGenerator/internal/log"
	"github.com/Arch-4ng3l/TimetableGenerator/internal/timetable"
)

// generateRequest is the body of both generate endpoints. The snake_case
// fields are accepted as aliases of the camelCase ones. Fields must be
// present but their values are not checked; "" and 0 are passed through.
type generateRequest struct {
	Name         *string  `json:"name"`
	StartDate    *string  `json:"startDate"`
	StartDateAlt *string  `json:"start_date"`
	Days         *int     `json:"numberOfDays"`
	DaysAlt      *int     `json:"days"`
	Hours        *int     `json:"hoursPerDay"`
	HoursAlt     *int     `json:"hours_per_day"`
	Subjects     []string `json:"subjects" binding:"required"`
	Preferences  string   `json:"preferences"`
}

var (
	errMissingName      = errors.New("name is required")
	errMissingStartDate = errors.New("startDate is required")
	errMissingDays      = errors.New("numberOfDays is required")
	errMissingHours     = errors.New("hoursPerDay is required")
)

func (r generateRequest) toRequest() (timetable.Request, error) {
	if r.Name == nil {
		return timetable.Request{}, errMissingName
	}
	startDate := firstString(r.StartDate, r.StartDateAlt)
	if startDate == nil {
		return timetable.Request{}, errMissingStartDate
	}
	days := firstInt(r.Days, r.DaysAlt)
	if days == nil {
		return timetable.Request{}, errMissingDays
	}
	hours := firstInt(r.Hours, r.HoursAlt)
	if hours == nil {
		return timetable.Request{}, errMissingHours
	}

	return timetable.Request{
		Name:        *r.Name,
		StartDate:   *startDate,
		Days:        *days,
		HoursPerDay: *hours,
		Subjects:    r.Subjects,
		Preferences: r.Preferences,
	}, nil
}

func (s *Server) bind(c *gin.Context) (timetable.Request, bool) {
	var body generateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return timetable.Request{}, false
	}
	req, err := body.toRequest()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return timetable.Request{}, false
	}
	return req, true
}

func (s *Server) generate(c *gin.Context) {
	req, ok := s.bind(c)
	if !ok {
		return
	}

	res, err := s.pipeline.Generate(c.Request.Context(), req)
	if err != nil {
		s.fail(c, "generate failed", err, req)
		return
	}

	c.JSON(http.StatusOK, res.Document)
}

func (s *Server) generateICS(c *gin.Context) {
	req, ok := s.bind(c)
	if !ok {
		return
	}

	res, err := s.pipeline.Generate(c.Request.Context(), req)
	if err != nil {
		s.fail(c, "generate-ics failed", err, req)
		return
	}

	path, err := s.pipeline.SaveCalendar(s.outputDir, req.Name, res.Document)
	if err != nil {
		s.fail(c, "calendar conversion failed", err, req)
		return
	}

	c.Header("Content-Type", "text/calendar")
	c.FileAttachment(path, filepath.Base(path))
}

func (s *Server) fail(c *gin.Context, msg string, err error, req timetable.Request) {
	var perr *timetable.ParseError
	if errors.As(err, &perr) {
		appLog.Error(msg, err, "name", req.Name, "raw", perr.Raw)
	} else {
		appLog.Error(msg, err, "name", req.Name)
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func firstString(values ...*string) *string {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func firstInt(values ...*int) *int {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}
