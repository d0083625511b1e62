package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Arch-4ng3l/TimetableGenerator/internal/app"
	appLog "github.com/Arch-4ng3l/TimetableGenerator/internal/log"
	"github.com/Arch-4ng3l/TimetableGenerator/internal/timetable"
)

// subjectsDone ends subject entry (case-insensitive).
const subjectsDone = "done"

// Shell is the interactive front end: it asks for the scheduling parameters,
// runs the pipeline and writes the calendar file, until the user stops.
type Shell struct {
	in        *bufio.Scanner
	out       io.Writer
	pipeline  *app.Pipeline
	outputDir string
}

func NewShell(in io.Reader, out io.Writer, pipeline *app.Pipeline, outputDir string) *Shell {
	return &Shell{
		in:        bufio.NewScanner(in),
		out:       out,
		pipeline:  pipeline,
		outputDir: outputDir,
	}
}

// Run loops until the user declines another run, input ends or ctx is done.
// A failed generation only ends its own iteration.
func (s *Shell) Run(ctx context.Context) error {
	for {
		req, err := s.readRequest()
		if err != nil {
			return ignoreEOF(err)
		}

		s.runOnce(ctx, req)
		if err := ctx.Err(); err != nil {
			return err
		}

		again, err := s.ask("\nDo you want to create another timetable? (y/n): ")
		if err != nil {
			return ignoreEOF(err)
		}
		if strings.ToLower(strings.TrimSpace(again)) != "y" {
			return nil
		}
	}
}

func (s *Shell) runOnce(ctx context.Context, req timetable.Request) {
	res, err := s.pipeline.Generate(ctx, req)
	if err != nil {
		var perr *timetable.ParseError
		if errors.As(err, &perr) {
			fmt.Fprintln(s.out, "Model output was invalid JSON, showing raw output:")
			fmt.Fprintln(s.out, perr.Raw)
		} else {
			fmt.Fprintln(s.out, "Error generating timetable:", err)
		}
		appLog.Error("generation failed", err, "name", req.Name)
		return
	}

	fmt.Fprint(s.out, "\n=== Generated JSON ===\n\n")
	fmt.Fprintln(s.out, res.JSON)

	path, err := s.pipeline.SaveCalendar(s.outputDir, req.Name, res.Document)
	if err != nil {
		fmt.Fprintln(s.out, " Error converting to ICS:", err)
		fmt.Fprintln(s.out, res.JSON)
		appLog.Error("calendar conversion failed", err, "name", req.Name)
		return
	}
	fmt.Fprintf(s.out, " Timetable saved as %s (import into Google Calendar)\n", path)
}

func (s *Shell) readRequest() (timetable.Request, error) {
	var req timetable.Request
	var err error

	fmt.Fprintln(s.out, "=== Timetable Generator ===")
	if req.Name, err = s.ask("Enter your name: "); err != nil {
		return req, err
	}
	if req.StartDate, err = s.ask("Enter start date (YYYY-MM-DD): "); err != nil {
		return req, err
	}
	if req.Days, err = s.askInt("How many days do you want in your timetable? "); err != nil {
		return req, err
	}
	if req.HoursPerDay, err = s.askInt("How many hours per day do you want to schedule? "); err != nil {
		return req, err
	}

	fmt.Fprintf(s.out, "Enter your subjects (type '%s' when finished):\n", subjectsDone)
	for {
		subject, err := s.ask("> ")
		if err != nil {
			return req, err
		}
		if strings.EqualFold(subject, subjectsDone) {
			break
		}
		req.Subjects = append(req.Subjects, subject)
	}

	if req.Preferences, err = s.ask("Any special preferences? (e.g., mornings, breaks, etc.): "); err != nil {
		return req, err
	}
	return req, nil
}

func (s *Shell) ask(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimRight(s.in.Text(), "\r"), nil
}

// askInt repeats the prompt until the answer parses as an integer.
func (s *Shell) askInt(prompt string) (int, error) {
	for {
		answer, err := s.ask(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(answer))
		if err == nil {
			return n, nil
		}
		fmt.Fprintf(s.out, "%q is not a whole number, try again.\n", answer)
	}
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
