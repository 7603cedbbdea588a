package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

var (
	deleteColor = color.New(color.FgRed, color.Bold)
	dryRunColor = color.New(color.FgYellow)
	skipColor   = color.New(color.FgHiBlack)
	errorColor  = color.New(color.FgRed)
	warnColor   = color.New(color.FgYellow)
)

type ConsoleSink struct {
	writer io.Writer
	format string // "text", "json", "ndjson"
	mu     sync.Mutex
	events []Event // for JSON array output
}

func NewConsoleSink(w io.Writer, format string) *ConsoleSink {
	if w == nil {
		w = os.Stdout
	}
	if format == "" {
		format = "text"
	}
	return &ConsoleSink{writer: w, format: format}
}

func (s *ConsoleSink) Write(e Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.format {
	case "json":
		s.events = append(s.events, e)
		return nil
	case "ndjson":
		if err := json.NewEncoder(s.writer).Encode(e); err != nil {
			return err
		}
		return flushIfPossible(s.writer)
	case "text":
		if err := s.writeText(e); err != nil {
			return err
		}
		return flushIfPossible(s.writer)
	default:
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
}

func (s *ConsoleSink) writeText(e Event) error {
	switch e.Type {
	case "run.started":
		_, err := fmt.Fprintf(s.writer, "Sweeping %s (%d branches)\n", e.Repo, e.Branches)
		return err
	case "branch.decision":
		label := skipColor.Sprint("[SKIP]")
		switch e.Decision {
		case "delete":
			label = deleteColor.Sprint("[DELETE]")
		case "dry-run-delete":
			label = dryRunColor.Sprint("[DRY-RUN]")
		}
		line := fmt.Sprintf("%s %s - %s", label, e.Branch, e.Reason)
		if e.DaysStale > 0 {
			line += fmt.Sprintf(" (stale %dd)", e.DaysStale)
		}
		_, err := fmt.Fprintln(s.writer, line)
		return err
	case "branch.error":
		_, err := fmt.Fprintf(s.writer, "%s %s - %s\n", errorColor.Sprint("[ERROR]"), e.Branch, e.Error)
		return err
	case "run.error":
		_, err := fmt.Fprintf(s.writer, "%s %s\n", errorColor.Sprint("[ERROR]"), e.Error)
		return err
	case "warning":
		_, err := fmt.Fprintf(s.writer, "%s %s\n", warnColor.Sprint("warning:"), e.Error)
		return err
	case "run.finished":
		_, err := fmt.Fprintf(s.writer, "Swept %d branches: %d deleted, %d skipped, %d failed (%s)\n",
			e.Scanned, e.Deleted, e.Skipped, e.Failed, e.Status)
		return err
	default:
		// Unknown lifecycle events are ignored in text mode.
		return nil
	}
}

func (s *ConsoleSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.format == "json" {
		encoder := json.NewEncoder(s.writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(s.events); err != nil {
			return err
		}
		return flushIfPossible(s.writer)
	}
	if s.format != "text" && s.format != "ndjson" {
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
	return nil
}
