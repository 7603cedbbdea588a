package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewFileSink_FormatInference(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		format  string
		want    string
		wantErr bool
	}{
		{"json extension", "out.json", "", "json", false},
		{"ndjson extension", "out.ndjson", "", "ndjson", false},
		{"jsonl extension", "out.jsonl", "", "ndjson", false},
		{"explicit format", "out.dat", "ndjson", "ndjson", false},
		{"unknown extension", "out.dat", "", "", true},
		{"unsupported format", "out.json", "yaml", "", true},
		{"empty path", "", "json", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := tc.path
			if path != "" {
				path = filepath.Join(t.TempDir(), path)
			}
			s, err := NewFileSink(path, tc.format)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewFileSink failed: %v", err)
			}
			defer s.Close()
			if s.format != tc.want {
				t.Fatalf("format = %q, want %q", s.format, tc.want)
			}
		})
	}
}

func TestFileSink_NDJSONStreams(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.ndjson")
	s, err := NewFileSink(path, "")
	if err != nil {
		t.Fatalf("NewFileSink failed: %v", err)
	}

	_ = s.Write(Event{Type: "run.started", Repo: "acme/widgets"})
	_ = s.Write(Event{Type: "branch.decision", Branch: "old", Decision: "delete"})
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	var e Event
	if err := json.Unmarshal([]byte(lines[1]), &e); err != nil {
		t.Fatalf("invalid NDJSON line: %v", err)
	}
	if e.Branch != "old" {
		t.Fatalf("unexpected event: %+v", e)
	}
}

func TestFileSink_JSONAggregatesOnClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	s, err := NewFileSink(path, "")
	if err != nil {
		t.Fatalf("NewFileSink failed: %v", err)
	}

	_ = s.Write(Event{Type: "branch.decision", Branch: "a"})
	_ = s.Write(Event{Type: "run.finished", Status: "completed"})
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	var events []Event
	if err := json.Unmarshal(data, &events); err != nil {
		t.Fatalf("invalid JSON aggregate: %v", err)
	}
	if len(events) != 2 || events[0].Branch != "a" {
		t.Fatalf("unexpected aggregate: %+v", events)
	}
}

func TestFileSink_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.json")
	s, err := NewFileSink(path, "")
	if err != nil {
		t.Fatalf("NewFileSink failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("output file missing: %v", err)
	}
}
