package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/gowc/internal/model"
)

func TestHistoryLines(t *testing.T) {
	runs := []model.Run{
		{
			ID:        7,
			StartedAt: time.Now().Add(-2 * time.Hour),
			Dir:       "/src",
			Rows:      []model.Row{{Label: "a"}, {Label: "b"}},
			Total:     model.Counts{Lines: 1234, Words: 5678, Bytes: 1234567, Chars: 1234000, MaxLineLength: 80},
			Failures:  1,
		},
	}
	lines := HistoryLines(runs)
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Run  When") {
		t.Fatalf("unexpected header %q", lines[0])
	}
	for _, want := range []string{"2 hours ago", "1,234", "5,678", "1,234,567", "/src"} {
		if !strings.Contains(lines[1], want) {
			t.Fatalf("expected row to contain %q: %q", want, lines[1])
		}
	}
}

func TestWriteHistoryPlain(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHistory(&buf, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "No recorded runs.") {
		t.Fatalf("unexpected output %q", buf.String())
	}

	buf.Reset()
	runs := []model.Run{{ID: 1, StartedAt: time.Now(), Dir: "."}}
	if err := WriteHistory(&buf, runs); err != nil {
		t.Fatalf("write: %v", err)
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("non-terminal output must not be styled: %q", buf.String())
	}
	if strings.Count(buf.String(), "\n") != 2 {
		t.Fatalf("expected two lines, got %q", buf.String())
	}
}
