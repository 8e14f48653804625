package report

import (
	"bytes"
	"testing"

	"github.com/verte-zerg/gowc/internal/model"
)

func TestFormatRow(t *testing.T) {
	counts := model.Counts{Lines: 2, Words: 3, Bytes: 16, Chars: 16, MaxLineLength: 11}
	cases := []struct {
		name    string
		metrics model.MetricSet
		label   string
		width   int
		want    string
	}{
		{name: "default", metrics: model.DefaultMetrics, label: "a.txt", width: 7, want: "      2       3      16 a.txt"},
		{name: "all", metrics: model.NewMetricSet(model.CanonicalOrder...), label: "TOTAL", width: 3, want: "  2   3  16  16  11 TOTAL"},
		{name: "no label", metrics: model.NewMetricSet(model.MetricWords), label: "", width: 7, want: "      3"},
		{name: "order is canonical", metrics: model.NewMetricSet(model.MetricMaxLineLength, model.MetricLines), label: "-", width: 1, want: "2 11 -"},
		{name: "wide numbers widen field", metrics: model.NewMetricSet(model.MetricBytes), label: "x", width: 1, want: "16 x"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FormatRow(counts, tc.metrics, tc.label, tc.width)
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestReporterWritesLines(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, model.NewMetricSet(model.MetricLines, model.MetricWords), 0)
	if err := r.Report(model.Row{Label: "-", Counts: model.Counts{Lines: 1, Words: 3}}); err != nil {
		t.Fatalf("report: %v", err)
	}
	if err := r.Report(model.Row{Counts: model.Counts{Lines: 4, Words: 5}}); err != nil {
		t.Fatalf("report: %v", err)
	}
	want := "      1       3 -\n      4       5\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Run", "When", "Lines"}
	rows := [][]string{
		{"12", "2 minutes ago", "1,024"},
		{"3", "日本", "7"},
	}
	rightAlign := map[int]bool{0: true, 2: true}

	lines := FormatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Run  When           Lines" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != " 12  2 minutes ago  1,024" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "  3  日本               7" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}
