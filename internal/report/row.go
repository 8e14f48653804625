// Package report formats counts for output.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/verte-zerg/gowc/internal/model"
)

// DefaultWidth is the minimum width of a numeric field.
const DefaultWidth = 7

// FormatRow renders the selected metrics of counts in canonical order,
// right-justified to width, followed by label. An empty label is omitted.
func FormatRow(counts model.Counts, metrics model.MetricSet, label string, width int) string {
	var b strings.Builder
	for i, m := range metrics.Ordered() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(padCell(strconv.FormatUint(counts.Value(m), 10), width, true))
	}
	if label != "" {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(label)
	}
	return b.String()
}

// Reporter writes formatted rows to an output stream.
type Reporter struct {
	out     io.Writer
	metrics model.MetricSet
	width   int
}

// NewReporter returns a Reporter printing metrics at the given field width.
func NewReporter(out io.Writer, metrics model.MetricSet, width int) *Reporter {
	if width <= 0 {
		width = DefaultWidth
	}
	return &Reporter{out: out, metrics: metrics, width: width}
}

// Metrics returns the metric selection used for every row.
func (r *Reporter) Metrics() model.MetricSet {
	return r.metrics
}

// Report writes a single row.
func (r *Reporter) Report(row model.Row) error {
	if _, err := fmt.Fprintln(r.out, FormatRow(row.Counts, r.metrics, row.Label, r.width)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
