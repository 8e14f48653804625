// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Counts holds the metrics derived from a single input stream.
type Counts struct {
	Lines         uint64
	Words         uint64
	Bytes         uint64
	Chars         uint64
	MaxLineLength uint64
}

// Add returns c merged with other. All fields are summed except
// MaxLineLength, which keeps the larger value.
func (c Counts) Add(other Counts) Counts {
	out := Counts{
		Lines:         c.Lines + other.Lines,
		Words:         c.Words + other.Words,
		Bytes:         c.Bytes + other.Bytes,
		Chars:         c.Chars + other.Chars,
		MaxLineLength: c.MaxLineLength,
	}
	if other.MaxLineLength > out.MaxLineLength {
		out.MaxLineLength = other.MaxLineLength
	}
	return out
}

// Value returns the count for a single metric.
func (c Counts) Value(m Metric) uint64 {
	switch m {
	case MetricLines:
		return c.Lines
	case MetricWords:
		return c.Words
	case MetricBytes:
		return c.Bytes
	case MetricChars:
		return c.Chars
	case MetricMaxLineLength:
		return c.MaxLineLength
	}
	return 0
}

// Metric identifies one reported field.
type Metric uint8

// Metrics in canonical print order.
const (
	MetricLines Metric = 1 << iota
	MetricWords
	MetricBytes
	MetricChars
	MetricMaxLineLength
)

// CanonicalOrder lists every metric in the order rows print them.
var CanonicalOrder = []Metric{
	MetricLines,
	MetricWords,
	MetricBytes,
	MetricChars,
	MetricMaxLineLength,
}

var metricNames = map[Metric]string{
	MetricLines:         "lines",
	MetricWords:         "words",
	MetricBytes:         "bytes",
	MetricChars:         "chars",
	MetricMaxLineLength: "max-line-length",
}

func (m Metric) String() string {
	if name, ok := metricNames[m]; ok {
		return name
	}
	return fmt.Sprintf("metric(%d)", uint8(m))
}

// ParseMetric resolves a metric by its long flag name.
func ParseMetric(name string) (Metric, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	for m, n := range metricNames {
		if n == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown metric %q", name)
}

// MetricSet is the set of metrics selected for output.
type MetricSet uint8

// DefaultMetrics is used when no metric flag is given.
const DefaultMetrics = MetricSet(MetricLines | MetricWords | MetricBytes)

// NewMetricSet builds a set from individual metrics.
func NewMetricSet(metrics ...Metric) MetricSet {
	var s MetricSet
	for _, m := range metrics {
		s |= MetricSet(m)
	}
	return s
}

// Has reports whether m is selected.
func (s MetricSet) Has(m Metric) bool {
	return s&MetricSet(m) != 0
}

// Empty reports whether no metric is selected.
func (s MetricSet) Empty() bool {
	return s == 0
}

// Ordered returns the selected metrics in canonical order.
func (s MetricSet) Ordered() []Metric {
	out := make([]Metric, 0, len(CanonicalOrder))
	for _, m := range CanonicalOrder {
		if s.Has(m) {
			out = append(out, m)
		}
	}
	return out
}

func (s MetricSet) String() string {
	ordered := s.Ordered()
	names := make([]string, len(ordered))
	for i, m := range ordered {
		names[i] = m.String()
	}
	return strings.Join(names, ",")
}

// ParseMetricSet parses a comma separated list of metric names.
func ParseMetricSet(value string) (MetricSet, error) {
	var s MetricSet
	for _, part := range strings.Split(value, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		m, err := ParseMetric(part)
		if err != nil {
			return 0, err
		}
		s |= MetricSet(m)
	}
	return s, nil
}

// TotalMode controls when the TOTAL row is printed.
type TotalMode string

// Total modes.
const (
	TotalAuto   TotalMode = "auto"
	TotalAlways TotalMode = "always"
	TotalOnly   TotalMode = "only"
	TotalNever  TotalMode = "never"
)

// ParseTotalMode validates a --total value.
func ParseTotalMode(value string) (TotalMode, error) {
	switch mode := TotalMode(strings.TrimSpace(strings.ToLower(value))); mode {
	case TotalAuto, TotalAlways, TotalOnly, TotalNever:
		return mode, nil
	}
	return "", fmt.Errorf("invalid total mode %q (want auto, always, only or never)", value)
}

// TotalLabel labels the aggregate row.
const TotalLabel = "TOTAL"

// StdinSpec names standard input on the command line.
const StdinSpec = "-"

// Row is a labelled set of counts.
type Row struct {
	Label  string
	Counts Counts
}

// Run is a recorded invocation.
type Run struct {
	ID        int64
	StartedAt time.Time
	Dir       string
	Metrics   MetricSet
	Rows      []Row
	Total     Counts
	Failures  int
}
