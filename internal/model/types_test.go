package model

import "testing"

func TestCountsAdd(t *testing.T) {
	a := Counts{Lines: 2, Words: 3, Bytes: 16, Chars: 16, MaxLineLength: 11}
	b := Counts{Lines: 1, Words: 1, Bytes: 4, Chars: 4, MaxLineLength: 3}

	got := a.Add(b)
	want := Counts{Lines: 3, Words: 4, Bytes: 20, Chars: 20, MaxLineLength: 11}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if got := b.Add(a); got != want {
		t.Fatalf("expected add to be symmetric, got %+v", got)
	}
}

func TestMetricSetOrdered(t *testing.T) {
	s := NewMetricSet(MetricMaxLineLength, MetricChars, MetricLines)
	got := s.Ordered()
	want := []Metric{MetricLines, MetricChars, MetricMaxLineLength}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if s.String() != "lines,chars,max-line-length" {
		t.Fatalf("unexpected string: %q", s.String())
	}
}

func TestDefaultMetrics(t *testing.T) {
	if !DefaultMetrics.Has(MetricLines) || !DefaultMetrics.Has(MetricWords) || !DefaultMetrics.Has(MetricBytes) {
		t.Fatalf("default must include lines, words and bytes: %s", DefaultMetrics)
	}
	if DefaultMetrics.Has(MetricChars) || DefaultMetrics.Has(MetricMaxLineLength) {
		t.Fatalf("default must not include chars or max-line-length: %s", DefaultMetrics)
	}
}

func TestParseMetricSet(t *testing.T) {
	s, err := ParseMetricSet("words, Max-Line-Length,")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if s != NewMetricSet(MetricWords, MetricMaxLineLength) {
		t.Fatalf("unexpected set: %s", s)
	}
	if _, err := ParseMetricSet("lines,pages"); err == nil {
		t.Fatalf("expected error for unknown metric")
	}
}

func TestParseTotalMode(t *testing.T) {
	for _, value := range []string{"auto", "ALWAYS", " only", "never"} {
		if _, err := ParseTotalMode(value); err != nil {
			t.Fatalf("expected %q to parse: %v", value, err)
		}
	}
	if _, err := ParseTotalMode("sometimes"); err == nil {
		t.Fatalf("expected error for invalid mode")
	}
}
