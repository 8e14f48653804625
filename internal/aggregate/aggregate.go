// Package aggregate runs the scanner over a list of inputs and keeps the total.
package aggregate

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/text/encoding"

	"github.com/verte-zerg/gowc/internal/counter"
	"github.com/verte-zerg/gowc/internal/input"
	"github.com/verte-zerg/gowc/internal/model"
	"github.com/verte-zerg/gowc/internal/report"
)

// ErrInputFailed is returned by Run when at least one input was skipped.
var ErrInputFailed = errors.New("one or more inputs could not be processed")

// Options configures an Aggregator.
type Options struct {
	// Name prefixes diagnostic lines.
	Name     string
	Total    model.TotalMode
	Encoding encoding.Encoding
	// Diagnostics receives one line per failed input.
	Diagnostics io.Writer
	Logger      *slog.Logger
}

// Aggregator processes inputs strictly in order.
type Aggregator struct {
	resolver *input.Resolver
	reporter *report.Reporter
	opts     Options
}

// Summary describes a completed run.
type Summary struct {
	Rows         []model.Row
	Total        model.Counts
	TotalPrinted bool
	Failures     []error
}

// New returns an Aggregator that opens inputs with resolver and prints rows
// with reporter.
func New(resolver *input.Resolver, reporter *report.Reporter, opts Options) *Aggregator {
	if opts.Total == "" {
		opts.Total = model.TotalAuto
	}
	if opts.Diagnostics == nil {
		opts.Diagnostics = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Aggregator{resolver: resolver, reporter: reporter, opts: opts}
}

// Run scans every specifier in order. With no specifiers standard input is
// read once under an empty label and a failure there is returned as the
// run's error. Otherwise per-input failures are reported on the diagnostics
// writer, excluded from the total and summarised by ErrInputFailed.
func (a *Aggregator) Run(specs []string) (Summary, error) {
	if len(specs) == 0 {
		return a.runStdin()
	}

	var summary Summary
	for _, spec := range specs {
		counts, err := a.scanSpec(spec)
		if err != nil {
			a.diagnose(err)
			summary.Failures = append(summary.Failures, err)
			continue
		}
		row := model.Row{Label: spec, Counts: counts}
		summary.Rows = append(summary.Rows, row)
		summary.Total = summary.Total.Add(counts)
		if a.opts.Total == model.TotalOnly {
			continue
		}
		if err := a.reporter.Report(row); err != nil {
			return summary, err
		}
	}

	if a.printTotal(len(summary.Rows)) {
		if err := a.reporter.Report(model.Row{Label: model.TotalLabel, Counts: summary.Total}); err != nil {
			return summary, err
		}
		summary.TotalPrinted = true
	}
	if len(summary.Failures) > 0 {
		return summary, ErrInputFailed
	}
	return summary, nil
}

func (a *Aggregator) runStdin() (Summary, error) {
	src := a.resolver.OpenStdin("")
	counts, err := a.scan(src)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to read standard input: %w", err)
	}
	row := model.Row{Counts: counts}
	summary := Summary{Rows: []model.Row{row}, Total: counts}
	if err := a.reporter.Report(row); err != nil {
		return summary, err
	}
	return summary, nil
}

// printTotal applies the total policy. In auto mode the row appears only
// when more than one input was counted.
func (a *Aggregator) printTotal(succeeded int) bool {
	switch a.opts.Total {
	case model.TotalAlways, model.TotalOnly:
		return true
	case model.TotalNever:
		return false
	default:
		return succeeded > 1
	}
}

func (a *Aggregator) scanSpec(spec string) (model.Counts, error) {
	src, err := a.resolver.Open(spec)
	if err != nil {
		return model.Counts{}, err
	}
	counts, err := a.scan(src)
	if err != nil {
		return model.Counts{}, input.NewReadError(spec, err)
	}
	return counts, nil
}

func (a *Aggregator) scan(src *input.Source) (model.Counts, error) {
	defer func() {
		if cerr := src.Close(); cerr != nil {
			a.opts.Logger.Debug("close failed", "input", src.Label, "err", cerr)
		}
	}()
	counts, err := counter.Scan(src.Reader, counter.Options{
		Size:     src.Size,
		HasSize:  src.HasSize,
		Encoding: a.opts.Encoding,
	})
	if err != nil {
		return model.Counts{}, err
	}
	a.opts.Logger.Debug("scanned input",
		"input", src.Label,
		"lines", counts.Lines,
		"words", counts.Words,
		"bytes", counts.Bytes,
		"chars", counts.Chars,
		"max_line_length", counts.MaxLineLength,
	)
	return counts, nil
}

func (a *Aggregator) diagnose(err error) {
	var line string
	if a.opts.Name != "" {
		line = fmt.Sprintf("%s: %v\n", a.opts.Name, err)
	} else {
		line = fmt.Sprintf("%v\n", err)
	}
	if _, werr := io.WriteString(a.opts.Diagnostics, line); werr != nil {
		// Best-effort diagnostics.
		_ = werr
	}
}
