package report

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"golang.org/x/term"

	"github.com/verte-zerg/gowc/internal/model"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))

var historyHeaders = []string{"Run", "When", "Inputs", "Failed", "Lines", "Words", "Bytes", "Chars", "Max", "Dir"}

// HistoryLines renders recorded runs as an aligned table.
func HistoryLines(runs []model.Run) []string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			strconv.FormatInt(run.ID, 10),
			humanize.Time(run.StartedAt),
			strconv.Itoa(len(run.Rows)),
			strconv.Itoa(run.Failures),
			comma(run.Total.Lines),
			comma(run.Total.Words),
			comma(run.Total.Bytes),
			comma(run.Total.Chars),
			comma(run.Total.MaxLineLength),
			run.Dir,
		})
	}
	rightAlign := map[int]bool{0: true, 2: true, 3: true, 4: true, 5: true, 6: true, 7: true, 8: true}
	return FormatTable(historyHeaders, rows, rightAlign)
}

// WriteHistory prints the history table to w. The header is styled when w
// is a terminal.
func WriteHistory(w io.Writer, runs []model.Run) error {
	if len(runs) == 0 {
		if _, err := fmt.Fprintln(w, "No recorded runs. Record one with: gowc --record FILE..."); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	lines := HistoryLines(runs)
	styled := isTerminal(w)
	for i, line := range lines {
		if i == 0 && styled {
			line = headerStyle.Render(line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func comma(v uint64) string {
	return humanize.Comma(toInt64(v))
}

func toInt64(v uint64) int64 {
	if v > 1<<63-1 {
		return 1<<63 - 1
	}
	return int64(v)
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
