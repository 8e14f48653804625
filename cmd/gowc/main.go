// Package main provides the CLI entrypoint for gowc.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/gowc/internal/aggregate"
	"github.com/verte-zerg/gowc/internal/config"
	"github.com/verte-zerg/gowc/internal/counter"
	"github.com/verte-zerg/gowc/internal/input"
	"github.com/verte-zerg/gowc/internal/model"
	"github.com/verte-zerg/gowc/internal/report"
	"github.com/verte-zerg/gowc/internal/store"
)

const (
	appName        = "gowc"
	defaultWidth   = report.DefaultWidth
	defaultTotal   = string(model.TotalAuto)
	defaultHistory = 10
)

var (
	countLines     bool
	countWords     bool
	countBytes     bool
	countChars     bool
	countMaxLine   bool
	countTotal     string
	countWidth     int
	countEncoding  string
	countFiles0    string
	countRecord    bool
	countVerbose   bool
	configPath     string
	historyLimit   int
	editConfigFlag bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// Per-input failures were already reported one line each.
		if !errors.Is(err, aggregate.ErrInputFailed) {
			logErrf(os.Stderr, "%s: %v\n", appName, err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   appName + " [flags] [FILE]...",
		Short: "Print newline, word, and byte counts for each FILE",
		Long: `Print newline, word, and byte counts for each FILE, and a TOTAL line if
more than one FILE was counted. With no FILE, or when FILE is -, read
standard input. A word is a maximal run of non-whitespace characters.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runCountCmd,
	}

	flags := rootCmd.Flags()
	flags.BoolVarP(&countLines, "lines", "l", false, "print the newline counts")
	flags.BoolVarP(&countWords, "words", "w", false, "print the word counts")
	flags.BoolVarP(&countBytes, "bytes", "c", false, "print the byte counts")
	flags.BoolVarP(&countChars, "chars", "m", false, "print the character counts")
	flags.BoolVarP(&countMaxLine, "max-line-length", "L", false, "print the maximum line length in characters")
	flags.StringVar(&countTotal, "total", defaultTotal, "when to print a TOTAL line with FILE operands: auto, always, only, never")
	flags.IntVar(&countWidth, "width", defaultWidth, "minimum width of each count column")
	flags.StringVar(&countEncoding, "encoding", "", "decode input with this encoding (default utf-8)")
	flags.StringVar(&countFiles0, "files0-from", "", "read input file names from F, separated by NUL; - reads names from standard input")
	flags.BoolVar(&countRecord, "record", false, "store this run in the history database")
	flags.BoolVarP(&countVerbose, "verbose", "v", false, "log debug details to standard error")
	flags.StringVar(&configPath, "config", config.DefaultConfigPath(), "config file path")
	flags.IntVar(&historyLimit, "history", 0, "print the last N recorded runs and exit")
	flags.Lookup("history").NoOptDefVal = strconv.Itoa(defaultHistory)
	flags.BoolVar(&editConfigFlag, "edit-config", false, "create the config file if needed and open it in $EDITOR")

	return rootCmd
}

func runCountCmd(cmd *cobra.Command, args []string) error {
	if editConfigFlag {
		if len(args) > 0 {
			return fmt.Errorf("extra operand %q: --edit-config takes no file operands", args[0])
		}
		return runEditConfig(cmd)
	}
	if cmd.Flags().Changed("history") {
		if len(args) > 0 {
			return fmt.Errorf("extra operand %q: --history takes no file operands", args[0])
		}
		return runHistory(cmd)
	}

	fileCfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "width", &countWidth, fileCfg.Count.Width)
	applyStringConfig(cmd, "total", &countTotal, fileCfg.Count.Total)
	applyStringConfig(cmd, "encoding", &countEncoding, fileCfg.Count.Encoding)
	applyBoolConfig(cmd, "record", &countRecord, fileCfg.Count.Record)

	metrics, err := selectedMetrics(fileCfg.Count.Default)
	if err != nil {
		return err
	}
	totalMode, err := model.ParseTotalMode(countTotal)
	if err != nil {
		return fmt.Errorf("invalid --total value: %w", err)
	}
	if countWidth <= 0 {
		return fmt.Errorf("--width must be > 0")
	}
	enc, err := counter.LookupEncoding(countEncoding)
	if err != nil {
		return err
	}

	resolver := input.NewResolver(cmd.InOrStdin())
	specs := args
	if countFiles0 != "" {
		if len(args) > 0 {
			return fmt.Errorf("extra operand %q: file operands cannot be combined with --files0-from", args[0])
		}
		specs, err = resolver.LoadSpecifierFile(countFiles0)
		if err != nil {
			return fmt.Errorf("cannot read file names from %q: %w", countFiles0, err)
		}
		if len(specs) == 0 {
			// An empty list counts nothing, it does not fall back to stdin.
			return nil
		}
	}

	logger := newLogger(cmd.ErrOrStderr(), countVerbose)
	logger.Debug("counting", "inputs", len(specs), "metrics", metrics.String(), "total", string(totalMode))

	startedAt := time.Now()
	agg := aggregate.New(resolver, report.NewReporter(cmd.OutOrStdout(), metrics, countWidth), aggregate.Options{
		Name:        appName,
		Total:       totalMode,
		Encoding:    enc,
		Diagnostics: cmd.ErrOrStderr(),
		Logger:      logger,
	})
	summary, runErr := agg.Run(specs)
	if runErr != nil && !errors.Is(runErr, aggregate.ErrInputFailed) {
		return runErr
	}

	if countRecord {
		if err := recordRun(cmd.Context(), startedAt, metrics, summary); err != nil {
			logErrf(cmd.ErrOrStderr(), "%s: failed to record run: %v\n", appName, err)
		}
	}
	return runErr
}

// selectedMetrics applies flag selection, falling back to the config default
// and then to lines, words and bytes.
func selectedMetrics(configDefault []string) (model.MetricSet, error) {
	var metrics model.MetricSet
	if countLines {
		metrics |= model.MetricSet(model.MetricLines)
	}
	if countWords {
		metrics |= model.MetricSet(model.MetricWords)
	}
	if countBytes {
		metrics |= model.MetricSet(model.MetricBytes)
	}
	if countChars {
		metrics |= model.MetricSet(model.MetricChars)
	}
	if countMaxLine {
		metrics |= model.MetricSet(model.MetricMaxLineLength)
	}
	if !metrics.Empty() {
		return metrics, nil
	}
	if len(configDefault) > 0 {
		fromConfig, err := model.ParseMetricSet(strings.Join(configDefault, ","))
		if err != nil {
			return 0, fmt.Errorf("invalid default metrics in config: %w", err)
		}
		if !fromConfig.Empty() {
			return fromConfig, nil
		}
	}
	return model.DefaultMetrics, nil
}

func recordRun(ctx context.Context, startedAt time.Time, metrics model.MetricSet, summary aggregate.Summary) error {
	dir, err := os.Getwd()
	if err != nil {
		dir = "."
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf(os.Stderr, "failed to close db: %v\n", cerr)
		}
	}()
	_, err = st.InsertRun(ctx, model.Run{
		StartedAt: startedAt,
		Dir:       dir,
		Metrics:   metrics,
		Rows:      summary.Rows,
		Total:     summary.Total,
		Failures:  len(summary.Failures),
	})
	return err
}

func runHistory(cmd *cobra.Command) error {
	if historyLimit <= 0 {
		return fmt.Errorf("--history must be > 0")
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf(cmd.ErrOrStderr(), "failed to close db: %v\n", cerr)
		}
	}()
	runs, err := st.ListRuns(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	return report.WriteHistory(cmd.OutOrStdout(), runs)
}

func runEditConfig(cmd *cobra.Command) error {
	path := configPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	editCmd := exec.Command(parts[0], append(parts[1:], path)...)
	editCmd.Stdin = cmd.InOrStdin()
	editCmd.Stdout = cmd.OutOrStdout()
	editCmd.Stderr = cmd.ErrOrStderr()
	if err := editCmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# %s configuration
# Uncomment a value to enable it. CLI flags override config values.

[count]
# default = ["lines", "words", "bytes"]  # Metrics printed when no metric flag is given
#                                        # (lines, words, bytes, chars, max-line-length)
# width = %d                             # Minimum width of each count column
# total = %q                         # When to print TOTAL: auto, always, only, never
# encoding = "utf-8"                     # Input encoding (WHATWG/IANA name)
# record = false                         # Store every run in the history database
`,
		appName,
		defaultWidth,
		defaultTotal,
	)
}

func logErrf(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
