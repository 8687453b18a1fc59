package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/litcol/internal/store"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	DBPath      string
	RunID       string
	Fingerprint string
}

// RecordResult is one stored column as shown to the user.
type RecordResult struct {
	RunID       string `json:"run_id"`
	Seq         int64  `json:"seq"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Value       string `json:"value"`
	Fingerprint string `json:"fingerprint"`
}

// RunResult is one run in the run listing.
type RunResult struct {
	RunID   string `json:"run_id"`
	Columns int    `json:"columns"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show recorded runs and columns",
		Long: `Show what materialize recorded. Without flags every run is listed with
its column count. --run prints the columns of one run in write order;
--fingerprint finds every column holding an identical value.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd.Context(), opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "show the columns of this run")
	cmd.Flags().StringVar(&opts.Fingerprint, "fingerprint", "", "find columns with this value fingerprint")

	return cmd
}

func runShow(ctx context.Context, opts *ShowOptions, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := newFormatter(opts.RootOptions, cmd)

	if opts.DBPath == "" {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidArgs, "--db is required", nil)
	}
	if opts.RunID != "" && opts.Fingerprint != "" {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidArgs, "--run and --fingerprint are mutually exclusive", nil)
	}
	// show never creates a database.
	if _, err := os.Stat(opts.DBPath); errors.Is(err, os.ErrNotExist) {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("database not found: %s", opts.DBPath), nil)
	}

	st, err := store.Open(opts.DBPath)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, "open database", err)
	}
	defer st.Close()

	switch {
	case opts.RunID != "":
		recs, err := st.ReadRun(ctx, opts.RunID)
		if err != nil {
			return formatter.Fail(ExitFailure, ErrCodeStore, "read run", err)
		}
		if len(recs) == 0 {
			return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("run not found: %s", opts.RunID), nil)
		}
		return outputRecords(formatter, recs)

	case opts.Fingerprint != "":
		recs, err := st.FindByFingerprint(ctx, opts.Fingerprint)
		if err != nil {
			return formatter.Fail(ExitFailure, ErrCodeStore, "find fingerprint", err)
		}
		return outputRecords(formatter, recs)

	default:
		runs, err := st.ListRuns(ctx)
		if err != nil {
			return formatter.Fail(ExitFailure, ErrCodeStore, "list runs", err)
		}
		return outputRuns(formatter, runs)
	}
}

func outputRecords(formatter *OutputFormatter, recs []store.Record) error {
	results := make([]RecordResult, 0, len(recs))
	for _, r := range recs {
		results = append(results, RecordResult{
			RunID:       r.RunID,
			Seq:         r.Seq,
			Name:        r.Name,
			Type:        r.DataType.String(),
			Value:       r.Rendered,
			Fingerprint: r.Fingerprint,
		})
	}

	if formatter.Format == "json" {
		return formatter.Success(results)
	}
	writeRecordsText(formatter.Writer, results)
	return nil
}

func outputRuns(formatter *OutputFormatter, runs []store.RunSummary) error {
	results := make([]RunResult, 0, len(runs))
	for _, r := range runs {
		results = append(results, RunResult{RunID: r.RunID, Columns: r.Columns})
	}

	if formatter.Format == "json" {
		return formatter.Success(results)
	}
	if len(results) == 0 {
		fmt.Fprintln(formatter.Writer, "no runs recorded")
		return nil
	}
	for _, r := range results {
		fmt.Fprintf(formatter.Writer, "%s  %d column(s)\n", r.RunID, r.Columns)
	}
	return nil
}

func writeRecordsText(w io.Writer, recs []RecordResult) {
	for _, r := range recs {
		fmt.Fprintf(w, "%s #%d %s: %s = %s\n", r.RunID, r.Seq, r.Name, r.Type, r.Value)
	}
}
