package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/litcol/internal/dsl"
	"github.com/roach88/litcol/internal/store"
)

// MaterializeOptions holds flags for the materialize command.
type MaterializeOptions struct {
	*RootOptions
	DBPath string
	RunID  string
	NFC    bool
}

// ColumnResult is one column written during a run.
type ColumnResult struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Value  string `json:"value"`
	Column string `json:"column"`
}

// SkippedResult is a constant that could not be materialized.
type SkippedResult struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// MaterializeResult summarizes a materialize run.
type MaterializeResult struct {
	RunID   string          `json:"run_id"`
	Columns []ColumnResult  `json:"columns"`
	Skipped []SkippedResult `json:"skipped,omitempty"`
}

// NewMaterializeCommand creates the materialize command.
func NewMaterializeCommand(rootOpts *RootOptions) *cobra.Command {
	return newMaterializeCommand(rootOpts, store.UUIDv7Generator{})
}

func newMaterializeCommand(rootOpts *RootOptions, gen store.RunIDGenerator) *cobra.Command {
	opts := &MaterializeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "materialize <file>",
		Short: "Materialize every constant in a file and record the columns",
		Long: `Load the constants in a YAML or CUE file, materialize each one as a
single-row "lit" column and record the columns in a SQLite database under a
new run.

Constants that cannot be materialized (binary values) are reported and
skipped; the command then exits with status 1.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMaterialize(cmd.Context(), opts, gen, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "run ID to record under (default: new UUIDv7)")
	cmd.Flags().BoolVar(&opts.NFC, "nfc", false, "normalize text values to Unicode NFC")

	return cmd
}

func runMaterialize(ctx context.Context, opts *MaterializeOptions, gen store.RunIDGenerator, path string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := newFormatter(opts.RootOptions, cmd)

	if opts.DBPath == "" {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidArgs, "--db is required", nil)
	}

	file, err := loadConstants(path, opts.NFC, formatter)
	if err != nil {
		return err
	}

	st, err := store.Open(opts.DBPath)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, "open database", err)
	}
	defer st.Close()

	runID := opts.RunID
	if runID == "" {
		runID = gen.Generate()
	}
	formatter.VerboseLog("Run %s: %d constant(s)", runID, len(file.Bindings))

	result := MaterializeResult{RunID: runID, Columns: []ColumnResult{}}
	for _, b := range file.Bindings {
		v := b.Value()
		err := st.WriteColumn(ctx, runID, b.Name, v)
		if errors.Is(err, dsl.ErrUnsupportedMaterialization) {
			result.Skipped = append(result.Skipped, SkippedResult{Name: b.Name, Reason: err.Error()})
			continue
		}
		switch {
		case errors.Is(err, store.ErrColumnConflict):
			return formatter.Fail(ExitFailure, ErrCodeConflict, fmt.Sprintf("record %q", b.Name), err)
		case errors.Is(err, dsl.ErrInvalidLiteral):
			return formatter.Fail(ExitFailure, ErrCodeInvalidLit, fmt.Sprintf("record %q", b.Name), err)
		case err != nil:
			return formatter.Fail(ExitFailure, ErrCodeStore, fmt.Sprintf("record %q", b.Name), err)
		}

		rec, found, err := st.ReadColumn(ctx, runID, b.Name)
		if err != nil {
			return formatter.Fail(ExitFailure, ErrCodeStore, fmt.Sprintf("read back %q", b.Name), err)
		}
		if !found {
			return formatter.Fail(ExitFailure, ErrCodeStore, fmt.Sprintf("read back %q", b.Name),
				fmt.Errorf("column missing from run %s", runID))
		}
		col, err := rec.Series()
		if err != nil {
			return formatter.Fail(ExitFailure, ErrCodeGeneric, fmt.Sprintf("rebuild %q", b.Name), err)
		}
		result.Columns = append(result.Columns, ColumnResult{
			Name:   rec.Name,
			Type:   rec.DataType.String(),
			Value:  rec.Rendered,
			Column: col.String(),
		})
	}

	if formatter.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		writeMaterializeText(formatter.Writer, result)
	}

	if len(result.Skipped) > 0 {
		return NewExitError(ExitFailure,
			fmt.Sprintf("%s: %d constant(s) could not be materialized", ErrCodeUnsupported, len(result.Skipped)))
	}
	return nil
}

func writeMaterializeText(w io.Writer, r MaterializeResult) {
	fmt.Fprintf(w, "run %s: %d column(s)\n", r.RunID, len(r.Columns))
	for _, c := range r.Columns {
		fmt.Fprintf(w, "  %s: %s\n", c.Name, c.Column)
	}
	for _, s := range r.Skipped {
		fmt.Fprintf(w, "  skipped %s: %s\n", s.Name, s.Reason)
	}
}
