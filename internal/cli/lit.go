package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/litcol/internal/datatype"
	"github.com/roach88/litcol/internal/dsl"
)

// LitOptions holds flags for the lit command.
type LitOptions struct {
	*RootOptions
	Type string
	Null bool
	Tree bool
}

// LitResult describes a literal and its materialized column.
type LitResult struct {
	Expr        string          `json:"expr"`
	Value       string          `json:"value"`
	Type        string          `json:"type"`
	Column      string          `json:"column"`
	Fingerprint string          `json:"fingerprint,omitempty"`
	Literal     json.RawMessage `json:"literal,omitempty"`
	Tree        string          `json:"tree,omitempty"`
}

// NewLitCommand creates the lit command.
func NewLitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LitOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "lit [value]",
		Short: "Build a literal and materialize it as a column",
		Long: `Build a literal from command-line text and show its value, logical
type and one-row column.

Without --type the variant is inferred: null, true/false, integers (Int64,
or UInt64 above the Int64 range), decimals (Float64), anything else Utf8.
With --type the text is parsed as that type; binary takes hex digits.`,
		Example: `  litcol lit 7
  litcol lit --type uint32 10
  litcol lit --null`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLit(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Type, "type", "t", "", "parse the value as this type (e.g. int32, utf8, binary)")
	cmd.Flags().BoolVar(&opts.Null, "null", false, "build the null literal")
	cmd.Flags().BoolVar(&opts.Tree, "tree", false, "include the expression tree")

	return cmd
}

func runLit(opts *LitOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	v, err := buildLiteral(opts, args, formatter)
	if err != nil {
		return err
	}
	expr := v.Lit()
	formatter.VerboseLog("Built %s", expr)

	col, err := v.ToSeries()
	if errors.Is(err, dsl.ErrUnsupportedMaterialization) {
		return formatter.Fail(ExitFailure, ErrCodeUnsupported, "cannot materialize literal", err)
	}
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeGeneric, "materialize literal", err)
	}

	result := LitResult{
		Expr:   expr.String(),
		Value:  v.String(),
		Type:   v.DataType().String(),
		Column: col.String(),
	}
	// Non-finite floats have no JSON form; they are still valid literals.
	if data, err := dsl.MarshalLiteral(v); err == nil {
		result.Literal = data
		result.Fingerprint, _ = dsl.Fingerprint(v)
	} else {
		formatter.VerboseLog("No fingerprint: %v", err)
	}
	if opts.Tree {
		result.Tree = dsl.Tree(expr)
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	writeLitText(formatter.Writer, result)
	return nil
}

func buildLiteral(opts *LitOptions, args []string, formatter *OutputFormatter) (dsl.LiteralValue, error) {
	if opts.Null {
		if len(args) > 0 || opts.Type != "" {
			return nil, formatter.Fail(ExitCommandError, ErrCodeInvalidArgs, "--null takes no value or type", nil)
		}
		return dsl.Null{}, nil
	}
	if len(args) == 0 {
		return nil, formatter.Fail(ExitCommandError, ErrCodeInvalidArgs, "a value is required unless --null is set", nil)
	}

	text := args[0]
	if opts.Type == "" {
		return dsl.Infer(text), nil
	}

	dt, err := datatype.Parse(opts.Type)
	if err != nil {
		return nil, formatter.Fail(ExitCommandError, ErrCodeInvalidArgs, "bad --type", err)
	}
	v, err := dsl.Parse(dt, text)
	if err != nil {
		return nil, formatter.Fail(ExitFailure, ErrCodeInvalidLit, "cannot build literal", err)
	}
	return v, nil
}

func writeLitText(w io.Writer, r LitResult) {
	fmt.Fprintf(w, "expr:        %s\n", r.Expr)
	fmt.Fprintf(w, "value:       %s\n", r.Value)
	fmt.Fprintf(w, "type:        %s\n", r.Type)
	fmt.Fprintf(w, "column:      %s\n", r.Column)
	if r.Fingerprint != "" {
		fmt.Fprintf(w, "fingerprint: %s\n", r.Fingerprint)
	}
	if r.Tree != "" {
		fmt.Fprintf(w, "tree:\n%s", r.Tree)
	}
}
