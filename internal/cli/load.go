package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/litcol/internal/constfile"
)

// LoadOptions holds flags for the load command.
type LoadOptions struct {
	*RootOptions
	NFC bool
}

// BindingResult is one loaded constant.
type BindingResult struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value"`
	Expr  string `json:"expr"`
}

// LoadResult lists the constants of one file.
type LoadResult struct {
	Path     string          `json:"path"`
	Format   string          `json:"format"`
	Bindings []BindingResult `json:"bindings"`
}

// NewLoadCommand creates the load command.
func NewLoadCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LoadOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "load <file>",
		Short: "Load named constants from a YAML or CUE file",
		Long: `Load the constants declared in a .yaml, .yml or .cue file and print
each one as a literal expression with its logical type.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.NFC, "nfc", false, "normalize text values to Unicode NFC")

	return cmd
}

func runLoad(opts *LoadOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	file, err := loadConstants(path, opts.NFC, formatter)
	if err != nil {
		return err
	}

	result := LoadResult{
		Path:     file.Path,
		Format:   string(file.Format),
		Bindings: make([]BindingResult, 0, len(file.Bindings)),
	}
	for _, b := range file.Bindings {
		v := b.Value()
		result.Bindings = append(result.Bindings, BindingResult{
			Name:  b.Name,
			Type:  v.DataType().String(),
			Value: v.String(),
			Expr:  b.Expr.String(),
		})
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	writeLoadText(formatter.Writer, result)
	return nil
}

// loadConstants loads path and reports failures through formatter. A
// missing file is a command error; anything wrong inside the file is a
// failure carrying the constfile code.
func loadConstants(path string, nfc bool, formatter *OutputFormatter) (*constfile.File, error) {
	formatter.VerboseLog("Loading constants from %s", path)

	file, err := constfile.Load(path, constfile.Options{NormalizeNFC: nfc})
	if err == nil {
		formatter.VerboseLog("Loaded %d constant(s)", len(file.Bindings))
		return file, nil
	}

	var loadErr *constfile.LoadError
	if !errors.As(err, &loadErr) {
		return nil, formatter.Fail(ExitFailure, ErrCodeGeneric, "load constants", err)
	}
	exitCode := ExitFailure
	if errors.Is(err, os.ErrNotExist) || loadErr.Code == constfile.ErrCodeFormat {
		exitCode = ExitCommandError
	}
	_ = formatter.Error(loadErr.Code, loadErr.Error(), nil)
	return nil, WrapExitError(exitCode, loadErr.Code, err)
}

func writeLoadText(w io.Writer, r LoadResult) {
	fmt.Fprintf(w, "%s (%s): %d constant(s)\n", r.Path, r.Format, len(r.Bindings))
	for _, b := range r.Bindings {
		fmt.Fprintf(w, "  %s: %s = %s\n", b.Name, b.Type, b.Expr)
	}
}
