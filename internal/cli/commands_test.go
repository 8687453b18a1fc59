package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/litcol/internal/store"
)

var constantsFile = filepath.Join("testdata", "constants.yaml")

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

// execute runs cmd with args and returns stdout, stderr and the error.
func execute(cmd *cobra.Command, args ...string) (string, string, error) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func runRoot(args ...string) (string, string, error) {
	return execute(NewRootCommand(), args...)
}

func decodeData(t *testing.T, out string, v any) {
	t.Helper()
	var resp struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	require.Equal(t, "ok", resp.Status)
	require.NoError(t, json.Unmarshal(resp.Data, v))
}

func TestLit_Golden(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"lit_int64", []string{"lit", "7"}},
		{"lit_null", []string{"lit", "--null"}},
		{"lit_uint32_json", []string{"--format", "json", "lit", "--type", "uint32", "10"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := runRoot(tt.args...)
			require.NoError(t, err)
			newGoldie(t).Assert(t, tt.name, []byte(out))
		})
	}
}

func TestLit_InfersVariant(t *testing.T) {
	tests := []struct {
		text     string
		wantType string
		wantCol  string
	}{
		{"true", "Boolean", "lit (Boolean, len=1): [true]"},
		{"hi", "Utf8", `lit (Utf8, len=1): ["hi"]`},
		{"18446744073709551615", "UInt64", "lit (UInt64, len=1): [18446744073709551615]"},
		{"0.5", "Float64", "lit (Float64, len=1): [0.5]"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			out, _, err := runRoot("--format", "json", "lit", tt.text)
			require.NoError(t, err)

			var result LitResult
			decodeData(t, out, &result)
			assert.Equal(t, tt.wantType, result.Type)
			assert.Equal(t, tt.wantCol, result.Column)
			assert.Equal(t, tt.text, result.Value)
		})
	}
}

func TestLit_Tree(t *testing.T) {
	out, _, err := runRoot("lit", "--tree", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "tree:\n")
	assert.Contains(t, out, "Literal Int64: 7")
}

func TestLit_BinaryUnsupported(t *testing.T) {
	out, _, err := runRoot("lit", "--type", "binary", "0x0102")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t,
		"Error [E004]: cannot materialize literal: materialization not supported: Binary literal of 2 bytes\n",
		out)
}

func TestLit_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantExit int
		wantCode string
	}{
		{"no value", []string{"lit"}, ExitCommandError, ErrCodeInvalidArgs},
		{"null with value", []string{"lit", "--null", "7"}, ExitCommandError, ErrCodeInvalidArgs},
		{"null with type", []string{"lit", "--null", "--type", "int32"}, ExitCommandError, ErrCodeInvalidArgs},
		{"unknown type", []string{"lit", "--type", "decimal", "1"}, ExitCommandError, ErrCodeInvalidArgs},
		{"out of range", []string{"lit", "--type", "int32", "99999999999"}, ExitFailure, ErrCodeInvalidLit},
		{"not a bool", []string{"lit", "--type", "boolean", "yes"}, ExitFailure, ErrCodeInvalidLit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := runRoot(tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.wantExit, GetExitCode(err))
			assert.Contains(t, out, "Error ["+tt.wantCode+"]")
		})
	}
}

func TestLoad_Golden(t *testing.T) {
	out, _, err := runRoot("load", constantsFile)
	require.NoError(t, err)
	newGoldie(t).Assert(t, "load_text", []byte(out))
}

func TestLoad_JSON(t *testing.T) {
	out, _, err := runRoot("--format", "json", "load", constantsFile)
	require.NoError(t, err)

	var result LoadResult
	decodeData(t, out, &result)
	assert.Equal(t, "yaml", result.Format)
	require.Len(t, result.Bindings, 3)
	assert.Equal(t, BindingResult{Name: "limit", Type: "UInt32", Value: "10", Expr: "lit(10)"}, result.Bindings[0])
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	out, _, err := runRoot("load", filepath.Join(dir, "absent.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E101]")

	out, _, err = runRoot("load", filepath.Join(dir, "c.toml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E105]")

	dup := writeTemp(t, "dup.yaml", "constants:\n  - name: a\n    value: 1\n  - name: a\n    value: 2\n")
	out, _, err = runRoot("load", dup)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [E103]")
	assert.Contains(t, out, `duplicate constant "a"`)
}

func TestMaterializeAndShow_Golden(t *testing.T) {
	db := filepath.Join(t.TempDir(), "lit.db")

	out, _, err := runRoot("materialize", constantsFile, "--db", db, "--run", "run-1")
	require.NoError(t, err)
	newGoldie(t).Assert(t, "materialize_text", []byte(out))

	out, _, err = runRoot("show", "--db", db, "--run", "run-1")
	require.NoError(t, err)
	newGoldie(t).Assert(t, "show_run", []byte(out))

	out, _, err = runRoot("show", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "run-1  3 column(s)\n", out)
}

func TestMaterialize_GeneratesRunID(t *testing.T) {
	db := filepath.Join(t.TempDir(), "lit.db")
	cmd := newMaterializeCommand(&RootOptions{Format: "json"}, store.NewFixedGenerator("run-fixed"))

	out, _, err := execute(cmd, constantsFile, "--db", db)
	require.NoError(t, err)

	var result MaterializeResult
	decodeData(t, out, &result)
	assert.Equal(t, "run-fixed", result.RunID)
	assert.Len(t, result.Columns, 3)
	assert.Empty(t, result.Skipped)
}

func TestMaterialize_SkipsBinary(t *testing.T) {
	db := filepath.Join(t.TempDir(), "lit.db")

	out, _, err := runRoot("materialize", filepath.Join("testdata", "with_binary.yaml"), "--db", db, "--run", "run-1")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeUnsupported)
	assert.Contains(t, out, "  limit: lit (Int64, len=1): [10]\n")
	assert.Contains(t, out, "  skipped payload: ")
	assert.Contains(t, out, "materialization not supported: Binary literal of 2 bytes")

	// The materializable column is still recorded.
	out, _, err = runRoot("--format", "json", "show", "--db", db, "--run", "run-1")
	require.NoError(t, err)
	var recs []RecordResult
	decodeData(t, out, &recs)
	require.Len(t, recs, 1)
	assert.Equal(t, "limit", recs[0].Name)
}

func TestMaterialize_RerunSameRun(t *testing.T) {
	db := filepath.Join(t.TempDir(), "lit.db")

	_, _, err := runRoot("materialize", constantsFile, "--db", db, "--run", "run-1")
	require.NoError(t, err)

	// Identical constants under the same run are accepted.
	_, _, err = runRoot("materialize", constantsFile, "--db", db, "--run", "run-1")
	require.NoError(t, err)

	changed := writeTemp(t, "changed.yaml", `constants:
  - name: limit
    type: uint32
    value: 20
`)
	out, _, err := runRoot("materialize", changed, "--db", db, "--run", "run-1")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeConflict)
	assert.Contains(t, out, "Error [E007]")
	assert.NotContains(t, out, "limit: lit (UInt32, len=1): [10]")

	// The recorded value is untouched.
	out, _, err = runRoot("--format", "json", "show", "--db", db, "--run", "run-1")
	require.NoError(t, err)
	var recs []RecordResult
	decodeData(t, out, &recs)
	require.Len(t, recs, 3)
	assert.Equal(t, "limit", recs[0].Name)
	assert.Equal(t, "10", recs[0].Value)
}

func TestMaterialize_RequiresDB(t *testing.T) {
	out, _, err := runRoot("materialize", constantsFile)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "--db is required")
}

func TestShow_Fingerprint(t *testing.T) {
	db := filepath.Join(t.TempDir(), "lit.db")
	_, _, err := runRoot("materialize", constantsFile, "--db", db, "--run", "run-a")
	require.NoError(t, err)
	_, _, err = runRoot("materialize", constantsFile, "--db", db, "--run", "run-b")
	require.NoError(t, err)

	// Fingerprint of UInt32(10).
	out, _, err := runRoot("show", "--db", db, "--fingerprint",
		"9b6e505c390530b88da4acfcaab2133141da3fef3fe29e8bf80606bd422e340e")
	require.NoError(t, err)
	assert.Equal(t, "run-a #1 limit: UInt32 = 10\nrun-b #1 limit: UInt32 = 10\n", out)
}

func TestShow_Errors(t *testing.T) {
	dir := t.TempDir()

	out, _, err := runRoot("show", "--db", filepath.Join(dir, "absent.db"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E005]")

	db := filepath.Join(dir, "lit.db")
	_, _, err = runRoot("materialize", constantsFile, "--db", db, "--run", "run-1")
	require.NoError(t, err)

	out, _, err = runRoot("show", "--db", db, "--run", "missing")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "run not found: missing")

	_, _, err = runRoot("show", "--db", db, "--run", "run-1", "--fingerprint", "x")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestShow_Empty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "lit.db")
	st, err := store.Open(db)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	out, _, err := runRoot("show", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "no runs recorded\n", out)
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
