package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	personTriple = `{"@type":"Triple","object":{"@type":"Value","node":"@schema:Person"},` +
		`"predicate":{"@type":"NodeValue","node":"rdf:type"},"subject":{"@type":"NodeValue","variable":"X"}}`
	addTriple = `{"@type":"AddTriple","object":{"@type":"Value","node":"@schema:Person"},` +
		`"predicate":{"@type":"NodeValue","node":"rdf:type"},"subject":{"@type":"NodeValue","node":"Person/jane"}}`
	negativeLimit = `{"@type":"Limit","limit":-1,"query":{"@type":"True"}}`
)

// cliEnv isolates a test from the user's config and catalog.
type cliEnv struct {
	t      *testing.T
	dir    string
	config string
}

func newCLIEnv(t *testing.T, extraConfig string) *cliEnv {
	t.Helper()
	dir := t.TempDir()
	cfg := filepath.Join(dir, "woql.yaml")
	content := "catalog: " + filepath.Join(dir, "woql.db") + "\n" + extraConfig
	require.NoError(t, os.WriteFile(cfg, []byte(content), 0o644))
	return &cliEnv{t: t, dir: dir, config: cfg}
}

// writeDoc writes a document into the env directory and returns its path.
func (e *cliEnv) writeDoc(name, content string) string {
	e.t.Helper()
	p := filepath.Join(e.dir, name)
	require.NoError(e.t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

// run executes the CLI with stdin and returns stdout and the command error.
func (e *cliEnv) run(stdin string, args ...string) (string, error) {
	e.t.Helper()
	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", e.config}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func decodeResponse(t *testing.T, out string) CLIResponse {
	t.Helper()
	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp), "output: %s", out)
	return resp
}

func TestFmtCommand(t *testing.T) {
	env := newCLIEnv(t, "")

	out, err := env.run(`{"@type":"And","and":[{"@type":"True"}]}`, "fmt", "-")
	require.NoError(t, err)
	assert.Equal(t, `{"@type":"True"}`+"\n", out)
}

func TestFmtCommand_FromFile(t *testing.T) {
	env := newCLIEnv(t, "")
	doc := env.writeDoc("q.json", personTriple)

	out, err := env.run("", "fmt", doc)
	require.NoError(t, err)
	assert.Equal(t, personTriple+"\n", out)
}

func TestFmtCommand_MissingFile(t *testing.T) {
	env := newCLIEnv(t, "")

	out, err := env.run("", "fmt", filepath.Join(env.dir, "missing.json"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "E002")
}

func TestFmtCommand_InvalidJSON(t *testing.T) {
	env := newCLIEnv(t, "")

	out, err := env.run(`{`, "fmt", "-")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "E003")
}

func TestFmtCommand_StrictRejectsSchemaIssues(t *testing.T) {
	env := newCLIEnv(t, "strict: true\n")

	out, err := env.run(negativeLimit, "fmt", "-")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "E004")
}

func TestPrintCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"default js", nil, `WOQL.triple("v:X", "rdf:type", "@schema:Person")`},
		{"python flag", []string{"--dialect", "python"}, `WOQLQuery().triple("v:X", "rdf:type", "@schema:Person")`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newCLIEnv(t, "")
			args := append([]string{"print", "-"}, tt.args...)

			out, err := env.run(personTriple, args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", out)
		})
	}
}

func TestPrintCommand_ConfigDialect(t *testing.T) {
	env := newCLIEnv(t, "dialect: python\n")

	out, err := env.run(personTriple, "print", "-")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "WOQLQuery()."), out)

	// The flag wins over config.
	out, err = env.run(personTriple, "print", "-", "--dialect", "js")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "WOQL."), out)
}

func TestPrintCommand_JSONFormat(t *testing.T) {
	env := newCLIEnv(t, "")

	out, err := env.run(personTriple, "--format", "json", "print", "-")
	require.NoError(t, err)

	resp := decodeResponse(t, out)
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.TraceID)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "js", data["dialect"])
	assert.Equal(t, `WOQL.triple("v:X", "rdf:type", "@schema:Person")`, data["source"])
}

func TestPrintCommand_UnknownDialect(t *testing.T) {
	env := newCLIEnv(t, "")

	_, err := env.run(personTriple, "print", "-", "--dialect", "ruby")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown dialect")
}

func TestCheckCommand(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"read only", personTriple, "read-only"},
		{"writes data", addTriple, "commit message required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newCLIEnv(t, "")

			out, err := env.run(tt.doc, "check", "-")
			require.NoError(t, err)
			assert.Contains(t, out, "Document valid")
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestCheckCommand_JSONFormat(t *testing.T) {
	env := newCLIEnv(t, "")

	out, err := env.run(addTriple, "--format", "json", "check", "-")
	require.NoError(t, err)

	resp := decodeResponse(t, out)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, data["valid"])
	assert.Equal(t, true, data["contains_update"])
}

func TestCheckCommand_Invalid(t *testing.T) {
	env := newCLIEnv(t, "")

	out, err := env.run(negativeLimit, "--format", "json", "check", "-")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	resp := decodeResponse(t, out)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeSchema, resp.Error.Code)

	details, ok := resp.Error.Details.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, false, details["valid"])
	assert.NotEmpty(t, details["issues"])
}

func TestCheckCommand_Malformed(t *testing.T) {
	env := newCLIEnv(t, "")

	out, err := env.run(`not json`, "check", "-")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "E003")
}

func TestPathCommand(t *testing.T) {
	env := newCLIEnv(t, "")

	out, err := env.run("", "path", "friend+")
	require.NoError(t, err)
	assert.Equal(t, `{"@type":"PathPlus","plus":{"@type":"PathPredicate","predicate":"friend"}}`+"\n", out)
}

func TestPathCommand_SyntaxError(t *testing.T) {
	env := newCLIEnv(t, "")

	out, err := env.run("", "--format", "json", "path", "(friend")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	resp := decodeResponse(t, out)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodePathSyntax, resp.Error.Code)
	details, ok := resp.Error.Details.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, details, "position")
}

func TestParseCommand(t *testing.T) {
	const source = `triple($X, "rdf:type", "@schema:Person")`

	t.Run("stdin", func(t *testing.T) {
		env := newCLIEnv(t, "")
		out, err := env.run(source, "parse", "-")
		require.NoError(t, err)
		assert.Equal(t, personTriple+"\n", out)
	})

	t.Run("file", func(t *testing.T) {
		env := newCLIEnv(t, "")
		doc := env.writeDoc("q.woql", "// people\n"+source+"\n")
		out, err := env.run("", "parse", doc)
		require.NoError(t, err)
		assert.Equal(t, personTriple+"\n", out)
	})

	t.Run("expr flag", func(t *testing.T) {
		env := newCLIEnv(t, "")
		out, err := env.run("", "parse", "-e", source)
		require.NoError(t, err)
		assert.Equal(t, personTriple+"\n", out)
	})
}

func TestParseCommand_ReadsPrintOutput(t *testing.T) {
	env := newCLIEnv(t, "")

	src, err := env.run(personTriple, "print", "-", "--dialect", "dsl")
	require.NoError(t, err)
	assert.Equal(t, `triple($X, "rdf:type", "@schema:Person")`+"\n", src)

	out, err := env.run(src, "parse", "-")
	require.NoError(t, err)
	assert.Equal(t, personTriple+"\n", out)
}

func TestParseCommand_SyntaxError(t *testing.T) {
	env := newCLIEnv(t, "")

	out, err := env.run("and(\n  bogus()\n)", "--format", "json", "parse", "-")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	resp := decodeResponse(t, out)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeDSLSyntax, resp.Error.Code)
	details, ok := resp.Error.Details.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(2), details["line"])
	assert.Equal(t, float64(3), details["column"])
}

func TestParseCommand_BuildError(t *testing.T) {
	env := newCLIEnv(t, "")

	out, err := env.run("", "--format", "json", "parse", "-e", "limit(-1, true())")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	resp := decodeResponse(t, out)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeBuild, resp.Error.Code)
}

func TestParseCommand_NeedsOneSource(t *testing.T) {
	env := newCLIEnv(t, "")

	_, err := env.run("", "parse")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, err = env.run("", "parse", "-", "-e", "true()")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestLibraryCommands(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		prefix string
	}{
		{"branches json", []string{"library", "branches"}, `{"@type":"Using","collection":"_commits"`},
		{"branches printed", []string{"library", "branches", "--print"}, `WOQL.using("_commits",`},
		{"commits", []string{"library", "commits", "--limit", "5"}, `{"@type":"Using","collection":"_commits"`},
		{"previous commits python", []string{"library", "previous-commits", "abc", "-p", "--dialect", "python"}, `WOQLQuery().using("_commits",`},
		{"first commit", []string{"library", "first-commit", "--branch", "dev"}, `{"@type":"Using"`},
		{"commit", []string{"library", "commit", "abc"}, `{"@type":"Using"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newCLIEnv(t, "")

			out, err := env.run("", tt.args...)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(out, tt.prefix), "got %s", out)
		})
	}
}

func TestLibraryCommits_BadBefore(t *testing.T) {
	env := newCLIEnv(t, "")

	out, err := env.run("", "library", "commits", "--before", "yesterday")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, ErrCodeInvalidOptions)
}

func TestCatalogCommands(t *testing.T) {
	env := newCLIEnv(t, "")
	doc := env.writeDoc("q.json", personTriple)

	out, err := env.run("", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "no saved queries")

	out, err = env.run("", "save", "People", doc, "--param", "X")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved people")
	assert.Contains(t, out, "(revision 1)")

	// Same content keeps the revision.
	out, err = env.run("", "save", "people", doc, "--param", "X")
	require.NoError(t, err)
	assert.Contains(t, out, "(revision 1)")

	out, err = env.run(addTriple, "save", "people", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "(revision 2)")

	out, err = env.run("", "show", "people")
	require.NoError(t, err)
	assert.Equal(t, addTriple+"\n", out)

	out, err = env.run("", "show", "people", "-p")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "WOQL.add_triple("), out)

	out, err = env.run("", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "people\trev 2\t")

	out, err = env.run("", "rm", "people")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted people")

	out, err = env.run("", "show", "people")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, ErrCodeNotFound)
}

func TestCatalogCommands_JSONFormat(t *testing.T) {
	env := newCLIEnv(t, "")

	out, err := env.run(personTriple, "--format", "json", "save", "people", "-")
	require.NoError(t, err)
	resp := decodeResponse(t, out)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "people", data["name"])
	assert.EqualValues(t, 1, data["revision"])
	assert.NotEmpty(t, data["content_id"])

	out, err = env.run("", "--format", "json", "list")
	require.NoError(t, err)
	resp = decodeResponse(t, out)
	entries, ok := resp.Data.([]any)
	require.True(t, ok)
	assert.Len(t, entries, 1)

	out, err = env.run("", "--format", "json", "rm", "people")
	require.NoError(t, err)
	resp = decodeResponse(t, out)
	assert.Equal(t, map[string]any{"deleted": "people"}, resp.Data)
}

func TestCatalogCommands_CatalogFlagOverridesConfig(t *testing.T) {
	env := newCLIEnv(t, "")
	other := filepath.Join(t.TempDir(), "other.db")

	_, err := env.run(personTriple, "--catalog", other, "save", "people", "-")
	require.NoError(t, err)

	out, err := env.run("", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "no saved queries")

	out, err = env.run("", "--catalog", other, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "people")
	assert.FileExists(t, other)
}

func TestCatalogCommands_InvalidName(t *testing.T) {
	env := newCLIEnv(t, "")

	out, err := env.run(personTriple, "save", "!!!", "-")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, ErrCodeInvalidOptions)
}

func TestInvalidFormat(t *testing.T) {
	env := newCLIEnv(t, "")

	out, err := env.run("", "--format", "yaml", "list")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, ErrCodeInvalidOptions)
}

func TestInvalidConfig(t *testing.T) {
	env := newCLIEnv(t, "dialect: cobol\n")

	out, err := env.run("", "list")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, ErrCodeInvalidOptions)
}
