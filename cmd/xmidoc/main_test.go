package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "../../testdata/sample.xmi"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerate(t *testing.T) {
	out := t.TempDir()

	stdout, err := execute(t, "generate", "-i", sample, "-o", out, "--root", "A", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Generated 10 pages")

	assert.FileExists(t, filepath.Join(out, "a", "index.md"))
	assert.FileExists(t, filepath.Join(out, "a", "B", "C", "x.md"))
	assert.FileExists(t, filepath.Join(out, "a", "B", "Colour.md"))
	// The sample has no image directory; the diagram page is still written.
	assert.FileExists(t, filepath.Join(out, "overview_diagram.md"))
}

func TestGenerate_ConfigAndOverrides(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "docs")
	cfgPath := filepath.Join(dir, "xmidoc.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
input: `+sample+`
output: `+out+`
roots: [A]
options:
  lowercaseTopLevel: false
  exclude: [A/Legacy]
`), 0o644))

	_, err := execute(t, "generate", "-c", cfgPath, "--no-diagrams", "--log-level", "error")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(out, "A", "B", "C", "index.md"))
	assert.NoDirExists(t, filepath.Join(out, "A", "Legacy"))
	assert.NoFileExists(t, filepath.Join(out, "overview_diagram.md"))
}

func TestGenerate_Single(t *testing.T) {
	out := t.TempDir()

	_, err := execute(t, "generate", "-i", sample, "-o", out, "--root", "A", "--single", "--log-level", "error")
	require.NoError(t, err)

	doc, err := os.ReadFile(filepath.Join(out, singleFileName))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(doc), "# TSM model documentation"))
	assert.NoDirExists(t, filepath.Join(out, "a"))
}

func TestGenerate_Clean(t *testing.T) {
	out := filepath.Join(t.TempDir(), "docs")
	require.NoError(t, os.MkdirAll(filepath.Join(out, "stale"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(out, "stale", "index.md"), []byte("old"), 0o644))

	_, err := execute(t, "generate", "-i", sample, "-o", out, "--root", "A", "--clean", "--log-level", "error")
	require.NoError(t, err)

	assert.NoDirExists(t, filepath.Join(out, "stale"))
	assert.FileExists(t, filepath.Join(out, "a", "index.md"))

	backups, err := filepath.Glob(out + "_*")
	require.NoError(t, err)
	require.Len(t, backups, 1)
	data, err := os.ReadFile(filepath.Join(backups[0], "stale", "index.md"))
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
}

func TestBackupOutput(t *testing.T) {
	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	dir := t.TempDir()

	t.Run("missing directory", func(t *testing.T) {
		backup, err := backupOutput(filepath.Join(dir, "absent"), now)
		require.NoError(t, err)
		assert.Empty(t, backup)
	})

	t.Run("existing directory", func(t *testing.T) {
		out := filepath.Join(dir, "docs")
		require.NoError(t, os.MkdirAll(out, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(out, "index.md"), []byte("x"), 0o644))

		backup, err := backupOutput(out, now)
		require.NoError(t, err)
		assert.Equal(t, out+"_2024-05-06_07-08-09", backup)
		assert.FileExists(t, filepath.Join(backup, "index.md"))
		assert.NoDirExists(t, out)

		// A second run in the same second refuses to overwrite the backup.
		require.NoError(t, os.MkdirAll(out, 0o755))
		_, err = backupOutput(out, now)
		assert.ErrorContains(t, err, "already exists")
	})

	t.Run("output is a file", func(t *testing.T) {
		file := filepath.Join(dir, "file.md")
		require.NoError(t, os.WriteFile(file, nil, 0o644))
		_, err := backupOutput(file, now)
		assert.ErrorContains(t, err, "not a directory")
	})
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no input", []string{"generate", "-o", "x"}, "input file is required"},
		{"no output", []string{"generate", "-i", sample}, "output directory is required"},
		{"bad annotation", []string{"generate", "-i", sample, "-o", "x", "--annotation", "notes"}, "invalid configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, append(tt.args, "--log-level", "error")...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	t.Run("root not found", func(t *testing.T) {
		_, err := execute(t, "generate", "-i", sample, "-o", t.TempDir(), "--root", "Nope", "--log-level", "error")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "root-not-found")
	})
}

func TestIndex(t *testing.T) {
	stdout, err := execute(t, "index", "-i", sample, "--log-level", "error")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 11)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, stdout, `EAID_COLOUR`)
	assert.Contains(t, stdout, `"Colour"`)
	assert.NotContains(t, stdout, "EAID_STRING")
}

func TestInspect(t *testing.T) {
	stdout, err := execute(t, "inspect", "-i", sample, "--root", "A", "--log-level", "error")
	require.NoError(t, err)

	assert.Contains(t, stdout, "== A/B/C (class)")
	assert.Contains(t, stdout, "== A/B/Colour (enumeration)")
	assert.Equal(t, 10, strings.Count("\n"+stdout, "\n== "), "one header per record")
}

func TestVersion(t *testing.T) {
	stdout, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "xmidoc version "+Version+"\n", stdout)
}
