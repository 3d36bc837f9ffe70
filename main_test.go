// main_test.go
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const poem = "Rust:\nsafe, fast, productive.\nPick three.\nDuct tape.\n"

// inTempDir runs the test from an empty directory so no stray
// .minigrep.yaml or .env is picked up.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func write(t *testing.T, rel, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(rel), 0o755))
	require.NoError(t, os.WriteFile(rel, []byte(content), 0o644))
}

func run(args ...string) (int, string, string) {
	if args == nil {
		// cobra falls back to os.Args for a nil slice.
		args = []string{}
	}
	var stdout, stderr bytes.Buffer
	code := execute(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestExecuteSearch(t *testing.T) {
	inTempDir(t)
	write(t, "poem.txt", poem)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"literal", []string{"-p", "duct", "-f", "poem.txt"}, "safe, fast, productive.\n"},
		{"insensitive", []string{"-i", "-p", "duct", "-f", "poem.txt"}, "safe, fast, productive.\nDuct tape.\n"},
		{"line numbers", []string{"--pattern", "Pick", "--file", "poem.txt", "-n"}, "3: Pick three.\n"},
		{"regex", []string{"-e", "-p", "e{2}", "-f", "poem.txt"}, "Pick three.\n"},
		{"substitute", []string{"-e", "-p", `(\w+) tape`, "-s", "$1 tap", "-f", "poem.txt"}, "Duct tap.\n"},
		{"window", []string{"-i", "-p", "t", "-a", "2", "-z", "3", "-n", "-f", "poem.txt"}, "2: safe, fast, productive.\n3: Pick three.\n"},
		{"empty window", []string{"-p", "t", "-a", "3", "-z", "2", "-f", "poem.txt"}, ""},
		{"no matches", []string{"-p", "absent", "-f", "poem.txt"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := run(tt.args...)
			assert.Equal(t, exitOK, code, stderr)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestExecuteUsageErrors(t *testing.T) {
	inTempDir(t)
	write(t, "poem.txt", poem)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing pattern", []string{"-f", "poem.txt"}, "pattern: is required"},
		{"missing file", []string{"-p", "x"}, "file: is required"},
		{"unknown flag", []string{"-p", "x", "-f", "poem.txt", "--shout"}, "unknown flag: --shout"},
		{"positional argument", []string{"-p", "x", "-f", "poem.txt", "extra"}, "unknown command"},
		{"negative window", []string{"-p", "x", "-f", "poem.txt", "-a", "-1"}, "from: must not be negative"},
		{"bad color", []string{"-p", "x", "-f", "poem.txt", "--color", "rainbow"}, "color: invalid value"},
		{"missing config", []string{"-p", "x", "-f", "poem.txt", "--config", "nope.yaml"}, "failed to read config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := run(tt.args...)
			assert.Equal(t, exitUsage, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, tt.wantErr)
			assert.Contains(t, stderr, "Usage:")
		})
	}
}

func TestExecuteFatalErrors(t *testing.T) {
	inTempDir(t)
	write(t, "poem.txt", poem)

	code, _, stderr := run("-e", "-p", "(", "-f", "poem.txt")
	assert.Equal(t, exitFatal, code)
	assert.Contains(t, stderr, "invalid pattern")
	assert.NotContains(t, stderr, "Usage:")

	code, _, stderr = run("-p", "x", "-f", "missing.txt")
	assert.Equal(t, exitFatal, code)
	assert.Contains(t, stderr, "open missing.txt")

	// The pattern is compiled even when it is searched literally.
	code, _, _ = run("-p", "(", "-f", "poem.txt")
	assert.Equal(t, exitFatal, code)
}

func TestExecuteRecursive(t *testing.T) {
	inTempDir(t)
	write(t, "notes.txt", "todo: top\n")
	write(t, "a/notes.txt", "nothing\ntodo: a\n")
	write(t, "a/b/notes.txt", "todo: b\n")
	write(t, "vendor/notes.txt", "todo: vendored\n")
	write(t, "build/notes.txt", "todo: generated\n")
	write(t, ".gitignore", "build/\n")
	write(t, "other.txt", "todo: other\n")

	code, stdout, stderr := run("-r", "-n", "-j", "2", "-p", "todo", "-f", "notes.txt",
		"--gitignore", "--exclude-dir", "vendor")
	require.Equal(t, exitOK, code, stderr)

	got := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	sort.Strings(got)
	assert.Equal(t, []string{
		filepath.Join("a", "b", "notes.txt") + ": 1: todo: b",
		filepath.Join("a", "notes.txt") + ": 2: todo: a",
		"notes.txt: 1: todo: top",
	}, got)
}

func TestExecuteRecursiveSkipsUnreadableFile(t *testing.T) {
	inTempDir(t)
	write(t, "a/data.txt", "hit a\n")
	write(t, "b/data.txt", "hit b\n")
	require.NoError(t, os.MkdirAll("c", 0o755))
	require.NoError(t, os.Symlink("nowhere", filepath.Join("c", "data.txt")))

	code, stdout, stderr := run("-r", "-p", "hit", "-f", "data.txt")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, filepath.Join("a", "data.txt")+": hit a\n")
	assert.Contains(t, stdout, filepath.Join("b", "data.txt")+": hit b\n")
	assert.Contains(t, stderr, "[WARN] Skipping "+filepath.Join("c", "data.txt"))
}

func TestExecuteConfigPrecedence(t *testing.T) {
	inTempDir(t)
	write(t, "poem.txt", poem)
	write(t, ".minigrep.yaml", "pattern: Pick\nfile: poem.txt\nline_number: true\n")

	code, stdout, stderr := run()
	require.Equal(t, exitOK, code, stderr)
	assert.Equal(t, "3: Pick three.\n", stdout)

	// The environment overrides the config file.
	t.Setenv("MINIGREP_PATTERN", "Rust")
	code, stdout, _ = run()
	require.Equal(t, exitOK, code)
	assert.Equal(t, "1: Rust:\n", stdout)

	// Flags override both.
	code, stdout, _ = run("-p", "tape", "--number=false")
	require.Equal(t, exitOK, code)
	assert.Equal(t, "Duct tape.\n", stdout)
}

func TestExecuteDotEnvAndTOMLConfig(t *testing.T) {
	inTempDir(t)
	write(t, "poem.txt", poem)
	write(t, "conf/minigrep.toml", "pattern = \"RUST\"\nfile = \"poem.txt\"\n")
	write(t, "local.env", "MINIGREP_IGNORE_CASE=true\n")

	code, stdout, stderr := run("--config", filepath.Join("conf", "minigrep.toml"), "--env-file", "local.env")
	require.Equal(t, exitOK, code, stderr)
	assert.Equal(t, "Rust:\n", stdout)

	code, _, stderr = run("--config", filepath.Join("conf", "minigrep.toml"), "--env-file", "missing.env")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "read env file missing.env")
}

func TestExecuteSubstituteWithoutRegexWarns(t *testing.T) {
	inTempDir(t)
	write(t, "poem.txt", poem)

	code, stdout, stderr := run("-p", "Duct", "-s", "Gaffer", "-f", "poem.txt")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "Duct tape.\n", stdout)
	assert.Contains(t, stderr, "[WARN] --substitute only applies together with --regex")
}

func TestExecuteColor(t *testing.T) {
	inTempDir(t)
	write(t, "poem.txt", poem)

	_, stdout, _ := run("-n", "-p", "Pick", "-f", "poem.txt", "--color", "always")
	assert.Equal(t, "\x1b[32m3\x1b[0m: Pick three.\n", stdout)

	_, stdout, _ = run("-n", "-p", "Pick", "-f", "poem.txt")
	assert.Equal(t, "3: Pick three.\n", stdout)
}

func TestExecuteVersion(t *testing.T) {
	inTempDir(t)

	code, stdout, _ := run("--version")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, Version)
}
