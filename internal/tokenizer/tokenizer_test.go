package tokenizer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thep200/github-word-miner/internal/parser"
)

type nopLogger struct{}

func (nopLogger) Info(ctx context.Context, format string, args ...interface{})     {}
func (nopLogger) Warn(ctx context.Context, format string, args ...interface{})     {}
func (nopLogger) Error(ctx context.Context, format string, args ...interface{})    {}
func (nopLogger) Debug(ctx context.Context, format string, args ...interface{})    {}
func (nopLogger) Critical(ctx context.Context, format string, args ...interface{}) {}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newTestTokenizer(t *testing.T) *Tokenizer {
	t.Helper()
	tk, err := NewTokenizer(nopLogger{}, "regex")
	require.NoError(t, err)
	return tk
}

func TestCountsPythonRepo(t *testing.T) {
	repo := t.TempDir()
	writeFile(t, repo, "app.py", "def get_user_name():\n    pass\n\ndef load_config():\n    pass\n\ndef md5_hash():\n    pass\n")
	writeFile(t, repo, "lib/util.py", "def get_user_name():\n    return None\n")
	// Identifier camelCase trong file Python bị loại vì sai convention
	writeFile(t, repo, "lib/mixed.py", "def getUserName():\n    pass\n")
	// File khác phần mở rộng không được quét
	writeFile(t, repo, "README.md", "def not_code():")

	tk := newTestTokenizer(t)
	counts, err := tk.Counts(repo, "python")
	require.NoError(t, err)

	assert.Equal(t, map[string]int{
		"get":    2,
		"user":   2,
		"name":   2,
		"load":   1,
		"config": 1,
		"md5":    1,
		"hash":   1,
	}, counts)
}

func TestCountsJavaRepo(t *testing.T) {
	repo := t.TempDir()
	writeFile(t, repo, "src/Main.java", `
public class Main {
    public String getUserName(int id) {
        return "";
    }

    private static void loadConfig() {
    }
}
`)

	tk := newTestTokenizer(t)
	counts, err := tk.Counts(repo, "java")
	require.NoError(t, err)

	assert.Equal(t, map[string]int{
		"get":    1,
		"user":   1,
		"name":   1,
		"load":   1,
		"config": 1,
	}, counts)
}

func TestCountsEmptyRepo(t *testing.T) {
	repo := t.TempDir()
	writeFile(t, repo, "empty.py", "x = 1\n")

	tk := newTestTokenizer(t)
	counts, err := tk.Counts(repo, "python")
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestCountsUnknownLanguage(t *testing.T) {
	tk := newTestTokenizer(t)
	_, err := tk.Counts(t.TempDir(), "ruby")
	assert.ErrorIs(t, err, parser.ErrUnknownLanguage)
}

func TestCountsMissingRepo(t *testing.T) {
	tk := newTestTokenizer(t)
	_, err := tk.Counts(filepath.Join(t.TempDir(), "does-not-exist"), "python")
	assert.ErrorIs(t, err, ErrRepoNotFound)
}
