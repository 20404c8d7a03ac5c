package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaffold(t *testing.T) {
	t.Run("writes an up and down pair", func(t *testing.T) {
		dir := t.TempDir()

		pair, err := Scaffold(dir, "Add Follow Up Index", "speeds up the reminder sweep")
		require.NoError(t, err)

		assert.Equal(t, "add_follow_up_index", pair.Name)
		assert.Len(t, pair.Version, 14)
		require.FileExists(t, pair.UpPath)
		require.FileExists(t, pair.DownPath)

		up, err := os.ReadFile(pair.UpPath)
		require.NoError(t, err)
		assert.Contains(t, string(up), "add_follow_up_index (up)")
		assert.Contains(t, string(up), "speeds up the reminder sweep")

		down, err := os.ReadFile(pair.DownPath)
		require.NoError(t, err)
		assert.Contains(t, string(down), "add_follow_up_index (down)")
	})

	t.Run("creates the directory when missing", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "migrations")

		pair, err := Scaffold(dir, "seed catalog", "")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(pair.UpPath, dir))
		require.FileExists(t, pair.UpPath)
	})

	t.Run("rejects names with no usable characters", func(t *testing.T) {
		_, err := Scaffold(t.TempDir(), "!!!", "")
		require.Error(t, err)
	})
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Add Users Table":      "add_users_table",
		"fix--quote   totals":  "fix_quote_totals",
		"  leading and trail ": "leading_and_trail",
		"v2":                   "v2",
		"---":                  "",
	}
	for in, want := range cases {
		assert.Equal(t, want, slugify(in), "input %q", in)
	}
}

func TestList(t *testing.T) {
	t.Run("returns base names sorted by version", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{
			"20260203000000_add_quotes.up.sql",
			"20260203000000_add_quotes.down.sql",
			"20260101000000_init.up.sql",
			"20260101000000_init.down.sql",
			"notes.txt",
		} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
		}

		names, err := List(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"20260101000000_init",
			"20260203000000_add_quotes",
		}, names)
	})

	t.Run("missing directory lists nothing", func(t *testing.T) {
		names, err := List(filepath.Join(t.TempDir(), "nope"))
		require.NoError(t, err)
		assert.Empty(t, names)
	})
}
