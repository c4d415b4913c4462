// Tests for the rankaroo CLI, run in-process against a temporary config and
// data directory.
package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/rankaroo/pkg/rankaroo"
	"github.com/mesh-intelligence/rankaroo/pkg/types"
)

type env struct {
	configDir string
	dataDir   string
}

func newEnv(t *testing.T) env {
	t.Helper()
	t.Setenv("RANKAROO_BACKEND", "")
	t.Setenv("RANKAROO_SYNC_STRATEGY", "")
	root := t.TempDir()
	return env{
		configDir: filepath.Join(root, "config"),
		dataDir:   filepath.Join(root, "data"),
	}
}

// run executes the root command with the env's directories and returns
// stdout and the exit code Execute would use.
func (e env) run(t *testing.T, args ...string) (string, int) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config-dir", e.configDir, "--data-dir", e.dataDir}, args...))
	err := cmd.Execute()
	return out.String(), exitCode(err)
}

// runJSON runs the command with --json, requires success, and decodes stdout
// into v.
func (e env) runJSON(t *testing.T, v any, args ...string) {
	t.Helper()
	out, code := e.run(t, append([]string{"--json"}, args...)...)
	require.Equal(t, exitSuccess, code, "rankaroo %v: %s", args, out)
	require.NoError(t, json.Unmarshal([]byte(out), v), "output: %s", out)
}

func TestVersion(t *testing.T) {
	e := newEnv(t)
	out, code := e.run(t, "version")
	assert.Equal(t, exitSuccess, code)
	assert.Equal(t, fmt.Sprintf("rankaroo %s\n", rankaroo.Version), out)
}

func TestInit(t *testing.T) {
	e := newEnv(t)

	out, code := e.run(t, "init")
	require.Equal(t, exitSuccess, code, out)
	assert.Contains(t, out, "Rankaroo initialized")

	assert.FileExists(t, filepath.Join(e.configDir, "config.yaml"))
	for _, name := range []string{"categories.jsonl", "items.jsonl"} {
		assert.FileExists(t, filepath.Join(e.dataDir, name))
	}

	// Idempotent.
	_, code = e.run(t, "init")
	assert.Equal(t, exitSuccess, code)
}

func TestRankScenario(t *testing.T) {
	e := newEnv(t)

	var cat types.Category
	e.runJSON(t, &cat, "category", "create", "--name", "Top 10 Horror Movies", "--type", "Movies")
	assert.Equal(t, types.TypeMovies, cat.Type)

	add := func(name string, ranking int) types.Item {
		var it types.Item
		e.runJSON(t, &it, "item", "add", cat.CategoryID, name, "--ranking", fmt.Sprint(ranking))
		return it
	}
	add("Get Out", 9)
	shining := add("The Shining", 10)
	add("Hereditary", 8)

	var board struct {
		Items []types.Ranked `json:"items"`
	}
	e.runJSON(t, &board, "item", "list", cat.CategoryID)
	require.Len(t, board.Items, 3)
	assert.Equal(t, "The Shining", board.Items[0].Item.Name)
	assert.Equal(t, 1, board.Items[0].Position)
	assert.Equal(t, "Hereditary", board.Items[2].Item.Name)

	var ranked types.Item
	e.runJSON(t, &ranked, "item", "rank", shining.ItemID, "1")
	assert.Equal(t, 1, ranked.Ranking)

	e.runJSON(t, &board, "category", "show", cat.CategoryID)
	require.Len(t, board.Items, 3)
	assert.Equal(t, "Get Out", board.Items[0].Item.Name)
	assert.Equal(t, "The Shining", board.Items[2].Item.Name)

	out, code := e.run(t, "category", "delete", cat.CategoryID)
	require.Equal(t, exitSuccess, code, out)

	_, code = e.run(t, "item", "list", cat.CategoryID)
	assert.Equal(t, exitUserError, code)
}

func TestUserErrors(t *testing.T) {
	e := newEnv(t)

	var cat types.Category
	e.runJSON(t, &cat, "category", "create", "--name", "Books I love", "--type", "books")
	_, code := e.run(t, "item", "add", cat.CategoryID, "Dune", "--ranking", "9")
	require.Equal(t, exitSuccess, code)

	tests := []struct {
		name string
		args []string
	}{
		{"duplicate category", []string{"category", "create", "--name", "Books I love", "--type", "Books"}},
		{"unknown type", []string{"category", "create", "--name", "X", "--type", "Podcasts"}},
		{"missing name flag", []string{"category", "create", "--type", "Books"}},
		{"ranking too high", []string{"item", "add", cat.CategoryID, "Emma", "--ranking", "11"}},
		{"ranking not a number", []string{"item", "rank", "whatever", "ten"}},
		{"duplicate item name", []string{"item", "add", cat.CategoryID, "DUNE"}},
		{"unknown category", []string{"item", "add", "no-such-id", "Emma"}},
		{"unknown item", []string{"item", "remove", "no-such-id"}},
		{"list unknown type", []string{"category", "list", "--type", "Podcasts"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, code := e.run(t, tt.args...)
			assert.Equal(t, exitUserError, code)
		})
	}
}

func TestCategoryListByType(t *testing.T) {
	e := newEnv(t)

	for _, args := range [][]string{
		{"--name", "A", "--type", "Movies"},
		{"--name", "B", "--type", "TV Shows"},
		{"--name", "C", "--type", "Movies"},
	} {
		_, code := e.run(t, append([]string{"category", "create"}, args...)...)
		require.Equal(t, exitSuccess, code)
	}

	var cats []types.Category
	e.runJSON(t, &cats, "category", "list", "--type", "movies")
	require.Len(t, cats, 2)
	assert.Equal(t, "A", cats[0].Name)
	assert.Equal(t, "C", cats[1].Name)

	e.runJSON(t, &cats, "category", "list", "--type", "tvshows")
	require.Len(t, cats, 1)
	assert.Equal(t, types.TypeTVShows, cats[0].Type)

	e.runJSON(t, &cats, "category", "list")
	assert.Len(t, cats, 3)
}

func TestCategoryRenameAndDescribe(t *testing.T) {
	e := newEnv(t)

	var a, b types.Category
	e.runJSON(t, &a, "category", "create", "--name", "First", "--type", "Games")
	e.runJSON(t, &b, "category", "create", "--name", "Second", "--type", "Games")

	_, code := e.run(t, "category", "rename", a.CategoryID, "Second")
	assert.Equal(t, exitUserError, code)

	var got types.Category
	e.runJSON(t, &got, "category", "rename", a.CategoryID, "Renamed")
	assert.Equal(t, "Renamed", got.Name)

	e.runJSON(t, &got, "category", "describe", a.CategoryID, "Board games only")
	assert.Equal(t, "Board games only", got.Description)
}

func TestSeedIsIdempotent(t *testing.T) {
	e := newEnv(t)

	var summary []rankaroo.CategorySummary
	e.runJSON(t, &summary, "seed")
	require.Len(t, summary, len(sampleData))
	assert.Equal(t, "Top 10 Horror Movies", summary[0].Category.Name)
	assert.Equal(t, 4, summary[0].Items)

	e.runJSON(t, &summary, "seed")
	assert.Len(t, summary, len(sampleData))
}

func TestMemoryBackendKeepsNoState(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, os.MkdirAll(e.configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(e.configDir, "config.yaml"), []byte("backend: memory\n"), 0o644))

	_, code := e.run(t, "category", "create", "--name", "Gone", "--type", "Other")
	require.Equal(t, exitSuccess, code)

	var cats []types.Category
	e.runJSON(t, &cats, "category", "list")
	assert.Empty(t, cats)
	assert.NoDirExists(t, e.dataDir)
}

func TestOnCloseSyncStrategyFromEnv(t *testing.T) {
	e := newEnv(t)
	t.Setenv("RANKAROO_SYNC_STRATEGY", types.SyncOnClose)

	var cat types.Category
	e.runJSON(t, &cat, "category", "create", "--name", "Saved at close", "--type", "Places")

	data, err := os.ReadFile(filepath.Join(e.dataDir, "categories.jsonl"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Saved at close")
}

func TestInvalidConfigIsUserError(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, os.MkdirAll(e.configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(e.configDir, "config.yaml"), []byte("backend: postgres\n"), 0o644))

	_, code := e.run(t, "category", "list")
	assert.Equal(t, exitUserError, code)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitSuccess, exitCode(nil))
	assert.Equal(t, exitUserError, exitCode(types.ErrNotFound))
	assert.Equal(t, exitUserError, exitCode(fmt.Errorf("wrapped: %w", types.ErrRange)))
	assert.Equal(t, exitSysError, exitCode(systemErr(errors.New("disk full"))))
	assert.Equal(t, exitSysError, exitCode(fmt.Errorf("%w: %w", types.ErrPersist, errors.New("disk full"))))
	assert.Equal(t, exitSysError, exitCode(errors.Join(types.ErrNotFound, systemErr(errors.New("detach")))))
}

func TestGlobalUsesPlatformDataDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("linux-only test")
	}
	e := newEnv(t)
	xdg := t.TempDir()
	t.Setenv("XDG_DATA_HOME", xdg)
	t.Setenv("RANKAROO_DATA_DIR", "")

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config-dir", e.configDir, "--global", "init"})
	require.NoError(t, cmd.Execute(), out.String())

	assert.FileExists(t, filepath.Join(xdg, "rankaroo", "categories.jsonl"))
	assert.NoDirExists(t, e.dataDir)
}
