package engine

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T, scriptFiles ...string) *Registry {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, name := range scriptFiles {
		require.NoError(t, afero.WriteFile(fs, "scripts/"+name, []byte("#"), 0755))
	}
	r := NewRegistry(fs, "scripts")
	require.NoError(t, r.Refresh())
	return r
}

func TestRegistryDiscoversScripts(t *testing.T) {
	r := newTestRegistry(t, "resize.py", "convert.py", "notes.txt")

	assert.Equal(t, []string{"convert", "resize"}, r.Scripts())

	entry, err := r.Resolve("resize", false)
	require.NoError(t, err)
	assert.Equal(t, KindScript, entry.Kind)
	assert.Equal(t, "scripts/resize.py", entry.Locator)

	_, err = r.Resolve("notes", false)
	assert.Error(t, err, "non-script files must not register")
}

func TestRegistryMissingScriptsDirIsEmpty(t *testing.T) {
	r := NewRegistry(afero.NewMemMapFs(), "nowhere")
	require.NoError(t, r.Refresh())
	assert.Empty(t, r.Scripts())
}

func TestRegistrySystemRequiresPrefix(t *testing.T) {
	r := newTestRegistry(t)

	entry, err := r.Resolve("history", true)
	require.NoError(t, err)
	assert.Equal(t, KindSystem, entry.Kind)

	// Without the prefix the name falls through to scripts/builtins.
	_, err = r.Resolve("no-such-name-here", false)
	require.Error(t, err)
	unknownErr, ok := err.(*UnknownCommandError)
	require.True(t, ok)
	assert.Equal(t, "no-such-name-here", unknownErr.Name)
}

func TestRegistrySystemShadowsScriptOfSameName(t *testing.T) {
	r := newTestRegistry(t, "history.py")

	withPrefix, err := r.Resolve("history", true)
	require.NoError(t, err)
	assert.Equal(t, KindSystem, withPrefix.Kind)

	bare, err := r.Resolve("history", false)
	require.NoError(t, err)
	assert.Equal(t, KindScript, bare.Kind)
}

func TestRegistryScriptShadowsBuiltin(t *testing.T) {
	// "ls" exists on PATH; a discovered ls.py must win.
	r := newTestRegistry(t, "ls.py")

	entry, err := r.Resolve("ls", false)
	require.NoError(t, err)
	assert.Equal(t, KindScript, entry.Kind)
}

func TestRegistryResolvesBuiltinsFromPath(t *testing.T) {
	r := newTestRegistry(t)

	entry, err := r.Resolve("ls", false)
	require.NoError(t, err)
	assert.Equal(t, KindBuiltin, entry.Kind)
	assert.NotEmpty(t, entry.Locator)
}

func TestRegistryUnknownSystemName(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.Resolve("frobnicate", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ":frobnicate")
}

func TestRegistryRefreshPicksUpNewScripts(t *testing.T) {
	fs := afero.NewMemMapFs()
	r := NewRegistry(fs, "scripts")
	require.NoError(t, r.Refresh())
	assert.Empty(t, r.Scripts())

	require.NoError(t, afero.WriteFile(fs, "scripts/late.py", []byte("#"), 0755))
	require.NoError(t, r.Refresh())
	assert.Equal(t, []string{"late"}, r.Scripts())
}
