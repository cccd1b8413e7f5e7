package classifier

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHandleSwap(t *testing.T) {
	h := NewHandle(DefaultPolicy())
	assert.Equal(t, DefaultPolicy(), h.Policy())

	custom := Policy{
		TextTags:     []string{"a"},
		TTSTags:      []string{"b"},
		TextKeywords: []string{"c"},
		TTSKeywords:  []string{"d"},
	}
	h.Swap(custom)
	assert.Equal(t, custom, h.Policy())
}

func TestWatcherReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.toml")
	require.NoError(t, os.WriteFile(path, []byte(`text_keywords = ["one"]`+"\n"+`tts_keywords = ["two"]`), 0600))

	h := NewHandle(DefaultPolicy())
	w, err := NewWatcher(h, path, zap.NewNop())
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	w.reload()
	assert.Equal(t, []string{"one"}, h.Policy().TextKeywords)
	assert.Equal(t, []string{"two"}, h.Policy().TTSKeywords)
}

func TestWatcherReload_KeepsPolicyOnBadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.toml")
	require.NoError(t, os.WriteFile(path, []byte(`text_keywords = ["one"]`+"\n"+`tts_keywords = ["two"]`), 0600))

	h := NewHandle(DefaultPolicy())
	w, err := NewWatcher(h, path, zap.NewNop())
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	require.NoError(t, os.WriteFile(path, []byte("not valid toml ["), 0600))
	w.reload()

	assert.Equal(t, DefaultPolicy(), h.Policy())
}

func TestNewWatcher_RequiresHandle(t *testing.T) {
	_, err := NewWatcher(nil, "policy.toml", zap.NewNop())
	assert.Error(t, err)
}
