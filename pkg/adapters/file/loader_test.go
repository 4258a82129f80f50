package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "application.json"), []byte(`{"id":"application","type":"step"}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "permit.yaml"), []byte("id: permit\ntype: step\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a definition"), 0o644))

	loader, err := New(dir)
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("loads by name regardless of extension", func(t *testing.T) {
		data, err := loader.GetDefinition(ctx, "application")
		require.NoError(t, err)
		assert.Contains(t, string(data), `"application"`)

		data, err = loader.GetDefinition(ctx, "permit")
		require.NoError(t, err)
		assert.Contains(t, string(data), "permit")
	})

	t.Run("missing definition errors", func(t *testing.T) {
		_, err := loader.GetDefinition(ctx, "ghost")
		assert.Error(t, err)
	})

	t.Run("rejects path traversal", func(t *testing.T) {
		_, err := loader.GetDefinition(ctx, "../application")
		assert.Error(t, err)
	})

	t.Run("lists only definition documents", func(t *testing.T) {
		names, err := loader.ListDefinitions(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"application", "permit"}, names)
	})
}

func TestNewRejectsMissingDirectory(t *testing.T) {
	_, err := New("/does/not/exist")
	assert.Error(t, err)
}
