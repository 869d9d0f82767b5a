package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wajihx/News-Article-Classifier/internal/domain/repository"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestSampleRepository_List(t *testing.T) {
	t.Run("sorted supported files", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "sports.txt", "match")
		writeFile(t, dir, "business.pdf", "%PDF-1.4")
		writeFile(t, dir, "notes.md", "skip")
		writeFile(t, dir, "World.TXT", "upper")
		require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.txt"), 0o755))

		names, err := NewSampleRepository(dir, nil).List(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{"World.TXT", "business.pdf", "sports.txt"}, names)
	})

	t.Run("custom extensions", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.txt", "a")
		writeFile(t, dir, "b.pdf", "b")

		names, err := NewSampleRepository(dir, []string{".txt"}).List(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{"a.txt"}, names)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := NewSampleRepository(filepath.Join(t.TempDir(), "news"), nil).List(context.Background())

		assert.ErrorIs(t, err, repository.ErrSampleDirMissing)
	})

	t.Run("no samples", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "readme.md", "nothing here")

		_, err := NewSampleRepository(dir, nil).List(context.Background())

		assert.ErrorIs(t, err, repository.ErrNoSamples)
	})
}

func TestSampleRepository_Read(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sports.txt", "The final whistle blew.")
	writeFile(t, dir, "secret.md", "hidden")
	repo := NewSampleRepository(dir, nil)

	data, err := repo.Read(context.Background(), "sports.txt")
	require.NoError(t, err)
	assert.Equal(t, "The final whistle blew.", string(data))

	for _, name := range []string{"", "..", "../sports.txt", "a/sports.txt", `a\sports.txt`, "missing.txt", "secret.md"} {
		t.Run("rejects "+name, func(t *testing.T) {
			_, err := repo.Read(context.Background(), name)
			assert.ErrorIs(t, err, repository.ErrSampleNotFound)
		})
	}
}
