package convert

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocxToMarkdownMissingPandoc(t *testing.T) {
	// Point PATH at an empty directory so lookup cannot find pandoc.
	t.Setenv("PATH", t.TempDir())

	docx := filepath.Join(t.TempDir(), "doc.docx")
	require.NoError(t, os.WriteFile(docx, []byte("not a real docx"), 0o644))

	_, err := DocxToMarkdown(context.Background(), docx, t.TempDir())
	require.ErrorIs(t, err, ErrPandocMissing)
}

func TestDocxToMarkdownMissingInput(t *testing.T) {
	t.Parallel()

	_, err := DocxToMarkdown(context.Background(), "/does/not/exist.docx", t.TempDir())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPandocMissing)
}

func TestAvailableWithEmptyPath(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	assert.False(t, Available())
}

func TestNestMedia(t *testing.T) {
	t.Parallel()

	t.Run("files moved one level down", func(t *testing.T) {
		t.Parallel()

		mediaDir := filepath.Join(t.TempDir(), "media")
		require.NoError(t, os.MkdirAll(mediaDir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(mediaDir, "image1.png"), []byte("png"), 0o644))

		moved, err := nestMedia(mediaDir)
		require.NoError(t, err)
		assert.True(t, moved)

		_, err = os.Stat(filepath.Join(mediaDir, "media", "image1.png"))
		assert.NoError(t, err)
	})

	t.Run("absent media directory is fine", func(t *testing.T) {
		t.Parallel()

		moved, err := nestMedia(filepath.Join(t.TempDir(), "media"))
		require.NoError(t, err)
		assert.False(t, moved)
	})
}

func TestRewriteMediaLinks(t *testing.T) {
	t.Parallel()

	mdPath := filepath.Join(t.TempDir(), "doc.md")
	content := "before\n![fig 1](media/image1.png)\n![](media/image2.png)\nafter\n"
	require.NoError(t, os.WriteFile(mdPath, []byte(content), 0o644))

	require.NoError(t, rewriteMediaLinks(context.Background(), mdPath))

	got, err := os.ReadFile(mdPath)
	require.NoError(t, err)
	assert.Equal(t,
		"before\n![fig 1](media/media/image1.png)\n![](media/media/image2.png)\nafter\n",
		string(got))
}