package mdsplit

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitBasic(t *testing.T) {
	t.Parallel()

	doc := strings.Join([]string{
		"# Guide",
		"",
		"Some intro prose.",
		"",
		"## Install",
		"",
		"run make",
		"",
		"## Usage",
		"",
		"run the binary",
	}, "\n")

	parts, err := Split(doc, Options{Level: 2, Prologue: true})
	require.NoError(t, err)
	require.Len(t, parts, 3)

	assert.Equal(t, "00_prologue.md", parts[0].Filename)
	assert.Equal(t, "# Guide\n\nSome intro prose.\n", parts[0].Content)

	assert.Equal(t, "Install", parts[1].Title)
	assert.Equal(t, "Install.md", parts[1].Filename)
	assert.Equal(t, "## Install\n\nrun make\n", parts[1].Content)

	assert.Equal(t, "Usage.md", parts[2].Filename)
	assert.Equal(t, "## Usage\n\nrun the binary\n", parts[2].Content)
}

func TestSplitPrologueHandling(t *testing.T) {
	t.Parallel()

	t.Run("disabled prologue is dropped", func(t *testing.T) {
		t.Parallel()

		parts, err := Split("intro\n\n## One\n\nbody", Options{Level: 2})
		require.NoError(t, err)
		require.Len(t, parts, 1)
		assert.Equal(t, "One.md", parts[0].Filename)
	})

	t.Run("empty prologue produces no part", func(t *testing.T) {
		t.Parallel()

		parts, err := Split("## One\n\nbody", Options{Level: 2, Prologue: true})
		require.NoError(t, err)
		require.Len(t, parts, 1)
		assert.Equal(t, "One.md", parts[0].Filename)
	})
}

func TestSplitIgnoresCodeFences(t *testing.T) {
	t.Parallel()

	doc := strings.Join([]string{
		"## Real",
		"",
		"```sh",
		"## not a heading",
		"```",
		"",
		"## Also Real",
		"",
		"text",
	}, "\n")

	parts, err := Split(doc, Options{Level: 2})
	require.NoError(t, err)
	require.Len(t, parts, 2)
	assert.Contains(t, parts[0].Content, "## not a heading")
	assert.Equal(t, "Also_Real.md", parts[1].Filename)
}

func TestSplitNoSections(t *testing.T) {
	t.Parallel()

	_, err := Split("just prose, no headings", Options{Level: 2, Prologue: true})
	require.ErrorIs(t, err, ErrNoSections)
}

func TestSplitLevelValidation(t *testing.T) {
	t.Parallel()

	t.Run("zero means default", func(t *testing.T) {
		t.Parallel()

		parts, err := Split("## One\n\nbody", Options{})
		require.NoError(t, err)
		assert.Len(t, parts, 1)
	})

	t.Run("out of range rejected", func(t *testing.T) {
		t.Parallel()

		_, err := Split("## One", Options{Level: 7})
		require.Error(t, err)
	})
}

func TestSplitDuplicateTitles(t *testing.T) {
	t.Parallel()

	doc := "## Notes\n\na\n\n## Notes\n\nb"
	parts, err := Split(doc, Options{Level: 2})
	require.NoError(t, err)
	require.Len(t, parts, 2)
	assert.Equal(t, "Notes.md", parts[0].Filename)
	assert.Equal(t, "Notes_2.md", parts[1].Filename)
}

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"plain", "Install", "Install.md"},
		{"spaces to underscores", "Getting  Started", "Getting_Started.md"},
		{"leading hashes stripped", "## Section", "Section.md"},
		{"invalid characters removed", `a/b\c:d?e"f<g>h|i*j`, "abcdefghij.md"},
		{"empty falls back", "###", "section.md"},
		{"long title capped", strings.Repeat("x", 150), strings.Repeat("x", 100) + ".md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sanitizeFilename(tt.title))
		})
	}
}

func TestCountFencedBlocks(t *testing.T) {
	t.Parallel()

	doc := "```c\nint x;\n```\n\nprose\n\n```python\nprint(1)\n```\n"
	assert.Equal(t, 2, CountFencedBlocks(doc))
	assert.Equal(t, 0, CountFencedBlocks("no fences here"))
}

func TestWriteParts(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "out")
	parts := []Part{
		{Title: "One", Filename: "One.md", Content: "## One\n"},
		{Title: "Two", Filename: "Two.md", Content: "## Two\n"},
	}

	require.NoError(t, WriteParts(context.Background(), dir, parts))

	content, err := os.ReadFile(filepath.Join(dir, "One.md"))
	require.NoError(t, err)
	assert.Equal(t, "## One\n", string(content))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}