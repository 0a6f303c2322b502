package mdclean

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanDashedBlocks(t *testing.T) {
	t.Parallel()

	t.Run("language line promoted to tag", func(t *testing.T) {
		t.Parallel()

		in := "before\n---\nc\nint x = 1;\n---\nafter"
		got := Clean(in, Options{})
		assert.Contains(t, got, "```c\nint x = 1;\n```")
		assert.NotContains(t, got, "---")
	})

	t.Run("no language line", func(t *testing.T) {
		t.Parallel()

		in := "---\nplain text body\n---"
		got := Clean(in, Options{})
		assert.Equal(t, "```\nplain text body\n```", got)
	})
}

func TestCleanTableCells(t *testing.T) {
	t.Parallel()

	t.Run("cell content fenced", func(t *testing.T) {
		t.Parallel()

		got := Clean(`<td>int x = 1;</td>`, Options{})
		assert.Equal(t, "```\nint x = 1;\n```", got)
	})

	t.Run("already fenced cell left alone", func(t *testing.T) {
		t.Parallel()

		got := Clean("<td>```c\nint x = 1;\n```</td>", Options{})
		assert.Equal(t, 2, strings.Count(got, "```"))
	})
}

func TestCleanImageLinks(t *testing.T) {
	t.Parallel()

	in := `![alt](C:\docs\media\media\image1.png){width="5in" height="3in"}`
	got := Clean(in, Options{})
	assert.Equal(t, "![alt](media/media/image1.png)", got)
}

func TestCleanHTMLArtifacts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "br becomes newline",
			in:   "first<br>second",
			want: "first\nsecond",
		},
		{
			name: "self closing br",
			in:   "first<br/>second",
			want: "first\nsecond",
		},
		{
			name: "em and strong stripped",
			in:   "<em>word</em> and <strong>bold</strong>",
			want: "word and bold",
		},
		{
			name: "amp entity decoded",
			in:   "a &amp; b",
			want: "a & b",
		},
		{
			name: "residual table tags stripped",
			in:   "<table><tr>cell</tr></table>",
			want: "cell",
		},
		{
			name: "blank line runs squeezed",
			in:   "a\n\n\n\n\nb",
			want: "a\n\nb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Clean(tt.in, Options{}))
		})
	}
}

func TestCleanStrayBackslashes(t *testing.T) {
	t.Parallel()

	t.Run("removed from prose", func(t *testing.T) {
		t.Parallel()

		got := Clean(`some \escaped\ text`, Options{})
		assert.Equal(t, "some escaped text", got)
	})

	t.Run("kept on pipe table rows", func(t *testing.T) {
		t.Parallel()

		got := Clean(`| a\b | c |`, Options{})
		assert.Contains(t, got, `a\b`)
	})
}

func TestCleanCodeBlockInterior(t *testing.T) {
	t.Parallel()

	t.Run("normalized and formatted", func(t *testing.T) {
		t.Parallel()

		in := "```c\n**int x=1;**\n```"
		got := Clean(in, Options{})
		assert.Equal(t, "```c\nint x = 1;\n```", got)
	})

	t.Run("formatting disabled", func(t *testing.T) {
		t.Parallel()

		in := "```c\nint x=1;\n```"
		got := Clean(in, Options{NoFormat: true})
		assert.Equal(t, "```c\nint x=1;\n```", got)
	})

	t.Run("tag lowercased", func(t *testing.T) {
		t.Parallel()

		in := "```Python\nprint(1)\n```"
		got := Clean(in, Options{})
		assert.Equal(t, "```python\nprint(1)\n```", got)
	})
}

func TestConvertTextTables(t *testing.T) {
	t.Parallel()

	t.Run("aligned table becomes pipe table", func(t *testing.T) {
		t.Parallel()

		in := strings.Join([]string{
			"----- ----- -----",
			"Name     Type     Note",
			"x        int      counter",
			"----- ----- -----",
		}, "\n")

		got := convertTextTables(in)
		lines := strings.Split(got, "\n")
		assert.Equal(t, "| Name | Type | Note |", lines[0])
		assert.Equal(t, "| --- | --- | --- |", lines[1])
		assert.Equal(t, "| x | int | counter |", lines[2])
	})

	t.Run("solid dash border left alone", func(t *testing.T) {
		t.Parallel()

		in := "--------------\nc\nint x;\n--------------"
		assert.Equal(t, in, convertTextTables(in))
	})
}
