package mdrepair

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsFenceLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		want bool
	}{
		{"bare fence", "```", true},
		{"fence with tag", "```python", true},
		{"fence with tag and title", "```c demo_main", true},
		{"indented fence", "  ```go", true},
		{"prose starting with backticks", "```this is a very long sentence, not a fence", false},
		{"plain text", "some text", false},
		{"dash rule", "---", false},
		{"inline code", "use `go build` here", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsFenceLine(tt.line))
		})
	}
}

func TestIsDashedDelimiter(t *testing.T) {
	t.Parallel()

	assert.True(t, IsDashedDelimiter("---"))
	assert.True(t, IsDashedDelimiter("----------"))
	assert.True(t, IsDashedDelimiter("  ---  "))
	assert.True(t, IsDashedDelimiter("---\t"))
	assert.False(t, IsDashedDelimiter("--"))
	assert.False(t, IsDashedDelimiter("--- not a rule"))
	assert.False(t, IsDashedDelimiter("a---"))
}

func TestSplitFusedFences(t *testing.T) {
	t.Parallel()

	t.Run("splits fused delimiters", func(t *testing.T) {
		t.Parallel()

		out, split := SplitFusedFences("before\n``` ```cpp\nafter")
		assert.True(t, split)
		assert.Equal(t, "before\n``` \n```cpp\nafter", out)
	})

	t.Run("leaves clean input alone", func(t *testing.T) {
		t.Parallel()

		in := "```go\ncode\n```\n"
		out, split := SplitFusedFences(in)
		assert.False(t, split)
		assert.Equal(t, in, out)
	})
}

func TestScan(t *testing.T) {
	t.Parallel()

	t.Run("plain text only", func(t *testing.T) {
		t.Parallel()

		res := Scan("hello\nworld")
		require.Len(t, res.Segments, 1)
		assert.Equal(t, SegmentPlain, res.Segments[0].Kind)
		assert.Equal(t, "hello\nworld", res.Segments[0].Text())
		assert.Empty(t, res.Warnings)
	})

	t.Run("fenced block between text", func(t *testing.T) {
		t.Parallel()

		res := Scan("intro\n```go\ncode\n```\noutro")
		require.Len(t, res.Segments, 3)
		assert.Equal(t, SegmentPlain, res.Segments[0].Kind)
		assert.Equal(t, SegmentFenced, res.Segments[1].Kind)
		assert.Equal(t, "```go\ncode\n```", res.Segments[1].Text())
		assert.Equal(t, SegmentPlain, res.Segments[2].Kind)
	})

	t.Run("dashed block excludes delimiters", func(t *testing.T) {
		t.Parallel()

		res := Scan("---\nc\nint x;\n---")
		require.Len(t, res.Segments, 1)
		assert.Equal(t, SegmentDashed, res.Segments[0].Kind)
		assert.Equal(t, "c\nint x;", res.Segments[0].Text())
	})

	t.Run("fenced block may contain dash rules", func(t *testing.T) {
		t.Parallel()

		res := Scan("```c\nint a;\n---\nint b;\n```")
		require.Len(t, res.Segments, 1)
		assert.Equal(t, SegmentFenced, res.Segments[0].Kind)
		assert.Contains(t, res.Segments[0].Text(), "---")
	})

	t.Run("back to back fences without blank line", func(t *testing.T) {
		t.Parallel()

		res := Scan("```go\na\n```\n```py\nb\n```")
		require.Len(t, res.Segments, 2)
		assert.Equal(t, SegmentFenced, res.Segments[0].Kind)
		assert.Equal(t, SegmentFenced, res.Segments[1].Kind)
	})

	t.Run("unterminated fenced block gets synthetic closer", func(t *testing.T) {
		t.Parallel()

		res := Scan("```python\nprint(1)")
		require.Len(t, res.Segments, 1)
		assert.Equal(t, SegmentFenced, res.Segments[0].Kind)
		assert.Equal(t, "```python\nprint(1)\n```", res.Segments[0].Text())
		require.Len(t, res.Warnings, 1)
		assert.Contains(t, res.Warnings[0].Reason, "unterminated fenced")
	})

	t.Run("unterminated dashed block demoted to plain text", func(t *testing.T) {
		t.Parallel()

		res := Scan("text\n---\nnot really code")
		require.Len(t, res.Segments, 2)
		assert.Equal(t, SegmentPlain, res.Segments[0].Kind)
		assert.Equal(t, SegmentPlain, res.Segments[1].Kind)
		assert.Contains(t, res.Segments[1].Text(), "not really code")
		assert.Contains(t, res.Segments[1].Text(), strings.Repeat("-", 40))
		require.Len(t, res.Warnings, 1)
		assert.Contains(t, res.Warnings[0].Reason, "unterminated dashed")
	})

	t.Run("rescan of reassembled output is stable", func(t *testing.T) {
		t.Parallel()

		in := "intro\n```go\ncode\n```\nmiddle\n---\nc\nx=1;\n---\nend"
		first := Scan(in)

		parts := make([]string, 0, len(first.Segments))
		for _, seg := range first.Segments {
			if seg.Kind == SegmentDashed {
				parts = append(parts, "```\n"+seg.Text()+"\n```")
				continue
			}
			parts = append(parts, seg.Text())
		}
		second := Scan(strings.Join(parts, "\n"))

		require.Len(t, second.Segments, len(first.Segments))
		for i, seg := range second.Segments {
			assert.Equal(t, first.Segments[i].IsBlock(), seg.IsBlock(), "segment %d", i)
		}
	})
}
