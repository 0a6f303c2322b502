package prompt

import (
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/huh"

	"github.com/yaklabco/mdmend/pkg/mdhead"
	"github.com/yaklabco/mdmend/pkg/mdrepair"
)

func TestMapFormErr(t *testing.T) {
	t.Parallel()

	if got := mapFormErr(huh.ErrUserAborted); !errors.Is(got, mdrepair.ErrAborted) {
		t.Errorf("expected ErrAborted, got %v", got)
	}

	sentinel := errors.New("terminal broke")
	if got := mapFormErr(sentinel); !errors.Is(got, sentinel) {
		t.Errorf("expected pass-through, got %v", got)
	}
}

func TestRenderOutline(t *testing.T) {
	t.Parallel()

	c := NewConsole(false)

	t.Run("empty outline", func(t *testing.T) {
		t.Parallel()

		got := c.renderOutline(nil)
		if !strings.Contains(got, "No headings yet") {
			t.Errorf("unexpected output: %q", got)
		}
	})

	t.Run("headings indented by level", func(t *testing.T) {
		t.Parallel()

		got := c.renderOutline([]mdhead.Heading{
			{Level: 1, Text: "Guide"},
			{Level: 2, Text: "Install"},
		})
		if !strings.Contains(got, "# Guide") {
			t.Errorf("missing level one entry: %q", got)
		}
		if !strings.Contains(got, "  ## Install") {
			t.Errorf("missing indented level two entry: %q", got)
		}
	})

	t.Run("long outline truncated", func(t *testing.T) {
		t.Parallel()

		outline := make([]mdhead.Heading, 20)
		for i := range outline {
			outline[i] = mdhead.Heading{Level: 2, Text: "Section"}
		}
		got := c.renderOutline(outline)
		if !strings.Contains(got, "earlier omitted") {
			t.Errorf("expected truncation note: %q", got)
		}
	})
}

func TestRenderPreviewClampsWidth(t *testing.T) {
	t.Parallel()

	c := NewConsole(false)
	long := strings.Repeat("x", 500)
	got := c.renderPreview(mdrepair.BlockQuery{Preview: long, Tag: "c"})

	for _, line := range strings.Split(got, "\n") {
		if len(line) > 500-1 && !strings.Contains(line, "\x1b") {
			t.Errorf("line not clamped: %d chars", len(line))
		}
	}
}
