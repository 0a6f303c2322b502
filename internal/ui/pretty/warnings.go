package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/mdmend/pkg/mdrepair"
	"github.com/yaklabco/mdmend/pkg/runner"
)

// FormatWarning formats one repair warning as a single line.
// Example: "docs/api.md: block 3: missing language tag (tagged c)".
func (s *Styles) FormatWarning(path string, w mdrepair.Warning) string {
	var b strings.Builder

	b.WriteString(s.FilePath.Render(path))
	b.WriteString(": ")

	if w.Block >= 0 {
		b.WriteString(s.Location.Render("block " + strconv.Itoa(w.Block)))
		b.WriteString(": ")
	}

	b.WriteString(s.Message.Render(w.Reason))
	if w.Action != "" {
		b.WriteString(" ")
		b.WriteString(s.Suggestion.Render("(" + w.Action + ")"))
	}

	return b.String()
}

// FormatFileOutcome formats the outcome of one file, including its warnings,
// one line per finding. Unchanged files produce no output.
func (s *Styles) FormatFileOutcome(outcome runner.FileOutcome) string {
	var b strings.Builder

	if outcome.Error != nil {
		b.WriteString(s.FilePath.Render(outcome.Path))
		b.WriteString(": ")
		b.WriteString(s.Error.Render(outcome.Error.Error()))
		b.WriteString("\n")
		return b.String()
	}

	if outcome.Repair == nil || !outcome.Changed {
		return ""
	}

	b.WriteString(s.FilePath.Render(outcome.Path))
	b.WriteString(": ")
	b.WriteString(s.Success.Render(fmt.Sprintf("%d blocks repaired", outcome.Repair.Blocks)))
	if !outcome.Written {
		b.WriteString(s.Dim.Render(" (not written)"))
	}
	b.WriteString("\n")

	for _, w := range outcome.Repair.Warnings {
		b.WriteString("  ")
		b.WriteString(s.FormatWarning(outcome.Path, w))
		b.WriteString("\n")
	}

	return b.String()
}
