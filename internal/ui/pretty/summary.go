package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/mdmend/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 files repaired (7 blocks), 2 warnings".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesChanged == 0 {
		msg := s.Success.Render("Nothing to repair") +
			s.Dim.Render(fmt.Sprintf(" (%d files checked)", stats.FilesProcessed))
		if stats.FilesErrored > 0 {
			msg += ", " + s.Error.Render(fmt.Sprintf("%d errored", stats.FilesErrored))
		}
		return msg + "\n"
	}

	fileWord := wordFiles
	if stats.FilesChanged == 1 {
		fileWord = wordFile
	}

	verb := "repaired"
	if stats.FilesWritten == 0 {
		verb = "would be repaired"
	}

	parts := []string{
		s.Success.Render(fmt.Sprintf("%d %s %s", stats.FilesChanged, fileWord, verb)) +
			s.Dim.Render(fmt.Sprintf(" (%d blocks)", stats.BlocksRepaired)),
	}

	if stats.WarningsTotal > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d warnings", stats.WarningsTotal)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d errored", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files checked:     " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")

	if stats.FilesChanged > 0 {
		builder.WriteString("  Files repaired:    " +
			s.Success.Render(strconv.Itoa(stats.FilesChanged)) + "\n")
	}
	if stats.FilesWritten != stats.FilesChanged {
		builder.WriteString("  Files written:     " +
			s.SummaryValue.Render(strconv.Itoa(stats.FilesWritten)) + "\n")
	}
	if stats.FilesErrored > 0 {
		builder.WriteString("  Files errored:     " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("\n")

	builder.WriteString("  Blocks repaired:   " +
		s.SummaryValue.Render(strconv.Itoa(stats.BlocksRepaired)) + "\n")

	if stats.WarningsTotal > 0 {
		builder.WriteString("  Warnings:          " +
			s.Warning.Render(strconv.Itoa(stats.WarningsTotal)) + "\n")
	}

	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Repair finished with errors"))
	case stats.WarningsTotal > 0:
		builder.WriteString(s.Warning.Render("Repair finished with warnings"))
	default:
		builder.WriteString(s.Success.Render("Repair finished"))
	}
	builder.WriteString("\n")

	return builder.String()
}
