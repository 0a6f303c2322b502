// Package mdclean removes converter artifacts from Markdown documents:
// HTML table remnants, broken image links, stray escape backslashes, and
// non-standard dashed code blocks. Code block interiors are routed through
// the mdrepair normalizer and formatter.
package mdclean

import (
	"regexp"
	"strings"

	"github.com/yaklabco/mdmend/pkg/mdrepair"
)

// Options configures a clean pass.
type Options struct {
	// NoFormat disables operator spacing and re-indentation of code bodies.
	NoFormat bool

	// IndentWidth is the spaces per brace depth level; 0 means the
	// mdrepair default.
	IndentWidth int
}

var (
	dashedBlockRe = regexp.MustCompile(`(?ms)^[ \t]*-{3,}[ \t]*\n(.*?)\n[ \t]*-{3,}[ \t]*$`)
	tdTagRe       = regexp.MustCompile(`(?is)<td[^>]*>(.*?)</td>`)
	imageLinkRe   = regexp.MustCompile(`(?s)(!\[.*?\]\().*?(media[\\/]media[\\/][^)]+)\)\s*\{.*?\}`)
	escapedStarRe = regexp.MustCompile(`(?m)^[ \t]*\\\*`)
	codeBlockRe   = regexp.MustCompile("(?s)```(.*?)\n(.*?)\n```")
	brTagRe       = regexp.MustCompile(`(?i)<br\s*/?>`)
	emphasisTagRe = regexp.MustCompile(`(?i)</?(?:em|strong)>`)
	ampEntityRe   = regexp.MustCompile(`(?i)&amp;`)
	tableTagRe    = regexp.MustCompile(`(?i)</?(?:td|tr|tbody|table|colgroup|col)[^>]*>`)
	blankRunRe    = regexp.MustCompile(`\n{3,}`)

	langLineRe       = regexp.MustCompile(`^[a-zA-Z0-9+#.\-]+$`)
	tableSeparatorRe = regexp.MustCompile(`^\s*\|[\s\-:|]+\|\s*$`)
	borderOnlyRe     = regexp.MustCompile(`^[-\s]+-[-\s]*$`)
	pureDashRe       = regexp.MustCompile(`^-{3,}$`)
	columnGapRe      = regexp.MustCompile(`\s{3,}`)
)

// Clean runs the full artifact-removal pipeline over a document. The pass
// order matters: structural conversions first, then escape cleanup, then
// code block interiors, then generic HTML stripping.
func Clean(text string, opts Options) string {
	text = convertTextTables(text)
	text = dashedBlockRe.ReplaceAllStringFunc(text, convertDashedBlock)
	text = tdTagRe.ReplaceAllStringFunc(text, convertTableCell)
	text = imageLinkRe.ReplaceAllStringFunc(text, cleanImageLink)
	text = escapedStarRe.ReplaceAllString(text, " *")
	text = stripStrayBackslashes(text)
	text = codeBlockRe.ReplaceAllStringFunc(text, func(m string) string {
		return cleanCodeBlock(m, opts)
	})
	text = brTagRe.ReplaceAllString(text, "\n")
	text = emphasisTagRe.ReplaceAllString(text, "")
	text = ampEntityRe.ReplaceAllString(text, "&")
	text = tableTagRe.ReplaceAllString(text, "")
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// convertDashedBlock rewrites a dash-delimited block as a standard fenced
// block, promoting a bare identifier on the first line to the language tag.
func convertDashedBlock(match string) string {
	content := strings.TrimSpace(dashedBlockRe.FindStringSubmatch(match)[1])

	lang := ""
	lines := strings.Split(content, "\n")
	if len(lines) > 0 {
		first := strings.TrimSpace(lines[0])
		if langLineRe.MatchString(first) {
			lang = strings.ToLower(first)
			content = strings.Join(lines[1:], "\n")
		}
	}

	return "```" + lang + "\n" + strings.TrimSpace(content) + "\n```"
}

// convertTableCell turns a <td> cell into a fenced block, unless the cell
// already holds one.
func convertTableCell(match string) string {
	content := strings.TrimSpace(tdTagRe.FindStringSubmatch(match)[1])
	if strings.HasPrefix(content, "```") {
		return content
	}
	return "\n```\n" + content + "\n```\n"
}

// cleanImageLink rewrites a converter image link with attributes into a
// plain relative link with forward slashes.
func cleanImageLink(match string) string {
	parts := imageLinkRe.FindStringSubmatch(match)
	path := strings.ReplaceAll(parts[2], `\`, "/")
	return parts[1] + path + ")"
}

// stripStrayBackslashes removes converter escape backslashes line by line.
// Table-shaped lines keep theirs, since column alignment may rely on them.
func stripStrayBackslashes(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if isTableLine(line) {
			continue
		}
		lines[i] = strings.ReplaceAll(line, `\`, "")
	}
	return strings.Join(lines, "\n")
}

// cleanCodeBlock normalizes and optionally re-formats one fenced block body.
func cleanCodeBlock(match string, opts Options) string {
	parts := codeBlockRe.FindStringSubmatch(match)
	lang := strings.ToLower(strings.TrimSpace(parts[1]))

	body := mdrepair.Normalize(parts[2])
	if !opts.NoFormat {
		body = mdrepair.Format(body, lang, opts.IndentWidth)
	}

	return "```" + lang + "\n" + strings.TrimSpace(body) + "\n```"
}

// isTableLine reports whether a line looks like part of a pipe table or an
// aligned text table.
func isTableLine(line string) bool {
	stripped := strings.TrimSpace(line)

	if strings.Contains(stripped, "|") {
		if tableSeparatorRe.MatchString(stripped) {
			return true
		}
		if strings.HasPrefix(stripped, "|") || strings.HasSuffix(stripped, "|") {
			return true
		}
		if strings.Count(stripped, "|") >= 2 {
			return true
		}
	}

	// Aligned text-table border: long, mostly dashes.
	if borderOnlyRe.MatchString(stripped) && len(stripped) > 10 && strings.Count(stripped, "-") >= 5 {
		return true
	}

	// Aligned data row: wide runs of spaces separate the columns.
	if columnGapRe.MatchString(line) &&
		!strings.HasPrefix(stripped, "#") && !strings.HasPrefix(stripped, ">") {
		return true
	}

	return false
}

// convertTextTables rewrites aligned text tables (dash borders, space
// separated columns) as pipe tables. Dash borders that open code blocks
// are left alone.
func convertTextTables(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	for i := 0; i < len(lines); {
		line := lines[i]
		stripped := strings.TrimSpace(line)

		if !isTextTableBorder(stripped) {
			out = append(out, line)
			i++
			continue
		}

		// A solid dash run is a code block delimiter, and a border
		// without internal spaces most likely is too.
		if pureDashRe.MatchString(stripped) || !strings.Contains(stripped, " ") {
			out = append(out, line)
			i++
			continue
		}

		var rows []string
		i++
		for i < len(lines) {
			cur := strings.TrimSpace(lines[i])
			if cur != "" && borderOnlyRe.MatchString(cur) {
				break
			}
			if cur != "" {
				rows = append(rows, cur)
			}
			i++
		}
		out = append(out, renderPipeTable(rows)...)
		i++ // closing border
	}

	return strings.Join(out, "\n")
}

func isTextTableBorder(stripped string) bool {
	return borderOnlyRe.MatchString(stripped) &&
		len(stripped) > 10 &&
		strings.Count(stripped, "-") >= 5
}

// renderPipeTable converts collected table rows into pipe-table lines with
// a separator after the header row.
func renderPipeTable(rows []string) []string {
	var rendered []string
	for _, row := range rows {
		var columns []string
		for _, col := range columnGapRe.Split(row, -1) {
			if trimmed := strings.TrimSpace(col); trimmed != "" {
				columns = append(columns, trimmed)
			}
		}
		if len(columns) > 0 {
			rendered = append(rendered, "| "+strings.Join(columns, " | ")+" |")
		}
	}
	if len(rendered) == 0 {
		return nil
	}

	cols := strings.Count(rendered[0], "|") - 1
	separator := "| " + strings.Join(repeat("---", cols), " | ") + " |"

	result := make([]string, 0, len(rendered)+1)
	result = append(result, rendered[0], separator)
	result = append(result, rendered[1:]...)
	return result
}

func repeat(s string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = s
	}
	return out
}
