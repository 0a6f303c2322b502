package mdrepair

import (
	"regexp"
	"strings"
)

// defaultIndentWidth is the spaces emitted per brace depth level.
const defaultIndentWidth = 4

// arrowSentinel keeps `->` out of reach while `-` and `>` are spaced.
const arrowSentinel = "\x00arrow\x00"

var (
	separatorLineRe = regexp.MustCompile(`^-{3,}$`)

	// Spans the spacing rules must never reach into: string literals and
	// complete block comments.
	protectedSpanRe = regexp.MustCompile(`"[^"\n]*"|/\*.*?\*/`)

	// Compound operators listed before their prefixes so each is spaced
	// as an atomic unit.
	operatorRe = regexp.MustCompile(
		`[ \t]*(<<=|>>=|<<|>>|==|!=|<=|>=|&&|\|\||\+=|-=|\*=|/=|%=|&=|\|=|\^=|\+\+|--|=|<|>|\+|-|/|%|&|\||\^|\?|:)[ \t]*`)

	commaRe     = regexp.MustCompile(`[ \t]*,[ \t]*`)
	semicolonRe = regexp.MustCompile(`[ \t]*;[ \t]*`)
	keywordRe   = regexp.MustCompile(`\b(if|for|while|switch)\s*\(`)
	multiSpaceRe = regexp.MustCompile(`[ \t]{2,}`)
)

// Format re-indents and re-spaces a normalized code body. Only brace-family
// languages are touched; every other tag passes the body through unchanged.
// This is a heuristic re-indenter, not a parser: malformed braces only
// clamp the depth at zero, they never fail.
func Format(body, lang string, indentWidth int) string {
	if !IsBraceLanguage(lang) {
		return body
	}
	if indentWidth <= 0 {
		indentWidth = defaultIndentWidth
	}

	var out []string
	depth := 0
	inComment := false

	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			out = append(out, "")
			continue
		}
		// Dash rules are structural markers, never code.
		if separatorLineRe.MatchString(trimmed) {
			out = append(out, line)
			continue
		}

		// Inside a multi-line block comment: indent only, never re-space.
		if inComment {
			out = append(out, strings.Repeat(" ", depth*indentWidth)+trimmed)
			if strings.Contains(trimmed, "*/") {
				inComment = false
			}
			continue
		}

		spaced := spaceLine(trimmed)
		inComment = opensBlockComment(trimmed)

		emitDepth := depth
		if dedents(trimmed) && emitDepth > 0 {
			emitDepth--
		}
		out = append(out, strings.Repeat(" ", emitDepth*indentWidth)+spaced)

		depth += strings.Count(trimmed, "{") - strings.Count(trimmed, "}")
		if depth < 0 {
			depth = 0
		}
	}

	return strings.Join(out, "\n")
}

// dedents reports whether the line should be emitted one level shallower:
// a closing brace or a case/default label.
func dedents(trimmed string) bool {
	return strings.HasPrefix(trimmed, "}") ||
		strings.HasPrefix(trimmed, "case ") ||
		strings.HasPrefix(trimmed, "default:")
}

// opensBlockComment reports whether the line starts a block comment that
// does not close on the same line.
func opensBlockComment(line string) bool {
	masked := maskProtected(line)
	if i := strings.Index(masked, "//"); i >= 0 {
		masked = masked[:i]
	}
	return strings.Contains(masked, "/*")
}

// spaceLine normalizes operator and punctuation spacing on a single line.
// String literals and complete block comments pass through untouched, and a
// trailing `//` comment or unclosed `/*` opener is carried over verbatim.
func spaceLine(line string) string {
	code, comment := splitTrailingComment(line)

	var b strings.Builder
	last := 0
	for _, span := range protectedSpanRe.FindAllStringIndex(code, -1) {
		b.WriteString(spaceSpan(code[last:span[0]]))
		b.WriteString(code[span[0]:span[1]])
		last = span[1]
	}
	b.WriteString(spaceSpan(code[last:]))

	spaced := strings.TrimSpace(b.String())
	if comment == "" {
		return spaced
	}
	if spaced == "" {
		return comment
	}
	return spaced + " " + comment
}

// splitTrailingComment splits off a `//` comment or an unclosed `/*`
// opener that is not inside a string literal or a complete block comment.
func splitTrailingComment(line string) (code, comment string) {
	masked := maskProtected(line)

	i := strings.Index(masked, "//")
	if j := strings.Index(masked, "/*"); j >= 0 && (i < 0 || j < i) {
		i = j
	}
	if i >= 0 {
		return line[:i], line[i:]
	}
	return line, ""
}

// maskProtected blanks out string literals and complete block comments so
// index scans cannot match inside them.
func maskProtected(line string) string {
	return protectedSpanRe.ReplaceAllStringFunc(line, func(s string) string {
		return strings.Repeat("\x00", len(s))
	})
}

func spaceSpan(span string) string {
	if span == "" {
		return span
	}
	span = strings.ReplaceAll(span, "->", arrowSentinel)
	span = operatorRe.ReplaceAllString(span, " $1 ")
	span = commaRe.ReplaceAllString(span, ", ")
	span = semicolonRe.ReplaceAllString(span, "; ")
	span = strings.ReplaceAll(span, arrowSentinel, "->")
	span = keywordRe.ReplaceAllString(span, "$1 (")
	return multiSpaceRe.ReplaceAllString(span, " ")
}
