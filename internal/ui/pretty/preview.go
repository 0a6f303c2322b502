package pretty

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// previewStyle is the chroma style used for block previews.
const previewStyle = "monokai"

// HighlightBlock renders a code block body with syntax highlighting for the
// given language tag. With color disabled, or when highlighting fails, the
// body comes back unchanged. Unknown tags fall back to chroma's analysis.
func HighlightBlock(body, tag string, colorEnabled bool) string {
	if !colorEnabled || strings.TrimSpace(body) == "" {
		return body
	}

	var lexer chroma.Lexer
	if tag != "" {
		lexer = lexers.Get(tag)
	}
	if lexer == nil {
		lexer = lexers.Analyse(body)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(previewStyle)
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		return body
	}

	iterator, err := lexer.Tokenise(nil, body)
	if err != nil {
		return body
	}

	var out strings.Builder
	if err := formatter.Format(&out, style, iterator); err != nil {
		return body
	}

	return out.String()
}
