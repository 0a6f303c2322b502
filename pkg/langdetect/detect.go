// Package langdetect guesses the programming language of a code block
// body. It backs the repair engine's --detect defaulting branch and the
// hint shown in per-block prompts, wrapping go-enry with a few cheap
// pattern checks for the languages converter output actually contains.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Unknown is returned when no language can be established with
// confidence. Callers fall back to their configured default.
const Unknown = "text"

// candidates are the enry classifier candidates, kept aligned with the
// repair engine's known-language set.
var candidates = []string{
	"C", "C++", "Python", "Java", "JavaScript", "TypeScript",
	"Go", "Rust", "Ruby", "PHP", "Shell", "SQL",
	"JSON", "YAML", "HTML", "CSS", "XML", "Markdown",
}

// Detect returns a lowercase fence tag for the content, or Unknown when
// detection is inconclusive.
func Detect(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return Unknown
	}

	// A shebang beats every heuristic.
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return toTag(lang)
	}

	if lang := detectByPattern(trimmed); lang != "" {
		return lang
	}

	if lang, safe := enry.GetLanguageByClassifier(content, candidates); safe && lang != "" {
		return toTag(lang)
	}

	return Unknown
}

// detectByPattern applies high-signal structural checks before handing the
// content to the statistical classifier.
func detectByPattern(trimmed []byte) string {
	text := string(trimmed)

	switch {
	case bytes.HasPrefix(trimmed, []byte("package ")):
		return "go"
	case bytes.HasPrefix(trimmed, []byte("#include")):
		return "c"
	case bytes.HasPrefix(trimmed, []byte("<?php")):
		return "php"
	case looksLikeJSON(trimmed):
		return "json"
	case looksLikeHTML(trimmed):
		return "html"
	case looksLikeSQL(text):
		return "sql"
	case strings.Contains(text, "def ") && strings.Contains(text, "):"):
		return "python"
	case strings.Contains(text, "fn main()") || strings.Contains(text, "println!"):
		return "rust"
	case strings.Contains(text, "public static void main"):
		return "java"
	case strings.Contains(text, "console.log") || strings.Contains(text, "=>"):
		return "javascript"
	}

	return ""
}

func looksLikeJSON(trimmed []byte) bool {
	return (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
		bytes.Contains(trimmed, []byte(`"`))
}

func looksLikeHTML(trimmed []byte) bool {
	lower := bytes.ToLower(trimmed)
	return bytes.Contains(lower, []byte("<!doctype html")) ||
		bytes.Contains(lower, []byte("<html")) ||
		bytes.Contains(lower, []byte("<body>"))
}

func looksLikeSQL(text string) bool {
	upper := strings.ToUpper(strings.TrimSpace(text))
	for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE TABLE"} {
		if strings.HasPrefix(upper, kw) {
			return true
		}
	}
	return false
}

// toTag converts an enry language name to a lowercase fence tag.
func toTag(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
