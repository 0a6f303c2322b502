// Package mdhead promotes bold-only lines to Markdown headings. Converters
// frequently emit section titles as standalone bold paragraphs; this package
// finds those lines and asks the operator which heading level each should
// carry, building up a document outline as it goes.
package mdhead

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/yaklabco/mdmend/pkg/mdrepair"
)

// ErrAborted is returned when the operator cancels the run at a prompt.
// No output should be written after cancellation.
var ErrAborted = errors.New("heading correction aborted by user")

// Heading level bounds.
const (
	MinLevel = 1
	MaxLevel = 6
)

// Heading is one entry in the document outline: an existing heading or one
// assigned earlier in the same run.
type Heading struct {
	Level int
	Text  string
}

// LevelKind enumerates the possible answers to a heading-level prompt.
type LevelKind int

const (
	// LevelSkip leaves the candidate line as it is.
	LevelSkip LevelKind = iota

	// LevelAssign promotes the line to the level in LevelDecision.Level.
	LevelAssign

	// LevelCancel aborts the whole run; no output is written.
	LevelCancel
)

// LevelDecision is the tagged result of a heading-level prompt.
type LevelDecision struct {
	Kind  LevelKind
	Level int
}

// LevelQuery describes one candidate line to the operator: its position, its
// title text, the lowest level still selectable, and the outline collected so
// far for context.
type LevelQuery struct {
	Line     int
	Text     string
	MinLevel int
	Outline  []Heading
}

// Prompter is the capability interface for the interactive decisions of a
// heading run. The CLI wires a terminal implementation; tests use a scripted
// double.
type Prompter interface {
	// HeadingLevel asks which level a candidate line should get.
	HeadingLevel(ctx context.Context, q LevelQuery) (LevelDecision, error)

	// KeepTopLevel is asked once, after the first level-one assignment,
	// and decides whether later candidates may still become level one.
	KeepTopLevel(ctx context.Context) (bool, error)
}

// Result carries the corrected document and what changed.
type Result struct {
	Text     string
	Promoted int
	Outline  []Heading
}

var (
	boldLineRe = regexp.MustCompile(`^\s*\*\*(.*?)\*\*\s*$`)
	headingRe  = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
)

// Correct walks the document and prompts for every line that consists of a
// single bold span. Assigned headings join the outline shown in later
// prompts. Lines inside fenced code blocks are never candidates.
//
// A document typically has exactly one level-one heading, so once the first
// one is assigned the prompter is asked whether to keep offering level one;
// if not, later prompts start at level two and lower answers are clamped.
func Correct(ctx context.Context, text string, prompter Prompter) (*Result, error) {
	if prompter == nil {
		return nil, errors.New("mdhead: prompter is required")
	}

	lines := strings.Split(text, "\n")
	outline := collectOutline(lines)

	minLevel := MinLevel
	askedTopLevel := false
	promoted := 0
	inFence := false

	for i, line := range lines {
		if mdrepair.IsFenceLine(line) {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}

		m := boldLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		title := strings.TrimSpace(m[1])
		if title == "" {
			continue
		}

		dec, err := prompter.HeadingLevel(ctx, LevelQuery{
			Line:     i + 1,
			Text:     title,
			MinLevel: minLevel,
			Outline:  outline,
		})
		if err != nil {
			return nil, err
		}

		switch dec.Kind {
		case LevelSkip:
			continue
		case LevelCancel:
			return nil, ErrAborted
		case LevelAssign:
			// fall through
		default:
			return nil, fmt.Errorf("mdhead: unknown decision kind %d", dec.Kind)
		}

		level := clampLevel(dec.Level, minLevel)
		lines[i] = strings.Repeat("#", level) + " " + title
		outline = append(outline, Heading{Level: level, Text: title})
		promoted++

		if level == MinLevel && !askedTopLevel {
			askedTopLevel = true
			keep, err := prompter.KeepTopLevel(ctx)
			if err != nil {
				return nil, err
			}
			if !keep {
				minLevel = MinLevel + 1
			}
		}
	}

	return &Result{
		Text:     strings.Join(lines, "\n"),
		Promoted: promoted,
		Outline:  outline,
	}, nil
}

// collectOutline gathers the headings already present in the document,
// skipping fenced code blocks.
func collectOutline(lines []string) []Heading {
	var outline []Heading
	inFence := false

	for _, line := range lines {
		if mdrepair.IsFenceLine(line) {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		if m := headingRe.FindStringSubmatch(line); m != nil {
			outline = append(outline, Heading{
				Level: len(m[1]),
				Text:  strings.TrimSpace(m[2]),
			})
		}
	}

	return outline
}

func clampLevel(level, minLevel int) int {
	if level < minLevel {
		return minLevel
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}
