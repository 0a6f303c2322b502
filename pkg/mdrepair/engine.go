package mdrepair

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/mdmend/pkg/langdetect"
)

// ErrAborted is returned when the operator cancels the run at a prompt.
// The contract is all-or-nothing: callers must not persist any output
// after seeing it.
var ErrAborted = errors.New("repair aborted by user")

// DefaultLanguage is the fallback tag for blocks whose language cannot be
// established.
const DefaultLanguage = "c"

// DefaultMarker is the placeholder line injected into auto-repaired blocks
// to flag them for human review.
const DefaultMarker = "demo"

// previewLines caps the body preview shown in per-block prompts.
const previewLines = 7

// Options configures a repair run.
type Options struct {
	// Mode selects uniform or per-block tag resolution. When unset the
	// engine asks the prompter once before any block is processed.
	Mode Mode

	// UniformTag is the target tag for ModeUniform. When empty in
	// uniform mode the prompter is asked once.
	UniformTag string

	// DefaultLang is assigned to blocks with an invalid, placeholder, or
	// missing tag. Empty means DefaultLanguage.
	DefaultLang string

	// Marker is the placeholder word; it is both recognised in block
	// headers and injected into auto-repaired bodies. Empty means
	// DefaultMarker.
	Marker string

	// Detect uses content-based language detection instead of
	// DefaultLang when defaulting a block, falling back to DefaultLang
	// when detection is inconclusive.
	Detect bool

	// NoFormat disables operator spacing and re-indentation.
	NoFormat bool

	// IndentWidth is the spaces per brace depth level; 0 means the
	// package default.
	IndentWidth int
}

func (o Options) defaultLang() string {
	if o.DefaultLang == "" {
		return DefaultLanguage
	}
	return o.DefaultLang
}

func (o Options) marker() string {
	if o.Marker == "" {
		return DefaultMarker
	}
	return o.Marker
}

// Warning records one auto-repair action so machine decisions can be
// audited after the fact. Block is 1-based document order; -1 marks a
// document-level action.
type Warning struct {
	Block  int
	Reason string
	Action string
}

// Result is a completed repair: the rebuilt document, the number of blocks
// visited, and the audit trail.
type Result struct {
	Text     string
	Blocks   int
	Warnings []Warning
}

// Engine repairs one document at a time. Blocks are visited strictly in
// document order so prompt numbering and the audit trail stay stable.
type Engine struct {
	opts     Options
	prompter Prompter
}

// NewEngine creates an engine. prompter may be nil when the options fully
// determine every decision (uniform mode with a preset tag).
func NewEngine(opts Options, prompter Prompter) *Engine {
	return &Engine{opts: opts, prompter: prompter}
}

// Run repairs the document text. The only error paths are prompter
// failures and cancellation; structural anomalies in the input are always
// repaired locally and reported as warnings.
func (e *Engine) Run(ctx context.Context, text string) (*Result, error) {
	opts, err := e.resolveRunChoices(ctx)
	if err != nil {
		return nil, err
	}

	res := &Result{}

	text, split := SplitFusedFences(text)
	if split {
		res.Warnings = append(res.Warnings, Warning{
			Block:  -1,
			Reason: "fused fence delimiters",
			Action: "split onto separate lines",
		})
	}

	scanned := Scan(text)
	res.Warnings = append(res.Warnings, scanned.Warnings...)

	parts := make([]string, 0, len(scanned.Segments))
	for _, seg := range scanned.Segments {
		if !seg.IsBlock() {
			parts = append(parts, seg.Text())
			continue
		}

		res.Blocks++
		repaired, err := e.repairBlock(ctx, opts, seg, res)
		if err != nil {
			return nil, err
		}
		parts = append(parts, repaired)
	}

	out := strings.Join(parts, "\n")
	out = e.closeDanglingFence(out, res)

	res.Text = out
	return res, nil
}

// resolveRunChoices fills in the mode and uniform tag, prompting when the
// options leave them open. Answers are written back to the engine options,
// so an engine shared across a batch asks each question at most once.
func (e *Engine) resolveRunChoices(ctx context.Context) (Options, error) {
	opts := e.opts

	if opts.Mode == ModeUnset {
		if e.prompter == nil {
			return opts, errors.New("no mode configured and no prompter available")
		}
		mode, err := e.prompter.ChooseMode(ctx)
		if err != nil {
			return opts, fmt.Errorf("choose mode: %w", err)
		}
		if !mode.IsValid() {
			return opts, fmt.Errorf("invalid mode %q", mode)
		}
		opts.Mode = mode
	}

	if opts.Mode == ModeUniform && opts.UniformTag == "" {
		if e.prompter == nil {
			return opts, errors.New("uniform mode needs a target tag and no prompter is available")
		}
		tag, err := e.prompter.UniformTag(ctx)
		if err != nil {
			return opts, fmt.Errorf("uniform tag: %w", err)
		}
		opts.UniformTag = strings.ToLower(strings.TrimSpace(tag))
	}

	e.opts = opts
	return opts, nil
}

// repairBlock runs one block through deconstruction, normalization,
// formatting, and tag policy, returning its canonical fenced form.
func (e *Engine) repairBlock(ctx context.Context, opts Options, seg Segment, res *Result) (string, error) {
	parsed := Deconstruct(seg, opts.marker())

	body := Normalize(parsed.Body)
	if !opts.NoFormat {
		body = Format(body, parsed.Lang, opts.IndentWidth)
	}

	var info string
	if parsed.Tagged() {
		resolved, err := e.resolveTagged(ctx, opts, parsed, body, res)
		if err != nil {
			return "", err
		}
		info = resolved
	} else {
		info, body = e.applyDefault(opts, parsed, body, res)
	}

	body = strings.TrimSpace(body)
	return fenceMarker + info + "\n" + body + "\n" + fenceMarker, nil
}

// applyDefault handles the defaulting branch: sentinel or missing tags get
// the configured default language, and the body is stamped with the
// placeholder marker exactly once.
func (e *Engine) applyDefault(opts Options, parsed ParsedBlock, body string, res *Result) (string, string) {
	var reason string
	switch parsed.Lang {
	case TagInvalid:
		reason = "unrecognised language identifier"
	case TagDemo:
		reason = "placeholder tag from a previous repair"
	default:
		reason = "missing language tag"
	}

	tag := opts.defaultLang()
	if opts.Detect {
		if detected := langdetect.Detect([]byte(body)); detected != langdetect.Unknown {
			tag = detected
		}
	}

	marker := opts.marker()
	switch trimmed := strings.TrimSpace(body); {
	case trimmed == "":
		body = marker
	case !strings.HasPrefix(trimmed, marker):
		body = marker + "\n" + body
	}

	res.Warnings = append(res.Warnings, Warning{
		Block:  res.Blocks,
		Reason: reason,
		Action: fmt.Sprintf("tagged %q and marked for review", tag),
	})
	return tag, body
}

// resolveTagged handles blocks that already carry a recognised language,
// per the run mode.
func (e *Engine) resolveTagged(ctx context.Context, opts Options, parsed ParsedBlock, body string, res *Result) (string, error) {
	if opts.Mode == ModeUniform {
		return opts.UniformTag, nil
	}

	if e.prompter == nil {
		return parsed.Info(), nil
	}

	decision, err := e.prompter.DecideBlock(ctx, BlockQuery{
		Index:    res.Blocks,
		Tag:      parsed.Info(),
		Preview:  preview(body),
		Detected: langdetect.Detect([]byte(body)),
	})
	if err != nil {
		return "", fmt.Errorf("block %d: %w", res.Blocks, err)
	}

	switch decision.Kind {
	case DecisionReplace:
		return strings.ToLower(strings.TrimSpace(decision.Tag)), nil
	case DecisionClear:
		return "", nil
	case DecisionCancel:
		return "", ErrAborted
	default:
		return parsed.Info(), nil
	}
}

// closeDanglingFence is the last line of defense: if the reassembled
// document still holds an odd number of fence delimiters, one closing
// fence is appended as the final line.
func (e *Engine) closeDanglingFence(text string, res *Result) string {
	open := false
	for _, line := range strings.Split(text, "\n") {
		if IsFenceLine(line) {
			open = !open
		}
	}
	if !open {
		return text
	}

	res.Warnings = append(res.Warnings, Warning{
		Block:  -1,
		Reason: "odd number of fence delimiters after reassembly",
		Action: "appended a closing fence at end of document",
	})
	return strings.TrimRight(text, " \t\n") + "\n" + fenceMarker + "\n"
}

// preview returns the first few body lines for a prompt, with an ellipsis
// when the body continues.
func preview(body string) string {
	lines := strings.Split(body, "\n")
	if len(lines) <= previewLines {
		return body
	}
	return strings.Join(lines[:previewLines], "\n") + "\n..."
}
