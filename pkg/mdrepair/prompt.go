package mdrepair

import "context"

// Mode selects how recognised language tags are resolved for a run.
type Mode string

const (
	// ModeUnset means the mode has not been chosen yet; the engine asks
	// the prompter before processing any block.
	ModeUnset Mode = ""

	// ModeUniform applies one operator-supplied tag to every block that
	// already carries a recognised language.
	ModeUniform Mode = "uniform"

	// ModePerBlock asks the operator about each recognised block in turn.
	ModePerBlock Mode = "per-block"
)

// IsValid reports whether the mode is one of the selectable modes.
func (m Mode) IsValid() bool {
	return m == ModeUniform || m == ModePerBlock
}

// DecisionKind enumerates the possible answers to a per-block prompt.
type DecisionKind int

const (
	// DecisionKeep retains the block's original tag (and title).
	DecisionKeep DecisionKind = iota

	// DecisionReplace swaps in the tag carried by Decision.Tag.
	DecisionReplace

	// DecisionClear removes the language tag entirely.
	DecisionClear

	// DecisionCancel aborts the whole run; no output is written.
	DecisionCancel
)

// Decision is the tagged result of a per-block prompt.
type Decision struct {
	Kind DecisionKind
	Tag  string
}

// BlockQuery describes one block to the operator: its position in the
// document, its current tag, a short body preview, and the language the
// detector would guess for it.
type BlockQuery struct {
	Index    int
	Tag      string
	Preview  string
	Detected string
}

// Prompter is the capability interface for interactive decisions. The CLI
// wires a terminal implementation; tests use a scripted double. Every
// method may report cancellation by returning ErrAborted.
type Prompter interface {
	// ChooseMode asks which resolution mode the run should use.
	ChooseMode(ctx context.Context) (Mode, error)

	// UniformTag asks for the single target tag used by ModeUniform.
	UniformTag(ctx context.Context) (string, error)

	// DecideBlock asks what to do with one recognised block.
	DecideBlock(ctx context.Context, q BlockQuery) (Decision, error)
}
