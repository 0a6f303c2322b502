// Package prompt implements the interactive prompters with huh forms. It is
// the only place that talks to the terminal during a repair run; everything
// below it works through the prompter interfaces.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/yaklabco/mdmend/internal/ui/pretty"
	"github.com/yaklabco/mdmend/pkg/mdhead"
	"github.com/yaklabco/mdmend/pkg/mdrepair"
)

// fallbackWidth is used when the terminal size cannot be determined.
const fallbackWidth = 80

// Console prompts on the controlling terminal.
type Console struct {
	styles *pretty.Styles
	color  bool
}

// NewConsole creates a terminal prompter. Styling follows the color mode
// resolved for stdout.
func NewConsole(colorEnabled bool) *Console {
	return &Console{
		styles: pretty.NewStyles(colorEnabled),
		color:  colorEnabled,
	}
}

// Interactive reports whether both stdin and stdout are terminals, i.e.
// whether prompting is possible at all.
func Interactive() bool {
	return isTerminal(os.Stdin) && isTerminal(os.Stdout)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// width returns the terminal width for preview trimming.
func width() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return fallbackWidth
	}
	return w
}

// ChooseMode implements mdrepair.Prompter.
func (c *Console) ChooseMode(ctx context.Context) (mdrepair.Mode, error) {
	var mode mdrepair.Mode

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[mdrepair.Mode]().
				Title("How should recognised language tags be handled?").
				Options(
					huh.NewOption("Uniform: apply one tag to every recognised block", mdrepair.ModeUniform),
					huh.NewOption("Per-block: decide for each block in turn", mdrepair.ModePerBlock),
				).
				Value(&mode),
		),
	).WithShowHelp(false)

	if err := form.RunWithContext(ctx); err != nil {
		return mdrepair.ModeUnset, mapFormErr(err)
	}
	return mode, nil
}

// UniformTag implements mdrepair.Prompter.
func (c *Console) UniformTag(ctx context.Context) (string, error) {
	var tag string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Language tag to apply to every recognised block").
				Placeholder("e.g. c, python, go").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("tag must not be empty")
					}
					if strings.ContainsAny(s, " \t") {
						return errors.New("tag must be a single word")
					}
					return nil
				}).
				Value(&tag),
		),
	).WithShowHelp(false)

	if err := form.RunWithContext(ctx); err != nil {
		return "", mapFormErr(err)
	}
	return strings.ToLower(strings.TrimSpace(tag)), nil
}

// blockChoice is the first stage of a per-block decision.
type blockChoice int

const (
	choiceKeep blockChoice = iota
	choiceReplace
	choiceClear
	choiceCancel
)

// DecideBlock implements mdrepair.Prompter. The block body preview is
// syntax highlighted to make mislabeled languages easier to spot.
func (c *Console) DecideBlock(ctx context.Context, q mdrepair.BlockQuery) (mdrepair.Decision, error) {
	title := fmt.Sprintf("Block %d is tagged %q", q.Index, q.Tag)
	if q.Detected != "" && q.Detected != q.Tag {
		title += fmt.Sprintf(" (detector suggests %q)", q.Detected)
	}

	var choice blockChoice
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[blockChoice]().
				Title(title).
				Description(c.renderPreview(q)).
				Options(
					huh.NewOption("Keep the current tag", choiceKeep),
					huh.NewOption("Replace the tag", choiceReplace),
					huh.NewOption("Remove the tag", choiceClear),
					huh.NewOption("Cancel the whole run", choiceCancel),
				).
				Value(&choice),
		),
	).WithShowHelp(false)

	if err := form.RunWithContext(ctx); err != nil {
		return mdrepair.Decision{}, mapFormErr(err)
	}

	switch choice {
	case choiceKeep:
		return mdrepair.Decision{Kind: mdrepair.DecisionKeep}, nil
	case choiceClear:
		return mdrepair.Decision{Kind: mdrepair.DecisionClear}, nil
	case choiceCancel:
		return mdrepair.Decision{Kind: mdrepair.DecisionCancel}, nil
	case choiceReplace:
		// Second stage below.
	}

	tag, err := c.replacementTag(ctx, q.Detected)
	if err != nil {
		return mdrepair.Decision{}, err
	}
	return mdrepair.Decision{Kind: mdrepair.DecisionReplace, Tag: tag}, nil
}

// replacementTag asks for the new tag, offering the detector's guess as the
// starting value.
func (c *Console) replacementTag(ctx context.Context, suggested string) (string, error) {
	tag := suggested

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("New language tag").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("tag must not be empty")
					}
					return nil
				}).
				Value(&tag),
		),
	).WithShowHelp(false)

	if err := form.RunWithContext(ctx); err != nil {
		return "", mapFormErr(err)
	}
	return strings.ToLower(strings.TrimSpace(tag)), nil
}

// renderPreview highlights and width-clamps the block preview.
func (c *Console) renderPreview(q mdrepair.BlockQuery) string {
	highlighted := pretty.HighlightBlock(q.Preview, q.Tag, c.color)

	maxWidth := width() - 4
	if maxWidth < 20 {
		maxWidth = 20
	}

	lines := strings.Split(highlighted, "\n")
	for i, line := range lines {
		if len(line) > maxWidth && !strings.Contains(line, "\x1b") {
			lines[i] = line[:maxWidth]
		}
	}
	return strings.Join(lines, "\n")
}

// HeadingLevel implements mdhead.Prompter.
func (c *Console) HeadingLevel(ctx context.Context, q mdhead.LevelQuery) (mdhead.LevelDecision, error) {
	options := make([]huh.Option[int], 0, mdhead.MaxLevel+2)
	for level := q.MinLevel; level <= mdhead.MaxLevel; level++ {
		label := fmt.Sprintf("H%d  %s %s", level, strings.Repeat("#", level), q.Text)
		options = append(options, huh.NewOption(label, level))
	}
	options = append(options,
		huh.NewOption("Skip this line", 0),
		huh.NewOption("Cancel the whole run", -1),
	)

	var answer int
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title(fmt.Sprintf("Line %d: make %q a heading?", q.Line, q.Text)).
				Description(c.renderOutline(q.Outline)).
				Options(options...).
				Value(&answer),
		),
	).WithShowHelp(false)

	if err := form.RunWithContext(ctx); err != nil {
		return mdhead.LevelDecision{}, mapFormErr(err)
	}

	switch {
	case answer == 0:
		return mdhead.LevelDecision{Kind: mdhead.LevelSkip}, nil
	case answer < 0:
		return mdhead.LevelDecision{Kind: mdhead.LevelCancel}, nil
	default:
		return mdhead.LevelDecision{Kind: mdhead.LevelAssign, Level: answer}, nil
	}
}

// KeepTopLevel implements mdhead.Prompter.
func (c *Console) KeepTopLevel(ctx context.Context) (bool, error) {
	keep := false

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("A top-level heading is now assigned. Keep offering H1 for later lines?").
				Affirmative("Yes").
				Negative("No").
				Value(&keep),
		),
	).WithShowHelp(false)

	if err := form.RunWithContext(ctx); err != nil {
		return false, mapFormErr(err)
	}
	return keep, nil
}

// renderOutline shows the document outline collected so far, indented by
// heading level. Only the tail is shown for long documents.
func (c *Console) renderOutline(outline []mdhead.Heading) string {
	if len(outline) == 0 {
		return c.styles.Dim.Render("No headings yet")
	}

	const maxShown = 12
	start := 0
	if len(outline) > maxShown {
		start = len(outline) - maxShown
	}

	var b strings.Builder
	b.WriteString(c.styles.Bold.Render("Outline:"))
	if start > 0 {
		b.WriteString(c.styles.Dim.Render(" (" + strconv.Itoa(start) + " earlier omitted)"))
	}
	for _, h := range outline[start:] {
		b.WriteString("\n")
		b.WriteString(strings.Repeat("  ", h.Level-1))
		b.WriteString(c.styles.Dim.Render(strings.Repeat("#", h.Level) + " "))
		b.WriteString(h.Text)
	}
	return b.String()
}

// mapFormErr converts huh's cancellation into the engine's abort sentinel.
func mapFormErr(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return mdrepair.ErrAborted
	}
	return err
}
