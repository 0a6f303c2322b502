// Package config defines core configuration types for mdmend.
// These types are pure data structures with no dependencies on config loaders.
package config

// Mode selects how code block language tags are resolved during repair.
type Mode string

const (
	// ModeUnset defers the choice to an interactive prompt.
	ModeUnset Mode = ""
	// ModeUniform rewrites every tagged block to a single target tag.
	ModeUniform Mode = "uniform"
	// ModePerBlock asks about each tagged block individually.
	ModePerBlock Mode = "per-block"
)

// IsValid returns true for a concrete, selectable mode.
func (m Mode) IsValid() bool {
	switch m {
	case ModeUniform, ModePerBlock:
		return true
	default:
		return false
	}
}

// FormatConfig controls code body re-formatting inside repaired blocks.
type FormatConfig struct {
	Enabled     bool `mapstructure:"enabled" yaml:"enabled"`
	IndentWidth int  `mapstructure:"indent_width" yaml:"indent_width"`
}

// SplitConfig controls the split command.
type SplitConfig struct {
	// Level is the heading level documents are split at (1-6).
	Level int `mapstructure:"level" yaml:"level"`

	// Prologue copies text preceding the first split heading into the
	// first part instead of dropping it.
	Prologue bool `mapstructure:"prologue" yaml:"prologue"`
}

// BackupsConfig controls backup behavior when rewriting files in place.
type BackupsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Mode    string `mapstructure:"mode" yaml:"mode"` // "sidecar" or "none"
}

// Config is the root configuration structure for mdmend.
type Config struct {
	// Mode selects uniform or per-block tag resolution.
	Mode Mode `mapstructure:"mode" yaml:"mode"`

	// Tag is the target language tag for uniform mode.
	Tag string `mapstructure:"tag" yaml:"tag"`

	// DefaultLang is assigned to blocks whose language cannot be established.
	DefaultLang string `mapstructure:"default_lang" yaml:"default_lang"`

	// Marker is the placeholder word stamped into auto-repaired blocks.
	Marker string `mapstructure:"marker" yaml:"marker"`

	// Detect enables content-based language detection for untagged blocks.
	Detect bool `mapstructure:"detect" yaml:"detect"`

	// Format configures code body re-formatting.
	Format FormatConfig `mapstructure:"format" yaml:"format"`

	// Split configures heading-based document splitting.
	Split SplitConfig `mapstructure:"split" yaml:"split"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `mapstructure:"ignore" yaml:"ignore"`

	// Backups configures backup behavior for in-place rewrites.
	Backups BackupsConfig `mapstructure:"backups" yaml:"backups"`

	// CLI-level options (not persisted to config files).

	// DryRun shows what would change without writing anything.
	DryRun bool `mapstructure:"-" yaml:"-"`

	// Output is an explicit output path; empty means in-place.
	Output string `mapstructure:"-" yaml:"-"`

	// NonInteractive disables prompts even on a terminal.
	NonInteractive bool `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Mode:        ModeUnset,
		DefaultLang: "c",
		Marker:      "demo",
		Format: FormatConfig{
			Enabled:     true,
			IndentWidth: 4,
		},
		Split: SplitConfig{
			Level:    2,
			Prologue: true,
		},
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    "sidecar",
		},
	}
}
