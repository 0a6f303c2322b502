package configloader

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/mdmend/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "format.indent_width").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownBackupModes lists valid backup mode values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownBackupModes = map[string]bool{
	"sidecar": true,
	"none":    true,
}

const (
	maxIndentWidth  = 16
	minHeadingLevel = 1
	maxHeadingLevel = 6
)

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	if cfg == nil {
		return &ValidationResult{}
	}

	result := &ValidationResult{}

	if cfg.Mode != config.ModeUnset && !cfg.Mode.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "mode",
			Value:   cfg.Mode,
			Message: fmt.Sprintf("invalid mode %q; must be one of: uniform, per-block", cfg.Mode),
		})
	}

	if cfg.Mode == config.ModePerBlock && cfg.Tag != "" {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "tag",
			Value:   cfg.Tag,
			Message: "tag is only used in uniform mode; it will be ignored",
		})
	}

	if cfg.Mode == config.ModeUniform && cfg.Tag == "" && cfg.NonInteractive {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "tag",
			Message: "uniform mode without prompts requires a target tag",
		})
	}

	if cfg.Format.IndentWidth < 0 || cfg.Format.IndentWidth > maxIndentWidth {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format.indent_width",
			Value:   cfg.Format.IndentWidth,
			Message: fmt.Sprintf("indent width must be between 0 and %d", maxIndentWidth),
		})
	}

	if cfg.Split.Level < minHeadingLevel || cfg.Split.Level > maxHeadingLevel {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "split.level",
			Value:   cfg.Split.Level,
			Message: "split level must be a heading level between 1 and 6",
		})
	}

	if cfg.Backups.Mode != "" && !knownBackupModes[cfg.Backups.Mode] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "backups.mode",
			Value:   cfg.Backups.Mode,
			Message: fmt.Sprintf("invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode),
		})
	}

	if strings.ContainsAny(cfg.Marker, " \t\n") {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "marker",
			Value:   cfg.Marker,
			Message: "marker must be a single word without whitespace",
		})
	}

	validateIgnorePatterns(cfg, result)

	return result
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidBackupMode returns true if the backup mode is valid.
func IsValidBackupMode(mode string) bool {
	return knownBackupModes[mode]
}
