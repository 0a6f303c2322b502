package configloader

import "github.com/yaklabco/mdmend/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	// Start with a shallow copy of base
	result := *base

	// Scalars: override overwrites base if set (non-zero value)
	if override.Mode != config.ModeUnset {
		result.Mode = override.Mode
	}
	if override.Tag != "" {
		result.Tag = override.Tag
	}
	if override.DefaultLang != "" {
		result.DefaultLang = override.DefaultLang
	}
	if override.Marker != "" {
		result.Marker = override.Marker
	}
	if override.Output != "" {
		result.Output = override.Output
	}

	// Booleans: false is the zero value, so a config file cannot unset a
	// flag set at a lower precedence level. CLI flags work because cobra
	// only populates the override when the flag was given.
	if override.Detect {
		result.Detect = override.Detect
	}
	if override.DryRun {
		result.DryRun = override.DryRun
	}
	if override.NonInteractive {
		result.NonInteractive = override.NonInteractive
	}

	// Format: merge individual fields
	if override.Format.Enabled {
		result.Format.Enabled = override.Format.Enabled
	}
	if override.Format.IndentWidth != 0 {
		result.Format.IndentWidth = override.Format.IndentWidth
	}

	// Split: merge individual fields
	if override.Split.Level != 0 {
		result.Split.Level = override.Split.Level
	}
	if override.Split.Prologue {
		result.Split.Prologue = override.Split.Prologue
	}

	// Backups: merge individual fields
	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}
	if override.Backups.Enabled {
		result.Backups.Enabled = override.Backups.Enabled
	}

	// Slices: override replaces base entirely if non-nil
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return &result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
