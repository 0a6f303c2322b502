package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/mdmend/pkg/config"
)

// envVarPrefix is the prefix for all mdmend environment variables.
const envVarPrefix = "MDMEND_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"MODE":            {field: "mode", typ: envTypeString},
	"TAG":             {field: "tag", typ: envTypeString},
	"DEFAULT_LANG":    {field: "default_lang", typ: envTypeString},
	"MARKER":          {field: "marker", typ: envTypeString},
	"DETECT":          {field: "detect", typ: envTypeBool},
	"DRY_RUN":         {field: "dry_run", typ: envTypeBool},
	"FORMAT_ENABLED":  {field: "format.enabled", typ: envTypeBool},
	"INDENT_WIDTH":    {field: "format.indent_width", typ: envTypeInt},
	"SPLIT_LEVEL":     {field: "split.level", typ: envTypeInt},
	"BACKUPS_ENABLED": {field: "backups.enabled", typ: envTypeBool},
	"BACKUPS_MODE":    {field: "backups.mode", typ: envTypeString},
	"IGNORE":          {field: "ignore", typ: envTypeSlice},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with MDMEND_ (e.g., MDMEND_MODE).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		parts := parseSliceValue(value)
		return setSliceField(cfg, mapping.field, parts)
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "mode":
		cfg.Mode = config.Mode(value)
	case "tag":
		cfg.Tag = value
	case "default_lang":
		cfg.DefaultLang = value
	case "marker":
		cfg.Marker = value
	case "backups.mode":
		cfg.Backups.Mode = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "detect":
		cfg.Detect = value
	case "dry_run":
		cfg.DryRun = value
	case "format.enabled":
		cfg.Format.Enabled = value
	case "backups.enabled":
		cfg.Backups.Enabled = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "format.indent_width":
		cfg.Format.IndentWidth = value
	case "split.level":
		cfg.Split.Level = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// setSliceField sets a slice field on the config by field path.
func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "ignore":
		cfg.Ignore = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	return map[string]string{
		"MDMEND_MODE":            "Tag resolution mode: uniform or per-block",
		"MDMEND_TAG":             "Target language tag for uniform mode",
		"MDMEND_DEFAULT_LANG":    "Language for blocks whose tag cannot be established",
		"MDMEND_MARKER":          "Placeholder word stamped into auto-repaired blocks",
		"MDMEND_DETECT":          "Detect languages from block content: true or false",
		"MDMEND_DRY_RUN":         "Dry-run mode: true or false",
		"MDMEND_FORMAT_ENABLED":  "Re-format code bodies: true or false",
		"MDMEND_INDENT_WIDTH":    "Spaces per brace depth level",
		"MDMEND_SPLIT_LEVEL":     "Heading level for the split command (1-6)",
		"MDMEND_BACKUPS_ENABLED": "Enable backups for in-place rewrites: true or false",
		"MDMEND_BACKUPS_MODE":    "Backup mode: sidecar or none",
		"MDMEND_IGNORE":          "Comma-separated list of ignore patterns",
	}
}
