package config

import "bytes"

// GenerateTemplate creates a commented configuration file template.
func GenerateTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(`# mdmend configuration
# See: https://github.com/yaklabco/mdmend

# Tag resolution mode: uniform or per-block.
# Unset means mdmend asks interactively.
# mode: uniform

# Target language tag for uniform mode
# tag: c

# Language assigned to blocks whose tag cannot be established
default_lang: c

# Placeholder word stamped into auto-repaired blocks
marker: demo

# Guess the language of untagged blocks from their content
# detect: false

# Code body re-formatting inside repaired blocks
format:
  enabled: true
  indent_width: 4

# Heading-based document splitting
split:
  level: 2
  prologue: true

# Backup configuration for in-place rewrites
backups:
  enabled: true
  mode: sidecar

# File patterns to skip (glob patterns)
# ignore:
#   - "vendor/**"
#   - "node_modules/**"
`)

	return buf.Bytes()
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# mdmend configuration
# See: https://github.com/yaklabco/mdmend`
}
