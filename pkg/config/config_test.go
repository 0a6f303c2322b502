package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdmend/pkg/config"
)

func TestModeIsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, config.ModeUniform.IsValid())
	assert.True(t, config.ModePerBlock.IsValid())
	assert.False(t, config.ModeUnset.IsValid())
	assert.False(t, config.Mode("interactive").IsValid())
}

func TestNewConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()

	assert.Equal(t, config.ModeUnset, cfg.Mode)
	assert.Equal(t, "c", cfg.DefaultLang)
	assert.Equal(t, "demo", cfg.Marker)
	assert.True(t, cfg.Format.Enabled)
	assert.Equal(t, 4, cfg.Format.IndentWidth)
	assert.Equal(t, 2, cfg.Split.Level)
	assert.True(t, cfg.Backups.Enabled)
	assert.Equal(t, "sidecar", cfg.Backups.Mode)
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Mode = config.ModeUniform
	cfg.Tag = "python"
	cfg.Ignore = []string{"vendor/**", "node_modules/**"}

	data, err := cfg.ToYAML()
	require.NoError(t, err)

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)

	assert.Equal(t, cfg.Mode, parsed.Mode)
	assert.Equal(t, cfg.Tag, parsed.Tag)
	assert.Equal(t, cfg.Marker, parsed.Marker)
	assert.Equal(t, cfg.Ignore, parsed.Ignore)
	assert.Equal(t, cfg.Format, parsed.Format)
}

func TestFromYAMLInvalid(t *testing.T) {
	t.Parallel()

	_, err := config.FromYAML([]byte("mode: [not, a, scalar"))
	assert.Error(t, err)
}

func TestToYAMLWithHeader(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	data, err := cfg.ToYAMLWithHeader(config.DefaultTemplateHeader())
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.HasPrefix(text, "# mdmend configuration"))
	assert.Contains(t, text, "default_lang: c")
}

func TestClone(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Ignore = []string{"vendor/**"}
	cfg.DryRun = true

	clone := cfg.Clone()
	require.NotNil(t, clone)
	assert.Equal(t, cfg, clone)

	// Mutating the clone must not touch the original.
	clone.Ignore[0] = "changed/**"
	assert.Equal(t, "vendor/**", cfg.Ignore[0])
}

func TestGenerateTemplateParses(t *testing.T) {
	t.Parallel()

	tpl := config.GenerateTemplate()
	cfg, err := config.FromYAML(tpl)
	require.NoError(t, err)

	assert.Equal(t, "c", cfg.DefaultLang)
	assert.Equal(t, "demo", cfg.Marker)
	assert.True(t, cfg.Format.Enabled)
}
