package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdmend/internal/configloader"
	"github.com/yaklabco/mdmend/internal/logging"
	"github.com/yaklabco/mdmend/internal/prompt"
	"github.com/yaklabco/mdmend/internal/ui/pretty"
	"github.com/yaklabco/mdmend/pkg/config"
	"github.com/yaklabco/mdmend/pkg/fsutil"
	"github.com/yaklabco/mdmend/pkg/mdrepair"
	"github.com/yaklabco/mdmend/pkg/mdsplit"
	"github.com/yaklabco/mdmend/pkg/runner"
)

// ErrFilesErrored is returned when some files could not be repaired.
var ErrFilesErrored = errors.New("some files could not be repaired")

// ErrChangesPending is returned by dry runs that found files needing repair.
var ErrChangesPending = errors.New("repairs pending")

type repairFlags struct {
	mode           string
	tag            string
	defaultLang    string
	marker         string
	detect         bool
	noFormat       bool
	indent         int
	ignore         []string
	dryRun         bool
	noBackups      bool
	output         string
	nonInteractive bool
}

func newRepairCommand() *cobra.Command {
	flags := &repairFlags{}

	cmd := &cobra.Command{
		Use:   "repair [paths...]",
		Short: "Repair code blocks in Markdown files",
		Long:  repairLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepair(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.mode, "mode", "", "tag resolution mode: uniform, per-block")
	cmd.Flags().StringVar(&flags.tag, "lang", "", "target language tag for uniform mode")
	cmd.Flags().StringVar(&flags.defaultLang, "default-lang", "", "tag assigned to unidentifiable blocks")
	cmd.Flags().StringVar(&flags.marker, "marker", "", "placeholder word stamped into auto-repaired blocks")
	cmd.Flags().BoolVar(&flags.detect, "detect", false, "detect the language of untagged blocks from their content")
	cmd.Flags().BoolVar(&flags.noFormat, "no-format", false, "skip code body re-formatting")
	cmd.Flags().IntVar(&flags.indent, "indent", 0, "spaces per indentation level for brace languages")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to skip")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "show repairs without writing any file")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "disable sidecar backups")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write the repaired document here instead of in place (single input only)")
	cmd.Flags().BoolVar(&flags.nonInteractive, "non-interactive", false, "never prompt, even on a terminal")

	return cmd
}

const repairLongDescription = `Repair broken code blocks in Markdown files.

Dashed delimiter blocks become standard fenced blocks, language tags are
validated and resolved, emphasis leakage is stripped from code, brace
language bodies are re-formatted, and unbalanced fences are closed.

By default, repairs all .md and .markdown files in the current directory
and subdirectories, in place with sidecar backups. Specify paths to limit
the run.

Examples:
  mdmend repair                        # Repair current directory
  mdmend repair docs/                  # Repair docs directory
  mdmend repair in.md -o out.md        # Repair one file to a new path
  mdmend repair --mode uniform --lang c
  mdmend repair --detect --dry-run     # Preview with language detection`

func runRepair(cmd *cobra.Command, args []string, flags *repairFlags) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	finalCfg, err := loadConfig(ctx, cmd, repairCLIConfig(cmd, flags), logger)
	if err != nil {
		return err
	}

	// Booleans that switch defaults off cannot travel through the merge.
	if flags.noFormat {
		finalCfg.Format.Enabled = false
	}
	if flags.noBackups {
		finalCfg.Backups.Enabled = false
	}

	colorMode, _ := cmd.Flags().GetString("color")
	colorEnabled := pretty.IsColorEnabled(colorMode, cmd.OutOrStdout())
	styles := pretty.NewStyles(colorEnabled)

	prompter, warn := resolvePrompter(finalCfg, colorEnabled)
	if warn != "" {
		logger.Warn(warn)
	}

	if flags.output != "" {
		return repairToOutput(ctx, cmd, args, finalCfg, prompter, flags.output)
	}

	repairOpts := repairOptionsFromConfig(finalCfg)

	runOpts := runner.Options{
		Paths:       args,
		WorkingDir:  workingDir(),
		Extensions:  runner.DefaultExtensions(),
		IgnoreGlobs: finalCfg.Ignore,
		Repair:      repairOpts,
		DryRun:      finalCfg.DryRun,
		Backup: runner.BackupOptions{
			Enabled: finalCfg.Backups.Enabled,
			Mode:    finalCfg.Backups.Mode,
		},
	}

	logger.Debug("starting repair run",
		logging.FieldMode, finalCfg.Mode,
		logging.FieldDryRun, finalCfg.DryRun,
		logging.FieldDetect, finalCfg.Detect,
	)

	result, err := runner.New(prompter).Run(ctx, runOpts)
	if errors.Is(err, mdrepair.ErrAborted) {
		return mdrepair.ErrAborted
	}
	if err != nil {
		return fmt.Errorf("repair run: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, outcome := range result.Files {
		if line := styles.FormatFileOutcome(outcome); line != "" {
			fmt.Fprint(out, line)
		}
	}
	fmt.Fprint(out, styles.FormatSummaryOneLine(result.Stats))

	switch ExitCodeFromResult(result, finalCfg.DryRun) {
	case ExitRepairErrors:
		return ErrFilesErrored
	case ExitChangesPending:
		return ErrChangesPending
	}
	return nil
}

// repairCLIConfig maps repair flags onto a config overlay. Only flags the
// user actually set are carried, so the merge cannot clobber file values.
func repairCLIConfig(cmd *cobra.Command, flags *repairFlags) *config.Config {
	cfg := &config.Config{}

	if cmd.Flags().Changed("mode") {
		cfg.Mode = config.Mode(flags.mode)
	}
	cfg.Tag = flags.tag
	cfg.DefaultLang = flags.defaultLang
	cfg.Marker = flags.marker
	cfg.Detect = flags.detect
	cfg.DryRun = flags.dryRun
	cfg.NonInteractive = flags.nonInteractive
	if flags.indent > 0 {
		cfg.Format.IndentWidth = flags.indent
	}
	if flags.ignore != nil {
		cfg.Ignore = flags.ignore
	}

	return cfg
}

// loadConfig resolves the layered configuration for a command.
func loadConfig(ctx context.Context, cmd *cobra.Command, cliCfg *config.Config, logger *log.Logger) (*config.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workingDir(),
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(errors.New("failed to load configuration"), err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", "files", loadResult.LoadedFrom)
	}

	return loadResult.Config, nil
}

// resolvePrompter picks the interactive surface for a run. Prompts need a
// real terminal on both ends; without one, or with --non-interactive, the
// engine falls back to keeping existing tags, which requires a mode.
func resolvePrompter(cfg *config.Config, colorEnabled bool) (mdrepair.Prompter, string) {
	if cfg.NonInteractive || !prompt.Interactive() {
		var warn string
		if cfg.Mode == config.ModePerBlock && !cfg.NonInteractive {
			warn = "per-block mode needs a terminal; existing tags will be kept"
		}
		return nil, warn
	}
	return prompt.NewConsole(colorEnabled), ""
}

// repairOptionsFromConfig translates the resolved config into engine options.
func repairOptionsFromConfig(cfg *config.Config) mdrepair.Options {
	return mdrepair.Options{
		Mode:        mdrepair.Mode(cfg.Mode),
		UniformTag:  cfg.Tag,
		DefaultLang: cfg.DefaultLang,
		Marker:      cfg.Marker,
		Detect:      cfg.Detect,
		NoFormat:    !cfg.Format.Enabled,
		IndentWidth: cfg.Format.IndentWidth,
	}
}

// repairToOutput repairs exactly one input file into a separate output path.
func repairToOutput(
	ctx context.Context,
	cmd *cobra.Command,
	args []string,
	cfg *config.Config,
	prompter mdrepair.Prompter,
	outputPath string,
) error {
	if len(args) != 1 {
		return fmt.Errorf("--output requires exactly one input file, got %d", len(args))
	}

	logger := logging.Default()

	content, _, err := fsutil.ReadFile(ctx, args[0])
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	engine := mdrepair.NewEngine(repairOptionsFromConfig(cfg), prompter)
	result, err := engine.Run(ctx, string(content))
	if err != nil {
		return err
	}

	if cfg.DryRun {
		fmt.Fprint(cmd.OutOrStdout(), result.Text)
		return nil
	}

	if err := fsutil.WriteAtomic(ctx, outputPath, []byte(result.Text), fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	logger.Info("repaired",
		logging.FieldBlocksRepaired, result.Blocks,
		logging.FieldWarnings, len(result.Warnings),
		"fenced_blocks", mdsplit.CountFencedBlocks(result.Text),
	)
	return nil
}

// workingDir returns the process working directory, or "." when it cannot
// be resolved.
func workingDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}
