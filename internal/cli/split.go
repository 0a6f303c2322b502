package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdmend/internal/logging"
	"github.com/yaklabco/mdmend/pkg/config"
	"github.com/yaklabco/mdmend/pkg/fsutil"
	"github.com/yaklabco/mdmend/pkg/mdsplit"
)

func newSplitCommand() *cobra.Command {
	var level int
	var noPrologue bool

	cmd := &cobra.Command{
		Use:   "split <input> [directory]",
		Short: "Split a Markdown file into per-section files",
		Long: `Split a Markdown file into one file per heading of the chosen level
(default 2). Filenames are derived from the heading text; content before
the first heading goes into a numbered prologue file.

Without a directory argument the parts land next to the input, in a
directory named after it.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplit(cmd, args, level, noPrologue)
		},
	}

	cmd.Flags().IntVar(&level, "level", 0, "heading level to split on (1-6)")
	cmd.Flags().BoolVar(&noPrologue, "no-prologue", false, "drop content before the first heading")

	return cmd
}

func runSplit(cmd *cobra.Command, args []string, level int, noPrologue bool) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cliCfg := &config.Config{}
	if level > 0 {
		cliCfg.Split.Level = level
	}

	finalCfg, err := loadConfig(ctx, cmd, cliCfg, logger)
	if err != nil {
		return err
	}
	if noPrologue {
		finalCfg.Split.Prologue = false
	}

	inputPath := args[0]
	outputDir := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	if len(args) == 2 {
		outputDir = args[1]
	}

	content, _, err := fsutil.ReadFile(ctx, inputPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	parts, err := mdsplit.Split(string(content), mdsplit.Options{
		Level:    finalCfg.Split.Level,
		Prologue: finalCfg.Split.Prologue,
	})
	if errors.Is(err, mdsplit.ErrNoSections) {
		return fmt.Errorf("%w (level %d)", err, finalCfg.Split.Level)
	}
	if err != nil {
		return err
	}

	if err := mdsplit.WriteParts(ctx, outputDir, parts); err != nil {
		return err
	}

	logger.Info("split",
		logging.FieldInput, inputPath,
		logging.FieldOutput, outputDir,
		logging.FieldParts, len(parts),
	)
	return nil
}
