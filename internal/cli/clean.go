package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdmend/internal/logging"
	"github.com/yaklabco/mdmend/pkg/config"
	"github.com/yaklabco/mdmend/pkg/fsutil"
	"github.com/yaklabco/mdmend/pkg/mdclean"
)

func newCleanCommand() *cobra.Command {
	var noFormat bool
	var indent int

	cmd := &cobra.Command{
		Use:   "clean <input> [output]",
		Short: "Remove converter artifacts from a Markdown file",
		Long: `Remove document-converter artifacts from a Markdown file: HTML table
remnants, broken image links, stray escape backslashes, dashed code block
delimiters, and aligned text tables. Code block bodies are normalized and
re-formatted on the way through.

With a single argument the file is cleaned in place, preserving the
original as a sidecar backup. A second argument writes the cleaned
document to a new path instead.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(cmd, args, noFormat, indent)
		},
	}

	cmd.Flags().BoolVar(&noFormat, "no-format", false, "skip code body re-formatting")
	cmd.Flags().IntVar(&indent, "indent", 0, "spaces per indentation level for brace languages")

	return cmd
}

func runClean(cmd *cobra.Command, args []string, noFormat bool, indent int) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cliCfg := &config.Config{}
	if indent > 0 {
		cliCfg.Format.IndentWidth = indent
	}

	finalCfg, err := loadConfig(ctx, cmd, cliCfg, logger)
	if err != nil {
		return err
	}
	if noFormat {
		finalCfg.Format.Enabled = false
	}

	inputPath := args[0]
	outputPath := inputPath
	inPlace := true
	if len(args) == 2 {
		outputPath = args[1]
		inPlace = false
	}

	content, info, err := fsutil.ReadFile(ctx, inputPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	cleaned := mdclean.Clean(string(content), mdclean.Options{
		NoFormat:    !finalCfg.Format.Enabled,
		IndentWidth: finalCfg.Format.IndentWidth,
	})
	cleaned += "\n"

	if cleaned == string(content) {
		logger.Info("nothing to clean", logging.FieldPath, inputPath)
		return nil
	}

	if inPlace && finalCfg.Backups.Enabled {
		cfg := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupMode(finalCfg.Backups.Mode)}
		if _, err := fsutil.CreateBackup(ctx, inputPath, cfg); err != nil {
			return fmt.Errorf("backup: %w", err)
		}
	}

	if err := fsutil.WriteAtomic(ctx, outputPath, []byte(cleaned), info.Mode); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	logger.Info("cleaned", logging.FieldPath, outputPath)
	return nil
}
