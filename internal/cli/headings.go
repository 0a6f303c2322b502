package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdmend/internal/logging"
	"github.com/yaklabco/mdmend/internal/prompt"
	"github.com/yaklabco/mdmend/internal/ui/pretty"
	"github.com/yaklabco/mdmend/pkg/fsutil"
	"github.com/yaklabco/mdmend/pkg/mdhead"
)

// ErrNeedsTerminal is returned by commands that only work interactively.
var ErrNeedsTerminal = errors.New("this command needs an interactive terminal")

func newHeadingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "headings <input> [output]",
		Short: "Promote bold lines to headings interactively",
		Long: `Walk a Markdown file and offer every standalone bold line (**Title**)
as a heading candidate. For each candidate you pick a level, skip it, or
cancel the run. Cancelling writes nothing.

Converters often demote section titles to bold paragraphs; this restores
the document outline. With a single argument the file is rewritten in
place, preserving the original as a sidecar backup.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runHeadings,
	}

	return cmd
}

func runHeadings(cmd *cobra.Command, args []string) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if !prompt.Interactive() {
		return ErrNeedsTerminal
	}

	finalCfg, err := loadConfig(ctx, cmd, nil, logger)
	if err != nil {
		return err
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

	colorMode, _ := cmd.Flags().GetString("color")
	colorEnabled := pretty.IsColorEnabled(colorMode, cmd.OutOrStdout())

	result, err := mdhead.Correct(ctx, string(content), prompt.NewConsole(colorEnabled))
	if err != nil {
		return err
	}

	if result.Promoted == 0 {
		logger.Info("no headings assigned", logging.FieldPath, inputPath)
		return nil
	}

	if inPlace && finalCfg.Backups.Enabled {
		cfg := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupMode(finalCfg.Backups.Mode)}
		if _, err := fsutil.CreateBackup(ctx, inputPath, cfg); err != nil {
			return fmt.Errorf("backup: %w", err)
		}
	}

	if err := fsutil.WriteAtomic(ctx, outputPath, []byte(result.Text), info.Mode); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	logger.Info("headings assigned",
		logging.FieldPath, outputPath,
		logging.FieldHeadings, result.Promoted,
	)
	return nil
}
