package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdmend/internal/logging"
	"github.com/yaklabco/mdmend/pkg/convert"
)

func newConvertCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <input.docx> <directory>",
		Short: "Convert a Word document to Markdown with pandoc",
		Long: `Convert a Word (.docx) document to GitHub Flavored Markdown using a
pandoc subprocess. Embedded images are extracted under media/media in the
output directory and image links are rewritten to match.

Requires pandoc on PATH; see https://pandoc.org/installing.html.

The generated Markdown usually still needs 'mdmend clean' and
'mdmend repair' before it is publishable.`,
		Args: cobra.ExactArgs(2),
		RunE: runConvert,
	}

	return cmd
}

func runConvert(cmd *cobra.Command, args []string) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := convert.DocxToMarkdown(ctx, args[0], args[1])
	if errors.Is(err, convert.ErrPandocMissing) {
		return fmt.Errorf("%w; install it from https://pandoc.org/installing.html", err)
	}
	if err != nil {
		return err
	}

	logger.Info("converted",
		logging.FieldInput, args[0],
		logging.FieldOutput, result.MarkdownPath,
	)
	if result.MediaDir != "" {
		logger.Info("extracted media", logging.FieldPath, result.MediaDir)
	}
	return nil
}
