// Package cli provides the Cobra command structure for mdmend.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdmend/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root mdmend command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "mdmend",
		Short: "Repair converter-damaged Markdown code blocks",
		Long: `mdmend repairs Markdown documents that came out of document converters
with broken code blocks: dashed delimiters instead of fences, missing or
bogus language tags, emphasis markers leaking into code, and unbalanced
fences.

It rebuilds every code block in canonical fenced form, optionally asking
about each recognised language tag, and carries companion commands for
cleaning converter artifacts, promoting bold lines to headings, splitting
documents by heading, and converting Word documents via pandoc.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newRepairCommand())
	rootCmd.AddCommand(newCleanCommand())
	rootCmd.AddCommand(newHeadingsCommand())
	rootCmd.AddCommand(newSplitCommand())
	rootCmd.AddCommand(newConvertCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
