// Package main is the entry point for the mdmend CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/mdmend/internal/cli"
	"github.com/yaklabco/mdmend/internal/logging"
	"github.com/yaklabco/mdmend/pkg/mdhead"
	"github.com/yaklabco/mdmend/pkg/mdrepair"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	err := rootCmd.Execute()
	if err == nil {
		return cli.ExitSuccess
	}

	// Signal errors carry an exit code and need no logging.
	switch {
	case errors.Is(err, cli.ErrChangesPending):
		return cli.ExitChangesPending
	case errors.Is(err, cli.ErrFilesErrored):
		return cli.ExitRepairErrors
	case errors.Is(err, mdrepair.ErrAborted), errors.Is(err, mdhead.ErrAborted):
		return cli.ExitAborted
	}

	logger := logging.Default()
	logger.Error("command failed", logging.FieldError, err)

	if errors.Is(err, cli.ErrNeedsTerminal) {
		return cli.ExitInvalidUsage
	}
	return cli.ExitInternalError
}
