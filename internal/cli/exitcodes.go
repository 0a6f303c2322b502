package cli

import "github.com/yaklabco/mdmend/pkg/runner"

// Exit codes for mdmend.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitRepairErrors indicates the run completed but some files failed.
	ExitRepairErrors = 1

	// ExitChangesPending indicates a dry run found files that need repairs.
	ExitChangesPending = 2

	// ExitAborted indicates the operator cancelled at a prompt.
	ExitAborted = 3

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromResult determines the exit code for a batch run. In dry-run
// mode pending changes exit non-zero so CI can gate on them.
func ExitCodeFromResult(result *runner.Result, dryRun bool) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasErrors() {
		return ExitRepairErrors
	}

	if dryRun && result.HasChanges() {
		return ExitChangesPending
	}

	return ExitSuccess
}
