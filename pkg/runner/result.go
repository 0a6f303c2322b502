package runner

import "github.com/yaklabco/mdmend/pkg/mdrepair"

// FileOutcome records what happened to one discovered file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Repair contains the repair result for this file.
	// May be nil if the file encountered an error during processing.
	Repair *mdrepair.Result

	// Changed reports whether the repaired text differs from the input.
	Changed bool

	// Written reports whether the file was rewritten on disk.
	// Always false in dry-run mode.
	Written bool

	// BackupPath is the sidecar backup created before rewriting, if any.
	BackupPath string

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully processed.
	FilesProcessed int

	// FilesChanged is the number of files whose content needed repairs.
	FilesChanged int

	// FilesWritten is the number of files actually rewritten on disk.
	FilesWritten int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// BlocksRepaired is the total number of code blocks rewritten.
	BlocksRepaired int

	// WarningsTotal is the total number of repair warnings across files.
	WarningsTotal int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasErrors reports whether any file failed to process.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// HasChanges reports whether any file needed repairs.
func (r *Result) HasChanges() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesChanged > 0
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++

	if outcome.Changed {
		r.Stats.FilesChanged++
	}
	if outcome.Written {
		r.Stats.FilesWritten++
	}

	if outcome.Repair != nil {
		r.Stats.BlocksRepaired += outcome.Repair.Blocks
		r.Stats.WarningsTotal += len(outcome.Repair.Warnings)
	}
}
