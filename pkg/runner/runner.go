package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/mdmend/pkg/fsutil"
	"github.com/yaklabco/mdmend/pkg/mdrepair"
)

// Runner orchestrates repairs across many files.
type Runner struct {
	prompter mdrepair.Prompter
}

// New creates a Runner. The prompter is shared across files so that a mode
// chosen at the first prompt holds for the whole batch; it may be nil for
// fully non-interactive runs.
func New(prompter mdrepair.Prompter) *Runner {
	return &Runner{prompter: prompter}
}

// Run discovers files under opts.Paths and repairs them one at a time.
//
// Files are processed sequentially and in sorted order: repairs may prompt
// the operator, and interleaved prompts from concurrent workers would be
// unusable. Cancellation is honoured between files, and a prompt-level
// cancel (mdrepair.ErrAborted) stops the batch with the current file
// unwritten.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	engine := mdrepair.NewEngine(opts.Repair, r.prompter)

	for _, path := range files {
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("run cancelled: %w", ctx.Err())
		default:
		}

		outcome := r.processFile(ctx, engine, path, opts)
		if errors.Is(outcome.Error, mdrepair.ErrAborted) {
			return result, mdrepair.ErrAborted
		}
		result.accumulate(outcome)
	}

	return result, nil
}

// processFile repairs a single file and writes it back when its content
// changed. The original is preserved as a sidecar backup first.
func (r *Runner) processFile(ctx context.Context, engine *mdrepair.Engine, path string, opts Options) FileOutcome {
	outcome := FileOutcome{Path: path}

	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = fmt.Errorf("read: %w", err)
		return outcome
	}

	repaired, err := engine.Run(ctx, string(content))
	if err != nil {
		outcome.Error = err
		return outcome
	}

	outcome.Repair = repaired
	outcome.Changed = repaired.Text != string(content)

	if !outcome.Changed || opts.DryRun {
		return outcome
	}

	// Refuse to clobber a file that changed underneath us.
	if modified, err := fsutil.CheckModifiedQuick(ctx, info); err == nil && modified {
		outcome.Error = fmt.Errorf("file %s changed during processing", path)
		return outcome
	}

	if opts.Backup.Enabled {
		cfg := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupMode(opts.Backup.Mode)}
		created, err := fsutil.CreateBackup(ctx, path, cfg)
		if err != nil {
			outcome.Error = fmt.Errorf("backup: %w", err)
			return outcome
		}
		if created {
			outcome.BackupPath = fsutil.BackupPath(path, cfg.Mode)
		}
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, path, []byte(repaired.Text), info.Mode)
	if err != nil {
		outcome.Error = fmt.Errorf("write: %w", err)
		return outcome
	}
	outcome.Written = written

	return outcome
}
