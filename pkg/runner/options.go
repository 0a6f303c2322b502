// Package runner provides multi-file repair orchestration: discovery,
// sequential processing, backups, and aggregate statistics.
package runner

import "github.com/yaklabco/mdmend/pkg/mdrepair"

// Options controls a batch run.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// considered Markdown. Defaults to [".md", ".markdown"] via DefaultExtensions().
	Extensions []string

	// IgnoreGlobs are glob patterns used to skip files or directories,
	// relative to WorkingDir. These merge ignore rules from config and CLI.
	IgnoreGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Repair configures the per-document repair engine.
	Repair mdrepair.Options

	// DryRun computes repairs without writing any file.
	DryRun bool

	// Backup controls sidecar backups of files before they are rewritten.
	Backup BackupOptions
}

// BackupOptions mirrors the backups section of the configuration.
type BackupOptions struct {
	Enabled bool
	Mode    string
}

// DefaultExtensions returns the default set of Markdown file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
