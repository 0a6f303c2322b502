// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Repair run fields.
	FieldMode   = "mode"
	FieldTag    = "tag"
	FieldLang   = "lang"
	FieldMarker = "marker"
	FieldDryRun = "dry_run"
	FieldDetect = "detect"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesChanged    = "files_changed"
	FieldBlocksRepaired  = "blocks_repaired"
	FieldWarnings        = "warnings"
	FieldHeadings        = "headings"
	FieldParts           = "parts"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
