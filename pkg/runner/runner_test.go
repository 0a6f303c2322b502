package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/mdmend/pkg/mdrepair"
	"github.com/yaklabco/mdmend/pkg/runner"
)

// cancelPrompter cancels at the first per-block decision.
type cancelPrompter struct{}

func (cancelPrompter) ChooseMode(context.Context) (mdrepair.Mode, error) {
	return mdrepair.ModePerBlock, nil
}

func (cancelPrompter) UniformTag(context.Context) (string, error) {
	return "", nil
}

func (cancelPrompter) DecideBlock(context.Context, mdrepair.BlockQuery) (mdrepair.Decision, error) {
	return mdrepair.Decision{Kind: mdrepair.DecisionCancel}, nil
}

// countingPrompter answers uniform/"c" and records how often the run-level
// questions are asked.
type countingPrompter struct {
	modeCalls    int
	uniformCalls int
}

func (p *countingPrompter) ChooseMode(context.Context) (mdrepair.Mode, error) {
	p.modeCalls++
	return mdrepair.ModeUniform, nil
}

func (p *countingPrompter) UniformTag(context.Context) (string, error) {
	p.uniformCalls++
	return "c", nil
}

func (p *countingPrompter) DecideBlock(context.Context, mdrepair.BlockQuery) (mdrepair.Decision, error) {
	return mdrepair.Decision{Kind: mdrepair.DecisionKeep}, nil
}

func uniformOptions(dir string) runner.Options {
	return runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Repair:     mdrepair.Options{Mode: mdrepair.ModeUniform, UniformTag: "c"},
	}
}

func TestRun_RepairsAndWrites(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.md")
	clean := filepath.Join(dir, "clean.md")

	if err := os.WriteFile(broken, []byte("---\nc\nint x=1;\n---"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(clean, []byte("just prose\n"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	r := runner.New(nil)
	result, err := r.Run(context.Background(), uniformOptions(dir))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesDiscovered != 2 {
		t.Errorf("expected 2 discovered, got %d", result.Stats.FilesDiscovered)
	}
	if result.Stats.FilesProcessed != 2 {
		t.Errorf("expected 2 processed, got %d", result.Stats.FilesProcessed)
	}
	if result.Stats.FilesChanged != 1 {
		t.Errorf("expected 1 changed, got %d", result.Stats.FilesChanged)
	}
	if result.Stats.FilesWritten != 1 {
		t.Errorf("expected 1 written, got %d", result.Stats.FilesWritten)
	}
	if result.Stats.BlocksRepaired != 1 {
		t.Errorf("expected 1 block repaired, got %d", result.Stats.BlocksRepaired)
	}

	content, err := os.ReadFile(broken)
	if err != nil {
		t.Fatalf("read repaired file: %v", err)
	}
	if string(content) != "```c\nint x = 1;\n```" {
		t.Errorf("unexpected repaired content: %q", content)
	}
}

func TestRun_DryRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	original := "---\nc\nint x=1;\n---"
	if err := os.WriteFile(path, []byte(original), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	opts := uniformOptions(dir)
	opts.DryRun = true

	r := runner.New(nil)
	result, err := r.Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesChanged != 1 {
		t.Errorf("expected 1 changed, got %d", result.Stats.FilesChanged)
	}
	if result.Stats.FilesWritten != 0 {
		t.Errorf("expected 0 written in dry run, got %d", result.Stats.FilesWritten)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(content) != original {
		t.Error("dry run modified the file")
	}
}

func TestRun_CreatesBackup(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	original := "---\nc\nint x=1;\n---"
	if err := os.WriteFile(path, []byte(original), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	opts := uniformOptions(dir)
	opts.Backup = runner.BackupOptions{Enabled: true, Mode: "sidecar"}

	r := runner.New(nil)
	result, err := r.Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(result.Files) != 1 || result.Files[0].BackupPath == "" {
		t.Fatalf("expected a backup path, got %+v", result.Files)
	}

	backup, err := os.ReadFile(result.Files[0].BackupPath)
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(backup) != original {
		t.Error("backup does not hold the original content")
	}
}

func TestRun_UnchangedFileNotWritten(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(path, []byte("prose only\n"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	opts := uniformOptions(dir)
	opts.Backup = runner.BackupOptions{Enabled: true, Mode: "sidecar"}

	r := runner.New(nil)
	result, err := r.Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesChanged != 0 {
		t.Errorf("expected 0 changed, got %d", result.Stats.FilesChanged)
	}
	if _, err := os.Stat(path + ".mdmend.bak"); !os.IsNotExist(err) {
		t.Error("backup created for an unchanged file")
	}
}

func TestRun_AbortStopsBatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	original := "```ruby\nputs 1\n```\n"
	if err := os.WriteFile(path, []byte(original), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	opts := runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Repair:     mdrepair.Options{Mode: mdrepair.ModePerBlock},
	}

	r := runner.New(cancelPrompter{})
	_, err := r.Run(context.Background(), opts)
	if !errors.Is(err, mdrepair.ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}

	content, readErr := os.ReadFile(path)
	if readErr != nil {
		t.Fatalf("read: %v", readErr)
	}
	if string(content) != original {
		t.Error("aborted run modified the file")
	}
}

func TestRun_PromptsOnceForBatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"a.md", "b.md", "c.md"} {
		doc := "```go\nx := 1\n```\n"
		if err := os.WriteFile(filepath.Join(dir, name), []byte(doc), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}

	opts := runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
	}

	p := &countingPrompter{}
	r := runner.New(p)
	result, err := r.Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesProcessed != 3 {
		t.Fatalf("expected 3 processed, got %d", result.Stats.FilesProcessed)
	}
	if p.modeCalls != 1 {
		t.Errorf("mode asked %d times, want 1", p.modeCalls)
	}
	if p.uniformCalls != 1 {
		t.Errorf("uniform tag asked %d times, want 1", p.uniformCalls)
	}
}

func TestRun_NoFiles(t *testing.T) {
	t.Parallel()

	r := runner.New(nil)
	result, err := r.Run(context.Background(), uniformOptions(t.TempDir()))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Stats.FilesDiscovered != 0 {
		t.Errorf("expected 0 discovered, got %d", result.Stats.FilesDiscovered)
	}
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "doc.md"), []byte("x\n"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := runner.New(nil)
	if _, err := r.Run(ctx, uniformOptions(dir)); err == nil {
		t.Fatal("expected cancellation error")
	}
}
