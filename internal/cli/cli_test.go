package cli_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/tgup-cli/tgup/internal/cli"
)

func run(t *testing.T, args ...string) error {
	t.Helper()
	exited := false
	err := cli.Run(context.Background(), func(int) { exited = true }, args...)
	if exited {
		t.Fatalf("cli exited during %v", args)
	}
	return err
}

func TestCheckCommand(t *testing.T) {
	if err := run(t, "check", `if(is_video, "@videos", "me")`); err != nil {
		t.Fatalf("check rejected a valid expression: %v", err)
	}

	if err := run(t, "check", "1 +"); err == nil {
		t.Fatal("check accepted a broken expression")
	}

	if err := run(t, "check", `size = 1`); err == nil {
		t.Fatal("check accepted a lex error")
	}
}

func TestEvalCommand(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "clip.mp4")
	if err := os.WriteFile(file, make([]byte, 2048), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := run(t, "eval", "ext", file); err != nil {
		t.Fatalf("eval failed: %v", err)
	}

	if err := run(t, "eval", "no_such_variable", file); err == nil {
		t.Fatal("eval accepted an undefined variable")
	}
}

func TestUploadDryRun(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.jpg", "b.jpg", "c.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	cfg := filepath.Join(t.TempDir(), "config.yaml")

	err := run(t, "upload", dir,
		"--config", cfg,
		"--to", `if(is_image, "@photos", "me")`,
		"--album",
		"--dry-run",
	)
	if err != nil {
		t.Fatalf("dry run failed: %v", err)
	}
}

func TestUploadRejectsBadExpression(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := run(t, "upload", dir,
		"--config", filepath.Join(t.TempDir(), "config.yaml"),
		"--to", "1 +",
		"--dry-run",
	)
	if err == nil {
		t.Fatal("upload accepted a broken routing expression")
	}
}

func TestVersionCommand(t *testing.T) {
	if err := run(t, "version"); err != nil {
		t.Fatal(err)
	}
}
