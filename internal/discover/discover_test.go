package discover

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFilesSingleRegularFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "image.dd")
	if err := os.WriteFile(path, make([]byte, MinFileSize), 0o644); err != nil {
		t.Fatal(err)
	}

	files, skipped, err := Files(path)
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	if len(files) != 1 || files[0] != path {
		t.Errorf("files = %v, want [%s]", files, path)
	}
	if len(skipped) != 0 {
		t.Errorf("skipped = %v, want none", skipped)
	}
}

func TestFilesSingleFileTooSmall(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tiny.dd")
	if err := os.WriteFile(path, make([]byte, 10), 0o644); err != nil {
		t.Fatal(err)
	}

	files, skipped, err := Files(path)
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("files = %v, want none", files)
	}
	if len(skipped) != 1 {
		t.Fatalf("skipped = %v, want 1 entry", skipped)
	}
}

func TestFilesDirectoryNonRecursive(t *testing.T) {
	dir := t.TempDir()
	big := filepath.Join(dir, "big.dd")
	small := filepath.Join(dir, "small.dd")
	sub := filepath.Join(dir, "subdir")

	if err := os.WriteFile(big, make([]byte, MinFileSize), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(small, make([]byte, 10), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "nested.dd"), make([]byte, MinFileSize), 0o644); err != nil {
		t.Fatal(err)
	}

	files, skipped, err := Files(dir)
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	if len(files) != 1 || files[0] != big {
		t.Errorf("files = %v, want [%s]", files, big)
	}
	if len(skipped) != 1 {
		t.Errorf("skipped = %v, want 1 entry", skipped)
	}
}

func TestFilesMissingPath(t *testing.T) {
	if _, _, err := Files("/no/such/path"); err == nil {
		t.Error("expected an error for a missing path")
	}
}
