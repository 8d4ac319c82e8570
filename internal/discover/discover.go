// Package discover resolves a CLI input path to the regular files a
// carve run should scan.
package discover

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
)

// MinFileSize is the smallest file this carver will consider; anything
// shorter cannot hold a single heap page.
const MinFileSize = 8192

// Skipped is one candidate file excluded from a run, with the reason.
type Skipped struct {
	Path   string
	Reason string
}

// Files resolves path to its regular-file targets. A directory is
// expanded to its immediate regular-file children, non-recursively.
// Files below MinFileSize are returned in skipped rather than files.
func Files(path string) (files []string, skipped []Skipped, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("discover: %w", err)
	}

	if !info.IsDir() {
		if info.Size() < MinFileSize {
			return nil, []Skipped{{Path: path, Reason: tooSmall(info.Size())}}, nil
		}
		return []string{path}, nil, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, nil, fmt.Errorf("discover: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		full := filepath.Join(path, entry.Name())
		child, err := entry.Info()
		if err != nil {
			skipped = append(skipped, Skipped{Path: full, Reason: err.Error()})
			continue
		}
		if child.Size() < MinFileSize {
			skipped = append(skipped, Skipped{Path: full, Reason: tooSmall(child.Size())})
			continue
		}
		files = append(files, full)
	}
	return files, skipped, nil
}

func tooSmall(size int64) string {
	return fmt.Sprintf("%s is smaller than one page (%s)", humanize.Bytes(uint64(size)), humanize.Bytes(MinFileSize))
}
