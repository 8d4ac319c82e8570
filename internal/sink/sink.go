// Package sink writes carved relations to disk in the output formats a
// run can be configured with.
package sink

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Chocapikk/pgcarve/pkg/carve"
)

// Sink writes one relation's rows to a single output file.
type Sink interface {
	// Extension returns the file suffix this sink produces, without
	// the leading dot.
	Extension() string
	// Write emits rows to path.
	Write(path string, rows []carve.Row) error
}

// New returns the sink for kind, one of "csv" or "xlsx".
func New(kind string) (Sink, error) {
	switch kind {
	case "csv":
		return csvSink{}, nil
	case "xlsx":
		return xlsxSink{}, nil
	default:
		return nil, fmt.Errorf("sink: unknown output type %q", kind)
	}
}

// FileName builds the carved_<keyword>_<input>_<index> filename this
// implementation uses, with path separators and colons in inputBase
// replaced by underscores. index is 1-based for every sink kind.
func FileName(s Sink, keyword, inputBase string, index int) string {
	clean := strings.NewReplacer(
		string(filepath.Separator), "_",
		":", "_",
	).Replace(inputBase)
	if keyword == "" {
		keyword = "all"
	}
	return fmt.Sprintf("carved_%s_%s_%d.%s", keyword, clean, index, s.Extension())
}
