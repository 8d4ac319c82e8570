package sink

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/Chocapikk/pgcarve/pkg/carve"
)

type csvSink struct{}

func (csvSink) Extension() string { return "csv" }

// Write emits rows in recovery order, one row per line, with the
// schema fingerprint as the trailing column. Raw bytes are preserved.
func (csvSink) Write(path string, rows []carve.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sink: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	for _, row := range rows {
		record := make([]string, 0, len(row.Values)+1)
		for _, v := range row.Values {
			record = append(record, formatValue(v))
		}
		record = append(record, row.Fingerprint)
		if err := w.Write(record); err != nil {
			return fmt.Errorf("sink: %w", err)
		}
	}
	return w.Error()
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}
