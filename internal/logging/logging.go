// Package logging provides the debug log this carver writes alongside
// its output: startup/shutdown, header anomalies, and tuple-parse
// failures with a hex dump of the offending body.
package logging

import (
	"encoding/hex"

	"go.uber.org/zap"
)

// DefaultPath is the fixed log file location in the working directory.
const DefaultPath = "pgcarve.log"

// Logger wraps a zap.Logger with the handful of call sites this
// carver's pipeline needs.
type Logger struct {
	z *zap.Logger
}

// New builds a file-backed logger writing JSON lines to path at debug
// level.
func New(path string) (*Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)

	z, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{z: z}, nil
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	return l.z.Sync()
}

func (l *Logger) Started(input, outputType, output string) {
	l.z.Info("carve started",
		zap.String("input", input),
		zap.String("output_type", outputType),
		zap.String("output_dir", output),
	)
}

func (l *Logger) Finished(relations, rows int) {
	l.z.Info("carve finished",
		zap.Int("relations", relations),
		zap.Int("rows", rows),
	)
}

// HeaderAnomaly records an oversized tuple header that was still
// decoded.
func (l *Logger) HeaderAnomaly(offset int64, hoff byte) {
	l.z.Warn("oversized tuple header",
		zap.Int64("offset", offset),
		zap.Uint8("hoff", hoff),
	)
}

// TupleParseFailure records a tuple dropped by the materializer,
// including a hex dump of its body for later inspection.
func (l *Logger) TupleParseFailure(offset int64, fingerprint string, body []byte) {
	l.z.Debug("tuple parse failed",
		zap.Int64("offset", offset),
		zap.String("schema", fingerprint),
		zap.String("body_hex", hex.EncodeToString(body)),
	)
}
