// pgcarve - carve PostgreSQL heap tuples out of raw disk images without
// a catalog.
//
// Usage:
//
//	pgcarve --input /path/to/image.dd
//	pgcarve --input /path/to/dir --keyword password --output-type xlsx
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/Chocapikk/pgcarve/internal/discover"
	"github.com/Chocapikk/pgcarve/internal/logging"
	"github.com/Chocapikk/pgcarve/internal/sink"
	"github.com/Chocapikk/pgcarve/pkg/carve"
)

var (
	app = kingpin.New("pgcarve", "Carve PostgreSQL heap tuples out of raw disk images.")

	input       = app.Flag("input", "File or directory to carve.").Required().String()
	keywords    = app.Flag("keyword", "Keep only tuples whose body contains this keyword (repeatable).").Strings()
	outputType  = app.Flag("output-type", "Output format.").Default("csv").Enum("csv", "xlsx")
	outputDir   = app.Flag("output", "Directory to write carved files to.").Default(".").String()
	scanSecrets = app.Flag("scan-secrets", "Annotate rows with detected credential patterns.").Bool()
	stride      = app.Flag("stride", "Cursor advance in bytes between candidate headers.").Default("8192").Enum("512", "8192")
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	logger, err := logging.New(logging.DefaultPath)
	if err != nil {
		color.Red("pgcarve: could not open log file: %v", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	files, skipped, err := discover.Files(*input)
	if err != nil {
		color.Red("pgcarve: %v", err)
		os.Exit(1)
	}
	for _, s := range skipped {
		color.Yellow("skipping %s: %s", s.Path, s.Reason)
	}
	if len(files) == 0 {
		color.Red("pgcarve: no eligible input files found under %s", *input)
		os.Exit(1)
	}

	out, err := sink.New(*outputType)
	if err != nil {
		color.Red("pgcarve: %v", err)
		os.Exit(1)
	}

	keywordFilter := carve.NewKeywordFilter(*keywords)
	keywordLabel := strings.Join(*keywords, "_")

	var scanner *carve.SecretScanner
	if *scanSecrets {
		scanner = carve.NewSecretScanner()
	}

	logger.Started(*input, *outputType, *outputDir)

	var relationCount, rowCount int
	for _, path := range files {
		select {
		case <-ctx.Done():
			color.Yellow("pgcarve: interrupted, stopping after current file")
			logger.Finished(relationCount, rowCount)
			return
		default:
		}

		r, c := carveFile(ctx, path, carve.Stride(parseStride(*stride)), keywordFilter, keywordLabel, out, scanner, logger)
		relationCount += r
		rowCount += c
	}

	logger.Finished(relationCount, rowCount)
	color.Green("pgcarve: carved %d rows across %d relations", rowCount, relationCount)
}

func parseStride(s string) int {
	if s == "512" {
		return 512
	}
	return 8192
}

type observer struct {
	bar    *progressbar.ProgressBar
	logger *logging.Logger
}

func (o *observer) PageValidated(n int) { _ = o.bar.Add(n) }
func (o *observer) RowCarved(int)       {}
func (o *observer) HeaderAnomaly(offset int64, hoff byte) {
	o.logger.HeaderAnomaly(offset, hoff)
}
func (o *observer) TupleParseFailure(offset int64, fingerprint string, body []byte) {
	o.logger.TupleParseFailure(offset, fingerprint, body)
}

func carveFile(
	ctx context.Context,
	path string,
	stride carve.Stride,
	keywordFilter *carve.KeywordFilter,
	keywordLabel string,
	out sink.Sink,
	scanner *carve.SecretScanner,
	logger *logging.Logger,
) (relations, rows int) {
	data, err := os.ReadFile(path)
	if err != nil {
		color.Red("pgcarve: %s: %v", path, err)
		return 0, 0
	}

	bar := progressbar.Default(int64(len(data)/carve.PageSize), filepath.Base(path))
	defer bar.Close()

	nowMicros := time.Since(pgEpoch()).Microseconds()

	relationList := carve.Locate(data, stride)
	base := strings.ReplaceAll(filepath.Base(path), filepath.Ext(path), "")

	for i, relation := range relationList {
		results := carve.RunRelation(relation, carve.RunOptions{
			NowMicros: nowMicros,
			Keyword:   keywordFilter,
			Observer:  &observer{bar: bar, logger: logger},
		})
		if len(results) == 0 {
			continue
		}

		carveRows := make([]carve.Row, 0, len(results))
		for _, res := range results {
			row := res.Row
			if scanner != nil {
				if findings := scanner.ScanRow(row); len(findings) > 0 {
					row.Values = append(row.Values, formatFindings(findings))
				}
			}
			carveRows = append(carveRows, row)
		}

		name := sink.FileName(out, keywordLabel, base, i+1)
		destination := filepath.Join(*outputDir, name)
		if err := out.Write(destination, carveRows); err != nil {
			color.Red("pgcarve: %s: %v", destination, err)
			continue
		}
		relations++
		rows += len(carveRows)
	}

	return relations, rows
}

func formatFindings(findings []carve.SecretFinding) string {
	names := make([]string, len(findings))
	for i, f := range findings {
		names[i] = f.DetectorName
	}
	return strings.Join(names, ",")
}

func pgEpoch() time.Time {
	return time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
}
