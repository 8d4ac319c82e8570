package carve

import (
	"context"
	"strings"

	"github.com/trufflesecurity/trufflehog/v3/pkg/detectors"
	"github.com/trufflesecurity/trufflehog/v3/pkg/engine/defaults"
)

// SecretFinding is one credential-pattern match inside a recovered
// string value.
type SecretFinding struct {
	DetectorName string
	ColumnIndex  int
	Raw          string
	Redacted     string
	Verified     bool
}

// SecretScanner runs recovered string columns through every detector
// this build ships, unverified (no network calls to confirm validity).
type SecretScanner struct {
	detectors []detectors.Detector
}

// NewSecretScanner builds a scanner with the default detector set.
func NewSecretScanner() *SecretScanner {
	return &SecretScanner{detectors: defaults.DefaultDetectors()}
}

// ScanRow checks every string-typed value in row against the detector
// set and returns the findings in column order.
func (s *SecretScanner) ScanRow(row Row) []SecretFinding {
	var findings []SecretFinding
	for i, v := range row.Values {
		str, ok := v.(string)
		if !ok || len(str) < 8 {
			continue
		}
		for _, f := range s.scanString(str) {
			f.ColumnIndex = i
			findings = append(findings, f)
		}
	}
	return findings
}

func (s *SecretScanner) scanString(data string) []SecretFinding {
	var findings []SecretFinding
	ctx := context.Background()
	dataBytes := []byte(data)

	for _, detector := range s.detectors {
		keywords := detector.Keywords()
		if len(keywords) > 0 && !containsAnyKeyword(data, keywords) {
			continue
		}

		results, err := detector.FromData(ctx, false, dataBytes)
		if err != nil {
			continue
		}
		for _, res := range results {
			findings = append(findings, SecretFinding{
				DetectorName: res.DetectorType.String(),
				Raw:          string(res.Raw),
				Redacted:     res.Redacted,
				Verified:     res.Verified,
			})
		}
	}
	return findings
}

func containsAnyKeyword(data string, keywords []string) bool {
	lower := strings.ToLower(data)
	for _, kw := range keywords {
		if strings.Contains(data, kw) || strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
