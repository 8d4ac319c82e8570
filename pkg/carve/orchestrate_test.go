package carve

import "testing"

type countingObserver struct {
	pages, rows   int
	anomalies     int
	parseFailures int
}

func (o *countingObserver) PageValidated(n int)                     { o.pages += n }
func (o *countingObserver) RowCarved(n int)                         { o.rows += n }
func (o *countingObserver) HeaderAnomaly(int64, byte)               { o.anomalies++ }
func (o *countingObserver) TupleParseFailure(int64, string, []byte) { o.parseFailures++ }

func TestRunRelationEmptyPointerArray(t *testing.T) {
	page := make([]byte, PageSize)
	page[12], page[13] = 24, 0  // lower = 24
	page[14], page[15] = 0, 32  // upper = 8192
	page[18], page[19] = 4, 32  // page_ver = 8196
	page[0] = 1                 // lsn = 1

	header := ParsePageHeader(page)
	if !header.Valid() {
		t.Fatal("expected header to validate")
	}

	relation := Relation{Pages: []Page{{Offset: 0, Bytes: page, Header: header, PointerCount: header.PointerCount()}}}
	results := RunRelation(relation, RunOptions{NowMicros: TimestampLowerBoundMicros + 1})

	if len(results) != 0 {
		t.Errorf("len(results) = %d, want 0", len(results))
	}
}

func TestRunRelationSingleIntegerTuple(t *testing.T) {
	page := buildPage(1, 0, 1, 24, 0x01, []byte{0x2A, 0x00, 0x00, 0x00})
	header := ParsePageHeader(page)
	relation := Relation{Pages: []Page{{Offset: 0, Bytes: page, Header: header, PointerCount: header.PointerCount()}}}

	results := RunRelation(relation, RunOptions{NowMicros: TimestampLowerBoundMicros + 1})
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	row := results[0].Row
	if row.Values[0] != int32(42) || row.Fingerprint != "D" {
		t.Errorf("row = %+v, want [42] fingerprint D", row)
	}
}

func TestRunRelationNullFirstByteOverride(t *testing.T) {
	page := buildPage(1, 0, 1, 24, 0x00, []byte{0x2A, 0x00, 0x00, 0x00})
	header := ParsePageHeader(page)
	relation := Relation{Pages: []Page{{Offset: 0, Bytes: page, Header: header, PointerCount: header.PointerCount()}}}

	results := RunRelation(relation, RunOptions{NowMicros: TimestampLowerBoundMicros + 1})
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	if results[0].Row.Fingerprint != "D" {
		t.Errorf("Fingerprint = %q, want %q", results[0].Row.Fingerprint, "D")
	}
}

func TestRunRelationHeaderRejection(t *testing.T) {
	page := buildPage(1, 0, 1, 24, 0x01, []byte{0x2A, 0x00, 0x00, 0x00})
	page[18], page[19] = 4, 0 // page_ver = 4, invalid

	header := ParsePageHeader(page)
	if header.Valid() {
		t.Fatal("expected header to be rejected")
	}
}

func TestRunRelationKeywordFilter(t *testing.T) {
	page := buildPage(1, 0, 1, 24, 0x01, []byte("secretword"[:4]))
	header := ParsePageHeader(page)
	relation := Relation{Pages: []Page{{Offset: 0, Bytes: page, Header: header, PointerCount: header.PointerCount()}}}

	filter := NewKeywordFilter([]string{"nomatch"})
	results := RunRelation(relation, RunOptions{NowMicros: TimestampLowerBoundMicros + 1, Keyword: filter})
	if len(results) != 0 {
		t.Errorf("len(results) = %d, want 0 with non-matching keyword", len(results))
	}
}

func TestRunRelationObserverAnomaly(t *testing.T) {
	body := []byte{0x2A, 0x00, 0x00, 0x00}
	page := buildPage(1, 0, 1, 41, 0x01, body)
	header := ParsePageHeader(page)
	relation := Relation{Pages: []Page{{Offset: 0, Bytes: page, Header: header, PointerCount: header.PointerCount()}}}

	obs := &countingObserver{}
	RunRelation(relation, RunOptions{NowMicros: TimestampLowerBoundMicros + 1, Observer: obs})

	if obs.anomalies != 1 {
		t.Errorf("anomalies = %d, want 1", obs.anomalies)
	}
}
