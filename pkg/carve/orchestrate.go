package carve

// pagesPerProgressMark and rowsPerProgressMark set the cadence at
// which RunRelation reports progress back through Observer.
const (
	pagesPerProgressMark = 2000
	rowsPerProgressMark  = 20000
)

// Observer receives callbacks as Run walks a relation's pages. All
// methods are optional to act on; a nil Observer disables reporting.
type Observer interface {
	PageValidated(count int)
	RowCarved(count int)
	HeaderAnomaly(offset int64, hoff byte)
	TupleParseFailure(offset int64, fingerprint string, body []byte)
}

// TupleResult is one successfully carved tuple, with enough context
// for a caller to filter or annotate it before handing it to a sink.
type TupleResult struct {
	Offset int64
	Row    Row
}

// RunOptions configures a carve pass over a relation.
type RunOptions struct {
	NowMicros int64
	Keyword   *KeywordFilter
	Observer  Observer
}

// RunRelation decodes every live tuple in relation's pages, applying
// the keyword filter to each body before schema inference and
// materialization, and returns the surviving rows in recovery order.
// Redirect, dead, and unused line pointers are skipped and not counted.
func RunRelation(relation Relation, opts RunOptions) []TupleResult {
	var results []TupleResult
	pagesSinceMark := 0
	rowsSinceMark := 0

	for _, page := range relation.Pages {
		pagesSinceMark++
		if opts.Observer != nil && pagesSinceMark >= pagesPerProgressMark {
			opts.Observer.PageValidated(pagesSinceMark)
			pagesSinceMark = 0
		}

		pointers := LinePointers(page.Bytes, page.PointerCount)
		for _, ptr := range pointers {
			if !ptr.Live() || !ptr.InBounds(len(page.Bytes)) {
				continue
			}

			tupleStart := ptr.Offset
			header, err := DecodeTupleHeader(page.Bytes[tupleStart:])
			if err != nil {
				continue
			}
			if !header.Valid() {
				// A bad tuple header invalidates the rest of this page's
				// pointers, per the source's per-page bail-out.
				break
			}
			if header.Anomalous() && opts.Observer != nil {
				opts.Observer.HeaderAnomaly(page.Offset+int64(tupleStart), header.Hoff)
			}

			bodyStart := tupleStart + int(header.Hoff)
			bodyEnd := tupleStart + ptr.Length
			if bodyStart > bodyEnd || bodyEnd > len(page.Bytes) {
				continue
			}
			body := page.Bytes[bodyStart:bodyEnd]

			if opts.Keyword != nil && !opts.Keyword.Match(body) {
				continue
			}

			var extra []byte
			if int(header.Hoff) > headerSize {
				extraStart := tupleStart + headerSize
				extraEnd := tupleStart + int(header.Hoff)
				if extraEnd <= len(page.Bytes) {
					extra = page.Bytes[extraStart:extraEnd]
				}
			}
			bitmap := AssembleBitmap(header.Tbits0, extra, header.Natts)

			schema := InferSchema(bitmap, body, opts.NowMicros)
			row, ok := Materialize(schema, body)
			if !ok {
				if opts.Observer != nil {
					opts.Observer.TupleParseFailure(page.Offset+int64(bodyStart), Fingerprint(schema), body)
				}
				continue
			}

			results = append(results, TupleResult{
				Offset: page.Offset + int64(tupleStart),
				Row:    row,
			})

			rowsSinceMark++
			if opts.Observer != nil && rowsSinceMark >= rowsPerProgressMark {
				opts.Observer.RowCarved(rowsSinceMark)
				rowsSinceMark = 0
			}
		}
	}

	if opts.Observer != nil {
		if pagesSinceMark > 0 {
			opts.Observer.PageValidated(pagesSinceMark)
		}
		if rowsSinceMark > 0 {
			opts.Observer.RowCarved(rowsSinceMark)
		}
	}

	return results
}
