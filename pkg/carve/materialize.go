package carve

import (
	"encoding/binary"
	"time"
)

// PostgreSQL's epoch for timestamp fields.
var pgEpoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// Row is one materialized tuple: its emitted values in schema order,
// plus the schema fingerprint used as the row's trailing column.
type Row struct {
	Values      []interface{}
	Fingerprint string
}

// Materialize applies schema to body, producing a Row. It returns
// ok=false when a fixed-width read in schema would overrun body; the
// caller should drop the tuple in that case.
func Materialize(schema []SchemaField, body []byte) (Row, bool) {
	values := make([]interface{}, 0, len(schema))
	pos := 0

	for _, f := range schema {
		switch f.Kind {
		case KindInt4:
			if pos+4 > len(body) {
				return Row{}, false
			}
			values = append(values, int32(binary.LittleEndian.Uint32(body[pos:pos+4])))
			pos += 4

		case KindTime:
			if pos+8 > len(body) {
				return Row{}, false
			}
			micros := binary.LittleEndian.Uint64(body[pos : pos+8])
			values = append(values, pgEpoch.Add(time.Duration(micros)*time.Microsecond))
			pos += 8

		case KindString:
			if f.Width == 0 {
				values = append(values, "")
				continue
			}
			if pos+f.Width > len(body) {
				return Row{}, false
			}
			values = append(values, string(body[pos:pos+f.Width]))
			pos += f.Width

		case KindVarlena:
			if pos+f.Width > len(body) {
				return Row{}, false
			}
			pos += f.Width

		case KindPad:
			if pos+1 > len(body) {
				return Row{}, false
			}
			pos++

		case KindNull:
			// contributes no bytes and no value
		}
	}

	return Row{Values: values, Fingerprint: Fingerprint(schema)}, true
}
