package sink

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"os"
	"strconv"

	"github.com/Chocapikk/pgcarve/pkg/carve"
)

// xlsxSink writes a minimal single-sheet OOXML workbook. It exists
// because nothing in this carver's dependency stack produces
// spreadsheets; the format only needs four small, fixed XML parts plus
// the generated worksheet, so hand-assembling them with archive/zip and
// encoding/xml avoids
// pulling in a dependency for a handful of bytes.
type xlsxSink struct{}

func (xlsxSink) Extension() string { return "xlsx" }

func (xlsxSink) Write(path string, rows []carve.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sink: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)

	parts := []struct {
		name string
		body []byte
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"xl/workbook.xml", workbookXML},
		{"xl/_rels/workbook.xml.rels", workbookRelsXML},
		{"xl/worksheets/sheet1.xml", sheetXML(rows)},
	}

	for _, p := range parts {
		w, err := zw.Create(p.name)
		if err != nil {
			return fmt.Errorf("sink: %w", err)
		}
		if _, err := w.Write(p.body); err != nil {
			return fmt.Errorf("sink: %w", err)
		}
	}

	return zw.Close()
}

var contentTypesXML = []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/xl/workbook.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"/><Override PartName="/xl/worksheets/sheet1.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"/></Types>`)

var relsXML = []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="xl/workbook.xml"/></Relationships>`)

var workbookXML = []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><sheets><sheet name="carved" sheetId="1" r:id="rId1"/></sheets></workbook>`)

var workbookRelsXML = []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet1.xml"/></Relationships>`)

type xlSheetData struct {
	XMLName xml.Name `xml:"sheetData"`
	Rows    []xlRow  `xml:"row"`
}

type xlRow struct {
	R       int      `xml:"r,attr"`
	Cells   []xlCell `xml:"c"`
}

type xlCell struct {
	R     string `xml:"r,attr"`
	Type  string `xml:"t,attr,omitempty"`
	Value string `xml:"v"`
}

// sheetXML renders rows as a worksheet body. Rows and columns are
// 1-based, matching the address scheme spreadsheet applications expect.
// Any byte >= 128 in a string value is replaced with '?': OOXML strings
// must be valid UTF-8, and this carver's recovered text is raw bytes of
// unknown encoding.
func sheetXML(rows []carve.Row) []byte {
	data := xlSheetData{}
	for i, row := range rows {
		cells := make([]xlCell, 0, len(row.Values)+1)
		for j, v := range row.Values {
			cells = append(cells, xlCell{
				R:    cellRef(j+1, i+1),
				Type: "str",
				Value: escapeNonASCII(formatValue(v)),
			})
		}
		cells = append(cells, xlCell{
			R:     cellRef(len(row.Values)+1, i+1),
			Type:  "str",
			Value: row.Fingerprint,
		})
		data.Rows = append(data.Rows, xlRow{R: i + 1, Cells: cells})
	}

	body, _ := xml.Marshal(data)
	header := []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">`)
	footer := []byte(`</worksheet>`)
	out := make([]byte, 0, len(header)+len(body)+len(footer))
	out = append(out, header...)
	out = append(out, body...)
	out = append(out, footer...)
	return out
}

func cellRef(col, row int) string {
	return columnLetters(col) + strconv.Itoa(row)
}

func columnLetters(col int) string {
	var letters []byte
	for col > 0 {
		col--
		letters = append([]byte{byte('A' + col%26)}, letters...)
		col /= 26
	}
	return string(letters)
}

func escapeNonASCII(s string) string {
	b := []byte(s)
	out := make([]byte, len(b))
	for i, c := range b {
		if c >= 128 {
			out[i] = '?'
		} else {
			out[i] = c
		}
	}
	return string(out)
}
