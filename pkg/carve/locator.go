package carve

// Stride selects how far the locator advances its cursor between
// candidate header reads.
type Stride int

const (
	// Stride8192 advances by a full page on both acceptance and
	// rejection. This matches the behavior observed in the tool this
	// carver is modeled on and is the default.
	Stride8192 Stride = 8192
	// Stride512 advances by a single disk sector at a time, the more
	// literal reading of "scans in 512-byte strides."
	Stride512 Stride = 512
)

const sectorSize = 512

// Page is one accepted candidate page together with the header and
// pointer count already decoded from it.
type Page struct {
	Offset       int64
	Bytes        []byte
	Header       PageHeader
	PointerCount int
}

// Relation is an ordered run of pages whose file offsets advance by
// exactly PageSize between consecutive accepted headers.
type Relation struct {
	Pages []Page
}

// Locate sweeps data for candidate heap pages using the given stride
// and groups accepted pages into relations. data is held in memory for
// the duration of the call; callers carving large images should do so
// a bounded window at a time.
func Locate(data []byte, stride Stride) []Relation {
	var relations []Relation
	var current *Relation
	previousPageCursor := int64(-1)

	step := int64(stride)
	for cursor := int64(0); cursor+sectorSize <= int64(len(data)); cursor += step {
		if cursor+headerSize > int64(len(data)) {
			break
		}
		header := ParsePageHeader(data[cursor:])
		if !header.Valid() {
			continue
		}
		if cursor+PageSize > int64(len(data)) {
			continue
		}

		page := Page{
			Offset:       cursor,
			Bytes:        data[cursor : cursor+PageSize],
			Header:       header,
			PointerCount: header.PointerCount(),
		}

		delta := cursor - previousPageCursor
		if current != nil && (delta == 0 || delta == PageSize) {
			current.Pages = append(current.Pages, page)
		} else {
			if current != nil {
				relations = append(relations, *current)
			}
			current = &Relation{Pages: []Page{page}}
		}
		previousPageCursor = cursor
	}

	if current != nil {
		relations = append(relations, *current)
	}
	return relations
}
