package carve

const (
	// PageSize is the fixed PostgreSQL heap page size this carver recognizes.
	PageSize = 8192

	headerSize  = 24
	itemIDSize  = 4
	maxPointers = 341 // upper bound on pointer_count for an 8 KiB page

	// pageLayoutVersion is the pd_pagesize_version composite this carver
	// accepts: page size 8192 packed with layout version 4.
	pageLayoutVersion = 8196
)

// PageHeader is the first 24 bytes of a candidate PostgreSQL heap page.
type PageHeader struct {
	LSN       uint64
	TLI       uint16
	Flags     uint16
	Lower     uint16
	Upper     uint16
	Special   uint16
	PageVer   uint16
	PruneXmax uint32
}

// ParsePageHeader reads the fixed 24-byte header. The caller must ensure
// data is at least headerSize bytes long.
func ParsePageHeader(data []byte) PageHeader {
	return PageHeader{
		LSN:       u64(data, 0),
		TLI:       u16(data, 8),
		Flags:     u16(data, 10),
		Lower:     u16(data, 12),
		Upper:     u16(data, 14),
		Special:   u16(data, 16),
		PageVer:   u16(data, 18),
		PruneXmax: u32(data, 20),
	}
}

// PointerCount returns the number of line pointers implied by pd_lower.
// It is only meaningful when Lower >= headerSize; callers should check
// Valid first.
func (h PageHeader) PointerCount() int {
	n := (int(h.Lower) - headerSize) / itemIDSize
	if n < 0 {
		return 0
	}
	return n
}

// Valid reports whether h looks like a genuine PostgreSQL heap page
// header.
func (h PageHeader) Valid() bool {
	if h.LSN == 0 {
		return false
	}
	if int(h.Lower) < headerSize {
		return false
	}
	if h.PointerCount() > maxPointers {
		return false
	}
	if h.Upper == 0 || h.Upper > PageSize || h.Upper < h.Lower {
		return false
	}
	if h.PageVer != pageLayoutVersion {
		return false
	}
	return true
}
