package carve

import "fmt"

// tupleHeaderSize is the fixed portion of a HeapTupleHeader this carver
// reads: xmin, xmax, cid, ctid, natts, flags, infomask, hoff. tbits[0]
// is the byte immediately after it.
const tupleHeaderSize = 23

// maxSaneHoff is the header length past which this carver still proceeds
// but flags the tuple as an anomaly worth a log line.
const maxSaneHoff = 40

// HeapTupleHeader holds the fields of a decoded tuple header needed to
// locate and validate its body.
type HeapTupleHeader struct {
	Xmin     uint32
	Xmax     uint32
	Cid      uint32
	Ctid     [6]byte
	Natts    int
	Flags    byte
	Infomask uint16
	Hoff     byte
	Tbits0   byte
}

// ErrShortTupleHeader is returned when fewer than tupleHeaderSize+1 bytes
// are available at a line pointer's offset.
var ErrShortTupleHeader = fmt.Errorf("carve: tuple header shorter than %d bytes", tupleHeaderSize+1)

// DecodeTupleHeader parses the 23-byte HeapTupleHeader plus tbits[0] at
// the start of data.
func DecodeTupleHeader(data []byte) (HeapTupleHeader, error) {
	if len(data) < tupleHeaderSize+1 {
		return HeapTupleHeader{}, ErrShortTupleHeader
	}
	h := HeapTupleHeader{
		Xmin:     u32(data, 0),
		Xmax:     u32(data, 4),
		Cid:      u32(data, 8),
		Natts:    int(data[18]),
		Flags:    data[19],
		Infomask: u16(data, 20),
		Hoff:     data[22],
		Tbits0:   data[23],
	}
	copy(h.Ctid[:], data[12:18])
	return h, nil
}

// Valid applies the header sanity rules a live tuple must satisfy.
// xmin/xmax are treated as unsigned wrapping transaction IDs throughout,
// never signed. An xmax of 0 (tuple never deleted) is exempt from the
// xmin > xmax rejection.
func (h HeapTupleHeader) Valid() bool {
	if h.Xmin == 0 {
		return false
	}
	if h.Xmax != 0 && h.Xmin > h.Xmax {
		return false
	}
	if h.Hoff < headerSize {
		return false
	}
	if h.Natts == 0 {
		return false
	}
	return true
}

// Anomalous reports whether the header's hoff is large enough to warrant
// a log line even though parsing proceeds.
func (h HeapTupleHeader) Anomalous() bool {
	return int(h.Hoff) > maxSaneHoff
}
