package carve

import "encoding/binary"

func u16(data []byte, off int) uint16 {
	return binary.LittleEndian.Uint16(data[off:])
}

func u32(data []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(data[off:])
}

func u64(data []byte, off int) uint64 {
	return binary.LittleEndian.Uint64(data[off:])
}

func i32(data []byte, off int) int32 {
	return int32(u32(data, off))
}
