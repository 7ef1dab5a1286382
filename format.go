package emeeprom

import "encoding/binary"

// littleEndian32 encodes v as 4 bytes of little-endian wire data.
func littleEndian32(v uint32) []byte {
	dst := [4]byte{}
	binary.LittleEndian.PutUint32(dst[:], v)
	return dst[:]
}

// readLittleEndian32 decodes the 4 little-endian bytes at the head of b.
func readLittleEndian32(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b)
}
