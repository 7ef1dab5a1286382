package emeeprom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCRC8KnownVectors(t *testing.T) {
	assert.Equal(t, uint8(0xFF), crc8(nil))
	assert.NotEqual(t, crc8([]byte{0x00}), crc8([]byte{0x01}))
}

func TestComputeRowChecksumExcludesChecksumField(t *testing.T) {
	row := make([]byte, 64)
	row[0] = 0xAB // checksum field, must not affect the computed value
	want := computeRowChecksum(row)

	row[0] = 0xCD
	assert.Equal(t, want, computeRowChecksum(row))
}

func TestComputeRowChecksumDetectsBitFlip(t *testing.T) {
	row := make([]byte, 64)
	for i := range row {
		row[i] = byte(i)
	}
	sum := computeRowChecksum(row)
	row[0] = littleEndian32(sum)[0]

	row[40] ^= 0x01
	assert.NotEqual(t, sum, computeRowChecksum(row))
}
