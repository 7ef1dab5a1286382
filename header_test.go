package emeeprom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowAccessorsRoundTrip(t *testing.T) {
	buf := make([]byte, 64)
	r := newRow(buf)
	r.setSeq(7)
	r.setAddr(128)
	r.setLength(40)
	r.setChecksum(computeRowChecksum(buf))

	assert.Equal(t, uint32(7), r.seq())
	assert.Equal(t, uint32(128), r.addr())
	assert.Equal(t, uint32(40), r.length())
	assert.True(t, r.checksumValid())
}

func TestRowHeaderDataAndHistoricSplitAtHalf(t *testing.T) {
	buf := make([]byte, 64)
	r := newRow(buf)
	require.Len(t, r.headerData(), 32-rowHeaderSize)
	require.Len(t, r.historic(), 32)
}

func TestRowNeverWrittenSentinel(t *testing.T) {
	buf := make([]byte, 64)
	r := newRow(buf)
	assert.True(t, r.neverWritten())

	r.setSeq(1)
	assert.False(t, r.neverWritten())
}

func TestRowClearZeroesEntireBuffer(t *testing.T) {
	buf := make([]byte, 64)
	for i := range buf {
		buf[i] = 0xFF
	}
	r := newRow(buf)
	r.clear()
	for i, b := range buf {
		require.Equal(t, byte(0), b, "byte %d not cleared", i)
	}
}

func TestHeaderCapacityFormula(t *testing.T) {
	assert.Equal(t, uint32(240), headerCapacity(512))
	assert.Equal(t, uint32(48), headerCapacity(128))
}
