package emeeprom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testContext(numRows uint32, wear uint8, rowSize uint32, redundant bool) *Context {
	return &Context{
		cfg: Config{
			WearLevelingFactor: wear,
			RedundantCopy:      redundant,
		},
		rowSize: rowSize,
		numRows: numRows,
	}
}

func TestNextWrapsWithinPrimaryRegion(t *testing.T) {
	c := testContext(4, 2, 64, false)
	assert.Equal(t, uint32(1), c.next(0))
	assert.Equal(t, uint32(7), c.next(6))
	assert.Equal(t, uint32(0), c.next(7)) // wraps at N*W = 8
}

func TestMirrorAddrDisabled(t *testing.T) {
	c := testContext(4, 1, 64, false)
	_, ok := c.mirrorAddr(2)
	assert.False(t, ok)
}

func TestMirrorAddrOffsetByNWR(t *testing.T) {
	c := testContext(4, 2, 64, true)
	addr, ok := c.mirrorAddr(3)
	assert.True(t, ok)
	// mirror index = idx + N*W = 3 + 8 = 11; physical = base + 11*R
	assert.Equal(t, uint32(11*64), addr)
}

func TestReadCompanionSingleWearBlock(t *testing.T) {
	c := testContext(4, 1, 64, false)
	for idx := uint32(0); idx < 4; idx++ {
		assert.Equal(t, idx, c.readCompanion(idx))
	}
}

func TestReadCompanionStepsBackOneWearBlock(t *testing.T) {
	c := testContext(4, 3, 64, false)
	// idx=6 is slot 2 of wear block 1 (idx/N=1); companion steps back N.
	assert.Equal(t, uint32(2), c.readCompanion(6))
}

func TestReadCompanionWrapsFromFirstBlockToLast(t *testing.T) {
	c := testContext(4, 3, 64, false)
	// idx=1 is slot 1 of wear block 0; companion jumps to the last block.
	assert.Equal(t, uint32(1+2*4), c.readCompanion(1))
}
