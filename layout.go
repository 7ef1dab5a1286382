package emeeprom

// The Layout Mapper works entirely in row-index space: index 0..numRows*W-1
// addresses a primary row, and index+numRows*W (when redundancy is enabled)
// addresses its mirror. physicalAddr converts an index to the byte address
// the block driver understands. Keeping the head as an index rather than a
// raw address avoids address-arithmetic hazards at the wraparound boundary.

// physicalAddr returns the byte address of primary row idx.
func (c *Context) physicalAddr(idx uint32) uint32 {
	return c.cfg.UserNvmStartAddr + idx*c.rowSize
}

// mirrorAddr returns the byte address of the mirror of primary row idx.
// ok is false when redundancy is disabled.
func (c *Context) mirrorAddr(idx uint32) (addr uint32, ok bool) {
	if !c.cfg.RedundantCopy {
		return 0, false
	}
	mirrorIdx := idx + c.numRows*uint32(c.cfg.WearLevelingFactor)
	return c.cfg.UserNvmStartAddr + mirrorIdx*c.rowSize, true
}

// next advances a primary row index by one row, wrapping back to 0 at the
// end of the primary region. It never crosses into the mirror region.
func (c *Context) next(idx uint32) uint32 {
	total := c.numRows * uint32(c.cfg.WearLevelingFactor)
	idx++
	if idx >= total {
		idx = 0
	}
	return idx
}

// readCompanion locates the row holding the previous historic snapshot for
// the logical slice that idx's wear block currently owns. With W=1 a row is
// its own companion: there is only one copy of the slice. With W>1, the
// previous snapshot lives in the previous wear block, except that the first
// wear block's previous block is the last one (the wear blocks form a ring
// of their own, one level above the row ring).
func (c *Context) readCompanion(idx uint32) uint32 {
	w := uint32(c.cfg.WearLevelingFactor)
	if w <= 1 {
		return idx
	}
	wearBlock := idx / c.numRows
	if wearBlock == 0 {
		return idx + (w-1)*c.numRows
	}
	return idx - c.numRows
}
