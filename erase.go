package emeeprom

import "context"

// Erase clears the logical address space. In extended mode it preserves
// NumWrites continuity: one final row is written with seq = lastSeq+1 and
// a zero payload before every remaining row (primary and mirror) is
// programmed to all-zero, so a subsequent scan finds exactly one valid row
// carrying the post-erase sequence number.
func (c *Context) Erase(ctx context.Context) (Status, error) {
	if c.cfg.SimpleMode {
		return c.eraseSimple(ctx)
	}
	return c.eraseExtended(ctx)
}

func (c *Context) eraseSimple(ctx context.Context) (Status, error) {
	var buf [MaxRow]byte
	rowBuf := buf[:c.rowSize]
	for i := range rowBuf {
		rowBuf[i] = 0
	}
	for idx := uint32(0); idx < c.numRows; idx++ {
		if err := c.program(ctx, c.physicalAddr(idx), rowBuf); err != nil {
			return StatusWriteFail, statusError("Erase", StatusWriteFail, err)
		}
	}
	return StatusSuccess, nil
}

func (c *Context) eraseExtended(ctx context.Context) (Status, error) {
	if _, err := c.checkHeadIntegrity(ctx); err != nil {
		return StatusBadData, err
	}

	var rowImg [MaxRow]byte
	rowBuf := rowImg[:c.rowSize]
	r := newRow(rowBuf)
	r.clear()
	r.setSeq(c.lastSeq + 1)
	r.setChecksum(computeRowChecksum(rowBuf))

	markerIdx := c.next(c.headPtr)
	if err := c.program(ctx, c.physicalAddr(markerIdx), rowBuf); err != nil {
		return StatusWriteFail, statusError("Erase", StatusWriteFail, err)
	}
	if mAddr, ok := c.mirrorAddr(markerIdx); ok {
		if err := c.program(ctx, mAddr, rowBuf); err != nil {
			return StatusWriteFail, statusError("Erase", StatusWriteFail, err)
		}
	}

	var zero [MaxRow]byte
	zeroBuf := zero[:c.rowSize]
	total := c.numRows * uint32(c.cfg.WearLevelingFactor)
	for idx := uint32(0); idx < total; idx++ {
		if idx == markerIdx {
			continue
		}
		if err := c.program(ctx, c.physicalAddr(idx), zeroBuf); err != nil {
			return StatusWriteFail, statusError("Erase", StatusWriteFail, err)
		}
		if mAddr, ok := c.mirrorAddr(idx); ok {
			if err := c.program(ctx, mAddr, zeroBuf); err != nil {
				return StatusWriteFail, statusError("Erase", StatusWriteFail, err)
			}
		}
	}

	c.headPtr = markerIdx
	c.lastSeq++
	return StatusSuccess, nil
}
