package emeeprom

import "context"

// Write stores size bytes from buf starting at logical address addr. It
// returns on the first WriteFail, leaving any earlier rows of a multi-row
// write committed - the engine does not roll back partial progress (see
// the design notes on partial multi-row write inconsistency).
func (c *Context) Write(ctx context.Context, addr uint32, buf []byte, size uint32) (Status, error) {
	if buf == nil || size == 0 || uint64(addr)+uint64(size) > uint64(c.cfg.EEPROMSize) {
		return StatusBadParam, statusError("Write", StatusBadParam, nil)
	}

	if c.cfg.SimpleMode {
		return c.writeSimple(ctx, addr, buf[:size])
	}
	return c.writeExtended(ctx, addr, buf[:size])
}

func (c *Context) writeSimple(ctx context.Context, addr uint32, data []byte) (Status, error) {
	var buf [MaxRow]byte

	pos := uint32(0)
	for pos < uint32(len(data)) {
		logicalRow := (addr + pos) / c.rowSize
		rowStart := logicalRow * c.rowSize
		offsetInRow := (addr + pos) - rowStart
		n := c.rowSize - offsetInRow
		if remaining := uint32(len(data)) - pos; n > remaining {
			n = remaining
		}

		rowBuf := buf[:c.rowSize]
		phys := c.cfg.UserNvmStartAddr + rowStart
		filled := false
		if bc, ok := blankSupport(c.bd); ok {
			blank, err := bc.BlankCheck(ctx, phys, ceilDiv(c.rowSize, 4))
			if err != nil {
				return StatusBadData, statusError("Write", StatusBadData, err)
			}
			if blank {
				for i := range rowBuf {
					rowBuf[i] = 0
				}
				filled = true
			}
		}
		if !filled {
			if err := c.bd.Read(ctx, phys, rowBuf); err != nil {
				return StatusBadData, statusError("Write", StatusBadData, err)
			}
		}

		copy(rowBuf[offsetInRow:offsetInRow+n], data[pos:pos+n])

		if err := c.program(ctx, phys, rowBuf); err != nil {
			return StatusWriteFail, statusError("Write", StatusWriteFail, err)
		}

		pos += n
	}
	return StatusSuccess, nil
}

// writeExtended implements 4.E's extended write: the payload is chunked
// into header-data-sized pieces, one physical row per chunk.
func (c *Context) writeExtended(ctx context.Context, addr uint32, data []byte) (Status, error) {
	var rowImg [MaxRow]byte
	rowBuf := rowImg[:c.rowSize]
	half := c.rowSize / 2

	pos := uint32(0)
	curAddr := addr
	for pos < uint32(len(data)) {
		if _, err := c.checkHeadIntegrity(ctx); err != nil {
			return StatusBadData, err
		}

		newIdx := c.next(c.headPtr)
		newSeq := c.lastSeq + 1

		chunkLen := c.headerCap
		if remaining := uint32(len(data)) - pos; chunkLen > remaining {
			chunkLen = remaining
		}

		r := newRow(rowBuf)
		r.clear()
		r.setSeq(newSeq)
		r.setAddr(curAddr)
		r.setLength(chunkLen)
		copy(r.headerData()[:chunkLen], data[pos:pos+chunkLen])

		if err := c.fillHistoric(ctx, newIdx, r); err != nil {
			return StatusBadData, err
		}

		n := newIdx % c.numRows
		sliceStart := n * half
		// The row's own header-data is the most recent write affecting
		// its historic slice; overlay it last so it takes priority over
		// anything copied from older rows in fillHistoric.
		rowEnd := curAddr + chunkLen
		sliceEnd := sliceStart + half
		if curAddr < sliceEnd && sliceStart < rowEnd {
			copyIntersection(r.historic(), sliceStart, curAddr, r.headerData()[:chunkLen])
		}

		r.setChecksum(computeRowChecksum(rowBuf))

		phys := c.physicalAddr(newIdx)
		if err := c.program(ctx, phys, rowBuf); err != nil {
			return StatusWriteFail, statusError("Write", StatusWriteFail, err)
		}
		if mAddr, ok := c.mirrorAddr(newIdx); ok {
			if err := c.program(ctx, mAddr, rowBuf); err != nil {
				return StatusWriteFail, statusError("Write", StatusWriteFail, err)
			}
		}

		c.headPtr = newIdx
		c.lastSeq = newSeq

		pos += chunkLen
		curAddr += chunkLen
	}
	return StatusSuccess, nil
}

// fillHistoric copies the companion row's historic half into the new row's
// historic half (the baseline snapshot), then overlays any still-live
// header-data from the N rows that precede the new row's slot, starting at
// the companion, oldest first, so later writes take priority. With W=1 the
// companion is the new row's own previous image, so the walk covers every
// row of the region.
func (c *Context) fillHistoric(ctx context.Context, newIdx uint32, r row) error {
	var buf [MaxRow]byte
	rowBuf := buf[:c.rowSize]

	companion := c.readCompanion(newIdx)
	status, err := c.readRowChecked(ctx, companion, rowBuf)
	if err != nil {
		return err
	}
	if status != StatusBadChecksum {
		cr := newRow(rowBuf)
		if !cr.neverWritten() {
			copy(r.historic(), cr.historic())
		}
	}

	half := c.rowSize / 2
	n := newIdx % c.numRows
	sliceStart := n * half
	sliceEnd := sliceStart + half

	idx := companion
	for i := uint32(0); i < c.numRows; i++ {
		rowStatus, rerr := c.readRowChecked(ctx, idx, rowBuf)
		if rerr != nil {
			return rerr
		}
		if rowStatus != StatusBadChecksum {
			pr := newRow(rowBuf)
			rowAddr, rowLen := pr.addr(), pr.length()
			if rowLen > 0 {
				rowEnd := rowAddr + rowLen
				if rowAddr < sliceEnd && sliceStart < rowEnd {
					copyIntersection(r.historic(), sliceStart, rowAddr, pr.headerData()[:rowLen])
				}
			}
		}
		idx = c.next(idx)
	}
	return nil
}

// program issues a blocking or non-blocking program through the driver,
// erasing first when the technology requires it.
func (c *Context) program(ctx context.Context, addr uint32, data []byte) error {
	if c.bd.IsEraseRequired() {
		if err := c.eraseBlocking(ctx, addr, uint32(len(data))); err != nil {
			return err
		}
	}
	if !c.cfg.BlockingWrite {
		if a, ok := asyncSupport(c.bd); ok {
			return a.ProgramNB(ctx, addr, data)
		}
	}
	return c.bd.Program(ctx, addr, data)
}

func (c *Context) eraseBlocking(ctx context.Context, addr uint32, length uint32) error {
	if !c.cfg.BlockingWrite {
		if a, ok := asyncSupport(c.bd); ok {
			return a.EraseNB(ctx, addr, length)
		}
	}
	return c.bd.Erase(ctx, addr, length)
}
