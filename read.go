package emeeprom

import "context"

// Read copies size logical bytes starting at addr into buf. buf must be at
// least size bytes; only the first size bytes are written. In extended
// mode the returned Status reflects the worst fault observed reconstructing
// any part of the range; in simple mode it is Success or BadData.
func (c *Context) Read(ctx context.Context, addr uint32, buf []byte, size uint32) (Status, error) {
	if buf == nil || size == 0 || uint64(addr)+uint64(size) > uint64(c.cfg.EEPROMSize) {
		return StatusBadParam, statusError("Read", StatusBadParam, nil)
	}

	for i := uint32(0); i < size; i++ {
		buf[i] = 0
	}

	if c.cfg.SimpleMode {
		return c.readSimple(ctx, addr, buf[:size])
	}
	return c.readExtended(ctx, addr, buf[:size])
}

func (c *Context) readSimple(ctx context.Context, addr uint32, out []byte) (Status, error) {
	phys := c.cfg.UserNvmStartAddr + addr
	if bc, ok := blankSupport(c.bd); ok {
		blank, err := bc.BlankCheck(ctx, phys, ceilDiv(uint32(len(out)), 4))
		if err != nil {
			return StatusBadData, statusError("Read", StatusBadData, err)
		}
		if blank {
			return StatusSuccess, nil
		}
	}
	if err := c.bd.Read(ctx, phys, out); err != nil {
		return StatusBadData, statusError("Read", StatusBadData, err)
	}
	return StatusSuccess, nil
}

// readExtended implements the historic+header reconstruction described in
// 4.E. Both passes walk the same N rows: the freshest copy of every
// logical slice, reachable from readCompanion(head) by N steps of next.
// The two passes must stay separate rather than be fused into one loop:
// the header pass overlays newer writes on top of the historic baseline,
// and a row visited later in the walk order must not let its historic
// copy clobber an overlay an earlier row already applied to the same
// output bytes.
func (c *Context) readExtended(ctx context.Context, addr uint32, out []byte) (Status, error) {
	status, err := c.checkHeadIntegrity(ctx)
	if err != nil {
		return status, err
	}

	half := c.rowSize / 2
	reqEnd := addr + uint32(len(out))
	companion := c.readCompanion(c.headPtr)

	// Both passes walk the N rows companion+1 .. head, i.e. advance before
	// processing each row starting from the companion. Processing the
	// companion itself first (as a plain start-at-companion walk would)
	// excludes the head row from the walk entirely for W>1, losing the most
	// recently written row's data; advancing first includes it.

	// Historic pass: only rows whose owned slice intersects the request
	// need to be read at all, since slice ownership is pure arithmetic.
	{
		var buf [MaxRow]byte
		rowBuf := buf[:c.rowSize]
		idx := companion
		for i := uint32(0); i < c.numRows; i++ {
			idx = c.next(idx)
			n := idx % c.numRows
			sliceStart := n * half
			sliceEnd := sliceStart + half
			if sliceStart < reqEnd && addr < sliceEnd {
				rowStatus, rerr := c.readRowChecked(ctx, idx, rowBuf)
				if rerr != nil {
					return status, rerr
				}
				status = worse(status, rowStatus)
				if rowStatus != StatusBadChecksum {
					copyIntersection(out, addr, sliceStart, newRow(rowBuf).historic())
				}
			}
		}
	}

	// Header pass: every row's addr/len is only known after reading it, so
	// this pass cannot skip a row on arithmetic alone; it overlays on top
	// of whatever the historic pass produced, in write order, so newer
	// header writes always win over older historic snapshots.
	{
		var buf [MaxRow]byte
		rowBuf := buf[:c.rowSize]
		idx := companion
		for i := uint32(0); i < c.numRows; i++ {
			idx = c.next(idx)
			rowStatus, rerr := c.readRowChecked(ctx, idx, rowBuf)
			if rerr != nil {
				return status, rerr
			}
			status = worse(status, rowStatus)
			if rowStatus != StatusBadChecksum {
				r := newRow(rowBuf)
				rowAddr, rowLen := r.addr(), r.length()
				if rowLen > 0 {
					rowEnd := rowAddr + rowLen
					if rowAddr < reqEnd && addr < rowEnd {
						copyIntersection(out, addr, rowAddr, r.headerData()[:rowLen])
					}
				}
			}
		}
	}
	return status, nil
}

// copyIntersection copies the overlap between the caller's [reqAddr,
// reqAddr+len(out)) window and a source span that starts at logical
// address srcAddr, from src into out.
func copyIntersection(out []byte, reqAddr uint32, srcAddr uint32, src []byte) {
	srcEnd := srcAddr + uint32(len(src))
	reqEnd := reqAddr + uint32(len(out))

	start := srcAddr
	if reqAddr > start {
		start = reqAddr
	}
	end := srcEnd
	if reqEnd < end {
		end = reqEnd
	}
	if start >= end {
		return
	}
	copy(out[start-reqAddr:end-reqAddr], src[start-srcAddr:end-srcAddr])
}
