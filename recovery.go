package emeeprom

import "context"

// scanForHead sweeps every primary row, then every mirror row if
// redundancy is enabled, tracking the greatest valid sequence number. It
// sets Context.headPtr/lastSeq and is called from New and whenever the
// cheap integrity check below fails outright.
func (c *Context) scanForHead(ctx context.Context) (Status, error) {
	var buf [MaxRow]byte
	rowBuf := buf[:c.rowSize]

	total := c.numRows * uint32(c.cfg.WearLevelingFactor)
	var maxSeq uint32
	var ptrMax uint32
	found := false

	for idx := uint32(0); idx < total; idx++ {
		if err := c.bd.Read(ctx, c.physicalAddr(idx), rowBuf); err != nil {
			return StatusBadData, statusError("scanForHead", StatusBadData, err)
		}
		r := newRow(rowBuf)
		if r.neverWritten() {
			continue
		}
		if !r.checksumValid() {
			continue
		}
		if !found || r.seq() > maxSeq {
			maxSeq = r.seq()
			ptrMax = idx
			found = true
		}
	}

	status := StatusSuccess
	if c.cfg.RedundantCopy {
		for idx := uint32(0); idx < total; idx++ {
			mAddr, ok := c.mirrorAddr(idx)
			if !ok {
				break
			}
			if err := c.bd.Read(ctx, mAddr, rowBuf); err != nil {
				return StatusBadData, statusError("scanForHead", StatusBadData, err)
			}
			r := newRow(rowBuf)
			if r.neverWritten() || !r.checksumValid() {
				continue
			}
			if !found || r.seq() > maxSeq {
				maxSeq = r.seq()
				ptrMax = idx
				found = true
				status = StatusRedundantCopyUsed
			}
		}
	}

	if !found {
		c.headPtr = 0
		c.lastSeq = 0
		return StatusSuccess, nil
	}
	c.headPtr = ptrMax
	c.lastSeq = maxSeq
	if status == StatusRedundantCopyUsed {
		c.logger.Warn("emeeprom: recovery scan selected a mirror row",
		)
	}
	return status, nil
}

// checkHeadIntegrity is the cheap path: verify the cached head's checksum;
// on failure consult its mirror; on double failure fall back to a full
// scan and still report BadChecksum, since the cached head was bad even
// though the scan may have recovered a valid new one.
func (c *Context) checkHeadIntegrity(ctx context.Context) (Status, error) {
	var buf [MaxRow]byte
	rowBuf := buf[:c.rowSize]

	if err := c.bd.Read(ctx, c.physicalAddr(c.headPtr), rowBuf); err != nil {
		return StatusBadData, statusError("checkHeadIntegrity", StatusBadData, err)
	}
	head := newRow(rowBuf)
	if head.neverWritten() || head.checksumValid() {
		return StatusSuccess, nil
	}

	if mAddr, ok := c.mirrorAddr(c.headPtr); ok {
		if err := c.bd.Read(ctx, mAddr, rowBuf); err != nil {
			return StatusBadData, statusError("checkHeadIntegrity", StatusBadData, err)
		}
		mirror := newRow(rowBuf)
		if mirror.checksumValid() {
			c.lastSeq = mirror.seq()
			c.logger.Warn("emeeprom: head checksum failed, served from mirror")
			return StatusRedundantCopyUsed, nil
		}
	}

	c.logger.Warn("emeeprom: head and mirror both failed checksum, rescanning")
	if _, err := c.scanForHead(ctx); err != nil {
		return StatusBadChecksum, err
	}
	return StatusBadChecksum, nil
}

// readRowChecked reads primary row idx into buf, falling back to its
// mirror on checksum failure. It reports StatusBadChecksum (leaving buf
// holding the invalid primary image, which the caller must not trust) when
// neither copy validates. A never-written row is reported as Success with
// buf left all-zero, matching the spec's "seq=0 ∧ checksum=0 is not
// corrupt" rule.
func (c *Context) readRowChecked(ctx context.Context, idx uint32, buf []byte) (Status, error) {
	if err := c.bd.Read(ctx, c.physicalAddr(idx), buf); err != nil {
		return StatusBadData, statusError("readRowChecked", StatusBadData, err)
	}
	r := newRow(buf)
	if r.neverWritten() {
		for i := range buf {
			buf[i] = 0
		}
		return StatusSuccess, nil
	}
	if r.checksumValid() {
		return StatusSuccess, nil
	}

	if mAddr, ok := c.mirrorAddr(idx); ok {
		if err := c.bd.Read(ctx, mAddr, buf); err != nil {
			return StatusBadData, statusError("readRowChecked", StatusBadData, err)
		}
		if newRow(buf).checksumValid() {
			c.logger.Warn("emeeprom: row checksum failed, served from mirror")
			return StatusRedundantCopyUsed, nil
		}
	}
	return StatusBadChecksum, nil
}
