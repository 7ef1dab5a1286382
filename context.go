package emeeprom

import (
	"context"

	"go.uber.org/zap"
)

// Context is the engine's handle: one per logical EEPROM instance, owned
// and mutual-exclusion-protected by the caller. There is no package-level
// default instance - every entry point takes an explicit BlockDevice, so
// nothing here is shared across instances beyond what the caller chooses
// to share.
type Context struct {
	cfg    Config
	bd     BlockDevice
	logger *zap.Logger

	rowSize   uint32 // R
	numRows   uint32 // N = ceil(eepromSize / (R/2)), extended mode only
	headerCap uint32 // H = R/2 - 16, extended mode only

	headPtr uint32 // row index of the last-known-good head
	lastSeq uint32 // seq carried by headPtr; 0 if nothing has ever been written
}

// Option configures New beyond the required Config/BlockDevice pair.
type Option func(*Context)

// WithLogger attaches a structured logger used to report recoverable faults
// (checksum failures, mirror use, full rescans). A nil logger, or omitting
// this option, disables logging.
func WithLogger(l *zap.Logger) Option {
	return func(c *Context) { c.logger = l }
}

// New validates cfg against bd, derives the row geometry, and locates the
// current head by scanning the region. It is the sole constructor: unlike
// the source this is adapted from, there is no implicit global block
// device - bd is always explicit.
func New(ctx context.Context, cfg Config, bd BlockDevice, opts ...Option) (*Context, error) {
	if bd == nil {
		return nil, statusError("New", StatusBadParam, nil)
	}

	c := &Context{cfg: cfg, bd: bd}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = withLogger(c.logger)

	progSize, err := bd.GetProgramSize(ctx, cfg.UserNvmStartAddr)
	if err != nil {
		return nil, statusError("New", StatusBadData, err)
	}

	if cfg.SimpleMode {
		if progSize == 0 {
			return nil, statusError("New", StatusBadParam, nil)
		}
		c.rowSize = progSize
		c.numRows = ceilDiv(cfg.EEPROMSize, c.rowSize)
		if _, err := c.validateSimple(ctx); err != nil {
			return nil, err
		}
		return c, nil
	}

	c.rowSize = roundUpRowSize(progSize)
	if c.rowSize > MaxRow {
		return nil, statusError("New", StatusBadParam, nil)
	}
	c.headerCap = headerCapacity(c.rowSize)
	c.numRows = ceilDiv(cfg.EEPROMSize, c.rowSize/2)

	if _, err := cfg.validate(bd, c.rowSize, c.numRows); err != nil {
		return nil, err
	}

	status, err := c.scanForHead(ctx)
	if err != nil {
		return nil, err
	}
	if status == StatusRedundantCopyUsed {
		c.logger.Warn("emeeprom: head recovered from mirror during init")
	}
	return c, nil
}

// validateSimple runs the subset of Config.validate meaningful in simple
// mode: there is no row geometry to round, only the size, the
// blocking-write capability check, and the raw device range.
func (c *Context) validateSimple(ctx context.Context) (Status, error) {
	if c.cfg.EEPROMSize == 0 {
		return StatusBadParam, statusError("New", StatusBadParam, nil)
	}
	if !c.cfg.BlockingWrite {
		if _, ok := asyncSupport(c.bd); !ok {
			return StatusBadParam, statusError("New", StatusBadParam, nil)
		}
	}
	if !c.bd.IsInRange(c.cfg.UserNvmStartAddr, c.numRows*c.rowSize) {
		return StatusBadData, statusError("New", StatusBadData, nil)
	}
	return StatusSuccess, nil
}

// roundUpRowSize rounds progSize up to the nearest multiple of itself that
// is at least MinRow, matching the original's ComputeEEPROMProgramSize.
func roundUpRowSize(progSize uint32) uint32 {
	if progSize == 0 {
		return MinRow
	}
	if progSize >= MinRow {
		return progSize
	}
	return ceilDiv(MinRow, progSize) * progSize
}

func ceilDiv(a, b uint32) uint32 {
	if b == 0 {
		return 0
	}
	return (a + b - 1) / b
}

// NumWrites returns the head row's sequence number: the count of
// successful writes (including the synthetic write Erase performs) since
// the region was first used. It is always 0 in simple mode, which carries
// no sequence number.
func (c *Context) NumWrites() uint32 {
	if c.cfg.SimpleMode {
		return 0
	}
	return c.lastSeq
}

// PhysicalSize returns physical = N x R x (simple ? 1 : W x (redundant+1)),
// the total NVM footprint this context occupies.
func (c *Context) PhysicalSize() uint32 {
	return physicalSize(c.cfg, c.rowSize, c.numRows)
}
