package emeeprom

// Config enumerates the options the engine is initialized with. All fields
// are validated together by validate before any NVM access is attempted.
type Config struct {
	// EEPROMSize is the logical capacity in bytes; must be > 0.
	EEPROMSize uint32
	// SimpleMode disables wear-leveling, redundancy, and checksums: the
	// entire logical address space is a raw pass-through to the device.
	SimpleMode bool
	// WearLevelingFactor W replicates the logical row layout across this
	// many physical wear blocks. Ignored in simple mode. Range [1, 10].
	WearLevelingFactor uint8
	// RedundantCopy enables a mirror of the whole primary region, offset
	// by N*W*R bytes. Ignored in simple mode.
	RedundantCopy bool
	// BlockingWrite selects the blocking program/erase path. False is
	// rejected at validation time if the driver lacks non-blocking
	// support, since there would be no way to honor it.
	BlockingWrite bool
	// UserNvmStartAddr is the physical base address of the storage region.
	UserNvmStartAddr uint32
}

// validate checks every field in one pass, mirroring the single combined
// validation the original engine performs before any NVM access: field
// range checks first (BadParam), then the device range check (BadData).
func (c Config) validate(bd BlockDevice, rowSize uint32, numRows uint32) (Status, error) {
	if c.EEPROMSize == 0 {
		return StatusBadParam, statusError("validate", StatusBadParam, nil)
	}
	if !c.SimpleMode {
		if c.WearLevelingFactor < 1 || c.WearLevelingFactor > 10 {
			return StatusBadParam, statusError("validate", StatusBadParam, nil)
		}
	}
	if bd == nil {
		return StatusBadParam, statusError("validate", StatusBadParam, nil)
	}
	if !c.BlockingWrite {
		if _, ok := asyncSupport(bd); !ok {
			return StatusBadParam, statusError("validate", StatusBadParam, nil)
		}
	}

	physSize := physicalSize(c, rowSize, numRows)
	if !bd.IsInRange(c.UserNvmStartAddr, physSize) {
		return StatusBadData, statusError("validate", StatusBadData, nil)
	}
	return StatusSuccess, nil
}

// physicalSize computes physical = N x R x (simple ? 1 : W x (redundant+1)).
func physicalSize(c Config, rowSize uint32, numRows uint32) uint32 {
	if c.SimpleMode {
		return numRows * rowSize
	}
	mirrors := uint32(1)
	if c.RedundantCopy {
		mirrors = 2
	}
	return numRows * rowSize * uint32(c.WearLevelingFactor) * mirrors
}
