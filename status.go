package emeeprom

// Status reports the outcome of a Read, Write, or Erase call. Unlike a
// plain error, Status is a value the caller can use to distinguish
// successful-but-degraded outcomes (a mirror was consulted) from failures,
// without losing that information to a single boolean.
type Status int

const (
	// StatusSuccess means no fault was observed anywhere in the call.
	StatusSuccess Status = iota
	// StatusRedundantCopyUsed means data or recovery state was served from
	// the mirror because the primary row's checksum was invalid.
	StatusRedundantCopyUsed
	// StatusBadChecksum means at least one row needed by the call was
	// unrecoverable (primary and mirror both invalid, or no mirror
	// configured); the corresponding output span was zero-filled.
	StatusBadChecksum
	// StatusBadData means the block driver's read failed, or New rejected
	// a configured region that falls outside the device.
	StatusBadData
	// StatusWriteFail means the block driver's program or erase failed.
	StatusWriteFail
	// StatusBadParam means an API precondition was violated: a nil buffer,
	// a zero size, an out-of-range address, or an invalid config field.
	// BadParam short-circuits before any NVM access; it never competes in
	// the severity ordering below.
	StatusBadParam
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusRedundantCopyUsed:
		return "redundant copy used"
	case StatusBadChecksum:
		return "bad checksum"
	case StatusBadData:
		return "bad data"
	case StatusWriteFail:
		return "write fail"
	case StatusBadParam:
		return "bad param"
	default:
		return "unknown status"
	}
}

// severity orders the five kinds a read/write accumulates across rows:
// SUCCESS < REDUNDANT_COPY_USED < BAD_CHECKSUM < BAD_DATA < WRITE_FAIL.
// BadParam is deliberately absent: it short-circuits and is never folded
// into an accumulated result.
var severity = map[Status]int{
	StatusSuccess:           0,
	StatusRedundantCopyUsed: 1,
	StatusBadChecksum:       2,
	StatusBadData:           3,
	StatusWriteFail:         4,
}

// worse returns whichever of a, b has the greater severity, used to
// accumulate the most severe status observed across a multi-row operation.
func worse(a, b Status) Status {
	if severity[b] > severity[a] {
		return b
	}
	return a
}
