// Package memdevice provides an in-memory BlockDevice for tests: a flat
// byte slice standing in for NVM, with an erased state that reads as
// all-zero and an optional fault injector for corruption tests. Grounded
// on the byte-addressable read/write shape of the I2C EEPROM driver in the
// example corpus, adapted to an in-process capability implementation
// instead of a bus transaction.
package memdevice

import (
	"context"

	"github.com/pkg/errors"
)

// Device is a fixed-size memory-backed NVM. Zero value is not usable; use
// New. Device is safe only for sequential use, matching the engine's own
// single-threaded contract.
type Device struct {
	mem            []byte
	eraseRequired  bool
	programSize    uint32
	readFailAddr   map[uint32]bool
	programFailure map[uint32]bool
}

// New returns a Device of size bytes. programSize is what GetProgramSize
// reports; eraseRequired is what IsEraseRequired reports. Program itself
// does not check that the range was erased first.
func New(size uint32, programSize uint32, eraseRequired bool) *Device {
	return &Device{
		mem:           make([]byte, size),
		eraseRequired: eraseRequired,
		programSize:   programSize,
	}
}

func (d *Device) Read(_ context.Context, addr uint32, buf []byte) error {
	if !d.IsInRange(addr, uint32(len(buf))) {
		return errors.Errorf("memdevice: read out of range: addr=%d len=%d", addr, len(buf))
	}
	if d.readFailAddr[addr] {
		return errors.Errorf("memdevice: injected read failure at %d", addr)
	}
	copy(buf, d.mem[addr:addr+uint32(len(buf))])
	return nil
}

func (d *Device) Program(_ context.Context, addr uint32, data []byte) error {
	if !d.IsInRange(addr, uint32(len(data))) {
		return errors.Errorf("memdevice: program out of range: addr=%d len=%d", addr, len(data))
	}
	if d.programFailure[addr] {
		return errors.Errorf("memdevice: injected program failure at %d", addr)
	}
	copy(d.mem[addr:addr+uint32(len(data))], data)
	return nil
}

func (d *Device) Erase(_ context.Context, addr uint32, length uint32) error {
	if !d.IsInRange(addr, length) {
		return errors.Errorf("memdevice: erase out of range: addr=%d len=%d", addr, length)
	}
	for i := addr; i < addr+length; i++ {
		d.mem[i] = 0
	}
	return nil
}

func (d *Device) GetProgramSize(_ context.Context, _ uint32) (uint32, error) {
	return d.programSize, nil
}

func (d *Device) IsInRange(addr uint32, length uint32) bool {
	return uint64(addr)+uint64(length) <= uint64(len(d.mem))
}

func (d *Device) IsEraseRequired() bool { return d.eraseRequired }

// Corrupt flips every bit in the byte at physical addr, for checksum-
// detection tests. It bypasses Program entirely, simulating bit rot rather
// than a normal write.
func (d *Device) Corrupt(addr uint32) {
	d.mem[addr] ^= 0xFF
}

// FailReadAt makes every Read starting at exactly addr return an error,
// simulating a block-driver read failure (BadData).
func (d *Device) FailReadAt(addr uint32) {
	if d.readFailAddr == nil {
		d.readFailAddr = make(map[uint32]bool)
	}
	d.readFailAddr[addr] = true
}

// FailProgramAt makes Program at exactly addr return an error, simulating
// a block-driver program failure (WriteFail).
func (d *Device) FailProgramAt(addr uint32) {
	if d.programFailure == nil {
		d.programFailure = make(map[uint32]bool)
	}
	d.programFailure[addr] = true
}
