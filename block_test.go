package emeeprom

import (
	"context"
	"testing"

	"github.com/Infineon/emeeprom/memdevice"
	"github.com/stretchr/testify/assert"
)

// asyncDevice wraps memdevice.Device to additionally advertise
// AsyncProgrammer, for testing the capability-assertion probe in isolation
// from any concrete driver's real non-blocking behavior.
type asyncDevice struct {
	*memdevice.Device
	nbCalls int
}

func (a *asyncDevice) ProgramNB(ctx context.Context, addr uint32, data []byte) error {
	a.nbCalls++
	return a.Device.Program(ctx, addr, data)
}

func (a *asyncDevice) EraseNB(ctx context.Context, addr uint32, length uint32) error {
	a.nbCalls++
	return a.Device.Erase(ctx, addr, length)
}

func TestAsyncSupportDetectsCapability(t *testing.T) {
	plain := memdevice.New(4096, 512, false)
	_, ok := asyncSupport(plain)
	assert.False(t, ok)

	wrapped := &asyncDevice{Device: memdevice.New(4096, 512, false)}
	_, ok = asyncSupport(wrapped)
	assert.True(t, ok)
}

func TestBlankSupportAbsentOnPlainDevice(t *testing.T) {
	plain := memdevice.New(4096, 512, false)
	_, ok := blankSupport(plain)
	assert.False(t, ok)
}

func TestNonBlockingWriteUsesAsyncProgrammer(t *testing.T) {
	ctx := context.Background()
	dev := &asyncDevice{Device: memdevice.New(4096, 512, false)}
	c, err := New(ctx, Config{EEPROMSize: 512, WearLevelingFactor: 1, BlockingWrite: false}, dev)
	assert.NoError(t, err)

	status, err := c.Write(ctx, 0, []byte("x"), 1)
	assert.NoError(t, err)
	assert.Equal(t, StatusSuccess, status)
	assert.Greater(t, dev.nbCalls, 0)
}
