package emeeprom

import (
	"testing"

	"github.com/Infineon/emeeprom/memdevice"
	"github.com/stretchr/testify/assert"
)

func TestConfigValidateRejectsZeroSize(t *testing.T) {
	dev := memdevice.New(4096, 512, false)
	_, err := Config{WearLevelingFactor: 1, BlockingWrite: true}.validate(dev, 512, 1)
	assert.Error(t, err)
}

func TestConfigValidateRejectsOutOfRangeWearFactor(t *testing.T) {
	dev := memdevice.New(4096, 512, false)
	cfg := Config{EEPROMSize: 256, WearLevelingFactor: 11, BlockingWrite: true}
	_, err := cfg.validate(dev, 512, 1)
	assert.Error(t, err)
}

func TestConfigValidateRejectsNonBlockingWithoutAsyncSupport(t *testing.T) {
	dev := memdevice.New(4096, 512, false)
	cfg := Config{EEPROMSize: 256, WearLevelingFactor: 1, BlockingWrite: false}
	_, err := cfg.validate(dev, 512, 1)
	assert.Error(t, err)
}

func TestConfigValidateRejectsRegionOutsideDevice(t *testing.T) {
	dev := memdevice.New(512, 512, false)
	cfg := Config{EEPROMSize: 4096, WearLevelingFactor: 1, BlockingWrite: true}
	_, err := cfg.validate(dev, 512, 8)
	assert.Error(t, err)
}

func TestPhysicalSizeFormula(t *testing.T) {
	cfg := Config{WearLevelingFactor: 2, RedundantCopy: true}
	assert.Equal(t, uint32(4*512*2*2), physicalSize(cfg, 512, 4))

	simple := Config{SimpleMode: true}
	assert.Equal(t, uint32(4*512), physicalSize(simple, 512, 4))
}
