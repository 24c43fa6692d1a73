package cynes

import (
	"errors"

	"github.com/hal609/cynes/internal/dump"
)

// ErrInvalidSaveState is returned by Load when the buffer size does not
// match the expected state size for this ROM.
var ErrInvalidSaveState = errors.New("invalid save state")

// dumpState walks every mutable byte of the emulator in the fixed
// save-state order: CPU, console RAM, PPU, APU, mapper, then the facade's
// own latches. The call order IS the format and must stay stable.
func (n *NES) dumpState(s *dump.State) {
	n.cpu.DumpState(s)
	s.Bytes(n.ram[:])
	n.ppu.DumpState(s)
	n.apu.DumpState(s)
	n.mapper.DumpState(s)

	s.Uint8(&n.Controller)
	s.Uint8(&n.controllerShift)
	s.Bool(&n.controllerStrobe)
	s.Uint8(&n.openBus)
}

// measureState computes the save-state size for this ROM. The size is
// fixed per ROM (it depends on CHR-RAM presence and RAM sizes).
func (n *NES) measureState() int {
	s := dump.NewState(dump.Measure, nil)
	n.dumpState(s)
	return s.Offset()
}

// StateSize returns the size in bytes of this emulator's save states.
func (n *NES) StateSize() int {
	return n.stateSize
}

// Save serializes the complete emulator state. The buffer is opaque but
// stable for a given ROM; loading it into an emulator created from a
// different ROM is undefined.
func (n *NES) Save() []byte {
	buffer := make([]byte, n.stateSize)
	n.dumpState(dump.NewState(dump.Write, buffer))
	return buffer
}

// Load restores a state produced by Save on an emulator for the same
// ROM. A buffer of the wrong size leaves the emulator untouched. Loading
// clears the crash latch.
func (n *NES) Load(buffer []byte) error {
	if len(buffer) != n.stateSize {
		return ErrInvalidSaveState
	}

	n.dumpState(dump.NewState(dump.Read, buffer))

	n.crashed = false
	n.cpu.ClearCrash()

	return nil
}
