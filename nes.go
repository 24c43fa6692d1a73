// Package cynes is a headless, deterministic NES emulator. It executes
// unmodified iNES ROM images frame by frame and exposes the rendered
// frame buffer plus full emulator state to programmatic consumers such as
// reinforcement-learning agents and automated test harnesses.
package cynes

import (
	"github.com/hal609/cynes/internal/apu"
	"github.com/hal609/cynes/internal/cartridge"
	"github.com/hal609/cynes/internal/cpu"
	"github.com/hal609/cynes/internal/ppu"
	"github.com/hal609/cynes/romloader"
)

// Error classes surfaced by the public API.
var (
	ErrInvalidROM        = cartridge.ErrInvalidROM
	ErrUnsupportedMapper = cartridge.ErrUnsupportedMapper
)

// Controller button bits, LSB first in the serial read order.
const (
	ButtonA uint8 = 1 << iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

// Frame geometry of the rendered output.
const (
	FrameWidth  = ppu.FrameWidth
	FrameHeight = ppu.FrameHeight
	FrameSize   = ppu.FrameSize
)

// NES is one emulator instance: CPU, PPU, APU, cartridge and console RAM
// behind a single master clock. It is not safe for concurrent use.
type NES struct {
	// Controller is the player-1 input byte. It is latched by games
	// strobing $4016.
	Controller uint8

	ram [0x800]uint8

	cpu    *cpu.CPU
	ppu    *ppu.PPU
	apu    *apu.APU
	mapper cartridge.Mapper
	rom    *cartridge.ROM

	openBus uint8

	controllerShift  uint8
	controllerStrobe bool

	frameDone bool
	crashed   bool

	stateSize int
}

// New opens a ROM file and boots an emulator for it. The path may name a
// bare .nes file or a zip/gz/7z/rar archive containing one.
func New(path string) (*NES, error) {
	data, err := romloader.Load(path)
	if err != nil {
		return nil, err
	}
	return NewFromData(data)
}

// NewFromData boots an emulator from an in-memory iNES image.
func NewFromData(data []byte) (*NES, error) {
	rom, err := cartridge.ParseROM(data)
	if err != nil {
		return nil, err
	}
	mapper, err := cartridge.NewMapper(rom)
	if err != nil {
		return nil, err
	}

	n := &NES{
		rom:    rom,
		mapper: mapper,
	}

	n.ppu = ppu.New(mapper)
	n.apu = apu.New(n.readMemory)
	n.cpu = cpu.New(cpuBus{n})

	n.stateSize = n.measureState()

	n.cpu.PowerOn()

	return n, nil
}

// Reset re-initializes the CPU, PPU, APU and mapper to their post-power-on
// state. Cartridge memory contents survive; the RESET sequence runs.
func (n *NES) Reset() {
	n.ppu.Reset()
	n.apu.Reset()
	n.mapper.Reset()

	n.controllerShift = 0
	n.controllerStrobe = false
	n.openBus = 0
	n.frameDone = false
	n.crashed = false

	n.cpu.Reset()
}

// Step runs the emulator for the given number of video frames and returns
// the frame buffer: 240x256x3 bytes, row-major RGB. The returned slice
// aliases emulator-owned memory and is only valid until the next Step,
// Load, or Reset. Once the CPU has crashed, Step is a no-op returning the
// last rendered frame.
func (n *NES) Step(frames int) []byte {
	for f := 0; f < frames && !n.crashed; f++ {
		n.frameDone = false
		for !n.frameDone {
			n.cpu.ExecuteInstruction()
			if n.cpu.Crashed() {
				n.crashed = true
				break
			}
		}
	}
	return n.ppu.FrameBuffer()
}

// Frame returns the current frame buffer without advancing emulation.
func (n *NES) Frame() []byte {
	return n.ppu.FrameBuffer()
}

// RAM returns the 2 KiB of console work RAM. The slice aliases live
// emulator memory.
func (n *NES) RAM() []byte {
	return n.ram[:]
}

// HasCrashed reports whether the CPU hit a KIL opcode. The latch holds
// until Reset or a save-state Load.
func (n *NES) HasCrashed() bool {
	return n.crashed
}

// Read performs a CPU bus read at the given address without advancing the
// clock. It drives the normal bus path, so reads of memory-mapped
// registers have their usual side effects.
func (n *NES) Read(address uint16) uint8 {
	return n.readMemory(address)
}

// Write performs a CPU bus write at the given address without advancing
// the clock for the write itself. Like Read, register side effects apply;
// a write to $4014 runs OAM DMA, which advances the clock by 513 or 514
// CPU cycles.
func (n *NES) Write(address uint16, value uint8) {
	n.writeMemory(address, value)
}
