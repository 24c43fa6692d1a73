package cartridge

import "github.com/hal609/cynes/internal/dump"

// Mapper intercepts every CPU and PPU bus access that reaches the
// cartridge. Reads and writes have side effects beyond the memory access
// itself (bank switching, IRQ counters, CHR latches), so they must not be
// used as plain memory accessors.
type Mapper interface {
	// Tick advances the cartridge internal clocks. Called once per CPU
	// cycle.
	Tick()

	// Reset restores the post-power-on register and bank state without
	// touching cartridge memory contents.
	Reset()

	// ReadCPU reads from the CPU-visible cartridge window. The second
	// return value is false when the addressed bank is unmapped, in which
	// case the bus keeps its previous (open bus) value.
	ReadCPU(address uint16) (uint8, bool)

	// WriteCPU writes to the CPU-visible cartridge window. Writes to
	// read-only or unmapped banks are dropped, but may still trigger
	// mapper side effects.
	WriteCPU(address uint16, value uint8)

	// ReadPPU reads from the PPU address space ($0000-$3EFF).
	ReadPPU(address uint16) uint8

	// WritePPU writes to the PPU address space ($0000-$3EFF).
	WritePPU(address uint16, value uint8)

	// PendingIRQ reports the level of the cartridge IRQ line.
	PendingIRQ() bool

	// DumpState walks every mutable byte of the mapper in save-state
	// order.
	DumpState(s *dump.State)
}

// Each bank is exactly 0x400 bytes large.
const bankSize = 0x400

// memoryBank is a view into the shared cartridge memory array. Banks hold
// raw offsets rather than slices so that serialization is trivial.
type memoryBank struct {
	offset   uint32
	readOnly bool
	mapped   bool
}

func (b *memoryBank) dumpState(s *dump.State) {
	s.Uint32(&b.offset)
	s.Bool(&b.readOnly)
	s.Bool(&b.mapped)
}

// mapperBase owns the cartridge memory and the CPU/PPU bank tables shared
// by every variant. The memory array concatenates
// [PRG | CHR | CPU work RAM | PPU work RAM].
type mapperBase struct {
	memory []uint8

	banksCPU [0x40]memoryBank
	banksPPU [0x10]memoryBank

	pagesPRG    int
	pagesCHR    int
	pagesCPURAM int
	pagesPPURAM int

	sizePRG    int
	sizeCHR    int
	sizeCPURAM int
	sizePPURAM int

	readOnlyCHR bool

	initialMirroring MirroringMode
}

// newMapperBase builds the shared memory array and wires the initial
// nametable mirroring. RAM sizes are given in 0x400 pages; the default is
// 8 KiB of cartridge CPU RAM and the console's 2 KiB of PPU RAM.
func newMapperBase(rom *ROM, pagesCPURAM, pagesPPURAM int, mode MirroringMode) mapperBase {
	b := mapperBase{
		pagesPRG:         len(rom.PRG) / bankSize,
		pagesCHR:         len(rom.CHR) / bankSize,
		pagesCPURAM:      pagesCPURAM,
		pagesPPURAM:      pagesPPURAM,
		sizePRG:          len(rom.PRG),
		sizeCHR:          len(rom.CHR),
		sizeCPURAM:       pagesCPURAM * bankSize,
		sizePPURAM:       pagesPPURAM * bankSize,
		readOnlyCHR:      rom.ReadOnlyCHR,
		initialMirroring: mode,
	}

	b.memory = make([]uint8, b.sizePRG+b.sizeCHR+b.sizeCPURAM+b.sizePPURAM)
	copy(b.memory, rom.PRG)
	copy(b.memory[b.sizePRG:], rom.CHR)

	// A trainer loads at $7000, 0x1000 bytes (four pages) into the
	// cartridge CPU RAM.
	if rom.Trainer != nil && b.sizeCPURAM >= 0x1200 {
		copy(b.memory[b.sizePRG+b.sizeCHR+0x1000:], rom.Trainer)
	}

	b.setMirroringMode(mode)

	return b
}

func (b *mapperBase) base() *mapperBase { return b }

func (b *mapperBase) Tick() {}

// Reset is a no-op for mappers whose bank wiring never changes.
func (b *mapperBase) Reset() {}

func (b *mapperBase) PendingIRQ() bool { return false }

func (b *mapperBase) ReadCPU(address uint16) (uint8, bool) {
	bank := &b.banksCPU[address>>10]
	if !bank.mapped {
		return 0, false
	}
	return b.memory[bank.offset+uint32(address&0x3FF)], true
}

func (b *mapperBase) WriteCPU(address uint16, value uint8) {
	bank := &b.banksCPU[address>>10]
	if !bank.mapped || bank.readOnly {
		return
	}
	b.memory[bank.offset+uint32(address&0x3FF)] = value
}

func (b *mapperBase) ReadPPU(address uint16) uint8 {
	bank := &b.banksPPU[address>>10]
	if !bank.mapped {
		return 0
	}
	return b.memory[bank.offset+uint32(address&0x3FF)]
}

func (b *mapperBase) WritePPU(address uint16, value uint8) {
	bank := &b.banksPPU[address>>10]
	if !bank.mapped || bank.readOnly {
		return
	}
	b.memory[bank.offset+uint32(address&0x3FF)] = value
}

// mapBankPRG points size consecutive CPU pages starting at page to PRG
// pages starting at bank. Bank numbers wrap at the PRG size so bank
// entries never reference offsets past the memory array.
func (b *mapperBase) mapBankPRG(page, size, bank int) {
	for i := 0; i < size; i++ {
		b.banksCPU[page+i] = memoryBank{
			offset:   uint32(((bank + i) % b.pagesPRG) * bankSize),
			readOnly: true,
			mapped:   true,
		}
	}
}

// mapBankCHR points size consecutive PPU pages starting at page to CHR
// pages starting at bank.
func (b *mapperBase) mapBankCHR(page, size, bank int) {
	for i := 0; i < size; i++ {
		b.banksPPU[page+i] = memoryBank{
			offset:   uint32(b.sizePRG + ((bank+i)%b.pagesCHR)*bankSize),
			readOnly: b.readOnlyCHR,
			mapped:   true,
		}
	}
}

// mapBankCPURAM maps cartridge work RAM into the CPU address space.
func (b *mapperBase) mapBankCPURAM(page, size, bank int, readOnly bool) {
	for i := 0; i < size; i++ {
		b.banksCPU[page+i] = memoryBank{
			offset:   uint32(b.sizePRG + b.sizeCHR + ((bank+i)%b.pagesCPURAM)*bankSize),
			readOnly: readOnly,
			mapped:   true,
		}
	}
}

// mapBankPPURAM maps console PPU RAM (the two internal nametables) into
// the PPU address space.
func (b *mapperBase) mapBankPPURAM(page, size, bank int, readOnly bool) {
	for i := 0; i < size; i++ {
		b.banksPPU[page+i] = memoryBank{
			offset:   uint32(b.sizePRG + b.sizeCHR + b.sizeCPURAM + ((bank+i)%b.pagesPPURAM)*bankSize),
			readOnly: readOnly,
			mapped:   true,
		}
	}
}

func (b *mapperBase) unmapBankCPU(page, size int) {
	for i := 0; i < size; i++ {
		b.banksCPU[page+i] = memoryBank{}
	}
}

// mirrorCPUBanks aliases size CPU pages starting at page onto the pages
// starting at mirror.
func (b *mapperBase) mirrorCPUBanks(page, size, mirror int) {
	for i := 0; i < size; i++ {
		b.banksCPU[page+i] = b.banksCPU[mirror+i]
	}
}

// mirrorPPUBanks aliases size PPU pages starting at page onto the pages
// starting at mirror.
func (b *mapperBase) mirrorPPUBanks(page, size, mirror int) {
	for i := 0; i < size; i++ {
		b.banksPPU[page+i] = b.banksPPU[mirror+i]
	}
}

// setMirroringMode wires the four logical nametable slots ($2000-$2FFF)
// onto the two console nametables, then mirrors $3000-$3FFF on top.
func (b *mapperBase) setMirroringMode(mode MirroringMode) {
	switch mode {
	case MirrorOneScreenLow:
		b.mapBankPPURAM(0x8, 1, 0, false)
		b.mirrorPPUBanks(0x9, 1, 0x8)
		b.mirrorPPUBanks(0xA, 1, 0x8)
		b.mirrorPPUBanks(0xB, 1, 0x8)
	case MirrorOneScreenHigh:
		b.mapBankPPURAM(0x8, 1, 1, false)
		b.mirrorPPUBanks(0x9, 1, 0x8)
		b.mirrorPPUBanks(0xA, 1, 0x8)
		b.mirrorPPUBanks(0xB, 1, 0x8)
	case MirrorHorizontal:
		b.mapBankPPURAM(0x8, 1, 0, false)
		b.mirrorPPUBanks(0x9, 1, 0x8)
		b.mapBankPPURAM(0xA, 1, 1, false)
		b.mirrorPPUBanks(0xB, 1, 0xA)
	case MirrorVertical:
		b.mapBankPPURAM(0x8, 1, 0, false)
		b.mapBankPPURAM(0x9, 1, 1, false)
		b.mirrorPPUBanks(0xA, 1, 0x8)
		b.mirrorPPUBanks(0xB, 1, 0x9)
	case MirrorNone:
		// The variant wires nametables itself.
	}

	b.mirrorPPUBanks(0xC, 4, 0x8)
}

// DumpState walks the bank tables and every writable region of the
// cartridge memory. PRG (and CHR when it is ROM) is immutable and skipped.
func (b *mapperBase) DumpState(s *dump.State) {
	for k := range b.banksCPU {
		b.banksCPU[k].dumpState(s)
	}
	for k := range b.banksPPU {
		b.banksPPU[k].dumpState(s)
	}

	if !b.readOnlyCHR {
		s.Bytes(b.memory[b.sizePRG : b.sizePRG+b.sizeCHR])
	}
	if b.sizeCPURAM > 0 {
		s.Bytes(b.memory[b.sizePRG+b.sizeCHR : b.sizePRG+b.sizeCHR+b.sizeCPURAM])
	}
	if b.sizePPURAM > 0 {
		s.Bytes(b.memory[b.sizePRG+b.sizeCHR+b.sizeCPURAM:])
	}
}
