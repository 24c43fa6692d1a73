package cartridge

import "github.com/hal609/cynes/internal/dump"

// mmc1 implements MMC1 (mapper 1): a five-bit serial shift register
// commits to one of four internal registers selected by address bits
// 14-13. Writes landing on consecutive CPU cycles are debounced, which is
// what lets read-modify-write instructions address the mapper safely.
type mmc1 struct {
	mapperBase

	tick      uint8
	registers [4]uint8
	register  uint8
	counter   uint8
}

func newMMC1(rom *ROM) *mmc1 {
	m := &mmc1{mapperBase: newMapperBase(rom, 0x8, 0x2, rom.Mirroring)}

	m.registers[0] = 0x0C
	m.tick = 2

	m.mapBankCPURAM(0x18, 0x8, 0x0, false)
	m.updateBanks()

	return m
}

func (m *mmc1) Reset() {
	m.tick = 2
	m.registers = [4]uint8{0x0C, 0, 0, 0}
	m.register = 0
	m.counter = 0

	m.mapBankCPURAM(0x18, 0x8, 0x0, false)
	m.updateBanks()
}

func (m *mmc1) Tick() {
	if m.tick < 2 {
		m.tick++
	}
}

func (m *mmc1) WriteCPU(address uint16, value uint8) {
	if address < 0x8000 {
		m.mapperBase.WriteCPU(address, value)
		return
	}

	// Consecutive-cycle writes only deliver the first value.
	if m.tick < 2 {
		m.tick = 0
		return
	}
	m.tick = 0

	if value&0x80 != 0 {
		m.register = 0
		m.counter = 0
		m.registers[0] |= 0x0C
		m.updateBanks()
		return
	}

	m.register |= (value & 0x01) << m.counter
	m.counter++

	if m.counter == 5 {
		m.writeRegister(uint8((address>>13)&0x03), m.register)
		m.register = 0
		m.counter = 0
	}
}

func (m *mmc1) writeRegister(target, value uint8) {
	m.registers[target] = value & 0x1F
	m.updateBanks()
}

func (m *mmc1) updateBanks() {
	control := m.registers[0]

	switch control & 0x03 {
	case 0:
		m.setMirroringMode(MirrorOneScreenLow)
	case 1:
		m.setMirroringMode(MirrorOneScreenHigh)
	case 2:
		m.setMirroringMode(MirrorVertical)
	case 3:
		m.setMirroringMode(MirrorHorizontal)
	}

	if control&0x10 != 0 {
		// 4 KiB CHR mode.
		m.mapBankCHR(0x0, 0x4, int(m.registers[1])*0x4)
		m.mapBankCHR(0x4, 0x4, int(m.registers[2])*0x4)
	} else {
		// 8 KiB CHR mode, low bit of the register ignored.
		m.mapBankCHR(0x0, 0x8, int(m.registers[1]&0x1E)*0x4)
	}

	prg := int(m.registers[3] & 0x0F)

	switch (control >> 2) & 0x03 {
	case 0, 1:
		// 32 KiB mode.
		m.mapBankPRG(0x20, 0x20, (prg&0x0E)*0x10)
	case 2:
		// First bank fixed, $C000 switchable.
		m.mapBankPRG(0x20, 0x10, 0x0)
		m.mapBankPRG(0x30, 0x10, prg*0x10)
	case 3:
		// $8000 switchable, last bank fixed.
		m.mapBankPRG(0x20, 0x10, prg*0x10)
		m.mapBankPRG(0x30, 0x10, m.pagesPRG-0x10)
	}

	// PRG-RAM chip enable (active low).
	if m.registers[3]&0x10 != 0 {
		m.unmapBankCPU(0x18, 0x8)
	} else {
		m.mapBankCPURAM(0x18, 0x8, 0x0, false)
	}
}

func (m *mmc1) DumpState(s *dump.State) {
	m.mapperBase.DumpState(s)

	s.Uint8(&m.tick)
	for k := range m.registers {
		s.Uint8(&m.registers[k])
	}
	s.Uint8(&m.register)
	s.Uint8(&m.counter)
}
