package cartridge

import "github.com/hal609/cynes/internal/dump"

// mmc3 implements MMC3 (mapper 4): eight bank registers behind a
// select/data register pair, plus a scanline counter clocked by filtered
// rising edges on PPU address line 12.
type mmc3 struct {
	mapperBase

	tick      uint32
	registers [8]uint32

	counter           uint16
	counterResetValue uint16

	registerTarget uint8

	modePRG         bool
	modeCHR         bool
	enableInterrupt bool
	shouldReload    bool
	pendingIRQ      bool
}

func newMMC3(rom *ROM) *mmc3 {
	m := &mmc3{mapperBase: newMapperBase(rom, 0x8, 0x2, rom.Mirroring)}

	m.registers[6] = 0
	m.registers[7] = 1

	m.mapBankCPURAM(0x18, 0x8, 0x0, false)
	m.updateBanks()

	return m
}

func (m *mmc3) Reset() {
	m.tick = 0
	m.registers = [8]uint32{6: 0, 7: 1}
	m.counter = 0
	m.counterResetValue = 0
	m.registerTarget = 0
	m.modePRG = false
	m.modeCHR = false
	m.enableInterrupt = false
	m.shouldReload = false
	m.pendingIRQ = false

	m.setMirroringMode(m.initialMirroring)
	m.mapBankCPURAM(0x18, 0x8, 0x0, false)
	m.updateBanks()
}

func (m *mmc3) Tick() {
	if m.tick < 0xFFFFFF {
		m.tick++
	}
}

func (m *mmc3) PendingIRQ() bool { return m.pendingIRQ }

func (m *mmc3) WriteCPU(address uint16, value uint8) {
	if address < 0x8000 {
		m.mapperBase.WriteCPU(address, value)
		return
	}

	even := address&0x01 == 0

	switch address & 0xE000 {
	case 0x8000:
		if even {
			m.registerTarget = value & 0x07
			m.modePRG = value&0x40 != 0
			m.modeCHR = value&0x80 != 0
		} else {
			m.registers[m.registerTarget] = uint32(value)
		}
		m.updateBanks()
	case 0xA000:
		if even {
			if value&0x01 != 0 {
				m.setMirroringMode(MirrorHorizontal)
			} else {
				m.setMirroringMode(MirrorVertical)
			}
		} else {
			// PRG-RAM protect: bit 7 enables the chip, bit 6 write
			// protects it.
			if value&0x80 == 0 {
				m.unmapBankCPU(0x18, 0x8)
			} else {
				m.mapBankCPURAM(0x18, 0x8, 0x0, value&0x40 != 0)
			}
		}
	case 0xC000:
		if even {
			m.counterResetValue = uint16(value)
		} else {
			m.counter = 0
			m.shouldReload = true
		}
	case 0xE000:
		if even {
			m.enableInterrupt = false
			m.pendingIRQ = false
		} else {
			m.enableInterrupt = true
		}
	}
}

func (m *mmc3) ReadPPU(address uint16) uint8 {
	m.watchAddressLine(address&0x1000 != 0)
	return m.mapperBase.ReadPPU(address)
}

func (m *mmc3) WritePPU(address uint16, value uint8) {
	m.watchAddressLine(address&0x1000 != 0)
	m.mapperBase.WritePPU(address, value)
}

// watchAddressLine clocks the scanline counter on A12 rises, ignoring
// rises closer than ten CPU cycles to the previous one (the hardware
// filters the fast toggles inside a single tile fetch).
func (m *mmc3) watchAddressLine(a12 bool) {
	if !a12 {
		return
	}
	if m.tick >= 10 {
		m.clockCounter()
	}
	m.tick = 0
}

func (m *mmc3) clockCounter() {
	if m.counter == 0 || m.shouldReload {
		m.counter = m.counterResetValue
		m.shouldReload = false
	} else {
		m.counter--
	}

	if m.counter == 0 && m.enableInterrupt {
		m.pendingIRQ = true
	}
}

func (m *mmc3) updateBanks() {
	if m.modePRG {
		m.mapBankPRG(0x20, 0x8, m.pagesPRG-0x10)
		m.mapBankPRG(0x28, 0x8, int(m.registers[7])*0x8)
		m.mapBankPRG(0x30, 0x8, int(m.registers[6])*0x8)
	} else {
		m.mapBankPRG(0x20, 0x8, int(m.registers[6])*0x8)
		m.mapBankPRG(0x28, 0x8, int(m.registers[7])*0x8)
		m.mapBankPRG(0x30, 0x8, m.pagesPRG-0x10)
	}
	m.mapBankPRG(0x38, 0x8, m.pagesPRG-0x8)

	if m.modeCHR {
		m.mapBankCHR(0x0, 0x1, int(m.registers[2]))
		m.mapBankCHR(0x1, 0x1, int(m.registers[3]))
		m.mapBankCHR(0x2, 0x1, int(m.registers[4]))
		m.mapBankCHR(0x3, 0x1, int(m.registers[5]))
		m.mapBankCHR(0x4, 0x2, int(m.registers[0]&0xFE))
		m.mapBankCHR(0x6, 0x2, int(m.registers[1]&0xFE))
	} else {
		m.mapBankCHR(0x0, 0x2, int(m.registers[0]&0xFE))
		m.mapBankCHR(0x2, 0x2, int(m.registers[1]&0xFE))
		m.mapBankCHR(0x4, 0x1, int(m.registers[2]))
		m.mapBankCHR(0x5, 0x1, int(m.registers[3]))
		m.mapBankCHR(0x6, 0x1, int(m.registers[4]))
		m.mapBankCHR(0x7, 0x1, int(m.registers[5]))
	}
}

func (m *mmc3) DumpState(s *dump.State) {
	m.mapperBase.DumpState(s)

	s.Uint32(&m.tick)
	for k := range m.registers {
		s.Uint32(&m.registers[k])
	}
	s.Uint16(&m.counter)
	s.Uint16(&m.counterResetValue)
	s.Uint8(&m.registerTarget)
	s.Bool(&m.modePRG)
	s.Bool(&m.modeCHR)
	s.Bool(&m.enableInterrupt)
	s.Bool(&m.shouldReload)
	s.Bool(&m.pendingIRQ)
}
