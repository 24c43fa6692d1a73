package cartridge

import "github.com/hal609/cynes/internal/dump"

// mmc implements the shared MMC2/MMC4 behavior (mappers 9 and 10): two
// CHR latches flipped by PPU reads of specific pattern-table addresses
// select between two banks for each half of the pattern table. The two
// chips differ only in the size of the switchable PRG bank (8 KiB for
// MMC2, 16 KiB for MMC4).
type mmc struct {
	mapperBase

	switchablePages int

	latches       [2]bool
	selectedBanks [4]uint8
}

func newMMC2(rom *ROM) *mmc { return newMMC(rom, 0x8) }
func newMMC4(rom *ROM) *mmc { return newMMC(rom, 0x10) }

func newMMC(rom *ROM, switchablePages int) *mmc {
	m := &mmc{
		mapperBase:      newMapperBase(rom, 0x8, 0x2, rom.Mirroring),
		switchablePages: switchablePages,
	}

	m.mapBankCHR(0x0, 0x8, 0x0)
	m.mapBankPRG(0x20, switchablePages, 0x0)
	m.mapBankPRG(0x20+switchablePages, 0x20-switchablePages, m.pagesPRG-0x20+switchablePages)
	m.mapBankCPURAM(0x18, 0x8, 0x0, true)

	return m
}

func (m *mmc) Reset() {
	m.latches = [2]bool{}
	m.selectedBanks = [4]uint8{}

	m.setMirroringMode(m.initialMirroring)
	m.mapBankCHR(0x0, 0x8, 0x0)
	m.mapBankPRG(0x20, m.switchablePages, 0x0)
	m.mapBankPRG(0x20+m.switchablePages, 0x20-m.switchablePages, m.pagesPRG-0x20+m.switchablePages)
}

func (m *mmc) WriteCPU(address uint16, value uint8) {
	switch {
	case address < 0xA000:
		m.mapperBase.WriteCPU(address, value)
	case address < 0xB000:
		m.mapBankPRG(0x20, m.switchablePages, int(value&0x0F)*m.switchablePages)
	case address < 0xC000:
		m.selectedBanks[0] = value & 0x1F
		m.updateBanks()
	case address < 0xD000:
		m.selectedBanks[1] = value & 0x1F
		m.updateBanks()
	case address < 0xE000:
		m.selectedBanks[2] = value & 0x1F
		m.updateBanks()
	case address < 0xF000:
		m.selectedBanks[3] = value & 0x1F
		m.updateBanks()
	default:
		if value&0x01 != 0 {
			m.setMirroringMode(MirrorHorizontal)
		} else {
			m.setMirroringMode(MirrorVertical)
		}
	}
}

func (m *mmc) ReadPPU(address uint16) uint8 {
	value := m.mapperBase.ReadPPU(address)

	switch {
	case address == 0x0FD8:
		m.latches[0] = true
		m.updateBanks()
	case address == 0x0FE8:
		m.latches[0] = false
		m.updateBanks()
	case address >= 0x1FD8 && address < 0x1FE0:
		m.latches[1] = true
		m.updateBanks()
	case address >= 0x1FE8 && address < 0x1FF0:
		m.latches[1] = false
		m.updateBanks()
	}

	return value
}

func (m *mmc) updateBanks() {
	if m.latches[0] {
		m.mapBankCHR(0x0, 0x4, int(m.selectedBanks[0])*0x4)
	} else {
		m.mapBankCHR(0x0, 0x4, int(m.selectedBanks[1])*0x4)
	}

	if m.latches[1] {
		m.mapBankCHR(0x4, 0x4, int(m.selectedBanks[2])*0x4)
	} else {
		m.mapBankCHR(0x4, 0x4, int(m.selectedBanks[3])*0x4)
	}
}

func (m *mmc) DumpState(s *dump.State) {
	m.mapperBase.DumpState(s)

	s.Bool(&m.latches[0])
	s.Bool(&m.latches[1])
	for k := range m.selectedBanks {
		s.Uint8(&m.selectedBanks[k])
	}
}
