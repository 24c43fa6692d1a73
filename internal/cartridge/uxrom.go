package cartridge

// uxrom implements UxROM (mapper 2): a switchable 16 KiB PRG bank at
// $8000 with the last bank fixed at $C000.
type uxrom struct {
	mapperBase
}

func newUxROM(rom *ROM) *uxrom {
	m := &uxrom{mapperBase: newMapperBase(rom, 0x8, 0x2, rom.Mirroring)}

	m.mapBankCHR(0x0, 0x8, 0x0)
	m.mapBankCPURAM(0x18, 0x8, 0x0, false)

	m.mapBankPRG(0x20, 0x10, 0x0)
	m.mapBankPRG(0x30, 0x10, m.pagesPRG-0x10)

	return m
}

func (m *uxrom) Reset() {
	m.setMirroringMode(m.initialMirroring)
	m.mapBankPRG(0x20, 0x10, 0x0)
	m.mapBankPRG(0x30, 0x10, m.pagesPRG-0x10)
}

func (m *uxrom) WriteCPU(address uint16, value uint8) {
	if address < 0x8000 {
		m.mapperBase.WriteCPU(address, value)
		return
	}
	m.mapBankPRG(0x20, 0x10, int(value&0x0F)*0x10)
}
