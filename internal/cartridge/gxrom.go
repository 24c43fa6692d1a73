package cartridge

// gxrom implements GxROM (mapper 66): the upper nibble of a write selects
// a 32 KiB PRG bank, the lower nibble an 8 KiB CHR bank.
type gxrom struct {
	mapperBase
}

func newGxROM(rom *ROM) *gxrom {
	m := &gxrom{mapperBase: newMapperBase(rom, 0x8, 0x2, rom.Mirroring)}

	m.mapBankCHR(0x0, 0x8, 0x0)
	m.mapBankCPURAM(0x18, 0x8, 0x0, false)
	m.mapBankPRG(0x20, 0x20, 0x0)

	return m
}

func (m *gxrom) Reset() {
	m.setMirroringMode(m.initialMirroring)
	m.mapBankPRG(0x20, 0x20, 0x0)
	m.mapBankCHR(0x0, 0x8, 0x0)
}

func (m *gxrom) WriteCPU(address uint16, value uint8) {
	if address < 0x8000 {
		m.mapperBase.WriteCPU(address, value)
		return
	}

	m.mapBankPRG(0x20, 0x20, int((value>>4)&0x03)*0x20)
	m.mapBankCHR(0x0, 0x8, int(value&0x03)*0x8)
}
