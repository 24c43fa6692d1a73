package cartridge

// cnrom implements CNROM (mapper 3): fixed PRG, a switchable 8 KiB CHR
// bank.
type cnrom struct {
	mapperBase
}

func newCNROM(rom *ROM) *cnrom {
	m := &cnrom{mapperBase: newMapperBase(rom, 0x8, 0x2, rom.Mirroring)}

	m.mapBankCHR(0x0, 0x8, 0x0)
	m.mapBankCPURAM(0x18, 0x8, 0x0, false)

	if rom.PRGBanks == 1 {
		m.mapBankPRG(0x20, 0x10, 0x0)
		m.mirrorCPUBanks(0x30, 0x10, 0x20)
	} else {
		m.mapBankPRG(0x20, 0x20, 0x0)
	}

	return m
}

func (m *cnrom) Reset() {
	m.setMirroringMode(m.initialMirroring)
	m.mapBankCHR(0x0, 0x8, 0x0)
}

func (m *cnrom) WriteCPU(address uint16, value uint8) {
	if address < 0x8000 {
		m.mapperBase.WriteCPU(address, value)
		return
	}
	m.mapBankCHR(0x0, 0x8, int(value&0x03)*0x8)
}
