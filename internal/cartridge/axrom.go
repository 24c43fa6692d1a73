package cartridge

// axrom implements AxROM (mapper 7): switchable 32 KiB PRG banks and
// one-screen mirroring selected by the written value.
type axrom struct {
	mapperBase
}

func newAxROM(rom *ROM) *axrom {
	m := &axrom{mapperBase: newMapperBase(rom, 0x8, 0x2, MirrorOneScreenLow)}

	m.mapBankCHR(0x0, 0x8, 0x0)
	m.mapBankCPURAM(0x18, 0x8, 0x0, false)
	m.mapBankPRG(0x20, 0x20, 0x0)

	return m
}

func (m *axrom) Reset() {
	m.setMirroringMode(MirrorOneScreenLow)
	m.mapBankPRG(0x20, 0x20, 0x0)
}

func (m *axrom) WriteCPU(address uint16, value uint8) {
	if address < 0x8000 {
		m.mapperBase.WriteCPU(address, value)
		return
	}

	m.mapBankPRG(0x20, 0x20, int(value&0x07)*0x20)

	if value&0x10 != 0 {
		m.setMirroringMode(MirrorOneScreenHigh)
	} else {
		m.setMirroringMode(MirrorOneScreenLow)
	}
}
