package cartridge

// nrom implements NROM (mapper 0): fixed mappings, no bank switching.
type nrom struct {
	mapperBase
}

func newNROM(rom *ROM) *nrom {
	m := &nrom{mapperBase: newMapperBase(rom, 0x8, 0x2, rom.Mirroring)}

	m.mapBankCHR(0x0, 0x8, 0x0)
	m.mapBankCPURAM(0x18, 0x8, 0x0, false)

	if rom.PRGBanks == 1 {
		// 16 KiB PRG is mirrored across the upper half.
		m.mapBankPRG(0x20, 0x10, 0x0)
		m.mirrorCPUBanks(0x30, 0x10, 0x20)
	} else {
		m.mapBankPRG(0x20, 0x20, 0x0)
	}

	return m
}
