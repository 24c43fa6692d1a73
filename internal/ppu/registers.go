package ppu

import "github.com/hal609/cynes/internal/dump"

// CPU-visible register interface ($2000-$2007). The PPU keeps its own
// data-bus latch: reads from write-only registers return it, and the
// unused low bits of PPUSTATUS come from it.

// ReadRegister reads a PPU register.
func (p *PPU) ReadRegister(address uint16) uint8 {
	var value uint8

	switch address & 0x0007 {
	case 0x0002: // PPUSTATUS
		value = p.status&0xE0 | p.openBus&0x1F
		p.status &^= 0x80
		p.w = false
		// Reading one dot before the vblank flag is raised suppresses
		// both the flag and the NMI for this frame.
		if p.scanline == 241 && p.dot == 0 {
			p.suppressVBL = true
		}
		p.nmiChange()
	case 0x0004: // OAMDATA
		value = p.oam[p.oamAddr]
		if p.oamAddr&0x03 == 0x02 {
			// Attribute bytes have no bit 2-4 storage.
			value &= 0xE3
		}
	case 0x0007: // PPUDATA
		value = p.readData()
	default:
		value = p.openBus
	}

	p.openBus = value
	return value
}

// WriteRegister writes a PPU register.
func (p *PPU) WriteRegister(address uint16, value uint8) {
	p.openBus = value

	switch address & 0x0007 {
	case 0x0000: // PPUCTRL
		p.ctrl = value
		p.t = p.t&0xF3FF | uint16(value&0x03)<<10
		p.nmiChange()
	case 0x0001: // PPUMASK
		p.mask = value
	case 0x0003: // OAMADDR
		p.oamAddr = value
	case 0x0004: // OAMDATA
		p.oam[p.oamAddr] = value
		p.oamAddr++
	case 0x0005: // PPUSCROLL
		if !p.w {
			p.t = p.t&0xFFE0 | uint16(value)>>3
			p.x = value & 0x07
			p.w = true
		} else {
			p.t = p.t&0x8FFF | uint16(value&0x07)<<12
			p.t = p.t&0xFC1F | uint16(value&0xF8)<<2
			p.w = false
		}
	case 0x0006: // PPUADDR
		if !p.w {
			p.t = p.t&0x80FF | uint16(value&0x3F)<<8
			p.w = true
		} else {
			p.t = p.t&0xFF00 | uint16(value)
			p.v = p.t
			p.w = false
		}
	case 0x0007: // PPUDATA
		p.writeData(value)
	}
}

// readData implements the buffered $2007 read.
func (p *PPU) readData() uint8 {
	address := p.v & 0x3FFF
	var value uint8

	if address >= 0x3F00 {
		// Palette reads bypass the buffer; the buffer picks up the
		// nametable byte underneath.
		value = p.readPalette(address)
		p.readBuffer = p.mapper.ReadPPU(address & 0x2FFF)
	} else {
		value = p.readBuffer
		p.readBuffer = p.mapper.ReadPPU(address)
	}

	p.incrementAddress()
	return value
}

func (p *PPU) writeData(value uint8) {
	address := p.v & 0x3FFF

	if address >= 0x3F00 {
		p.writePalette(address, value)
	} else {
		p.mapper.WritePPU(address, value)
	}

	p.incrementAddress()
}

func (p *PPU) incrementAddress() {
	if p.ctrl&0x04 != 0 {
		p.v += 32
	} else {
		p.v++
	}
	p.v &= 0x7FFF
}

// paletteIndex folds the $3F00-$3FFF range onto the 32-byte palette RAM,
// aliasing the sprite backdrop entries onto the background ones.
func paletteIndex(address uint16) uint16 {
	index := address & 0x1F
	if index&0x13 == 0x10 {
		index &= 0x0F
	}
	return index
}

func (p *PPU) readPalette(address uint16) uint8 {
	return p.palette[paletteIndex(address)]
}

func (p *PPU) writePalette(address uint16, value uint8) {
	p.palette[paletteIndex(address)] = value
}

// WriteOAMByte stores one byte into OAM at OAMADDR and advances it. OAM
// DMA is funneled through here.
func (p *PPU) WriteOAMByte(value uint8) {
	p.oam[p.oamAddr] = value
	p.oamAddr++
}

// DumpState walks every mutable PPU byte in save-state order.
func (p *PPU) DumpState(s *dump.State) {
	s.Uint8(&p.ctrl)
	s.Uint8(&p.mask)
	s.Uint8(&p.status)
	s.Uint8(&p.oamAddr)

	s.Uint16(&p.v)
	s.Uint16(&p.t)
	s.Uint8(&p.x)
	s.Bool(&p.w)

	s.Uint8(&p.readBuffer)
	s.Uint8(&p.openBus)

	s.Bytes(p.frameBuffer[:])
	s.Bytes(p.oam[:])
	s.Bytes(p.secondaryOAM[:])
	s.Bytes(p.palette[:])

	s.Int(&p.scanline)
	s.Int(&p.dot)
	s.Bool(&p.oddFrame)
	s.Bool(&p.frameComplete)

	s.Bool(&p.nmiPrevious)
	s.Uint8(&p.nmiDelay)
	s.Bool(&p.nmiTriggered)
	s.Bool(&p.suppressVBL)

	s.Uint8(&p.nameTableByte)
	s.Uint8(&p.attributeByte)
	s.Uint8(&p.patternLowByte)
	s.Uint8(&p.patternHighByte)

	s.Uint16(&p.bgShiftLow)
	s.Uint16(&p.bgShiftHigh)
	s.Uint16(&p.attrShiftLow)
	s.Uint16(&p.attrShiftHigh)

	s.Uint8(&p.spriteCount)
	s.Bytes(p.spritePatternLow[:])
	s.Bytes(p.spritePatternHigh[:])
	s.Bytes(p.spritePositions[:])
	s.Bytes(p.spritePriorities[:])
	s.Bytes(p.spritePalettes[:])
	s.Bytes(p.spriteIndexes[:])
}
