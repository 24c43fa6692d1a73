package ppu

// Background fetch pipeline. Addresses are derived from the loopy v
// register; every access goes through the mapper so cartridges observe
// the PPU bus.

func (p *PPU) fetchNameTableByte() {
	p.nameTableByte = p.mapper.ReadPPU(0x2000 | p.v&0x0FFF)
}

func (p *PPU) fetchAttributeByte() {
	address := 0x23C0 | p.v&0x0C00 | (p.v>>4)&0x38 | (p.v>>2)&0x07
	shift := ((p.v >> 4) & 0x04) | (p.v & 0x02)
	p.attributeByte = (p.mapper.ReadPPU(address) >> shift) & 0x03
}

func (p *PPU) backgroundPatternAddress() uint16 {
	var base uint16
	if p.ctrl&0x10 != 0 {
		base = 0x1000
	}
	return base + uint16(p.nameTableByte)*16 + (p.v>>12)&0x07
}

func (p *PPU) fetchPatternLowByte() {
	p.patternLowByte = p.mapper.ReadPPU(p.backgroundPatternAddress())
}

func (p *PPU) fetchPatternHighByte() {
	p.patternHighByte = p.mapper.ReadPPU(p.backgroundPatternAddress() + 8)
}

func (p *PPU) shiftBackground() {
	p.bgShiftLow <<= 1
	p.bgShiftHigh <<= 1
	p.attrShiftLow <<= 1
	p.attrShiftHigh <<= 1
}

// reloadShifters latches the fetched tile into the low byte of the shift
// registers. The attribute shifters are fed a whole byte of the latched
// palette bit.
func (p *PPU) reloadShifters() {
	p.bgShiftLow = p.bgShiftLow&0xFF00 | uint16(p.patternLowByte)
	p.bgShiftHigh = p.bgShiftHigh&0xFF00 | uint16(p.patternHighByte)

	p.attrShiftLow &= 0xFF00
	if p.attributeByte&0x01 != 0 {
		p.attrShiftLow |= 0x00FF
	}
	p.attrShiftHigh &= 0xFF00
	if p.attributeByte&0x02 != 0 {
		p.attrShiftHigh |= 0x00FF
	}
}

// Loopy scroll helpers.

// incrementX increments coarse X, wrapping into the next horizontal
// nametable.
func (p *PPU) incrementX() {
	if p.v&0x001F == 31 {
		p.v &^= 0x001F
		p.v ^= 0x0400
	} else {
		p.v++
	}
}

// incrementY increments fine Y, carrying into coarse Y and the vertical
// nametable.
func (p *PPU) incrementY() {
	if p.v&0x7000 != 0x7000 {
		p.v += 0x1000
	} else {
		p.v &^= 0x7000
		y := (p.v & 0x03E0) >> 5
		switch y {
		case 29:
			y = 0
			p.v ^= 0x0800
		case 31:
			y = 0
		default:
			y++
		}
		p.v = p.v&^0x03E0 | y<<5
	}
}

// copyX copies the horizontal bits from t to v (bits 10, 4-0).
func (p *PPU) copyX() {
	p.v = p.v&0xFBE0 | p.t&0x041F
}

// copyY copies the vertical bits from t to v (bits 14-11, 9-5).
func (p *PPU) copyY() {
	p.v = p.v&0x841F | p.t&0x7BE0
}

// Sprite evaluation. At dot 257 the next line's sprites are selected into
// secondary OAM; the pattern fetches happen at their documented dots so
// mappers watching the address lines see real traffic.

func (p *PPU) spriteHeight() int {
	if p.ctrl&0x20 != 0 {
		return 16
	}
	return 8
}

func (p *PPU) evaluateSprites() {
	height := p.spriteHeight()

	for i := range p.secondaryOAM {
		p.secondaryOAM[i] = 0xFF
	}

	count := 0
	lastScanned := 64
	for i := 0; i < 64; i++ {
		row := p.scanline - int(p.oam[i*4])
		if row < 0 || row >= height {
			continue
		}
		if count == 8 {
			lastScanned = i
			break
		}
		copy(p.secondaryOAM[count*4:], p.oam[i*4:i*4+4])
		p.spritePositions[count] = p.oam[i*4+3]
		p.spritePriorities[count] = (p.oam[i*4+2] >> 5) & 0x01
		p.spritePalettes[count] = p.oam[i*4+2] & 0x03
		p.spriteIndexes[count] = uint8(i)
		count++
	}
	p.spriteCount = uint8(count)

	if count == 8 {
		p.overflowScan(lastScanned, height)
	}
}

// overflowScan emulates the hardware bug in the 9th-sprite search: after
// eight sprites are found the byte index within each OAM entry starts
// incrementing alongside the sprite index, so the "Y coordinate" being
// tested walks diagonally through OAM.
func (p *PPU) overflowScan(start, height int) {
	n := start
	m := 0
	for n < 64 {
		row := p.scanline - int(p.oam[n*4+m])
		if row >= 0 && row < height {
			p.status |= 0x20
			return
		}
		n++
		m = (m + 1) & 0x03
	}
}

// fetchSpriteTile performs the pattern-table reads for one of the eight
// sprite slots (or the dummy fetch for empty slots) and latches the
// pattern bytes for the next scanline.
func (p *PPU) fetchSpriteTile(slot int) {
	tile := uint8(0xFF)
	attr := uint8(0)
	row := 0

	filled := slot < int(p.spriteCount)
	if filled {
		tile = p.secondaryOAM[slot*4+1]
		attr = p.secondaryOAM[slot*4+2]
		row = p.scanline - int(p.secondaryOAM[slot*4])
	}

	height := p.spriteHeight()
	if attr&0x80 != 0 {
		row = height - 1 - row
	}

	var address uint16
	if height == 16 {
		table := uint16(tile&0x01) * 0x1000
		tile &= 0xFE
		if row > 7 {
			tile++
			row -= 8
		}
		address = table + uint16(tile)*16 + uint16(row)
	} else {
		var base uint16
		if p.ctrl&0x08 != 0 {
			base = 0x1000
		}
		address = base + uint16(tile)*16 + uint16(row)
	}

	low := p.mapper.ReadPPU(address)
	high := p.mapper.ReadPPU(address + 8)

	if !filled {
		return
	}

	if attr&0x40 != 0 {
		low = reverseByte(low)
		high = reverseByte(high)
	}

	p.spritePatternLow[slot] = low
	p.spritePatternHigh[slot] = high
}

func reverseByte(b uint8) uint8 {
	b = b&0xF0>>4 | b&0x0F<<4
	b = b&0xCC>>2 | b&0x33<<2
	b = b&0xAA>>1 | b&0x55<<1
	return b
}

// Pixel multiplexer.

func (p *PPU) backgroundPixel(x int) uint8 {
	if p.mask&0x08 == 0 || (x < 8 && p.mask&0x02 == 0) {
		return 0
	}

	shift := 15 - uint16(p.x)
	low := uint8(p.bgShiftLow>>shift) & 0x01
	high := uint8(p.bgShiftHigh>>shift) & 0x01
	pattern := high<<1 | low
	if pattern == 0 {
		return 0
	}

	attrLow := uint8(p.attrShiftLow>>shift) & 0x01
	attrHigh := uint8(p.attrShiftHigh>>shift) & 0x01
	return (attrHigh<<1|attrLow)<<2 | pattern
}

func (p *PPU) spritePixel(x int) (int, uint8) {
	if p.mask&0x10 == 0 || (x < 8 && p.mask&0x04 == 0) {
		return 0, 0
	}

	for i := 0; i < int(p.spriteCount); i++ {
		offset := x - int(p.spritePositions[i])
		if offset < 0 || offset > 7 {
			continue
		}
		shift := 7 - offset
		low := p.spritePatternLow[i] >> shift & 0x01
		high := p.spritePatternHigh[i] >> shift & 0x01
		pattern := high<<1 | low
		if pattern == 0 {
			continue
		}
		return i, p.spritePalettes[i]<<2 | pattern
	}
	return 0, 0
}

func (p *PPU) renderPixel() {
	x := p.dot - 1
	y := p.scanline

	background := p.backgroundPixel(x)
	sprite, spriteColor := p.spritePixel(x)

	var paletteIndex uint8
	switch {
	case background == 0 && spriteColor == 0:
		paletteIndex = 0
	case background == 0:
		paletteIndex = 0x10 | spriteColor
	case spriteColor == 0:
		paletteIndex = background
	default:
		if p.spriteIndexes[sprite] == 0 && x < 255 {
			p.status |= 0x40
		}
		if p.spritePriorities[sprite] == 0 {
			paletteIndex = 0x10 | spriteColor
		} else {
			paletteIndex = background
		}
	}

	p.writePixel(x, y, p.readPalette(uint16(paletteIndex)))
}

// writeBackdrop paints the universal background color when rendering is
// disabled.
func (p *PPU) writeBackdrop() {
	p.writePixel(p.dot-1, p.scanline, p.readPalette(0))
}

func (p *PPU) writePixel(x, y int, color uint8) {
	if p.mask&0x01 != 0 {
		color &= 0x30
	}
	rgb := &paletteRGB[color&0x3F]
	offset := (y*FrameWidth + x) * 3
	p.frameBuffer[offset] = rgb[0]
	p.frameBuffer[offset+1] = rgb[1]
	p.frameBuffer[offset+2] = rgb[2]
}
