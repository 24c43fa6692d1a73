// Package ppu implements the Picture Processing Unit (2C02) used in the
// NES. One Tick advances one PPU dot; the background fetch pipeline,
// sprite evaluation, and the NMI line are all driven at dot granularity.
package ppu

import "github.com/hal609/cynes/internal/cartridge"

// Frame geometry.
const (
	FrameWidth  = 256
	FrameHeight = 240

	// FrameSize is the byte size of the RGB frame buffer.
	FrameSize = FrameWidth * FrameHeight * 3
)

// PPU represents the 2C02.
type PPU struct {
	mapper cartridge.Mapper

	// CPU-visible registers
	ctrl    uint8 // $2000
	mask    uint8 // $2001
	status  uint8 // $2002
	oamAddr uint8 // $2003

	// Internal registers (loopy)
	v uint16 // current VRAM address (15 bits)
	t uint16 // temporary VRAM address
	x uint8  // fine X scroll (3 bits)
	w bool   // write toggle

	readBuffer uint8 // $2007 buffered read
	openBus    uint8 // last value on the PPU data bus

	// Object attribute memory
	oam          [256]uint8
	secondaryOAM [32]uint8

	palette [32]uint8

	// Frame state
	scanline int // -1 (pre-render) to 260
	dot      int // 0 to 340
	oddFrame bool

	frameComplete bool

	// NMI line. The output is delayed by a few dots so a $2002 read in
	// the same CPU cycle as the vblank flag can still suppress it.
	nmiPrevious  bool
	nmiDelay     uint8
	nmiTriggered bool
	suppressVBL  bool

	// Background fetch pipeline
	nameTableByte   uint8
	attributeByte   uint8
	patternLowByte  uint8
	patternHighByte uint8

	bgShiftLow    uint16
	bgShiftHigh   uint16
	attrShiftLow  uint16
	attrShiftHigh uint16

	// Sprites selected for the line being prepared
	spriteCount       uint8
	spritePatternLow  [8]uint8
	spritePatternHigh [8]uint8
	spritePositions   [8]uint8
	spritePriorities  [8]uint8
	spritePalettes    [8]uint8
	spriteIndexes     [8]uint8

	frameBuffer [FrameSize]uint8
}

// New creates a PPU attached to the given mapper.
func New(mapper cartridge.Mapper) *PPU {
	p := &PPU{mapper: mapper}
	p.Reset()
	return p
}

// Reset puts the PPU into its post-power-on state. Cartridge contents are
// untouched.
func (p *PPU) Reset() {
	p.ctrl = 0
	p.mask = 0
	p.status = 0
	p.oamAddr = 0

	p.v = 0
	p.t = 0
	p.x = 0
	p.w = false

	p.readBuffer = 0
	p.openBus = 0

	p.scanline = -1
	p.dot = 0
	p.oddFrame = false
	p.frameComplete = false

	p.nmiPrevious = false
	p.nmiDelay = 0
	p.nmiTriggered = false
	p.suppressVBL = false

	p.bgShiftLow = 0
	p.bgShiftHigh = 0
	p.attrShiftLow = 0
	p.attrShiftHigh = 0

	p.spriteCount = 0

	for i := range p.oam {
		p.oam[i] = 0
	}
	for i := range p.frameBuffer {
		p.frameBuffer[i] = 0
	}
}

// FrameBuffer returns the 240x256x3 RGB frame buffer. The slice aliases
// PPU-owned memory and is overwritten as rendering progresses.
func (p *PPU) FrameBuffer() []uint8 {
	return p.frameBuffer[:]
}

// ConsumeFrameComplete reports and clears the frame boundary latch. The
// latch is set when the PPU transitions onto the pre-render scanline.
func (p *PPU) ConsumeFrameComplete() bool {
	done := p.frameComplete
	p.frameComplete = false
	return done
}

// ConsumeNMI reports and clears the NMI trigger latch.
func (p *PPU) ConsumeNMI() bool {
	triggered := p.nmiTriggered
	p.nmiTriggered = false
	return triggered
}

// Scanline returns the current scanline (-1 to 260).
func (p *PPU) Scanline() int {
	return p.scanline
}

// Dot returns the current dot (0 to 340).
func (p *PPU) Dot() int {
	return p.dot
}

func (p *PPU) renderingEnabled() bool {
	return p.mask&0x18 != 0
}

// nmiChange re-evaluates the NMI output. A rising edge arms the delayed
// trigger; the conditions are checked again when the delay expires, which
// is what lets a $2002 read suppress the interrupt.
func (p *PPU) nmiChange() {
	nmi := p.ctrl&0x80 != 0 && p.status&0x80 != 0
	if nmi && !p.nmiPrevious {
		p.nmiDelay = 4
	}
	p.nmiPrevious = nmi
}

// Tick advances the PPU by one dot.
func (p *PPU) Tick() {
	if p.nmiDelay > 0 {
		p.nmiDelay--
		if p.nmiDelay == 0 && p.ctrl&0x80 != 0 && p.status&0x80 != 0 {
			p.nmiTriggered = true
		}
	}

	p.advance()
	p.process()
}

// advance moves to the next dot, skipping the last dot of the pre-render
// scanline on odd frames when rendering is enabled.
func (p *PPU) advance() {
	limit := 341
	if p.scanline == -1 && p.oddFrame && p.renderingEnabled() {
		limit = 340
	}

	p.dot++
	if p.dot >= limit {
		p.dot = 0
		p.scanline++
		if p.scanline > 260 {
			p.scanline = -1
			p.oddFrame = !p.oddFrame
			p.frameComplete = true
		}
	}
}

// process performs the work of the current dot.
func (p *PPU) process() {
	preLine := p.scanline == -1
	visibleLine := p.scanline >= 0 && p.scanline < FrameHeight
	renderLine := preLine || visibleLine
	visibleDot := p.dot >= 1 && p.dot <= 256
	prefetchDot := p.dot >= 321 && p.dot <= 336
	fetchDot := visibleDot || prefetchDot

	if p.renderingEnabled() {
		if visibleLine && visibleDot {
			p.renderPixel()
		}

		if renderLine && fetchDot {
			p.shiftBackground()
			switch p.dot % 8 {
			case 1:
				p.fetchNameTableByte()
			case 3:
				p.fetchAttributeByte()
			case 5:
				p.fetchPatternLowByte()
			case 7:
				p.fetchPatternHighByte()
			case 0:
				p.reloadShifters()
				p.incrementX()
			}
		}

		if preLine && p.dot >= 280 && p.dot <= 304 {
			p.copyY()
		}

		if renderLine {
			if p.dot == 256 {
				p.incrementY()
			}
			if p.dot == 257 {
				p.copyX()
			}
		}

		if p.dot == 257 {
			if visibleLine {
				p.evaluateSprites()
			} else {
				p.spriteCount = 0
			}
		}

		// Sprite tile fetches for the next line. Empty slots fetch tile
		// $FF like the hardware, so mappers watching the PPU address
		// lines (MMC2/MMC4 latches, MMC3 A12) observe the real cadence.
		if renderLine && p.dot >= 257 && p.dot <= 320 && (p.dot-257)%8 == 5 {
			p.fetchSpriteTile((p.dot - 257) / 8)
		}
	} else if visibleLine && visibleDot {
		p.writeBackdrop()
	}

	if p.scanline == 241 && p.dot == 1 {
		if !p.suppressVBL {
			p.status |= 0x80
			p.nmiChange()
		}
		p.suppressVBL = false
	}

	if preLine && p.dot == 1 {
		p.status &= 0x1F // clear vblank, sprite 0 hit, sprite overflow
		p.nmiChange()
	}
}
