package cpu

// Addressing helpers. Each performs the bus traffic of its addressing
// stage, so instruction cycle counts come out of the access pattern. The
// W variants are for write and read-modify-write opcodes, which always
// spend the extra cycle re-reading the partially indexed address.

func (c *CPU) fetch() uint8 {
	value := c.read(c.PC)
	c.PC++
	return value
}

func (c *CPU) fetchWord() uint16 {
	low := uint16(c.fetch())
	high := uint16(c.fetch())
	return high<<8 | low
}

func (c *CPU) addrImmediate() uint16 {
	address := c.PC
	c.PC++
	return address
}

func (c *CPU) addrZeroPage() uint16 {
	return uint16(c.fetch())
}

func (c *CPU) addrZeroPageX() uint16 {
	base := c.fetch()
	c.read(uint16(base))
	return uint16(base + c.X)
}

func (c *CPU) addrZeroPageY() uint16 {
	base := c.fetch()
	c.read(uint16(base))
	return uint16(base + c.Y)
}

func (c *CPU) addrAbsolute() uint16 {
	return c.fetchWord()
}

// indexed combines a base address with an index register. Read opcodes
// only pay the fix-up cycle when the sum crosses a page; writes and RMWs
// always read the partially added address first.
func (c *CPU) indexed(base uint16, index uint8, alwaysFix bool) uint16 {
	address := base + uint16(index)
	if alwaysFix || base&0xFF00 != address&0xFF00 {
		c.read(base&0xFF00 | address&0x00FF)
	}
	return address
}

func (c *CPU) addrAbsoluteX() uint16 {
	return c.indexed(c.fetchWord(), c.X, false)
}

func (c *CPU) addrAbsoluteXW() uint16 {
	return c.indexed(c.fetchWord(), c.X, true)
}

func (c *CPU) addrAbsoluteY() uint16 {
	return c.indexed(c.fetchWord(), c.Y, false)
}

func (c *CPU) addrAbsoluteYW() uint16 {
	return c.indexed(c.fetchWord(), c.Y, true)
}

// ($zp,X)
func (c *CPU) addrIndexedIndirect() uint16 {
	pointer := c.fetch()
	c.read(uint16(pointer))
	pointer += c.X
	low := uint16(c.read(uint16(pointer)))
	high := uint16(c.read(uint16(pointer + 1)))
	return high<<8 | low
}

// ($zp),Y
func (c *CPU) indirectY(alwaysFix bool) uint16 {
	pointer := c.fetch()
	low := uint16(c.read(uint16(pointer)))
	high := uint16(c.read(uint16(pointer + 1)))
	return c.indexed(high<<8|low, c.Y, alwaysFix)
}

func (c *CPU) addrIndirectY() uint16 {
	return c.indirectY(false)
}

func (c *CPU) addrIndirectYW() uint16 {
	return c.indirectY(true)
}

// Load and store operations.

func (c *CPU) lda(address uint16) {
	c.A = c.read(address)
	c.setZN(c.A)
}

func (c *CPU) ldx(address uint16) {
	c.X = c.read(address)
	c.setZN(c.X)
}

func (c *CPU) ldy(address uint16) {
	c.Y = c.read(address)
	c.setZN(c.Y)
}

func (c *CPU) sta(address uint16) {
	c.write(address, c.A)
}

func (c *CPU) stx(address uint16) {
	c.write(address, c.X)
}

func (c *CPU) sty(address uint16) {
	c.write(address, c.Y)
}

// Arithmetic. Decimal mode is ignored on the 2A03, so both paths are
// plain binary.

func (c *CPU) addWithCarry(value uint8) {
	carry := uint16(0)
	if c.C {
		carry = 1
	}
	result := uint16(c.A) + uint16(value) + carry

	c.V = (c.A^uint8(result))&(value^uint8(result))&0x80 != 0
	c.C = result > 0xFF
	c.A = uint8(result)
	c.setZN(c.A)
}

func (c *CPU) adc(address uint16) {
	c.addWithCarry(c.read(address))
}

func (c *CPU) sbc(address uint16) {
	c.addWithCarry(c.read(address) ^ 0xFF)
}

// Logical operations.

func (c *CPU) and(address uint16) {
	c.A &= c.read(address)
	c.setZN(c.A)
}

func (c *CPU) ora(address uint16) {
	c.A |= c.read(address)
	c.setZN(c.A)
}

func (c *CPU) eor(address uint16) {
	c.A ^= c.read(address)
	c.setZN(c.A)
}

// Comparisons.

func (c *CPU) compare(register uint8, address uint16) {
	value := c.read(address)
	c.C = register >= value
	c.setZN(register - value)
}

func (c *CPU) bit(address uint16) {
	value := c.read(address)
	c.N = value&nFlagMask != 0
	c.V = value&vFlagMask != 0
	c.Z = c.A&value == 0
}

// Shifts and rotates, value form (shared by accumulator and memory
// variants).

func (c *CPU) aslValue(value uint8) uint8 {
	c.C = value&0x80 != 0
	value <<= 1
	c.setZN(value)
	return value
}

func (c *CPU) lsrValue(value uint8) uint8 {
	c.C = value&0x01 != 0
	value >>= 1
	c.setZN(value)
	return value
}

func (c *CPU) rolValue(value uint8) uint8 {
	oldCarry := c.C
	c.C = value&0x80 != 0
	value <<= 1
	if oldCarry {
		value |= 0x01
	}
	c.setZN(value)
	return value
}

func (c *CPU) rorValue(value uint8) uint8 {
	oldCarry := c.C
	c.C = value&0x01 != 0
	value >>= 1
	if oldCarry {
		value |= 0x80
	}
	c.setZN(value)
	return value
}

// modify implements the read-modify-write pattern: the unmodified value
// is written back before the result, exactly as the hardware does.
func (c *CPU) modify(address uint16, f func(uint8) uint8) uint8 {
	value := c.read(address)
	c.write(address, value)
	value = f(value)
	c.write(address, value)
	return value
}

func (c *CPU) incValue(value uint8) uint8 {
	value++
	c.setZN(value)
	return value
}

func (c *CPU) decValue(value uint8) uint8 {
	value--
	c.setZN(value)
	return value
}

// Branches.

func (c *CPU) branch(condition bool) {
	offset := int8(c.fetch())
	if !condition {
		return
	}
	target := uint16(int32(c.PC) + int32(offset))
	c.read(c.PC)
	if target&0xFF00 != c.PC&0xFF00 {
		c.read(c.PC&0xFF00 | target&0x00FF)
	}
	c.PC = target
}

// Control flow.

func (c *CPU) jmpIndirect() {
	pointer := c.fetchWord()
	low := uint16(c.read(pointer))
	// The 6502 wraps the pointer high byte read within the page.
	high := uint16(c.read(pointer&0xFF00 | (pointer+1)&0x00FF))
	c.PC = high<<8 | low
}

func (c *CPU) jsr() {
	low := uint16(c.fetch())
	c.read(stackBase + uint16(c.SP))
	c.push(uint8(c.PC >> 8))
	c.push(uint8(c.PC))
	high := uint16(c.read(c.PC))
	c.PC = high<<8 | low
}

func (c *CPU) rts() {
	c.read(c.PC)
	c.read(stackBase + uint16(c.SP))
	low := uint16(c.pop())
	high := uint16(c.pop())
	c.PC = high<<8 | low
	c.read(c.PC)
	c.PC++
}

func (c *CPU) rti() {
	c.read(c.PC)
	c.read(stackBase + uint16(c.SP))
	c.prevI = c.I
	c.setStatus(c.pop())
	c.delayI = true
	low := uint16(c.pop())
	high := uint16(c.pop())
	c.PC = high<<8 | low
}

func (c *CPU) brk() {
	c.fetch()
	c.push(uint8(c.PC >> 8))
	c.push(uint8(c.PC))
	c.push(c.status() | bFlagMask)
	c.I = true
	low := uint16(c.read(irqVector))
	high := uint16(c.read(irqVector + 1))
	c.PC = high<<8 | low
}

// Unofficial opcodes.

func (c *CPU) lax(address uint16) {
	c.A = c.read(address)
	c.X = c.A
	c.setZN(c.A)
}

func (c *CPU) sax(address uint16) {
	c.write(address, c.A&c.X)
}

func (c *CPU) dcp(address uint16) {
	value := c.modify(address, c.decValue)
	c.C = c.A >= value
	c.setZN(c.A - value)
}

func (c *CPU) isb(address uint16) {
	value := c.modify(address, c.incValue)
	c.addWithCarry(value ^ 0xFF)
}

func (c *CPU) slo(address uint16) {
	value := c.modify(address, c.aslValue)
	c.A |= value
	c.setZN(c.A)
}

func (c *CPU) rla(address uint16) {
	value := c.modify(address, c.rolValue)
	c.A &= value
	c.setZN(c.A)
}

func (c *CPU) sre(address uint16) {
	value := c.modify(address, c.lsrValue)
	c.A ^= value
	c.setZN(c.A)
}

func (c *CPU) rra(address uint16) {
	value := c.modify(address, c.rorValue)
	c.addWithCarry(value)
}

func (c *CPU) anc(address uint16) {
	c.A &= c.read(address)
	c.setZN(c.A)
	c.C = c.N
}

func (c *CPU) alr(address uint16) {
	c.A &= c.read(address)
	c.A = c.lsrValue(c.A)
}

func (c *CPU) arr(address uint16) {
	c.A &= c.read(address)
	c.A >>= 1
	if c.C {
		c.A |= 0x80
	}
	c.setZN(c.A)
	c.C = c.A&0x40 != 0
	c.V = (c.A>>6)&0x01 != (c.A>>5)&0x01
}

func (c *CPU) axs(address uint16) {
	value := c.read(address)
	result := c.A & c.X
	c.C = result >= value
	c.X = result - value
	c.setZN(c.X)
}

func (c *CPU) xaa(address uint16) {
	c.A = c.X & c.read(address)
	c.setZN(c.A)
}

func (c *CPU) las(address uint16) {
	value := c.read(address) & c.SP
	c.A = value
	c.X = value
	c.SP = value
	c.setZN(value)
}

// The SHA-family stores AND the register with the incremented high byte
// of the target address.
func (c *CPU) storeHigh(address uint16, register uint8) {
	c.write(address, register&(uint8(address>>8)+1))
}

func (c *CPU) ahx(address uint16) {
	c.storeHigh(address, c.A&c.X)
}

func (c *CPU) tas(address uint16) {
	c.SP = c.A & c.X
	c.storeHigh(address, c.SP)
}

// kil latches the crash state and stalls the CPU on the offending
// opcode.
func (c *CPU) kil() {
	c.read(c.PC)
	c.PC--
	c.crashed = true
}

// execute dispatches one fetched opcode.
func (c *CPU) execute(opcode uint8) {
	switch opcode {
	// LDA
	case 0xA9:
		c.lda(c.addrImmediate())
	case 0xA5:
		c.lda(c.addrZeroPage())
	case 0xB5:
		c.lda(c.addrZeroPageX())
	case 0xAD:
		c.lda(c.addrAbsolute())
	case 0xBD:
		c.lda(c.addrAbsoluteX())
	case 0xB9:
		c.lda(c.addrAbsoluteY())
	case 0xA1:
		c.lda(c.addrIndexedIndirect())
	case 0xB1:
		c.lda(c.addrIndirectY())

	// LDX
	case 0xA2:
		c.ldx(c.addrImmediate())
	case 0xA6:
		c.ldx(c.addrZeroPage())
	case 0xB6:
		c.ldx(c.addrZeroPageY())
	case 0xAE:
		c.ldx(c.addrAbsolute())
	case 0xBE:
		c.ldx(c.addrAbsoluteY())

	// LDY
	case 0xA0:
		c.ldy(c.addrImmediate())
	case 0xA4:
		c.ldy(c.addrZeroPage())
	case 0xB4:
		c.ldy(c.addrZeroPageX())
	case 0xAC:
		c.ldy(c.addrAbsolute())
	case 0xBC:
		c.ldy(c.addrAbsoluteX())

	// STA
	case 0x85:
		c.sta(c.addrZeroPage())
	case 0x95:
		c.sta(c.addrZeroPageX())
	case 0x8D:
		c.sta(c.addrAbsolute())
	case 0x9D:
		c.sta(c.addrAbsoluteXW())
	case 0x99:
		c.sta(c.addrAbsoluteYW())
	case 0x81:
		c.sta(c.addrIndexedIndirect())
	case 0x91:
		c.sta(c.addrIndirectYW())

	// STX
	case 0x86:
		c.stx(c.addrZeroPage())
	case 0x96:
		c.stx(c.addrZeroPageY())
	case 0x8E:
		c.stx(c.addrAbsolute())

	// STY
	case 0x84:
		c.sty(c.addrZeroPage())
	case 0x94:
		c.sty(c.addrZeroPageX())
	case 0x8C:
		c.sty(c.addrAbsolute())

	// ADC
	case 0x69:
		c.adc(c.addrImmediate())
	case 0x65:
		c.adc(c.addrZeroPage())
	case 0x75:
		c.adc(c.addrZeroPageX())
	case 0x6D:
		c.adc(c.addrAbsolute())
	case 0x7D:
		c.adc(c.addrAbsoluteX())
	case 0x79:
		c.adc(c.addrAbsoluteY())
	case 0x61:
		c.adc(c.addrIndexedIndirect())
	case 0x71:
		c.adc(c.addrIndirectY())

	// SBC (0xEB is the unofficial immediate alias)
	case 0xE9, 0xEB:
		c.sbc(c.addrImmediate())
	case 0xE5:
		c.sbc(c.addrZeroPage())
	case 0xF5:
		c.sbc(c.addrZeroPageX())
	case 0xED:
		c.sbc(c.addrAbsolute())
	case 0xFD:
		c.sbc(c.addrAbsoluteX())
	case 0xF9:
		c.sbc(c.addrAbsoluteY())
	case 0xE1:
		c.sbc(c.addrIndexedIndirect())
	case 0xF1:
		c.sbc(c.addrIndirectY())

	// AND
	case 0x29:
		c.and(c.addrImmediate())
	case 0x25:
		c.and(c.addrZeroPage())
	case 0x35:
		c.and(c.addrZeroPageX())
	case 0x2D:
		c.and(c.addrAbsolute())
	case 0x3D:
		c.and(c.addrAbsoluteX())
	case 0x39:
		c.and(c.addrAbsoluteY())
	case 0x21:
		c.and(c.addrIndexedIndirect())
	case 0x31:
		c.and(c.addrIndirectY())

	// ORA
	case 0x09:
		c.ora(c.addrImmediate())
	case 0x05:
		c.ora(c.addrZeroPage())
	case 0x15:
		c.ora(c.addrZeroPageX())
	case 0x0D:
		c.ora(c.addrAbsolute())
	case 0x1D:
		c.ora(c.addrAbsoluteX())
	case 0x19:
		c.ora(c.addrAbsoluteY())
	case 0x01:
		c.ora(c.addrIndexedIndirect())
	case 0x11:
		c.ora(c.addrIndirectY())

	// EOR
	case 0x49:
		c.eor(c.addrImmediate())
	case 0x45:
		c.eor(c.addrZeroPage())
	case 0x55:
		c.eor(c.addrZeroPageX())
	case 0x4D:
		c.eor(c.addrAbsolute())
	case 0x5D:
		c.eor(c.addrAbsoluteX())
	case 0x59:
		c.eor(c.addrAbsoluteY())
	case 0x41:
		c.eor(c.addrIndexedIndirect())
	case 0x51:
		c.eor(c.addrIndirectY())

	// CMP / CPX / CPY
	case 0xC9:
		c.compare(c.A, c.addrImmediate())
	case 0xC5:
		c.compare(c.A, c.addrZeroPage())
	case 0xD5:
		c.compare(c.A, c.addrZeroPageX())
	case 0xCD:
		c.compare(c.A, c.addrAbsolute())
	case 0xDD:
		c.compare(c.A, c.addrAbsoluteX())
	case 0xD9:
		c.compare(c.A, c.addrAbsoluteY())
	case 0xC1:
		c.compare(c.A, c.addrIndexedIndirect())
	case 0xD1:
		c.compare(c.A, c.addrIndirectY())
	case 0xE0:
		c.compare(c.X, c.addrImmediate())
	case 0xE4:
		c.compare(c.X, c.addrZeroPage())
	case 0xEC:
		c.compare(c.X, c.addrAbsolute())
	case 0xC0:
		c.compare(c.Y, c.addrImmediate())
	case 0xC4:
		c.compare(c.Y, c.addrZeroPage())
	case 0xCC:
		c.compare(c.Y, c.addrAbsolute())

	// BIT
	case 0x24:
		c.bit(c.addrZeroPage())
	case 0x2C:
		c.bit(c.addrAbsolute())

	// Shifts and rotates
	case 0x0A:
		c.read(c.PC)
		c.A = c.aslValue(c.A)
	case 0x06:
		c.modify(c.addrZeroPage(), c.aslValue)
	case 0x16:
		c.modify(c.addrZeroPageX(), c.aslValue)
	case 0x0E:
		c.modify(c.addrAbsolute(), c.aslValue)
	case 0x1E:
		c.modify(c.addrAbsoluteXW(), c.aslValue)
	case 0x4A:
		c.read(c.PC)
		c.A = c.lsrValue(c.A)
	case 0x46:
		c.modify(c.addrZeroPage(), c.lsrValue)
	case 0x56:
		c.modify(c.addrZeroPageX(), c.lsrValue)
	case 0x4E:
		c.modify(c.addrAbsolute(), c.lsrValue)
	case 0x5E:
		c.modify(c.addrAbsoluteXW(), c.lsrValue)
	case 0x2A:
		c.read(c.PC)
		c.A = c.rolValue(c.A)
	case 0x26:
		c.modify(c.addrZeroPage(), c.rolValue)
	case 0x36:
		c.modify(c.addrZeroPageX(), c.rolValue)
	case 0x2E:
		c.modify(c.addrAbsolute(), c.rolValue)
	case 0x3E:
		c.modify(c.addrAbsoluteXW(), c.rolValue)
	case 0x6A:
		c.read(c.PC)
		c.A = c.rorValue(c.A)
	case 0x66:
		c.modify(c.addrZeroPage(), c.rorValue)
	case 0x76:
		c.modify(c.addrZeroPageX(), c.rorValue)
	case 0x6E:
		c.modify(c.addrAbsolute(), c.rorValue)
	case 0x7E:
		c.modify(c.addrAbsoluteXW(), c.rorValue)

	// INC / DEC
	case 0xE6:
		c.modify(c.addrZeroPage(), c.incValue)
	case 0xF6:
		c.modify(c.addrZeroPageX(), c.incValue)
	case 0xEE:
		c.modify(c.addrAbsolute(), c.incValue)
	case 0xFE:
		c.modify(c.addrAbsoluteXW(), c.incValue)
	case 0xC6:
		c.modify(c.addrZeroPage(), c.decValue)
	case 0xD6:
		c.modify(c.addrZeroPageX(), c.decValue)
	case 0xCE:
		c.modify(c.addrAbsolute(), c.decValue)
	case 0xDE:
		c.modify(c.addrAbsoluteXW(), c.decValue)

	// Register increments and transfers
	case 0xE8:
		c.read(c.PC)
		c.X++
		c.setZN(c.X)
	case 0xCA:
		c.read(c.PC)
		c.X--
		c.setZN(c.X)
	case 0xC8:
		c.read(c.PC)
		c.Y++
		c.setZN(c.Y)
	case 0x88:
		c.read(c.PC)
		c.Y--
		c.setZN(c.Y)
	case 0xAA:
		c.read(c.PC)
		c.X = c.A
		c.setZN(c.X)
	case 0x8A:
		c.read(c.PC)
		c.A = c.X
		c.setZN(c.A)
	case 0xA8:
		c.read(c.PC)
		c.Y = c.A
		c.setZN(c.Y)
	case 0x98:
		c.read(c.PC)
		c.A = c.Y
		c.setZN(c.A)
	case 0xBA:
		c.read(c.PC)
		c.X = c.SP
		c.setZN(c.X)
	case 0x9A:
		c.read(c.PC)
		c.SP = c.X

	// Stack
	case 0x48:
		c.read(c.PC)
		c.push(c.A)
	case 0x68:
		c.read(c.PC)
		c.read(stackBase + uint16(c.SP))
		c.SP++
		c.A = c.read(stackBase + uint16(c.SP))
		c.setZN(c.A)
	case 0x08:
		c.read(c.PC)
		c.push(c.status() | bFlagMask)
	case 0x28:
		c.read(c.PC)
		c.read(stackBase + uint16(c.SP))
		c.prevI = c.I
		c.setStatus(c.pop())
		c.delayI = true

	// Flags
	case 0x18:
		c.read(c.PC)
		c.C = false
	case 0x38:
		c.read(c.PC)
		c.C = true
	case 0x58:
		c.read(c.PC)
		c.prevI = c.I
		c.I = false
		c.delayI = true
	case 0x78:
		c.read(c.PC)
		c.prevI = c.I
		c.I = true
		c.delayI = true
	case 0xB8:
		c.read(c.PC)
		c.V = false
	case 0xD8:
		c.read(c.PC)
		c.D = false
	case 0xF8:
		c.read(c.PC)
		c.D = true

	// Control flow
	case 0x4C:
		c.PC = c.addrAbsolute()
	case 0x6C:
		c.jmpIndirect()
	case 0x20:
		c.jsr()
	case 0x60:
		c.rts()
	case 0x40:
		c.rti()
	case 0x00:
		c.brk()

	// Branches
	case 0x90:
		c.branch(!c.C)
	case 0xB0:
		c.branch(c.C)
	case 0xD0:
		c.branch(!c.Z)
	case 0xF0:
		c.branch(c.Z)
	case 0x10:
		c.branch(!c.N)
	case 0x30:
		c.branch(c.N)
	case 0x50:
		c.branch(!c.V)
	case 0x70:
		c.branch(c.V)

	// NOPs, official and unofficial
	case 0xEA, 0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA:
		c.read(c.PC)
	case 0x80, 0x82, 0x89, 0xC2, 0xE2:
		c.fetch()
	case 0x04, 0x44, 0x64:
		c.read(c.addrZeroPage())
	case 0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4:
		c.read(c.addrZeroPageX())
	case 0x0C:
		c.read(c.addrAbsolute())
	case 0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC:
		c.read(c.addrAbsoluteX())

	// LAX
	case 0xA7:
		c.lax(c.addrZeroPage())
	case 0xB7:
		c.lax(c.addrZeroPageY())
	case 0xAF:
		c.lax(c.addrAbsolute())
	case 0xBF:
		c.lax(c.addrAbsoluteY())
	case 0xA3:
		c.lax(c.addrIndexedIndirect())
	case 0xB3:
		c.lax(c.addrIndirectY())
	case 0xAB:
		c.lax(c.addrImmediate())

	// SAX
	case 0x87:
		c.sax(c.addrZeroPage())
	case 0x97:
		c.sax(c.addrZeroPageY())
	case 0x8F:
		c.sax(c.addrAbsolute())
	case 0x83:
		c.sax(c.addrIndexedIndirect())

	// DCP
	case 0xC7:
		c.dcp(c.addrZeroPage())
	case 0xD7:
		c.dcp(c.addrZeroPageX())
	case 0xCF:
		c.dcp(c.addrAbsolute())
	case 0xDF:
		c.dcp(c.addrAbsoluteXW())
	case 0xDB:
		c.dcp(c.addrAbsoluteYW())
	case 0xC3:
		c.dcp(c.addrIndexedIndirect())
	case 0xD3:
		c.dcp(c.addrIndirectYW())

	// ISB
	case 0xE7:
		c.isb(c.addrZeroPage())
	case 0xF7:
		c.isb(c.addrZeroPageX())
	case 0xEF:
		c.isb(c.addrAbsolute())
	case 0xFF:
		c.isb(c.addrAbsoluteXW())
	case 0xFB:
		c.isb(c.addrAbsoluteYW())
	case 0xE3:
		c.isb(c.addrIndexedIndirect())
	case 0xF3:
		c.isb(c.addrIndirectYW())

	// SLO
	case 0x07:
		c.slo(c.addrZeroPage())
	case 0x17:
		c.slo(c.addrZeroPageX())
	case 0x0F:
		c.slo(c.addrAbsolute())
	case 0x1F:
		c.slo(c.addrAbsoluteXW())
	case 0x1B:
		c.slo(c.addrAbsoluteYW())
	case 0x03:
		c.slo(c.addrIndexedIndirect())
	case 0x13:
		c.slo(c.addrIndirectYW())

	// RLA
	case 0x27:
		c.rla(c.addrZeroPage())
	case 0x37:
		c.rla(c.addrZeroPageX())
	case 0x2F:
		c.rla(c.addrAbsolute())
	case 0x3F:
		c.rla(c.addrAbsoluteXW())
	case 0x3B:
		c.rla(c.addrAbsoluteYW())
	case 0x23:
		c.rla(c.addrIndexedIndirect())
	case 0x33:
		c.rla(c.addrIndirectYW())

	// SRE
	case 0x47:
		c.sre(c.addrZeroPage())
	case 0x57:
		c.sre(c.addrZeroPageX())
	case 0x4F:
		c.sre(c.addrAbsolute())
	case 0x5F:
		c.sre(c.addrAbsoluteXW())
	case 0x5B:
		c.sre(c.addrAbsoluteYW())
	case 0x43:
		c.sre(c.addrIndexedIndirect())
	case 0x53:
		c.sre(c.addrIndirectYW())

	// RRA
	case 0x67:
		c.rra(c.addrZeroPage())
	case 0x77:
		c.rra(c.addrZeroPageX())
	case 0x6F:
		c.rra(c.addrAbsolute())
	case 0x7F:
		c.rra(c.addrAbsoluteXW())
	case 0x7B:
		c.rra(c.addrAbsoluteYW())
	case 0x63:
		c.rra(c.addrIndexedIndirect())
	case 0x73:
		c.rra(c.addrIndirectYW())

	// Immediate-only unofficials
	case 0x0B, 0x2B:
		c.anc(c.addrImmediate())
	case 0x4B:
		c.alr(c.addrImmediate())
	case 0x6B:
		c.arr(c.addrImmediate())
	case 0xCB:
		c.axs(c.addrImmediate())
	case 0x8B:
		c.xaa(c.addrImmediate())

	// High-byte store family
	case 0xBB:
		c.las(c.addrAbsoluteY())
	case 0x93:
		c.ahx(c.addrIndirectYW())
	case 0x9F:
		c.ahx(c.addrAbsoluteYW())
	case 0x9C:
		c.storeHigh(c.addrAbsoluteXW(), c.Y)
	case 0x9E:
		c.storeHigh(c.addrAbsoluteYW(), c.X)
	case 0x9B:
		c.tas(c.addrAbsoluteYW())

	// KIL
	case 0x02, 0x12, 0x22, 0x32, 0x42, 0x52, 0x62, 0x72, 0x92, 0xB2, 0xD2, 0xF2:
		c.kil()
	}
}
