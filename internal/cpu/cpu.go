// Package cpu implements the 6502 CPU core used in the NES.
//
// The core is cycle-accurate by construction: every cycle of every
// instruction is a bus access, so instruction timing (including page-cross
// penalties and read-modify-write double stores) falls out of the access
// pattern instead of a side table. The bus implementation is expected to
// advance the rest of the machine on every access.
package cpu

import "github.com/hal609/cynes/internal/dump"

// Bus is the memory interface the CPU drives. Each call accounts for
// exactly one CPU cycle.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// IRQ line sources. The CPU IRQ input is the OR of all source levels.
const (
	IRQSourceAPU uint8 = 1 << iota
	IRQSourceDMC
	IRQSourceMapper
)

const (
	stackBase = 0x0100

	nFlagMask  = 0x80
	vFlagMask  = 0x40
	unusedMask = 0x20
	bFlagMask  = 0x10
	dFlagMask  = 0x08
	iFlagMask  = 0x04
	zFlagMask  = 0x02
	cFlagMask  = 0x01

	nmiVector   = 0xFFFA
	resetVector = 0xFFFC
	irqVector   = 0xFFFE
)

// CPU represents the 2A03's 6502 core.
type CPU struct {
	// Registers
	A  uint8
	X  uint8
	Y  uint8
	SP uint8
	PC uint16

	// Status flags
	C bool // Carry
	Z bool // Zero
	I bool // Interrupt disable
	D bool // Decimal (stored but ignored by arithmetic on the 2A03)
	B bool // Break
	V bool // Overflow
	N bool // Negative

	// Cycle counter, advanced by the bus owner on every access.
	Cycles uint64

	bus Bus

	// Interrupt state. NMI is edge-triggered and latched; IRQ is the
	// level OR of the source lines, sampled at instruction boundaries.
	nmiLine    bool
	nmiPending bool
	irqLines   uint8

	// I-flag changes from CLI/SEI/PLP/RTI take effect one instruction late
	// for interrupt polling.
	delayI bool
	prevI  bool

	crashed bool
}

// New creates a CPU attached to the given bus.
func New(bus Bus) *CPU {
	return &CPU{bus: bus, SP: 0xFD, I: true}
}

// PowerOn puts the CPU into its post-power-on state and loads the reset
// vector.
func (c *CPU) PowerOn() {
	c.A = 0
	c.X = 0
	c.Y = 0
	c.SP = 0xFD
	c.C = false
	c.Z = false
	c.I = true
	c.D = false
	c.B = false
	c.V = false
	c.N = false

	c.nmiLine = false
	c.nmiPending = false
	c.irqLines = 0
	c.delayI = false
	c.crashed = false

	c.loadResetVector()
}

// Reset runs the reset sequence: the stack pointer drops by three without
// writes and interrupts are disabled.
func (c *CPU) Reset() {
	c.SP -= 3
	c.I = true

	c.nmiPending = false
	c.delayI = false
	c.crashed = false

	c.loadResetVector()
}

func (c *CPU) loadResetVector() {
	// Five internal cycles before the vector fetch.
	for i := 0; i < 5; i++ {
		c.read(c.PC)
	}
	low := uint16(c.read(resetVector))
	high := uint16(c.read(resetVector + 1))
	c.PC = high<<8 | low
}

// Crashed reports whether a KIL opcode latched the halt state.
func (c *CPU) Crashed() bool {
	return c.crashed
}

// ClearCrash drops the halt latch (used by save-state load).
func (c *CPU) ClearCrash() {
	c.crashed = false
}

// SetNMI drives the NMI input. A low-to-high transition latches a pending
// NMI; the latch survives until the interrupt is taken.
func (c *CPU) SetNMI(line bool) {
	if line && !c.nmiLine {
		c.nmiPending = true
	}
	c.nmiLine = line
}

// TriggerNMI latches a pending NMI directly.
func (c *CPU) TriggerNMI() {
	c.nmiPending = true
}

// SetIRQ drives one IRQ source line. The CPU input is the OR of all
// sources.
func (c *CPU) SetIRQ(source uint8, level bool) {
	if level {
		c.irqLines |= source
	} else {
		c.irqLines &^= source
	}
}

// ExecuteInstruction services a pending interrupt or runs one
// instruction. It is a no-op once the CPU has crashed.
func (c *CPU) ExecuteInstruction() {
	if c.crashed {
		return
	}

	if c.nmiPending {
		c.nmiPending = false
		c.interrupt(nmiVector)
		return
	}
	if c.irqLines != 0 && !c.polledI() {
		c.interrupt(irqVector)
		return
	}

	opcode := c.read(c.PC)
	c.PC++
	c.execute(opcode)
}

// polledI returns the interrupt-disable value the polling logic sees,
// honoring the one-instruction delay of CLI/SEI/PLP/RTI.
func (c *CPU) polledI() bool {
	if c.delayI {
		c.delayI = false
		return c.prevI
	}
	return c.I
}

// interrupt runs the 7-cycle hardware interrupt sequence. B is pushed
// clear; NMI wins over IRQ by being polled first.
func (c *CPU) interrupt(vector uint16) {
	c.read(c.PC)
	c.read(c.PC)
	c.push(uint8(c.PC >> 8))
	c.push(uint8(c.PC))
	c.push(c.status() &^ bFlagMask)
	c.I = true
	low := uint16(c.read(vector))
	high := uint16(c.read(vector + 1))
	c.PC = high<<8 | low
}

// Bus access helpers. The bus owner advances the machine clock inside
// these calls.

func (c *CPU) read(address uint16) uint8 {
	return c.bus.Read(address)
}

func (c *CPU) write(address uint16, value uint8) {
	c.bus.Write(address, value)
}

func (c *CPU) push(value uint8) {
	c.write(stackBase+uint16(c.SP), value)
	c.SP--
}

func (c *CPU) pop() uint8 {
	c.SP++
	return c.read(stackBase + uint16(c.SP))
}

// Status returns the flags packed into the NV1BDIZC layout.
func (c *CPU) Status() uint8 {
	return c.status()
}

func (c *CPU) status() uint8 {
	var status uint8 = unusedMask
	if c.N {
		status |= nFlagMask
	}
	if c.V {
		status |= vFlagMask
	}
	if c.B {
		status |= bFlagMask
	}
	if c.D {
		status |= dFlagMask
	}
	if c.I {
		status |= iFlagMask
	}
	if c.Z {
		status |= zFlagMask
	}
	if c.C {
		status |= cFlagMask
	}
	return status
}

func (c *CPU) setStatus(status uint8) {
	c.N = status&nFlagMask != 0
	c.V = status&vFlagMask != 0
	c.B = status&bFlagMask != 0
	c.D = status&dFlagMask != 0
	c.I = status&iFlagMask != 0
	c.Z = status&zFlagMask != 0
	c.C = status&cFlagMask != 0
}

func (c *CPU) setZN(value uint8) {
	c.Z = value == 0
	c.N = value&nFlagMask != 0
}

// DumpState walks every mutable CPU byte in save-state order.
func (c *CPU) DumpState(s *dump.State) {
	s.Uint8(&c.A)
	s.Uint8(&c.X)
	s.Uint8(&c.Y)
	s.Uint8(&c.SP)

	status := c.status()
	s.Uint8(&status)
	if s.Mode() == dump.Read {
		c.setStatus(status)
	}

	s.Uint16(&c.PC)
	s.Uint64(&c.Cycles)

	s.Bool(&c.nmiLine)
	s.Bool(&c.nmiPending)
	s.Uint8(&c.irqLines)
	s.Bool(&c.delayI)
	s.Bool(&c.prevI)
}
