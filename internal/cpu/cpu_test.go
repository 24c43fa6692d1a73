package cpu

import "testing"

// flatBus is a 64 KiB flat memory for CPU tests. Every access counts one
// cycle, mirroring how the console bus drives the clock.
type flatBus struct {
	mem    [0x10000]uint8
	cycles uint64
}

func (b *flatBus) Read(address uint16) uint8 {
	b.cycles++
	return b.mem[address]
}

func (b *flatBus) Write(address uint16, value uint8) {
	b.cycles++
	b.mem[address] = value
}

// newTestCPU boots a CPU with the given program at $8000.
func newTestCPU(program ...uint8) (*CPU, *flatBus) {
	bus := &flatBus{}
	copy(bus.mem[0x8000:], program)
	bus.mem[resetVector] = 0x00
	bus.mem[resetVector+1] = 0x80

	c := New(bus)
	c.PowerOn()
	bus.cycles = 0
	return c, bus
}

// step runs one instruction and returns the cycles it consumed.
func step(c *CPU, bus *flatBus) uint64 {
	before := bus.cycles
	c.ExecuteInstruction()
	return bus.cycles - before
}

func TestPowerOnState(t *testing.T) {
	c, _ := newTestCPU(0xEA)
	if c.PC != 0x8000 {
		t.Errorf("PC = %04X, want 8000", c.PC)
	}
	if c.SP != 0xFD {
		t.Errorf("SP = %02X, want FD", c.SP)
	}
	if c.Status() != 0x24 {
		t.Errorf("P = %02X, want 24", c.Status())
	}
}

func TestInstructionSemantics(t *testing.T) {
	tests := []struct {
		name    string
		program []uint8
		setup   func(*CPU, *flatBus)
		check   func(*testing.T, *CPU, *flatBus)
		cycles  uint64
	}{
		{
			name:    "LDA immediate zero",
			program: []uint8{0xA9, 0x00},
			check: func(t *testing.T, c *CPU, b *flatBus) {
				if c.A != 0 || !c.Z || c.N {
					t.Errorf("A=%02X Z=%t N=%t", c.A, c.Z, c.N)
				}
			},
			cycles: 2,
		},
		{
			name:    "LDA absolute",
			program: []uint8{0xAD, 0x34, 0x12},
			setup:   func(c *CPU, b *flatBus) { b.mem[0x1234] = 0x80 },
			check: func(t *testing.T, c *CPU, b *flatBus) {
				if c.A != 0x80 || !c.N || c.Z {
					t.Errorf("A=%02X N=%t Z=%t", c.A, c.N, c.Z)
				}
			},
			cycles: 4,
		},
		{
			name:    "LDA absolute,X no page cross",
			program: []uint8{0xBD, 0x00, 0x12},
			setup: func(c *CPU, b *flatBus) {
				c.X = 0x10
				b.mem[0x1210] = 0x42
			},
			check: func(t *testing.T, c *CPU, b *flatBus) {
				if c.A != 0x42 {
					t.Errorf("A=%02X", c.A)
				}
			},
			cycles: 4,
		},
		{
			name:    "LDA absolute,X page cross",
			program: []uint8{0xBD, 0xFF, 0x12},
			setup: func(c *CPU, b *flatBus) {
				c.X = 0x01
				b.mem[0x1300] = 0x42
			},
			check: func(t *testing.T, c *CPU, b *flatBus) {
				if c.A != 0x42 {
					t.Errorf("A=%02X", c.A)
				}
			},
			cycles: 5,
		},
		{
			name:    "STA absolute,X always 5 cycles",
			program: []uint8{0x9D, 0x00, 0x12},
			setup: func(c *CPU, b *flatBus) {
				c.A = 0x99
				c.X = 0x01
			},
			check: func(t *testing.T, c *CPU, b *flatBus) {
				if b.mem[0x1201] != 0x99 {
					t.Errorf("mem=%02X", b.mem[0x1201])
				}
			},
			cycles: 5,
		},
		{
			name:    "ADC with carry and overflow",
			program: []uint8{0x69, 0x50},
			setup: func(c *CPU, b *flatBus) {
				c.A = 0x50
			},
			check: func(t *testing.T, c *CPU, b *flatBus) {
				if c.A != 0xA0 || !c.V || c.C || !c.N {
					t.Errorf("A=%02X V=%t C=%t N=%t", c.A, c.V, c.C, c.N)
				}
			},
			cycles: 2,
		},
		{
			name:    "SBC borrow",
			program: []uint8{0xE9, 0x01},
			setup: func(c *CPU, b *flatBus) {
				c.A = 0x00
				c.C = true
			},
			check: func(t *testing.T, c *CPU, b *flatBus) {
				if c.A != 0xFF || c.C || !c.N {
					t.Errorf("A=%02X C=%t N=%t", c.A, c.C, c.N)
				}
			},
			cycles: 2,
		},
		{
			name:    "INC absolute",
			program: []uint8{0xEE, 0x00, 0x02},
			setup:   func(c *CPU, b *flatBus) { b.mem[0x0200] = 0xFF },
			check: func(t *testing.T, c *CPU, b *flatBus) {
				if b.mem[0x0200] != 0x00 || !c.Z {
					t.Errorf("mem=%02X Z=%t", b.mem[0x0200], c.Z)
				}
			},
			cycles: 6,
		},
		{
			name:    "ASL accumulator carry out",
			program: []uint8{0x0A},
			setup:   func(c *CPU, b *flatBus) { c.A = 0x80 },
			check: func(t *testing.T, c *CPU, b *flatBus) {
				if c.A != 0x00 || !c.C || !c.Z {
					t.Errorf("A=%02X C=%t Z=%t", c.A, c.C, c.Z)
				}
			},
			cycles: 2,
		},
		{
			name:    "ROR absolute,X read-modify-write",
			program: []uint8{0x7E, 0x00, 0x02},
			setup: func(c *CPU, b *flatBus) {
				c.C = true
				b.mem[0x0200] = 0x02
			},
			check: func(t *testing.T, c *CPU, b *flatBus) {
				if b.mem[0x0200] != 0x81 {
					t.Errorf("mem=%02X", b.mem[0x0200])
				}
			},
			cycles: 7,
		},
		{
			name:    "CMP sets carry on greater-equal",
			program: []uint8{0xC9, 0x10},
			setup:   func(c *CPU, b *flatBus) { c.A = 0x10 },
			check: func(t *testing.T, c *CPU, b *flatBus) {
				if !c.C || !c.Z {
					t.Errorf("C=%t Z=%t", c.C, c.Z)
				}
			},
			cycles: 2,
		},
		{
			name:    "BIT sets N and V from memory",
			program: []uint8{0x24, 0x10},
			setup: func(c *CPU, b *flatBus) {
				c.A = 0x01
				b.mem[0x0010] = 0xC0
			},
			check: func(t *testing.T, c *CPU, b *flatBus) {
				if !c.N || !c.V || !c.Z {
					t.Errorf("N=%t V=%t Z=%t", c.N, c.V, c.Z)
				}
			},
			cycles: 3,
		},
		{
			name:    "JMP indirect page-wrap bug",
			program: []uint8{0x6C, 0xFF, 0x02},
			setup: func(c *CPU, b *flatBus) {
				b.mem[0x02FF] = 0x34
				b.mem[0x0200] = 0x12 // high byte wraps within the page
				b.mem[0x0300] = 0xFF // must not be used
			},
			check: func(t *testing.T, c *CPU, b *flatBus) {
				if c.PC != 0x1234 {
					t.Errorf("PC=%04X", c.PC)
				}
			},
			cycles: 5,
		},
		{
			name:    "(zp,X) wraps in zero page",
			program: []uint8{0xA1, 0xFF},
			setup: func(c *CPU, b *flatBus) {
				c.X = 0x01
				b.mem[0x0000] = 0x00
				b.mem[0x0001] = 0x04
				b.mem[0x0400] = 0x77
			},
			check: func(t *testing.T, c *CPU, b *flatBus) {
				if c.A != 0x77 {
					t.Errorf("A=%02X", c.A)
				}
			},
			cycles: 6,
		},
		{
			name:    "(zp),Y page cross",
			program: []uint8{0xB1, 0x10},
			setup: func(c *CPU, b *flatBus) {
				c.Y = 0x01
				b.mem[0x0010] = 0xFF
				b.mem[0x0011] = 0x02
				b.mem[0x0300] = 0x55
			},
			check: func(t *testing.T, c *CPU, b *flatBus) {
				if c.A != 0x55 {
					t.Errorf("A=%02X", c.A)
				}
			},
			cycles: 6,
		},
		{
			name:    "LAX loads A and X",
			program: []uint8{0xA7, 0x10},
			setup:   func(c *CPU, b *flatBus) { b.mem[0x0010] = 0x3C },
			check: func(t *testing.T, c *CPU, b *flatBus) {
				if c.A != 0x3C || c.X != 0x3C {
					t.Errorf("A=%02X X=%02X", c.A, c.X)
				}
			},
			cycles: 3,
		},
		{
			name:    "SAX stores A AND X",
			program: []uint8{0x87, 0x10},
			setup: func(c *CPU, b *flatBus) {
				c.A = 0xF0
				c.X = 0x3C
			},
			check: func(t *testing.T, c *CPU, b *flatBus) {
				if b.mem[0x0010] != 0x30 {
					t.Errorf("mem=%02X", b.mem[0x0010])
				}
			},
			cycles: 3,
		},
		{
			name:    "DCP decrements then compares",
			program: []uint8{0xC7, 0x10},
			setup: func(c *CPU, b *flatBus) {
				c.A = 0x40
				b.mem[0x0010] = 0x41
			},
			check: func(t *testing.T, c *CPU, b *flatBus) {
				if b.mem[0x0010] != 0x40 || !c.Z || !c.C {
					t.Errorf("mem=%02X Z=%t C=%t", b.mem[0x0010], c.Z, c.C)
				}
			},
			cycles: 5,
		},
		{
			name:    "ANC copies N to C",
			program: []uint8{0x0B, 0x80},
			setup:   func(c *CPU, b *flatBus) { c.A = 0xFF },
			check: func(t *testing.T, c *CPU, b *flatBus) {
				if c.A != 0x80 || !c.C || !c.N {
					t.Errorf("A=%02X C=%t N=%t", c.A, c.C, c.N)
				}
			},
			cycles: 2,
		},
		{
			name:    "AXS subtracts without borrow",
			program: []uint8{0xCB, 0x02},
			setup: func(c *CPU, b *flatBus) {
				c.A = 0x0F
				c.X = 0x07
			},
			check: func(t *testing.T, c *CPU, b *flatBus) {
				if c.X != 0x05 || !c.C {
					t.Errorf("X=%02X C=%t", c.X, c.C)
				}
			},
			cycles: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, bus := newTestCPU(tt.program...)
			if tt.setup != nil {
				tt.setup(c, bus)
			}
			cycles := step(c, bus)
			if cycles != tt.cycles {
				t.Errorf("cycles = %d, want %d", cycles, tt.cycles)
			}
			tt.check(t, c, bus)
		})
	}
}

func TestBranchCycles(t *testing.T) {
	// BNE not taken: 2 cycles.
	c, bus := newTestCPU(0xD0, 0x10)
	c.Z = true
	if got := step(c, bus); got != 2 {
		t.Errorf("not taken: %d cycles, want 2", got)
	}

	// BNE taken, same page: 3 cycles.
	c, bus = newTestCPU(0xD0, 0x10)
	c.Z = false
	if got := step(c, bus); got != 3 {
		t.Errorf("taken: %d cycles, want 3", got)
	}
	if c.PC != 0x8012 {
		t.Errorf("PC = %04X, want 8012", c.PC)
	}

	// BNE taken across a page: 4 cycles.
	c, bus = newTestCPU()
	copy(bus.mem[0x80F0:], []uint8{0xD0, 0x20})
	c.PC = 0x80F0
	c.Z = false
	if got := step(c, bus); got != 4 {
		t.Errorf("taken with page cross: %d cycles, want 4", got)
	}
	if c.PC != 0x8112 {
		t.Errorf("PC = %04X, want 8112", c.PC)
	}
}

func TestJSRAndRTS(t *testing.T) {
	c, bus := newTestCPU(0x20, 0x00, 0x90) // JSR $9000
	bus.mem[0x9000] = 0x60                 // RTS

	if got := step(c, bus); got != 6 {
		t.Errorf("JSR: %d cycles, want 6", got)
	}
	if c.PC != 0x9000 {
		t.Errorf("PC = %04X, want 9000", c.PC)
	}
	if got := step(c, bus); got != 6 {
		t.Errorf("RTS: %d cycles, want 6", got)
	}
	if c.PC != 0x8003 {
		t.Errorf("PC = %04X, want 8003", c.PC)
	}
}

func TestBRKAndRTI(t *testing.T) {
	c, bus := newTestCPU(0x00, 0xFF) // BRK
	bus.mem[irqVector] = 0x00
	bus.mem[irqVector+1] = 0x90
	bus.mem[0x9000] = 0x40 // RTI

	if got := step(c, bus); got != 7 {
		t.Errorf("BRK: %d cycles, want 7", got)
	}
	if c.PC != 0x9000 || !c.I {
		t.Errorf("PC=%04X I=%t", c.PC, c.I)
	}

	if got := step(c, bus); got != 6 {
		t.Errorf("RTI: %d cycles, want 6", got)
	}
	// BRK pushes PC+2; RTI returns past the padding byte.
	if c.PC != 0x8002 {
		t.Errorf("PC = %04X, want 8002", c.PC)
	}
}

func TestNMIEdgeLatch(t *testing.T) {
	c, bus := newTestCPU(0xEA, 0xEA, 0xEA)
	bus.mem[nmiVector] = 0x00
	bus.mem[nmiVector+1] = 0x90

	// A high level without an edge does not re-trigger.
	c.SetNMI(true)
	c.SetNMI(true)

	c.ExecuteInstruction() // takes the NMI
	if c.PC != 0x9000 {
		t.Fatalf("PC = %04X, want 9000 (NMI vector)", c.PC)
	}

	// Still high: no second latch.
	bus.mem[0x9000] = 0xEA
	c.ExecuteInstruction()
	if c.PC != 0x9001 {
		t.Errorf("PC = %04X, want 9001", c.PC)
	}

	// A falling edge then rising edge latches again.
	c.SetNMI(false)
	c.SetNMI(true)
	c.ExecuteInstruction()
	if c.PC != 0x9000 {
		t.Errorf("PC = %04X, want 9000 after new edge", c.PC)
	}
}

func TestIRQMaskedByI(t *testing.T) {
	c, bus := newTestCPU(0xEA, 0xEA)
	bus.mem[irqVector] = 0x00
	bus.mem[irqVector+1] = 0x90

	c.SetIRQ(IRQSourceAPU, true)

	// I is set after power-on: the IRQ is held off.
	c.ExecuteInstruction()
	if c.PC != 0x8001 {
		t.Fatalf("PC = %04X, want 8001 (IRQ masked)", c.PC)
	}

	c.I = false
	c.ExecuteInstruction()
	if c.PC != 0x9000 {
		t.Errorf("PC = %04X, want 9000 (IRQ taken)", c.PC)
	}
	if !c.I {
		t.Error("I not set by interrupt entry")
	}
}

func TestCLIDelaysIRQByOneInstruction(t *testing.T) {
	c, bus := newTestCPU(0x58, 0xEA, 0xEA) // CLI; NOP; NOP
	bus.mem[irqVector] = 0x00
	bus.mem[irqVector+1] = 0x90

	c.SetIRQ(IRQSourceAPU, true)

	c.ExecuteInstruction() // CLI
	// The boundary after CLI still sees the old I value.
	c.ExecuteInstruction()
	if c.PC != 0x8002 {
		t.Fatalf("PC = %04X, want 8002 (IRQ delayed one instruction)", c.PC)
	}
	c.ExecuteInstruction()
	if c.PC != 0x9000 {
		t.Errorf("PC = %04X, want 9000 (IRQ finally taken)", c.PC)
	}
}

func TestRTIDelaysIRQByOneInstruction(t *testing.T) {
	c, bus := newTestCPU(0x40) // RTI
	bus.mem[irqVector] = 0x00
	bus.mem[irqVector+1] = 0x90
	bus.mem[0x8100] = 0xEA // NOP
	bus.mem[0x8101] = 0xEA

	// Stack frame for RTI: status with I clear, return address $8100.
	c.SP = 0xFA
	bus.mem[0x01FB] = 0x20 // pulled P, I = 0
	bus.mem[0x01FC] = 0x00
	bus.mem[0x01FD] = 0x81

	c.SetIRQ(IRQSourceAPU, true)

	c.ExecuteInstruction() // RTI clears I
	if c.I {
		t.Fatal("RTI did not clear I from the pulled status")
	}
	// The boundary after RTI still sees the old I value.
	c.ExecuteInstruction()
	if c.PC != 0x8101 {
		t.Fatalf("PC = %04X, want 8101 (IRQ delayed one instruction)", c.PC)
	}
	c.ExecuteInstruction()
	if c.PC != 0x9000 {
		t.Errorf("PC = %04X, want 9000 (IRQ finally taken)", c.PC)
	}
}

func TestNMIWinsOverIRQAfterRTI(t *testing.T) {
	c, bus := newTestCPU(0x40) // RTI
	bus.mem[nmiVector] = 0x00
	bus.mem[nmiVector+1] = 0x90
	bus.mem[irqVector] = 0x00
	bus.mem[irqVector+1] = 0xA0
	bus.mem[0x8100] = 0xEA

	c.SP = 0xFA
	bus.mem[0x01FB] = 0x20 // pulled P, I = 0
	bus.mem[0x01FC] = 0x00
	bus.mem[0x01FD] = 0x81

	c.SetIRQ(IRQSourceMapper, true)

	c.ExecuteInstruction() // RTI clears I
	c.SetNMI(true)         // both interrupts pending
	c.ExecuteInstruction()
	if c.PC != 0x9000 {
		t.Errorf("PC = %04X, want 9000 (NMI vector wins after RTI)", c.PC)
	}
}

func TestNMIWinsOverIRQ(t *testing.T) {
	c, bus := newTestCPU(0xEA)
	bus.mem[nmiVector] = 0x00
	bus.mem[nmiVector+1] = 0x90
	bus.mem[irqVector] = 0x00
	bus.mem[irqVector+1] = 0xA0

	c.I = false
	c.SetIRQ(IRQSourceMapper, true)
	c.SetNMI(true)

	c.ExecuteInstruction()
	if c.PC != 0x9000 {
		t.Errorf("PC = %04X, want 9000 (NMI vector)", c.PC)
	}
}

func TestKILLatchesCrash(t *testing.T) {
	c, bus := newTestCPU(0x02)

	c.ExecuteInstruction()
	if !c.Crashed() {
		t.Fatal("KIL did not latch the crash state")
	}

	// Further execution is a no-op.
	before := bus.cycles
	c.ExecuteInstruction()
	if bus.cycles != before {
		t.Error("crashed CPU still accessed the bus")
	}

	c.ClearCrash()
	if c.Crashed() {
		t.Error("ClearCrash did not drop the latch")
	}
}

func TestOfficialOpcodeCycleTotals(t *testing.T) {
	// Spot-check the documented cycle counts across addressing modes.
	tests := []struct {
		name    string
		program []uint8
		setup   func(*CPU)
		cycles  uint64
	}{
		{"LDA zp", []uint8{0xA5, 0x00}, nil, 3},
		{"LDA zp,X", []uint8{0xB5, 0x00}, nil, 4},
		{"STA (zp),Y", []uint8{0x91, 0x10}, nil, 6},
		{"PHA", []uint8{0x48}, nil, 3},
		{"PLA", []uint8{0x68}, nil, 4},
		{"PHP", []uint8{0x08}, nil, 3},
		{"PLP", []uint8{0x28}, nil, 4},
		{"NOP", []uint8{0xEA}, nil, 2},
		{"JMP abs", []uint8{0x4C, 0x00, 0x90}, nil, 3},
		{"TXS", []uint8{0x9A}, nil, 2},
		{"SLO (zp,X)", []uint8{0x03, 0x10}, nil, 8},
		{"ISB abs,Y", []uint8{0xFB, 0x00, 0x02}, nil, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, bus := newTestCPU(tt.program...)
			if tt.setup != nil {
				tt.setup(c)
			}
			if got := step(c, bus); got != tt.cycles {
				t.Errorf("cycles = %d, want %d", got, tt.cycles)
			}
		})
	}
}

func TestStatusRoundTrip(t *testing.T) {
	c, _ := newTestCPU(0xEA)
	c.setStatus(0xCF)
	if got := c.status(); got != 0xEF {
		// Bit 5 always reads back set.
		t.Errorf("status = %02X, want EF", got)
	}
}
