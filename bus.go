package cynes

import "github.com/hal609/cynes/internal/cpu"

// cpuBus is the clocked bus the CPU drives: every access first advances
// the machine by one CPU cycle (three PPU dots, one APU and mapper tick),
// then performs the memory operation. This is what makes the interpreter
// cycle-accurate.
type cpuBus struct {
	nes *NES
}

func (b cpuBus) Read(address uint16) uint8 {
	b.nes.cycle()
	return b.nes.readMemory(address)
}

func (b cpuBus) Write(address uint16, value uint8) {
	b.nes.cycle()
	b.nes.writeMemory(address, value)
}

// cycle advances the master clock by one CPU cycle and re-samples the
// interrupt lines.
func (n *NES) cycle() {
	for i := 0; i < 3; i++ {
		n.ppu.Tick()
		if n.ppu.ConsumeNMI() {
			n.cpu.TriggerNMI()
		}
		if n.ppu.ConsumeFrameComplete() {
			n.frameDone = true
		}
	}

	n.mapper.Tick()
	n.apu.Tick()
	n.cpu.Cycles++

	n.cpu.SetIRQ(cpu.IRQSourceAPU, n.apu.PendingIRQ())
	n.cpu.SetIRQ(cpu.IRQSourceDMC, n.apu.PendingDMCIRQ())
	n.cpu.SetIRQ(cpu.IRQSourceMapper, n.mapper.PendingIRQ())
}

// readMemory routes a CPU bus read. Reads from write-only or unmapped
// addresses return the open-bus latch.
func (n *NES) readMemory(address uint16) uint8 {
	var value uint8

	switch {
	case address < 0x2000:
		value = n.ram[address&0x07FF]

	case address < 0x4000:
		value = n.ppu.ReadRegister(address)

	case address == 0x4015:
		value = n.apu.ReadStatus()

	case address == 0x4016:
		value = n.readController()

	case address < 0x4020:
		// Write-only APU/I-O registers and the test registers.
		value = n.openBus

	default:
		mapped, ok := n.mapper.ReadCPU(address)
		if ok {
			value = mapped
		} else {
			value = n.openBus
		}
	}

	n.openBus = value
	return value
}

// writeMemory routes a CPU bus write.
func (n *NES) writeMemory(address uint16, value uint8) {
	n.openBus = value

	switch {
	case address < 0x2000:
		n.ram[address&0x07FF] = value

	case address < 0x4000:
		n.ppu.WriteRegister(address, value)

	case address == 0x4014:
		n.oamDMA(value)

	case address == 0x4016:
		n.writeController(value)

	case address < 0x4020:
		n.apu.WriteRegister(address, value)

	default:
		n.mapper.WriteCPU(address, value)
	}
}

// oamDMA copies one 256-byte page into PPU OAM, suspending the CPU for
// 513 cycles (514 when the transfer starts on an odd cycle).
func (n *NES) oamDMA(page uint8) {
	odd := n.cpu.Cycles%2 == 1
	n.cycle()
	if odd {
		n.cycle()
	}

	base := uint16(page) << 8
	for i := uint16(0); i < 256; i++ {
		n.cycle()
		value := n.readMemory(base + i)
		n.cycle()
		n.ppu.WriteOAMByte(value)
	}
}

// Controller port. A 1-then-0 strobe of $4016 latches the Controller
// byte; reads shift it out LSB first, returning 1s once exhausted.

func (n *NES) writeController(value uint8) {
	if value&0x01 != 0 {
		n.controllerStrobe = true
		n.controllerShift = n.Controller
	} else {
		if n.controllerStrobe {
			n.controllerShift = n.Controller
		}
		n.controllerStrobe = false
	}
}

func (n *NES) readController() uint8 {
	if n.controllerStrobe {
		return n.Controller & 0x01
	}
	bit := n.controllerShift & 0x01
	n.controllerShift = n.controllerShift>>1 | 0x80
	return bit
}
