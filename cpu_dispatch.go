// cpu_dispatch.go - opcode dispatch table
//
// Every entry pairs an addressing mode with an operation, the way the
// documented NMOS 6502 instruction set lays out. Entries left at their
// zero value are filled with the illegal-opcode handler, which halts
// the fetch loop rather than guessing at undocumented behavior.

package main

func (c *CPU) initOpcodeTable() {
	for i := range c.table {
		c.table[i] = opcodeEntry{modeImplied, opIllegal}
	}

	set := func(op byte, mode addrMode, fn opFunc) {
		c.table[op] = opcodeEntry{mode, fn}
	}

	// custom
	set(0x02, modeImplied, opWAI)

	// BRK / stack / flow
	set(0x00, modeImplied, opBRK)
	set(0x08, modeImplied, opPHP)
	set(0x28, modeImplied, opPLP)
	set(0x48, modeImplied, opPHA)
	set(0x68, modeImplied, opPLA)
	set(0x40, modeImplied, opRTI)
	set(0x60, modeImplied, opRTS)
	set(0x20, modeAbsolute, opJSR)
	set(0x4C, modeAbsolute, opJMP)
	set(0x6C, modeIndirect, opJMP)
	set(0xEA, modeImplied, opNOP)

	// flags
	set(0x18, modeImplied, opCLC)
	set(0x38, modeImplied, opSEC)
	set(0x58, modeImplied, opCLI)
	set(0x78, modeImplied, opSEI)
	set(0xB8, modeImplied, opCLV)
	set(0xD8, modeImplied, opCLD)
	set(0xF8, modeImplied, opSED)

	// transfers
	set(0xAA, modeImplied, opTAX)
	set(0xA8, modeImplied, opTAY)
	set(0x8A, modeImplied, opTXA)
	set(0x98, modeImplied, opTYA)
	set(0xBA, modeImplied, opTSX)
	set(0x9A, modeImplied, opTXS)

	// increment/decrement register
	set(0xE8, modeImplied, opINX)
	set(0xC8, modeImplied, opINY)
	set(0xCA, modeImplied, opDEX)
	set(0x88, modeImplied, opDEY)

	// branches (relative)
	set(0x90, modeRelative, opBCC)
	set(0xB0, modeRelative, opBCS)
	set(0xF0, modeRelative, opBEQ)
	set(0xD0, modeRelative, opBNE)
	set(0x30, modeRelative, opBMI)
	set(0x10, modeRelative, opBPL)
	set(0x50, modeRelative, opBVC)
	set(0x70, modeRelative, opBVS)

	// LDA
	set(0xA9, modeImmediate, opLDA)
	set(0xA5, modeZeroPage, opLDA)
	set(0xB5, modeZeroPageX, opLDA)
	set(0xAD, modeAbsolute, opLDA)
	set(0xBD, modeAbsoluteX, opLDA)
	set(0xB9, modeAbsoluteY, opLDA)
	set(0xA1, modeIndexedIndirectX, opLDA)
	set(0xB1, modeIndirectIndexedY, opLDA)

	// LDX
	set(0xA2, modeImmediate, opLDX)
	set(0xA6, modeZeroPage, opLDX)
	set(0xB6, modeZeroPageY, opLDX)
	set(0xAE, modeAbsolute, opLDX)
	set(0xBE, modeAbsoluteY, opLDX)

	// LDY
	set(0xA0, modeImmediate, opLDY)
	set(0xA4, modeZeroPage, opLDY)
	set(0xB4, modeZeroPageX, opLDY)
	set(0xAC, modeAbsolute, opLDY)
	set(0xBC, modeAbsoluteX, opLDY)

	// STA
	set(0x85, modeZeroPage, opSTA)
	set(0x95, modeZeroPageX, opSTA)
	set(0x8D, modeAbsolute, opSTA)
	set(0x9D, modeAbsoluteX, opSTA)
	set(0x99, modeAbsoluteY, opSTA)
	set(0x81, modeIndexedIndirectX, opSTA)
	set(0x91, modeIndirectIndexedY, opSTA)

	// STX / STY
	set(0x86, modeZeroPage, opSTX)
	set(0x96, modeZeroPageY, opSTX)
	set(0x8E, modeAbsolute, opSTX)
	set(0x84, modeZeroPage, opSTY)
	set(0x94, modeZeroPageX, opSTY)
	set(0x8C, modeAbsolute, opSTY)

	// ADC
	set(0x69, modeImmediate, opADC)
	set(0x65, modeZeroPage, opADC)
	set(0x75, modeZeroPageX, opADC)
	set(0x6D, modeAbsolute, opADC)
	set(0x7D, modeAbsoluteX, opADC)
	set(0x79, modeAbsoluteY, opADC)
	set(0x61, modeIndexedIndirectX, opADC)
	set(0x71, modeIndirectIndexedY, opADC)

	// SBC
	set(0xE9, modeImmediate, opSBC)
	set(0xE5, modeZeroPage, opSBC)
	set(0xF5, modeZeroPageX, opSBC)
	set(0xED, modeAbsolute, opSBC)
	set(0xFD, modeAbsoluteX, opSBC)
	set(0xF9, modeAbsoluteY, opSBC)
	set(0xE1, modeIndexedIndirectX, opSBC)
	set(0xF1, modeIndirectIndexedY, opSBC)

	// AND
	set(0x29, modeImmediate, opAND)
	set(0x25, modeZeroPage, opAND)
	set(0x35, modeZeroPageX, opAND)
	set(0x2D, modeAbsolute, opAND)
	set(0x3D, modeAbsoluteX, opAND)
	set(0x39, modeAbsoluteY, opAND)
	set(0x21, modeIndexedIndirectX, opAND)
	set(0x31, modeIndirectIndexedY, opAND)

	// ORA
	set(0x09, modeImmediate, opORA)
	set(0x05, modeZeroPage, opORA)
	set(0x15, modeZeroPageX, opORA)
	set(0x0D, modeAbsolute, opORA)
	set(0x1D, modeAbsoluteX, opORA)
	set(0x19, modeAbsoluteY, opORA)
	set(0x01, modeIndexedIndirectX, opORA)
	set(0x11, modeIndirectIndexedY, opORA)

	// EOR
	set(0x49, modeImmediate, opEOR)
	set(0x45, modeZeroPage, opEOR)
	set(0x55, modeZeroPageX, opEOR)
	set(0x4D, modeAbsolute, opEOR)
	set(0x5D, modeAbsoluteX, opEOR)
	set(0x59, modeAbsoluteY, opEOR)
	set(0x41, modeIndexedIndirectX, opEOR)
	set(0x51, modeIndirectIndexedY, opEOR)

	// BIT
	set(0x24, modeZeroPage, opBIT)
	set(0x2C, modeAbsolute, opBIT)

	// ASL
	set(0x0A, modeAccumulator, opASLAcc)
	set(0x06, modeZeroPage, opASL)
	set(0x16, modeZeroPageX, opASL)
	set(0x0E, modeAbsolute, opASL)
	set(0x1E, modeAbsoluteX, opASL)

	// LSR
	set(0x4A, modeAccumulator, opLSRAcc)
	set(0x46, modeZeroPage, opLSR)
	set(0x56, modeZeroPageX, opLSR)
	set(0x4E, modeAbsolute, opLSR)
	set(0x5E, modeAbsoluteX, opLSR)

	// ROL
	set(0x2A, modeAccumulator, opROLAcc)
	set(0x26, modeZeroPage, opROL)
	set(0x36, modeZeroPageX, opROL)
	set(0x2E, modeAbsolute, opROL)
	set(0x3E, modeAbsoluteX, opROL)

	// ROR
	set(0x6A, modeAccumulator, opRORAcc)
	set(0x66, modeZeroPage, opROR)
	set(0x76, modeZeroPageX, opROR)
	set(0x6E, modeAbsolute, opROR)
	set(0x7E, modeAbsoluteX, opROR)

	// INC / DEC (memory)
	set(0xE6, modeZeroPage, opINC)
	set(0xF6, modeZeroPageX, opINC)
	set(0xEE, modeAbsolute, opINC)
	set(0xFE, modeAbsoluteX, opINC)
	set(0xC6, modeZeroPage, opDEC)
	set(0xD6, modeZeroPageX, opDEC)
	set(0xCE, modeAbsolute, opDEC)
	set(0xDE, modeAbsoluteX, opDEC)

	// CMP / CPX / CPY
	set(0xC9, modeImmediate, opCMP)
	set(0xC5, modeZeroPage, opCMP)
	set(0xD5, modeZeroPageX, opCMP)
	set(0xCD, modeAbsolute, opCMP)
	set(0xDD, modeAbsoluteX, opCMP)
	set(0xD9, modeAbsoluteY, opCMP)
	set(0xC1, modeIndexedIndirectX, opCMP)
	set(0xD1, modeIndirectIndexedY, opCMP)
	set(0xE0, modeImmediate, opCPX)
	set(0xE4, modeZeroPage, opCPX)
	set(0xEC, modeAbsolute, opCPX)
	set(0xC0, modeImmediate, opCPY)
	set(0xC4, modeZeroPage, opCPY)
	set(0xCC, modeAbsolute, opCPY)
}
