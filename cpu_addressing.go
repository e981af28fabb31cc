// cpu_addressing.go - 6502 addressing mode resolvers
//
// Each resolver advances PC past its operand bytes and returns the src
// value the opcode's operation function expects: an effective address
// for memory-referencing modes, the operand's own address for
// immediate, and 0 for implied/accumulator (routed to accumulator-
// variant operations instead of dereferencing src).

package main

func modeImplied(c *CPU) uint16 { return 0 }

func modeAccumulator(c *CPU) uint16 { return 0 }

func modeImmediate(c *CPU) uint16 {
	addr := c.PC
	c.PC++
	return addr
}

func modeAbsolute(c *CPU) uint16 {
	addr := c.bus.ReadWord(c.PC)
	c.PC += 2
	return addr
}

func modeZeroPage(c *CPU) uint16 {
	addr := uint16(c.bus.ReadByte(c.PC))
	c.PC++
	return addr
}

func modeAbsoluteX(c *CPU) uint16 {
	base := c.bus.ReadWord(c.PC)
	c.PC += 2
	return base + uint16(c.X)
}

func modeAbsoluteY(c *CPU) uint16 {
	base := c.bus.ReadWord(c.PC)
	c.PC += 2
	return base + uint16(c.Y)
}

func modeZeroPageX(c *CPU) uint16 {
	base := c.bus.ReadByte(c.PC)
	c.PC++
	return uint16(byte(base + c.X))
}

func modeZeroPageY(c *CPU) uint16 {
	base := c.bus.ReadByte(c.PC)
	c.PC++
	return uint16(byte(base + c.Y))
}

// modeIndirect implements JMP's ($addr) form: word at (word at PC). It
// advances PC by one only, not past both operand bytes; JMP, its only
// user, overwrites PC with the result.
func modeIndirect(c *CPU) uint16 {
	ptr := c.bus.ReadWord(c.PC)
	c.PC++
	return c.bus.ReadWord(ptr)
}

// modeIndexedIndirectX implements ($zp,X): zero-page pointer wraps mod
// 256 before the indirection.
func modeIndexedIndirectX(c *CPU) uint16 {
	zp := c.bus.ReadByte(c.PC)
	c.PC++
	ptr := byte(zp + c.X)
	lo := c.bus.ReadByte(uint16(ptr))
	hi := c.bus.ReadByte(uint16(byte(ptr + 1)))
	return uint16(lo) | uint16(hi)<<8
}

// modeIndirectIndexedY implements ($zp),Y: the zero-page pointer is not
// indexed (its high byte comes from zp+1, wrapping within page zero); Y
// is added to the fetched word.
func modeIndirectIndexedY(c *CPU) uint16 {
	zp := c.bus.ReadByte(c.PC)
	c.PC++
	lo := c.bus.ReadByte(uint16(zp))
	hi := c.bus.ReadByte(uint16(byte(zp + 1)))
	base := uint16(lo) | uint16(hi)<<8
	return base + uint16(c.Y)
}

// modeRelative returns the address of the branch offset byte; the
// branch operation itself performs the signed add and PC advance so it
// can conditionally skip it.
func modeRelative(c *CPU) uint16 {
	addr := c.PC
	c.PC++
	return addr
}
