// dump_state.go - post-mortem and diagnostic register dump

package main

import (
	"fmt"
	"io"
)

// DumpState writes a hex-formatted register snapshot to sink, in the
// same register order (A, X, Y, SP, PC, SR) that the microcontroller's
// debug console has always used.
func (c *CPU) DumpState(sink io.Writer) {
	fmt.Fprintf(sink, "6502 core at %p\n", c)
	fmt.Fprintf(sink, "  Bus:               %p\n", c.bus)
	fmt.Fprintf(sink, "  Accumulator (A):   0x%02X\n", c.A)
	fmt.Fprintf(sink, "  Index X:           0x%02X\n", c.X)
	fmt.Fprintf(sink, "  Index Y:           0x%02X\n", c.Y)
	fmt.Fprintf(sink, "  Stack Pointer:     0x%02X\n", c.SP)
	fmt.Fprintf(sink, "  Program Counter:   0x%04X\n", c.PC)
	fmt.Fprintf(sink, "  Status Register:   0x%02X\n", c.SR)
	if c.illegal.Load() {
		fmt.Fprintf(sink, "  Halted: illegal opcode 0x%02X at 0x%04X\n", c.bus.ReadByte(c.PC), c.PC)
	}
}
