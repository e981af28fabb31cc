// bus.go - 16-bit address bus for the 6502 core

package main

import "sync/atomic"

const (
	ramStart = 0x0000
	ioStart  = 0x4000
	romStart = 0x4920
	busEnd   = 0x10000

	ramSize = ioStart - ramStart
	ioSize  = romStart - ioStart
	romSize = busEnd - romStart
)

// Device is the uniform read/write contract for anything attached to the
// bus. Implementations must be total over their mapped range: every
// address the bus forwards to a device must produce a byte on read and
// accept a byte on write, even if the write is discarded.
type Device interface {
	Read(addr uint16) byte
	Write(addr uint16, value byte)
}

// RAM is a fixed-capacity, byte-addressable, always-writable backing
// store.
type RAM struct {
	mem [ramSize]byte
}

func NewRAM() *RAM { return &RAM{} }

func (r *RAM) Read(addr uint16) byte        { return r.mem[addr] }
func (r *RAM) Write(addr uint16, v byte)    { r.mem[addr] = v }
func (r *RAM) Reset()                        { r.mem = [ramSize]byte{} }

// ROM is zero-initialized, bulk-loaded by the host before the CPU's first
// cycle, and silently discards writes thereafter.
type ROM struct {
	mem [romSize]byte
}

func NewROM() *ROM { return &ROM{} }

func (r *ROM) Read(addr uint16) byte { return r.mem[addr] }
func (r *ROM) Write(uint16, byte)    {}

// Load bulk-copies data into the ROM starting at local offset 0. The host
// is responsible for placing vector bytes (RES/NMI/IRQ) at their correct
// offsets within data.
func (r *ROM) Load(data []byte) {
	n := copy(r.mem[:], data)
	_ = n
}

// Bus resolves a 16-bit address to exactly one of RAM, I/O, or ROM and
// fans interrupt-line assertions from peripherals back toward the CPU.
// Address resolution needs no lock: the three regions are disjoint and
// fixed at construction. Individual devices are responsible for their
// own internal synchronization (the I/O controller's register file is
// guarded by a mutex; RAM/ROM are single-writer from the CPU side).
type Bus struct {
	ram *RAM
	io  Device
	rom *ROM

	irqPending atomic.Bool
	nmiPending atomic.Bool
	resPending atomic.Bool
}

func NewBus(ram *RAM, io Device, rom *ROM) *Bus {
	return &Bus{ram: ram, io: io, rom: rom}
}

// resolve returns the device owning addr and the address translated to
// that device's local offset.
func (b *Bus) resolve(addr uint16) (Device, uint16) {
	switch {
	case addr < ioStart:
		return b.ram, addr - ramStart
	case addr < romStart:
		return b.io, addr - ioStart
	default:
		return b.rom, addr - romStart
	}
}

func (b *Bus) ReadByte(addr uint16) byte {
	dev, local := b.resolve(addr)
	return dev.Read(local)
}

func (b *Bus) WriteByte(addr uint16, v byte) {
	dev, local := b.resolve(addr)
	dev.Write(local, v)
}

// ReadWord performs two independent byte reads at a and a+1,
// little-endian.
func (b *Bus) ReadWord(addr uint16) uint16 {
	lo := b.ReadByte(addr)
	hi := b.ReadByte(addr + 1)
	return uint16(lo) | uint16(hi)<<8
}

// WriteWord writes the low byte then the high byte.
func (b *Bus) WriteWord(addr uint16, v uint16) {
	b.WriteByte(addr, byte(v))
	b.WriteByte(addr+1, byte(v>>8))
}

// AssertIRQ, AssertNMI, AssertRES are called by peripheral tasks; each is
// idempotent between services (multiple asserts before the CPU services
// the line collapse into one pending request).
func (b *Bus) AssertIRQ() { b.irqPending.Store(true) }
func (b *Bus) AssertNMI() { b.nmiPending.Store(true) }
func (b *Bus) AssertRES() { b.resPending.Store(true) }

func (b *Bus) takeIRQ() bool { return b.irqPending.CompareAndSwap(true, false) }
func (b *Bus) takeNMI() bool { return b.nmiPending.CompareAndSwap(true, false) }
func (b *Bus) takeRES() bool { return b.resPending.CompareAndSwap(true, false) }
