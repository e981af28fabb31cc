// system.go - wires RAM, ROM, the I/O controller, and the CPU onto one Bus

package main

import (
	"fmt"
	"os"
)

// System is the assembled microcontroller: one Bus with RAM at
// [0x0000, 0x4000), the I/O controller at [0x4000, 0x4920), and ROM at
// [0x4920, 0x10000).
type System struct {
	RAM *RAM
	ROM *ROM
	IO  *IOController
	Bus *Bus
	CPU *CPU
}

// NewSystem assembles the bus and CPU. renderer/audio/clock may be nil,
// in which case headless/real-time defaults are used (see
// NewIOController).
func NewSystem(renderer Renderer, audio AudioSink, clock Clock) *System {
	ram := NewRAM()
	rom := NewROM()
	bus := NewBus(ram, nil, rom)
	io := NewIOController(bus, renderer, audio, clock)
	bus.io = io
	cpu := NewCPU(bus)
	return &System{RAM: ram, ROM: rom, IO: io, Bus: bus, CPU: cpu}
}

// LoadROM bulk-loads data into the ROM region starting at local offset
// 0 (bus address romStart). The host is responsible for placing the
// RES/NMI/IRQ vector bytes at their correct offsets within data; the
// loader does not rewrite them.
func (s *System) LoadROM(data []byte) {
	s.ROM.Load(data)
}

// LoadROMFile reads a file from disk and loads it as the ROM image.
func (s *System) LoadROMFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load rom %s: %w", path, err)
	}
	s.LoadROM(data)
	return nil
}

// LoadROMAt loads data into the ROM region starting at bus address addr
// rather than the region's base (romStart), for images smaller than the
// full ROM window or linked to load partway into it.
func (s *System) LoadROMAt(data []byte, addr uint16) error {
	if addr < romStart {
		return fmt.Errorf("load address 0x%04X is below the ROM window (0x%04X)", addr, romStart)
	}
	offset := int(addr - romStart)
	if offset+len(data) > romSize {
		return fmt.Errorf("rom image of %d bytes at 0x%04X overruns the ROM window", len(data), addr)
	}
	buf := make([]byte, romSize)
	copy(buf[offset:], data)
	s.ROM.Load(buf)
	return nil
}

// LoadROMFileAt is LoadROMFile with an explicit load address.
func (s *System) LoadROMFileAt(path string, addr uint16) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load rom %s: %w", path, err)
	}
	return s.LoadROMAt(data, addr)
}

// SetEntry overrides the RESET vector to point at addr, for ROM images
// that do not embed their own reset vector at 0xFFFC/0xFFFD.
func (s *System) SetEntry(addr uint16) {
	s.ROM.mem[resetVector-romStart] = byte(addr)
	s.ROM.mem[resetVector+1-romStart] = byte(addr >> 8)
}

// Start asserts RES (so the CPU's first Step performs the documented
// reset), brings up the I/O controller's peripheral tasks, and launches
// the CPU thread.
func (s *System) Start() {
	s.Bus.AssertRES()
	s.IO.Start()
	go s.CPU.Run()
}

// Stop halts the CPU and joins every I/O controller peripheral task.
func (s *System) Stop() {
	s.CPU.Shutdown()
	s.IO.Stop()
}
