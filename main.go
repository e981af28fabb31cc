// main.go - command-line entry point

package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

func main() {
	app := &cli.App{
		Name:  "sixtyfiveemu",
		Usage: "run a MOS 6502 core against a ROM image",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "rom", Required: true, Usage: "path to the ROM image to load into the ROM window"},
			&cli.StringFlag{Name: "load-addr", Usage: "bus address to load the ROM image at (default 0x4920, the start of the ROM window)"},
			&cli.StringFlag{Name: "entry", Usage: "override the RESET vector to this address, for images with no embedded vector"},
			&cli.BoolFlag{Name: "headless", Usage: "run without an ebiten window or oto audio backend"},
			&cli.BoolFlag{Name: "debug", Usage: "print a register dump once a second while the core runs"},
			&cli.DurationFlag{Name: "run-for", Value: 0, Usage: "stop after this duration (0 = run until illegal opcode)"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// parseAddr accepts both hex ("0x4920") and decimal address strings.
func parseAddr(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return uint16(v), nil
}

func run(c *cli.Context) error {
	var renderer Renderer
	var audio AudioSink
	if c.Bool("headless") {
		renderer = NewHeadlessRenderer()
		audio = NewHeadlessAudioSink()
	} else {
		renderer = newEbitenRenderer()
		audio = newOtoAudioSink()
	}

	sys := NewSystem(renderer, audio, nil)

	// The real ebiten window posts keyboard activity through the same
	// EventSource the headless/test backends never need.
	if er, ok := renderer.(interface{ AttachEventSource(EventSource) }); ok {
		er.AttachEventSource(sys.IO)
	}

	if addr := c.String("load-addr"); addr != "" {
		loadAddr, err := parseAddr(addr)
		if err != nil {
			return err
		}
		if err := sys.LoadROMFileAt(c.String("rom"), loadAddr); err != nil {
			return err
		}
	} else if err := sys.LoadROMFile(c.String("rom")); err != nil {
		return err
	}

	if entry := c.String("entry"); entry != "" {
		entryAddr, err := parseAddr(entry)
		if err != nil {
			return err
		}
		sys.SetEntry(entryAddr)
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Printf("sixtyfiveemu: loaded %s, starting core\n", c.String("rom"))
	}

	sys.Start()
	defer sys.Stop()

	if c.Bool("debug") {
		go debugDumpLoop(sys)
	}

	if d := c.Duration("run-for"); d > 0 {
		time.Sleep(d)
		return nil
	}

	for !sys.CPU.Illegal() {
		time.Sleep(10 * time.Millisecond)
	}
	sys.CPU.DumpState(os.Stdout)
	return nil
}

// debugDumpLoop prints a register snapshot once a second; it never runs
// on the CPU's hot fetch/decode/execute path.
func debugDumpLoop(sys *System) {
	for sys.CPU.Running() && !sys.CPU.Illegal() {
		time.Sleep(time.Second)
		sys.CPU.DumpState(os.Stderr)
	}
}
