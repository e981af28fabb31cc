//go:build headless

// headless_stub.go - stand-ins for the windowing/audio backends when
// built with -tags headless (no ebiten/oto dependency pulled in)

package main

func newEbitenRenderer() Renderer  { return NewHeadlessRenderer() }
func newOtoAudioSink() AudioSink   { return NewHeadlessAudioSink() }
