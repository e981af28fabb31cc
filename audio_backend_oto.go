//go:build !headless

// audio_backend_oto.go - oto-backed synthesis for the three audio channels

package main

import (
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
)

const otoSampleRate = 44100

// OtoAudioSink streams the three decoded channel configurations through
// an oto player, synthesizing each channel's waveform in Read the way
// an oto-backed player pulls samples on demand rather than pushing a
// precomputed buffer.
type OtoAudioSink struct {
	mu       sync.Mutex
	channels [3]AudioChannelConfig
	phase    [3]float64

	ctx    *oto.Context
	player *oto.Player
}

func newOtoAudioSink() AudioSink {
	op := &oto.NewContextOptions{
		SampleRate:   otoSampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   4,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		logErrorf("oto init failed, falling back to headless audio: %v", err)
		return NewHeadlessAudioSink()
	}
	<-ready

	s := &OtoAudioSink{ctx: ctx}
	s.player = ctx.NewPlayer(s)
	s.player.Play()
	return s
}

func (s *OtoAudioSink) SetChannel(channel int, cfg AudioChannelConfig) {
	if channel < 0 || channel >= len(s.channels) {
		return
	}
	s.mu.Lock()
	s.channels[channel] = cfg
	s.mu.Unlock()
}

// Read synthesizes the next chunk of samples on demand, mixing every
// unpaused channel's waveform at its decoded pitch and volume.
func (s *OtoAudioSink) Read(p []byte) (int, error) {
	n := len(p) / 4
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < n; i++ {
		var mix float32
		for ch := range s.channels {
			cfg := s.channels[ch]
			if cfg.Paused || cfg.Volume == 0 {
				continue
			}
			freq := 110.0 * cfg.Pitch
			s.phase[ch] += freq / otoSampleRate
			if s.phase[ch] >= 1 {
				s.phase[ch]--
			}
			mix += float32(waveSample(cfg.Wave, s.phase[ch]) * float64(cfg.Volume) / 100.0 / 3.0)
		}
		putFloat32LE(p[i*4:i*4+4], mix)
	}
	return len(p), nil
}

func waveSample(w Waveform, phase float64) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2*phase - 1
	case WaveTriangle:
		return 4*math.Abs(phase-0.5) - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

func putFloat32LE(b []byte, v float32) {
	bits := math.Float32bits(v)
	b[0] = byte(bits)
	b[1] = byte(bits >> 8)
	b[2] = byte(bits >> 16)
	b[3] = byte(bits >> 24)
}
