// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds test doubles shared across packages: synthetic
// sample sources and byte-level WAV builders. It does not import the audio
// package, so any package may use it from tests.
package audiotest

import (
	"io"
	"math"
)

// MockSource generates totalSamples frames from a waveform function.
type MockSource struct {
	sampleRate   int
	channels     int
	totalSamples int
	generated    int
	waveform     func(sample int, channel int) float32
}

func NewMockSource(sampleRate, channels, totalSamples int, waveform func(sample int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		totalSamples: totalSamples,
		waveform:     waveform,
	}
}

func NewSilentSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewConstantSource(sampleRate, channels, totalSamples, 0)
}

func NewSineSource(sampleRate, channels, totalSamples int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, _ int) float32 {
		t := float64(sample) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

func NewConstantSource(sampleRate, channels, totalSamples int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(int, int) float32 {
		return value
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }
func (m *MockSource) Close() error    { return nil }

// Reset rewinds the source to its first frame.
func (m *MockSource) Reset() { m.generated = 0 }

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.totalSamples {
		return 0, io.EOF
	}

	frames := min(len(dst)/m.channels, m.totalSamples-m.generated)
	for f := range frames {
		for ch := range m.channels {
			dst[f*m.channels+ch] = m.waveform(m.generated+f, ch)
		}
	}

	m.generated += frames
	if m.generated >= m.totalSamples {
		return frames * m.channels, io.EOF
	}

	return frames * m.channels, nil
}

// StalledSource never produces data and never reports EOF.
type StalledSource struct {
	Rate int
}

func (s *StalledSource) SampleRate() int                    { return s.Rate }
func (s *StalledSource) Channels() int                      { return 1 }
func (s *StalledSource) BufSize() int                       { return 64 }
func (s *StalledSource) Close() error                       { return nil }
func (s *StalledSource) ReadSamples([]float32) (int, error) { return 0, nil }

// FailingSource returns Err from every read.
type FailingSource struct {
	Rate int
	Err  error
}

func (s *FailingSource) SampleRate() int                    { return s.Rate }
func (s *FailingSource) Channels() int                      { return 1 }
func (s *FailingSource) BufSize() int                       { return 64 }
func (s *FailingSource) Close() error                       { return nil }
func (s *FailingSource) ReadSamples([]float32) (int, error) { return 0, s.Err }
