// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"math"
	"testing"

	"github.com/ik5/pcmscribe/internal/audiotest"
)

func TestMonoMixer_Averages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		value    func(sample, channel int) float32
		want     float32
	}{
		{
			name:     "stereo opposite phase cancels",
			channels: 2,
			value: func(_, ch int) float32 {
				if ch == 0 {
					return 0.5
				}
				return -0.5
			},
			want: 0,
		},
		{
			name:     "stereo left only halves",
			channels: 2,
			value: func(_, ch int) float32 {
				if ch == 0 {
					return 0.8
				}
				return 0
			},
			want: 0.4,
		},
		{
			name:     "5.1 constant",
			channels: 6,
			value:    func(_, _ int) float32 { return 0.3 },
			want:     0.3,
		},
		{
			name:     "three channels ramp",
			channels: 3,
			value:    func(_, ch int) float32 { return float32(ch) * 0.3 },
			want:     0.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewMockSource(16000, tt.channels, 100, tt.value)
			mono := NewMonoMixer(src)

			buf := make([]float32, 100)
			n, err := mono.ReadSamples(buf)
			if err != nil && err != io.EOF {
				t.Fatalf("ReadSamples() error = %v", err)
			}
			if n != 100 {
				t.Fatalf("ReadSamples() = %d frames, want 100", n)
			}

			for i := range n {
				if math.Abs(float64(buf[i]-tt.want)) > 1e-6 {
					t.Fatalf("frame %d = %v, want %v", i, buf[i], tt.want)
				}
			}
		})
	}
}

func TestMonoMixer_PassThrough(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(16000, 1, 10, 0.7)
	mono := NewMonoMixer(src)

	if mono.Channels() != 1 || mono.SampleRate() != 16000 {
		t.Fatalf("metadata = %d ch @ %d Hz", mono.Channels(), mono.SampleRate())
	}

	buf := make([]float32, 32)
	n, _ := mono.ReadSamples(buf)
	if n != 10 {
		t.Errorf("ReadSamples() = %d, want 10", n)
	}
}

func TestMonoMixer_EmptyDst(t *testing.T) {
	t.Parallel()

	mono := NewMonoMixer(audiotest.NewSilentSource(16000, 2, 10))
	if n, err := mono.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v", n, err)
	}
}

func TestMonoMixer_LargeDstGrowsBuffer(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(16000, 4, 20000, 0.1)
	mono := NewMonoMixer(src)

	buf := make([]float32, 20000)
	n, err := mono.ReadSamples(buf)
	if err != nil && err != io.EOF {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 20000 {
		t.Errorf("ReadSamples() = %d, want 20000", n)
	}
}
