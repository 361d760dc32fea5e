// SPDX-License-Identifier: EPL-2.0

// Package transcode converts arbitrary audio files into the canonical
// container (mono, 16 kHz, signed 16-bit little-endian, 44-byte header).
//
// Transcoding is asynchronous: Transcode returns at once with a completion
// channel. The channel is buffered, receives exactly one value (nil on
// success), and is then closed. Cancellation belongs to the caller through
// the context.
package transcode

import (
	"context"
	"fmt"
	"strings"

	"github.com/ik5/pcmscribe/audio"
	"github.com/sirupsen/logrus"
)

const (
	KindNative = "native"
	KindFFmpeg = "ffmpeg"
)

// Transcoder writes the canonical form of inputPath to outputPath.
type Transcoder interface {
	Transcode(ctx context.Context, inputPath, outputPath string) <-chan error
}

// Func adapts a blocking function into a Transcoder.
type Func func(ctx context.Context, inputPath, outputPath string) error

func (f Func) Transcode(ctx context.Context, inputPath, outputPath string) <-chan error {
	return Go(func() error { return f(ctx, inputPath, outputPath) })
}

// Go runs fn on a new goroutine and delivers its result on a channel that
// receives exactly one value and is then closed.
func Go(fn func() error) <-chan error {
	done := make(chan error, 1)

	go func() {
		defer close(done)
		done <- fn()
	}()

	return done
}

// Options configures New.
type Options struct {
	// Registry is used by the native transcoder. Nil means no formats.
	Registry *audio.Registry
	// FFmpegPath is the ffmpeg binary; empty means "ffmpeg" from PATH.
	FFmpegPath string
	Log        logrus.FieldLogger
}

// New builds the transcoder named by kind ("native" or "ffmpeg").
// An empty kind selects native.
func New(kind string, opts Options) (Transcoder, error) {
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", KindNative:
		reg := opts.Registry
		if reg == nil {
			reg = audio.NewRegistry()
		}
		return NewNative(reg, log), nil
	case KindFFmpeg:
		return NewFFmpeg(opts.FFmpegPath, log), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTranscoder, kind)
	}
}
