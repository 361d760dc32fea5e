// SPDX-License-Identifier: EPL-2.0

// Package recognize defines the speech recognizer boundary: canonical float
// samples in, time-stamped text segments out.
package recognize

import "context"

// Segment is one span of recognized text. Start and End are centiseconds
// from the beginning of the audio.
type Segment struct {
	Start int
	End   int
	Text  string
}

// Result is the outcome of one recognition request.
type Result struct {
	Segments []Segment
	Err      error
}

// Recognizer transcribes mono 16 kHz samples in [-1,1].
//
// Transcribe returns immediately. The channel receives exactly one Result,
// with segments in chronological order, and is then closed.
type Recognizer interface {
	Transcribe(ctx context.Context, samples []float32) <-chan Result
}

// Func adapts a blocking function into a Recognizer.
type Func func(ctx context.Context, samples []float32) ([]Segment, error)

func (f Func) Transcribe(ctx context.Context, samples []float32) <-chan Result {
	done := make(chan Result, 1)

	go func() {
		defer close(done)

		segs, err := f(ctx, samples)
		if err != nil {
			done <- Result{Err: err}
			return
		}
		done <- Result{Segments: segs}
	}()

	return done
}
