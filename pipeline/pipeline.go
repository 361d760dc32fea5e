// SPDX-License-Identifier: EPL-2.0

// Package pipeline wires normalization, recognition and transcript output
// into a single transcription request.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/ik5/pcmscribe/recognize"
	"github.com/sirupsen/logrus"
)

var (
	ErrConvert    = errors.New("converting audio")
	ErrTranscribe = errors.New("transcribing")
)

// Normalizer produces canonical samples for an input file.
type Normalizer interface {
	Normalize(ctx context.Context, inputPath string) ([]float32, error)
}

// SegmentWriter receives the recognized segments of one file.
type SegmentWriter interface {
	Write(segs []recognize.Segment) error
}

type Pipeline struct {
	Normalizer Normalizer
	Recognizer recognize.Recognizer
	Writer     SegmentWriter
	Log        logrus.FieldLogger
}

func (p *Pipeline) logger() logrus.FieldLogger {
	if p.Log == nil {
		return logrus.StandardLogger()
	}
	return p.Log
}

// Run normalizes inputPath, transcribes it and writes the segments. When
// either stage fails nothing is written; the failure is logged and returned
// wrapped in ErrConvert or ErrTranscribe.
func (p *Pipeline) Run(ctx context.Context, inputPath string) error {
	log := p.logger().WithField("input", inputPath)

	samples, err := p.Normalizer.Normalize(ctx, inputPath)
	if err != nil {
		log.WithError(err).Error("error converting audio")
		return fmt.Errorf("%w: %w", ErrConvert, err)
	}
	log.WithField("samples", len(samples)).Debug("audio converted")

	res, ok := <-p.Recognizer.Transcribe(ctx, samples)
	if !ok {
		res.Err = recognize.ErrNoCompletion
	}
	if res.Err != nil {
		log.WithError(res.Err).Error("error transcribing")
		return fmt.Errorf("%w: %w", ErrTranscribe, res.Err)
	}
	log.WithField("segments", len(res.Segments)).Debug("transcription complete")

	if err := p.Writer.Write(res.Segments); err != nil {
		return fmt.Errorf("writing transcript: %w", err)
	}

	return nil
}

// RunAll runs every path in order, carrying on past failures. The returned
// error joins each failure, prefixed with its path. A cancelled context
// stops before the next file.
func (p *Pipeline) RunAll(ctx context.Context, paths []string) error {
	var errs []error

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := p.Run(ctx, path); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
		}
	}

	return errors.Join(errs...)
}
