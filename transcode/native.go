// SPDX-License-Identifier: EPL-2.0

package transcode

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ik5/pcmscribe/audio"
	"github.com/ik5/pcmscribe/formats/wav"
	"github.com/sirupsen/logrus"
)

// Native transcodes in-process: decoder lookup by extension, cubic resample
// to 16 kHz, channel averaging, then the canonical writer.
type Native struct {
	registry *audio.Registry
	bufSize  int
	log      logrus.FieldLogger
}

// NewNative returns a transcoder decoding with reg. A nil log uses the
// logrus standard logger.
func NewNative(reg *audio.Registry, log logrus.FieldLogger) *Native {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Native{registry: reg, bufSize: 4096, log: log}
}

func (n *Native) Transcode(ctx context.Context, inputPath, outputPath string) <-chan error {
	return Go(func() error { return n.transcode(ctx, inputPath, outputPath) })
}

func (n *Native) transcode(ctx context.Context, inputPath, outputPath string) error {
	dec, err := n.registry.Lookup(inputPath)
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrUnsupportedInput, filepath.Ext(inputPath), err)
	}

	in, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	// *os.File is an io.ReadSeeker, so RIFF/AIFF decoders seek in place
	// instead of buffering the whole input.
	src, err := dec.Decode(in)
	if err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(inputPath), err)
	}
	defer src.Close()

	n.log.WithFields(logrus.Fields{
		"input":    inputPath,
		"rate":     src.SampleRate(),
		"channels": src.Channels(),
	}).Debug("decoding input")

	pcm, _, err := audio.ResampleToMono16(&ctxSource{ctx: ctx, Source: src}, wav.CanonicalRate, n.bufSize)
	if err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(inputPath), err)
	}

	if err := writeCanonicalFile(outputPath, pcm); err != nil {
		return err
	}

	n.log.WithFields(logrus.Fields{
		"output":  outputPath,
		"samples": len(pcm),
	}).Debug("canonical container written")

	return nil
}

func writeCanonicalFile(path string, pcm []int16) error {
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	bw := bufio.NewWriterSize(out, 64*1024)
	if err := wav.WriteCanonical(bw, pcm); err != nil {
		out.Close()
		return fmt.Errorf("write output: %w", err)
	}
	if err := bw.Flush(); err != nil {
		out.Close()
		return fmt.Errorf("write output: %w", err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	return nil
}

// ctxSource stops a decode once ctx is done.
type ctxSource struct {
	ctx context.Context
	audio.Source
}

func (s *ctxSource) ReadSamples(dst []float32) (int, error) {
	if err := s.ctx.Err(); err != nil {
		return 0, err
	}
	return s.Source.ReadSamples(dst)
}
