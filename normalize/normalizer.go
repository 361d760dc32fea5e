// SPDX-License-Identifier: EPL-2.0

// Package normalize turns an arbitrary audio file into the float samples a
// speech recognizer expects: mono, 16 kHz, each value in [-1,1].
//
// Every call transcodes into its own uniquely named temporary canonical
// container, reads it back, and removes it before returning, whatever the
// outcome.
package normalize

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/ik5/pcmscribe/formats/wav"
	"github.com/ik5/pcmscribe/transcode"
	"github.com/sirupsen/logrus"
)

const tempPrefix = "pcmscribe-"

// Result is the outcome of an asynchronous normalization. Exactly one of
// Samples and Err is meaningful.
type Result struct {
	Samples []float32
	Err     error
}

// Normalizer converts audio files to canonical samples through a
// Transcoder. It is safe for concurrent use.
type Normalizer struct {
	transcoder transcode.Transcoder
	tempDir    string
	log        logrus.FieldLogger

	remove func(string) error
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithTempDir places temporary containers in dir instead of os.TempDir().
func WithTempDir(dir string) Option {
	return func(n *Normalizer) { n.tempDir = dir }
}

// WithLogger sets the logger for cleanup warnings and debug output.
func WithLogger(log logrus.FieldLogger) Option {
	return func(n *Normalizer) { n.log = log }
}

// New returns a Normalizer using tr. Logging defaults to the logrus
// standard logger.
func New(tr transcode.Transcoder, opts ...Option) *Normalizer {
	n := &Normalizer{
		transcoder: tr,
		log:        logrus.StandardLogger(),
		remove:     os.Remove,
	}

	for _, opt := range opts {
		opt(n)
	}

	return n
}

func (n *Normalizer) tempPath() string {
	dir := n.tempDir
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, tempPrefix+uuid.NewString()+".wav")
}

// Normalize transcodes inputPath to the canonical container and returns its
// samples. Errors match ErrTranscode or ErrRead with errors.Is; samples are
// never returned together with an error.
//
// The call blocks until the transcoder reports completion, even when ctx is
// cancelled, so the temporary container is never removed while still being
// written.
func (n *Normalizer) Normalize(ctx context.Context, inputPath string) ([]float32, error) {
	if inputPath == "" {
		return nil, fmt.Errorf("%w: %w", ErrTranscode, ErrNoInput)
	}

	tmp := n.tempPath()
	log := n.log.WithFields(logrus.Fields{"input": inputPath, "temp": tmp})
	defer n.cleanup(log, tmp)

	err, ok := <-n.transcoder.Transcode(ctx, inputPath, tmp)
	if !ok {
		err = ErrNoCompletion
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTranscode, err)
	}

	data, err := os.ReadFile(tmp)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}

	samples, err := wav.DecodeCanonical(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}

	log.WithField("samples", len(samples)).Debug("audio normalized")

	return samples, nil
}

// NormalizeAsync runs Normalize on its own goroutine. The returned channel
// receives exactly one Result and is then closed.
func (n *Normalizer) NormalizeAsync(ctx context.Context, inputPath string) <-chan Result {
	done := make(chan Result, 1)

	go func() {
		defer close(done)

		samples, err := n.Normalize(ctx, inputPath)
		done <- Result{Samples: samples, Err: err}
	}()

	return done
}

// cleanup removes the temporary container. A container that was never
// created is not an error; any other failure is logged and swallowed.
func (n *Normalizer) cleanup(log logrus.FieldLogger, path string) {
	err := n.remove(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return
	}

	log.WithError(&CleanupError{Path: path, Err: err}).Warn("temporary container left behind")
}
