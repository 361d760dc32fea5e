// SPDX-License-Identifier: EPL-2.0

package recognize

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/google/uuid"
	"github.com/ik5/pcmscribe/utils"
	"github.com/sirupsen/logrus"
)

const (
	whisperRate = 16000
	msPerCS     = 10
)

// WhisperConfig configures the whisper.cpp command line recognizer.
type WhisperConfig struct {
	// Binary is the whisper.cpp CLI ("whisper-cli" when empty).
	Binary string
	// Model is the ggml model file, e.g. models/ggml-tiny.en.bin.
	Model string
	// Language code, or "auto". Empty leaves the CLI default.
	Language string
	// Threads passed as -t; 0 leaves the CLI default.
	Threads int
	// MaxLen passed as -ml. 1 yields one token per segment.
	MaxLen int
	// TempDir holds the hand-off WAV and JSON; empty means os.TempDir().
	TempDir string
}

// WhisperCPP runs the whisper.cpp CLI on a temporary 16 kHz WAV and reads
// its JSON output.
type WhisperCPP struct {
	cfg WhisperConfig
	log logrus.FieldLogger
}

// NewWhisperCPP returns a recognizer for cfg. A nil log uses the logrus
// standard logger.
func NewWhisperCPP(cfg WhisperConfig, log logrus.FieldLogger) *WhisperCPP {
	if cfg.Binary == "" {
		cfg.Binary = "whisper-cli"
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &WhisperCPP{cfg: cfg, log: log}
}

func (w *WhisperCPP) Transcribe(ctx context.Context, samples []float32) <-chan Result {
	return Func(w.transcribe).Transcribe(ctx, samples)
}

func (w *WhisperCPP) args(wavPath, outBase string) []string {
	args := []string{"-m", w.cfg.Model, "-f", wavPath, "-oj", "-of", outBase, "-np"}

	if w.cfg.Language != "" {
		args = append(args, "-l", w.cfg.Language)
	}
	if w.cfg.Threads > 0 {
		args = append(args, "-t", strconv.Itoa(w.cfg.Threads))
	}
	if w.cfg.MaxLen > 0 {
		args = append(args, "-ml", strconv.Itoa(w.cfg.MaxLen))
	}

	return args
}

func (w *WhisperCPP) transcribe(ctx context.Context, samples []float32) ([]Segment, error) {
	if w.cfg.Model == "" {
		return nil, ErrNoModel
	}
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}

	dir := w.cfg.TempDir
	if dir == "" {
		dir = os.TempDir()
	}
	base := filepath.Join(dir, "pcmscribe-whisper-"+uuid.NewString())
	wavPath, jsonPath := base+".wav", base+".json"

	log := w.log.WithFields(logrus.Fields{"wav": wavPath, "samples": len(samples)})
	defer w.removeAll(log, wavPath, jsonPath)

	if err := writeWAV(wavPath, samples); err != nil {
		return nil, err
	}

	bin, err := exec.LookPath(w.cfg.Binary)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWhisperFailed, err)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, w.args(wavPath, base)...)
	cmd.Stderr = &stderr

	log.WithField("cmd", cmd.String()).Debug("running whisper.cpp")

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%w: %w: %s", ErrWhisperFailed, err, lastLine(stderr.String()))
	}

	f, err := os.Open(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadOutput, err)
	}
	defer f.Close()

	return parseWhisperJSON(f)
}

func (w *WhisperCPP) removeAll(log logrus.FieldLogger, paths ...string) {
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.WithError(err).WithField("path", p).Warn("temporary file left behind")
		}
	}
}

// writeWAV stores samples as mono 16 kHz 16-bit PCM through the go-audio
// encoder.
func writeWAV(path string, samples []float32) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create whisper input: %w", err)
	}

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(utils.Float32ToInt16(s))
	}

	enc := gowav.NewEncoder(f, whisperRate, 16, 1, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: whisperRate},
		Data:           data,
		SourceBitDepth: 16,
	}

	if err := enc.Write(buf); err != nil {
		f.Close()
		return fmt.Errorf("write whisper input: %w", err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("write whisper input: %w", err)
	}

	return f.Close()
}

type whisperOutput struct {
	Transcription []struct {
		Offsets struct {
			From int `json:"from"`
			To   int `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

// parseWhisperJSON converts the -oj output into segments. whisper.cpp
// reports offsets in milliseconds; segments carry centiseconds.
func parseWhisperJSON(r io.Reader) ([]Segment, error) {
	var out whisperOutput
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadOutput, err)
	}

	segs := make([]Segment, 0, len(out.Transcription))
	for _, t := range out.Transcription {
		segs = append(segs, Segment{
			Start: t.Offsets.From / msPerCS,
			End:   t.Offsets.To / msPerCS,
			Text:  t.Text,
		})
	}

	return segs, nil
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
