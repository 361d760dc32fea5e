// SPDX-License-Identifier: EPL-2.0

package transcode

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

const stderrTail = 512

// FFmpeg transcodes by running the ffmpeg binary. It accepts anything ffmpeg
// can demux, including the audio track of video files.
type FFmpeg struct {
	binary string
	log    logrus.FieldLogger
}

// NewFFmpeg returns a transcoder running binary ("ffmpeg" when empty).
func NewFFmpeg(binary string, log logrus.FieldLogger) *FFmpeg {
	if binary == "" {
		binary = "ffmpeg"
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &FFmpeg{binary: binary, log: log}
}

// args builds the ffmpeg command line. The bitexact flags and dropped
// metadata keep ffmpeg from adding LIST chunks, so the header stays at 44
// bytes.
func (f *FFmpeg) args(inputPath, outputPath string) []string {
	return []string{
		"-nostdin", "-hide_banner", "-loglevel", "error",
		"-y", "-i", inputPath,
		"-vn", "-ac", "1", "-ar", "16000",
		"-c:a", "pcm_s16le",
		"-map_metadata", "-1",
		"-fflags", "+bitexact", "-flags:a", "+bitexact",
		"-f", "wav",
		outputPath,
	}
}

func (f *FFmpeg) Transcode(ctx context.Context, inputPath, outputPath string) <-chan error {
	return Go(func() error { return f.transcode(ctx, inputPath, outputPath) })
}

func (f *FFmpeg) transcode(ctx context.Context, inputPath, outputPath string) error {
	bin, err := exec.LookPath(f.binary)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFFmpegNotFound, err)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, f.args(inputPath, outputPath)...)
	cmd.Stderr = &stderr

	f.log.WithField("cmd", cmd.String()).Debug("running ffmpeg")

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if len(msg) > stderrTail {
			msg = "..." + msg[len(msg)-stderrTail:]
		}
		return fmt.Errorf("%w: %w: %s", ErrFFmpegFailed, err, msg)
	}

	return nil
}
