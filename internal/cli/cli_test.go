// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/ik5/pcmscribe/internal/audiotest"
	"github.com/ik5/pcmscribe/pipeline"
	"github.com/ik5/pcmscribe/recognize"
	"github.com/ik5/pcmscribe/transcode"
)

// oneSecond is a mono 16 kHz WAV holding 16000 samples at half scale.
func oneSecond(t *testing.T) string {
	t.Helper()

	pcm := make([]int16, 16000)
	for i := range pcm {
		pcm[i] = 16384
	}
	return audiotest.WriteFile(t, "speech.wav", audiotest.WAVFile(16000, 1, 16, audiotest.Int16Bytes(pcm)))
}

// run executes the root command with an empty config file so the caller's
// environment cannot point it elsewhere.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cfg := audiotest.WriteFile(t, "pcmscribe.yaml", nil)

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs(append([]string{"--config", cfg, "--log-level", "debug"}, args...))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestSamples(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	out, _, err := run(t, "samples", "--temp-dir", tmp, oneSecond(t))
	if err != nil {
		t.Fatalf("samples: %v", err)
	}

	for _, want := range []string{"samples:  16000\n", "duration: 1s\n", "peak:     0.5000\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q lacks %q", out, want)
		}
	}
	audiotest.AssertEmptyDir(t, tmp)
}

func TestConvert(t *testing.T) {
	t.Parallel()

	dst := filepath.Join(t.TempDir(), "out.wav")
	out, _, err := run(t, "convert", oneSecond(t), dst)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if !strings.Contains(out, "Wrote: "+dst) {
		t.Errorf("output = %q", out)
	}

	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != 44+2*16000 {
		t.Errorf("container is %d bytes, want %d", info.Size(), 44+2*16000)
	}
}

func TestConvert_UnknownFormat(t *testing.T) {
	t.Parallel()

	src := audiotest.WriteFile(t, "song.flac", []byte("fLaC"))
	_, _, err := run(t, "convert", src, filepath.Join(t.TempDir(), "out.wav"))
	if !errors.Is(err, transcode.ErrUnsupportedInput) {
		t.Errorf("convert flac error = %v, want ErrUnsupportedInput", err)
	}
}

func TestInvalidFlags(t *testing.T) {
	t.Parallel()

	_, _, err := run(t, "--transcoder", "sox", "samples", "x.wav")
	if err == nil || !strings.Contains(err.Error(), "sox") {
		t.Errorf("error = %v, want transcoder rejection", err)
	}

	_, _, err = run(t, "transcribe", "--format", "json", "x.wav")
	if err == nil || !strings.Contains(err.Error(), "json") {
		t.Errorf("error = %v, want format rejection", err)
	}
}

func TestTranscribe_NoModel(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	out, stderr, err := run(t, "transcribe", "--temp-dir", tmp, oneSecond(t))
	if !errors.Is(err, pipeline.ErrTranscribe) || !errors.Is(err, recognize.ErrNoModel) {
		t.Fatalf("error = %v, want ErrTranscribe wrapping ErrNoModel", err)
	}
	if out != "" {
		t.Errorf("lines written on failure: %q", out)
	}
	if !strings.Contains(stderr, "error transcribing") {
		t.Errorf("stderr lacks diagnostic: %q", stderr)
	}
	audiotest.AssertEmptyDir(t, tmp)
}

const whisperScript = `#!/bin/sh
while [ $# -gt 0 ]; do
  case "$1" in
    -of) out="$2"; shift ;;
  esac
  shift
done
cat > "$out.json" <<'JSON'
{"transcription": [
  {"offsets": {"from": 0, "to": 320}, "text": " And"},
  {"offsets": {"from": 320, "to": 61230}, "text": " so"}
]}
JSON
`

func TestTranscribe_EndToEnd(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake whisper.cpp is a shell script")
	}

	bin := filepath.Join(t.TempDir(), "whisper-cli")
	if err := os.WriteFile(bin, []byte(whisperScript), 0o755); err != nil {
		t.Fatal(err)
	}

	tmp := t.TempDir()
	dst := filepath.Join(t.TempDir(), "speech.txt")
	_, _, err := run(t, "transcribe",
		"--whisper-bin", bin, "--model", "ggml-tiny.en.bin",
		"--temp-dir", tmp, "-o", dst, oneSecond(t))
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	want := "[00:00.000 -> 00:00.320]  And\n[00:00.320 -> 01:01.230]  so\n"
	if string(got) != want {
		t.Errorf("transcript = %q, want %q", got, want)
	}
	audiotest.AssertEmptyDir(t, tmp)
}

type closer struct{ err error }

func (c closer) Close() error { return c.err }

func TestCloseOutput(t *testing.T) {
	t.Parallel()

	diskFull := errors.New("disk full")
	runFailed := errors.New("transcribing")

	tests := []struct {
		name   string
		c      io.Closer
		runErr error
		want   error
	}{
		{"stdout", nil, nil, nil},
		{"stdout run error", nil, runFailed, runFailed},
		{"file ok", closer{}, nil, nil},
		{"close error surfaces", closer{diskFull}, nil, diskFull},
		{"run error wins", closer{diskFull}, runFailed, runFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := closeOutput(tt.c, tt.runErr)
			if tt.want == nil {
				if err != nil {
					t.Errorf("closeOutput() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("closeOutput() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestTranscribe_VTTAcrossFiles(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake whisper.cpp is a shell script")
	}

	bin := filepath.Join(t.TempDir(), "whisper-cli")
	if err := os.WriteFile(bin, []byte(whisperScript), 0o755); err != nil {
		t.Fatal(err)
	}

	dst := filepath.Join(t.TempDir(), "speech.vtt")
	_, _, err := run(t, "transcribe", "--format", "vtt",
		"--whisper-bin", bin, "--model", "ggml-tiny.en.bin",
		"-o", dst, oneSecond(t), oneSecond(t))
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	out := string(got)
	if n := strings.Count(out, "WEBVTT"); n != 1 {
		t.Errorf("WEBVTT header appears %d times", n)
	}
	for _, cue := range []string{"\n1\n", "\n2\n", "\n3\n", "\n4\n"} {
		if !strings.Contains(out, cue) {
			t.Errorf("cue %q missing from %q", strings.TrimSpace(cue), out)
		}
	}
}
