// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/ik5/pcmscribe/internal/audiotest"
	"github.com/ik5/pcmscribe/normalize"
	"github.com/ik5/pcmscribe/recognize"
	"github.com/ik5/pcmscribe/transcode"
	"github.com/ik5/pcmscribe/transcript"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

// canonicalTranscoder writes a fixed three-sample container for every input
// except "broken", which fails.
var canonicalTranscoder = transcode.Func(func(_ context.Context, in, out string) error {
	if strings.HasSuffix(in, "broken") {
		return errors.New("no decoder for input")
	}
	return os.WriteFile(out, audiotest.CanonicalContainer([]int16{0, 32767, -32768}), 0o600)
})

var echoRecognizer = recognize.Func(func(_ context.Context, samples []float32) ([]recognize.Segment, error) {
	return []recognize.Segment{
		{Start: 0, End: 150, Text: " first"},
		{Start: 150, End: 6123, Text: " second"},
	}, nil
})

func newPipeline(t *testing.T, rec recognize.Recognizer) (*Pipeline, *bytes.Buffer, *logtest.Hook) {
	t.Helper()

	log, hook := logtest.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	var out bytes.Buffer
	w, err := transcript.NewWriter(&out, transcript.Options{})
	if err != nil {
		t.Fatal(err)
	}

	return &Pipeline{
		Normalizer: normalize.New(canonicalTranscoder, normalize.WithTempDir(t.TempDir()), normalize.WithLogger(log)),
		Recognizer: rec,
		Writer:     w,
		Log:        log,
	}, &out, hook
}

func TestRun_WritesLines(t *testing.T) {
	t.Parallel()

	var got []float32
	rec := recognize.Func(func(ctx context.Context, samples []float32) ([]recognize.Segment, error) {
		got = samples
		return echoRecognizer(ctx, samples)
	})

	p, out, _ := newPipeline(t, rec)
	if err := p.Run(context.Background(), "speech.m4a"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(got) != 3 || got[1] != 1 || got[2] != -1 {
		t.Errorf("recognizer got samples %v", got)
	}

	want := "[00:00.000 -> 00:01.500]  first\n[00:01.500 -> 01:01.230]  second\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestRun_ConvertFailure(t *testing.T) {
	t.Parallel()

	called := false
	rec := recognize.Func(func(context.Context, []float32) ([]recognize.Segment, error) {
		called = true
		return nil, nil
	})

	p, out, hook := newPipeline(t, rec)
	err := p.Run(context.Background(), "broken")
	if !errors.Is(err, ErrConvert) || !errors.Is(err, normalize.ErrTranscode) {
		t.Fatalf("Run() error = %v, want ErrConvert wrapping ErrTranscode", err)
	}
	if called {
		t.Error("recognizer ran after conversion failed")
	}
	if out.Len() != 0 {
		t.Errorf("lines written on failure: %q", out.String())
	}

	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.ErrorLevel || !strings.Contains(entry.Message, "converting audio") {
		t.Errorf("diagnostic = %+v", entry)
	}
}

func TestRun_TranscribeFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("model missing")
	p, out, hook := newPipeline(t, recognize.Func(func(context.Context, []float32) ([]recognize.Segment, error) {
		return nil, boom
	}))

	err := p.Run(context.Background(), "speech.wav")
	if !errors.Is(err, ErrTranscribe) || !errors.Is(err, boom) {
		t.Fatalf("Run() error = %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("lines written on failure: %q", out.String())
	}
	if e := hook.LastEntry(); e == nil || !strings.Contains(e.Message, "transcribing") {
		t.Errorf("diagnostic = %+v", e)
	}
}

type closedRecognizer struct{}

func (closedRecognizer) Transcribe(context.Context, []float32) <-chan recognize.Result {
	ch := make(chan recognize.Result)
	close(ch)
	return ch
}

func TestRun_RecognizerClosesWithoutResult(t *testing.T) {
	t.Parallel()

	p, _, _ := newPipeline(t, closedRecognizer{})
	if err := p.Run(context.Background(), "a.wav"); !errors.Is(err, recognize.ErrNoCompletion) {
		t.Errorf("Run() error = %v, want ErrNoCompletion", err)
	}
}

func TestRunAll_ContinuesPastFailures(t *testing.T) {
	t.Parallel()

	p, out, _ := newPipeline(t, echoRecognizer)
	err := p.RunAll(context.Background(), []string{"one.wav", "broken", "two.wav"})
	if err == nil || !strings.Contains(err.Error(), "broken: converting audio") {
		t.Fatalf("RunAll() error = %v", err)
	}

	if n := strings.Count(out.String(), "\n"); n != 4 {
		t.Errorf("wrote %d lines, want 4 (two files)", n)
	}
}

func TestRunAll_StopsOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p, out, _ := newPipeline(t, echoRecognizer)
	if err := p.RunAll(ctx, []string{"one.wav"}); !errors.Is(err, context.Canceled) {
		t.Errorf("RunAll() error = %v, want context.Canceled", err)
	}
	if out.Len() != 0 {
		t.Errorf("output after cancel: %q", out.String())
	}
}
