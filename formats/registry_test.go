// SPDX-License-Identifier: EPL-2.0

package formats

import (
	"errors"
	"slices"
	"testing"

	"github.com/ik5/pcmscribe/audio"
	"github.com/ik5/pcmscribe/formats/wav"
)

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	reg := DefaultRegistry()

	got := reg.Formats()
	slices.Sort(got)
	want := []string{"aif", "aiff", "mp3", "oga", "ogg", "wav", "wave"}
	if !slices.Equal(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}

	d, err := reg.Lookup("/music/Interview.WAV")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if _, ok := d.(wav.Decoder); !ok {
		t.Errorf("Lookup(.WAV) = %T, want wav.Decoder", d)
	}

	if _, err := reg.Lookup("clip.flac"); !errors.Is(err, audio.ErrUnknownFormat) {
		t.Errorf("Lookup(.flac) error = %v, want ErrUnknownFormat", err)
	}
}
