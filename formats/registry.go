// SPDX-License-Identifier: EPL-2.0

// Package formats wires the individual decoders into an audio.Registry.
package formats

import (
	"github.com/ik5/pcmscribe/audio"
	"github.com/ik5/pcmscribe/formats/aiff"
	"github.com/ik5/pcmscribe/formats/mp3"
	"github.com/ik5/pcmscribe/formats/vorbis"
	"github.com/ik5/pcmscribe/formats/wav"
)

// DefaultRegistry returns a registry keyed by file extension covering every
// bundled decoder.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()

	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})

	return reg
}
