// SPDX-License-Identifier: EPL-2.0

// Package wav decodes RIFF/WAVE input and owns the canonical container.
//
// # Decoding
//
// Decoder wraps github.com/go-audio/wav and yields an audio.Source of
// float32 samples in [-1,1]. Integer PCM at 8, 16, 24 and 32 bits is
// accepted; IEEE float and compressed WAV are rejected with
// ErrUnsupportedEncoding.
//
//	src, err := wav.Decoder{}.Decode(file)
//
// # Canonical container
//
// The canonical container is the hand-off format between transcoding and
// sample extraction: mono, 16 kHz, signed 16-bit little-endian, preceded by
// exactly HeaderSize (44) bytes.
//
//	wav.WriteCanonical(out, pcm16)
//	samples, err := wav.DecodeCanonical(data)
//
// DecodeCanonical never parses the header. Anything that produces the same
// layout (the native transcoder, ffmpeg with bitexact flags) is readable.
package wav
