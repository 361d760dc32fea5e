// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/pcmscribe/utils"
)

const (
	// HeaderSize is the fixed RIFF header length in front of canonical
	// sample data.
	HeaderSize = 44
	// CanonicalRate is the sample rate of the canonical container.
	CanonicalRate = 16000

	writeChunk = 8192
)

// header builds the 44-byte RIFF/WAVE header for mono 16-bit PCM.
func header(sampleRate int, numSamples int) [HeaderSize]byte {
	var h [HeaderSize]byte
	le := binary.LittleEndian

	dataSize := uint32(numSamples * 2)

	copy(h[0:4], "RIFF")
	le.PutUint32(h[4:8], 36+dataSize)
	copy(h[8:12], "WAVE")

	copy(h[12:16], "fmt ")
	le.PutUint32(h[16:20], 16)
	le.PutUint16(h[20:22], formatPCM)
	le.PutUint16(h[22:24], 1)
	le.PutUint32(h[24:28], uint32(sampleRate))
	le.PutUint32(h[28:32], uint32(sampleRate)*2)
	le.PutUint16(h[32:34], 2)
	le.PutUint16(h[34:36], 16)

	copy(h[36:40], "data")
	le.PutUint32(h[40:44], dataSize)

	return h
}

// WriteWAV16 writes a mono 16-bit PCM WAV with a 44-byte header at
// sampleRate.
func WriteWAV16(w io.Writer, sampleRate int, samples []int16) error {
	h := header(sampleRate, len(samples))
	if _, err := w.Write(h[:]); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	buf := make([]byte, 2*min(len(samples), writeChunk))
	for start := 0; start < len(samples); start += writeChunk {
		chunk := samples[start:min(start+writeChunk, len(samples))]
		out := buf[:2*len(chunk)]
		for i, s := range chunk {
			binary.LittleEndian.PutUint16(out[2*i:], uint16(s))
		}

		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("write samples: %w", err)
		}
	}

	return nil
}

// WriteCanonical writes samples as a canonical container: mono, 16 kHz,
// 16-bit signed little-endian, 44-byte header.
func WriteCanonical(w io.Writer, samples []int16) error {
	return WriteWAV16(w, CanonicalRate, samples)
}

// DecodeCanonical extracts normalized samples from a canonical container.
//
// The header is skipped without interpretation. The remainder is read as
// little-endian int16 pairs; a trailing odd byte is ignored. Each sample s
// becomes clamp(s/32767, -1, 1).
func DecodeCanonical(data []byte) ([]float32, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrShortContainer, len(data))
	}

	body := data[HeaderSize:]
	samples := make([]float32, len(body)/2)
	for i := range samples {
		s := int16(binary.LittleEndian.Uint16(body[2*i:]))
		samples[i] = utils.NormalizeInt16(s)
	}

	return samples, nil
}
