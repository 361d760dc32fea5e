// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/pcmscribe/utils"
)

// ResampleToMono16 runs src through resample -> mono and collects the result
// as signed 16-bit PCM at targetRate. bufferSize is the read size in samples.
// It returns the collected samples and the output rate.
func ResampleToMono16(src Source, targetRate int, bufferSize int) ([]int16, int, error) {
	if targetRate <= 0 || src.SampleRate() <= 0 {
		return nil, targetRate, ErrInvalidRate
	}
	if bufferSize <= 0 {
		bufferSize = 4096
	}

	mono := NewMonoMixer(NewResampler(src, targetRate))

	// Pre-size from a two second guess; append grows it afterwards.
	pcm16 := make([]int16, 0, targetRate*2)
	buf := make([]float32, bufferSize)
	conv := make([]int16, bufferSize)

	for {
		n, err := mono.ReadSamples(buf)
		if n > 0 {
			utils.Float32sToInt16s(conv[:n], buf[:n])
			pcm16 = append(pcm16, conv[:n]...)
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, targetRate, fmt.Errorf("resample: %w", err)
		}
	}

	return pcm16, targetRate, nil
}
