// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 converts a normalized sample to signed 16-bit PCM.
// Values outside [-1,1] are clamped first.
func Float32ToInt16(x float32) int16 {
	switch {
	case x > 1:
		x = 1
	case x < -1:
		x = -1
	}

	// 32767 on both sides, so -1 maps to -32767 and never wraps.
	return int16(x * 32767.0)
}

// Float32sToInt16s converts src into dst and returns the number of samples
// written, which is min(len(dst), len(src)).
func Float32sToInt16s(dst []int16, src []float32) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = Float32ToInt16(src[i])
	}

	return n
}
