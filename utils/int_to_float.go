// SPDX-License-Identifier: EPL-2.0

package utils

// NormalizeInt16 maps a signed 16-bit sample to [-1,1] by dividing by 32767.
//
// The int16 range is asymmetric, so math.MinInt16 would land just below -1;
// the result is clamped to keep every sample inside the closed interval.
func NormalizeInt16(s int16) float32 {
	v := float32(s) / 32767.0
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}

	return v
}
