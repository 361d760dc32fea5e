// SPDX-License-Identifier: EPL-2.0

package utils

// CubicInterpolate returns the Catmull-Rom value between p1 and p2 at
// fractional position x in [0,1]. p0 and p3 are the neighbouring samples.
func CubicInterpolate(p0, p1, p2, p3, x float32) float32 {
	c3 := 0.5 * (p3 - p0 + 3*(p1-p2))
	c2 := p0 - 2.5*p1 + 2*p2 - 0.5*p3
	c1 := 0.5 * (p2 - p0)

	// Horner form keeps it to three multiplies.
	return ((c3*x+c2)*x+c1)*x + p1
}
