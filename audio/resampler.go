// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/pcmscribe/utils"
)

// maxEmptyReads bounds how many (0, nil) reads are tolerated from a source
// before the resampler gives up with io.ErrNoProgress.
const maxEmptyReads = 100

// Resampler streams src at a new sample rate using cubic interpolation.
// Channel count is preserved. When downsampling, a one-pole low-pass filter
// is applied to the input to tame aliasing.
//
// Output frame j is taken at source position j*srcRate/dstRate, computed in
// integer arithmetic so long inputs do not drift. Exactly
// ceil(N*dstRate/srcRate) frames are produced for N input frames.
type Resampler struct {
	src      Source
	srcRate  int64
	dstRate  int64
	channels int

	// frames holds interleaved input starting at absolute frame index first.
	frames []float32
	first  int
	seen   int
	eof    bool
	out    int64

	readBuf []float32

	useFilter   bool
	filterAlpha float32
	filterState []float32
	filterReady bool
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := max(src.Channels(), 1)
	bufSize := max(src.BufSize(), 1024)
	bufSize -= bufSize % channels

	r := &Resampler{
		src:         src,
		srcRate:     int64(src.SampleRate()),
		dstRate:     int64(dstRate),
		channels:    channels,
		readBuf:     make([]float32, bufSize),
		filterState: make([]float32, channels),
	}

	if r.srcRate > r.dstRate {
		r.useFilter = true
		r.filterAlpha = 0.5
	}

	return r
}

func (r *Resampler) SampleRate() int { return int(r.dstRate) }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// fill reads from src until frame index need is available or src ends.
func (r *Resampler) fill(need int) error {
	empty := 0
	for !r.eof && r.seen <= need {
		n, err := r.src.ReadSamples(r.readBuf)
		frames := n / r.channels
		if frames > 0 {
			empty = 0
			chunk := r.readBuf[:frames*r.channels]
			if r.useFilter {
				r.lowPass(chunk)
			}
			r.frames = append(r.frames, chunk...)
			r.seen += frames
		}

		if err == io.EOF {
			r.eof = true
			break
		}
		if err != nil {
			return fmt.Errorf("%w", err)
		}

		if frames == 0 {
			empty++
			if empty >= maxEmptyReads {
				return io.ErrNoProgress
			}
		}
	}

	return nil
}

// lowPass applies y[n] = a*x[n] + (1-a)*y[n-1] per channel in place.
func (r *Resampler) lowPass(chunk []float32) {
	if !r.filterReady {
		copy(r.filterState, chunk[:r.channels])
		r.filterReady = true
	}

	a := r.filterAlpha
	for i := 0; i < len(chunk); i += r.channels {
		for c := range r.channels {
			y := a*chunk[i+c] + (1-a)*r.filterState[c]
			chunk[i+c] = y
			r.filterState[c] = y
		}
	}
}

// frame returns the input frame at absolute index idx, clamped to the edges.
func (r *Resampler) frame(idx int) []float32 {
	if idx < r.first {
		idx = r.first
	}
	if idx >= r.seen {
		idx = r.seen - 1
	}

	off := (idx - r.first) * r.channels
	return r.frames[off : off+r.channels]
}

// compact drops buffered frames that precede keep.
func (r *Resampler) compact(keep int) {
	drop := keep - r.first
	if drop < 4096 {
		return
	}

	r.frames = append(r.frames[:0], r.frames[drop*r.channels:]...)
	r.first += drop
}

// ReadSamples produces interleaved samples at the destination rate.
// len(dst) must be a multiple of Channels().
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if r.srcRate <= 0 || r.dstRate <= 0 {
		return 0, ErrInvalidRate
	}

	want := len(dst) / r.channels
	written := 0

	for written < want {
		num := r.out * r.srcRate
		k := int(num / r.dstRate)
		x := float32(num%r.dstRate) / float32(r.dstRate)

		if err := r.fill(k + 2); err != nil {
			return written * r.channels, err
		}

		if k >= r.seen {
			if written == 0 {
				return 0, io.EOF
			}
			return written * r.channels, io.EOF
		}

		p0, p1, p2, p3 := r.frame(k-1), r.frame(k), r.frame(k+1), r.frame(k+2)
		base := written * r.channels
		for c := range r.channels {
			dst[base+c] = utils.CubicInterpolate(p0[c], p1[c], p2[c], p3[c], x)
		}

		written++
		r.out++
		r.compact(k - 1)
	}

	return written * r.channels, nil
}
