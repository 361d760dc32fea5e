// SPDX-License-Identifier: EPL-2.0

// Package transcript renders recognized segments as text.
//
// The default "lines" format writes one line per segment:
//
//	[MM:SS.mmm -> MM:SS.mmm] text
//
// Segments are written in the order given, without merging or reordering.
// The subtitle formats "srt" and "vtt" keep the hour in their cue timings.
package transcript

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ik5/pcmscribe/recognize"
	"github.com/ik5/pcmscribe/timestamp"
)

const (
	FormatLines = "lines"
	FormatSRT   = "srt"
	FormatVTT   = "vtt"
)

var ErrUnknownFormat = errors.New("unknown transcript format")

// Formats lists the accepted output format names.
func Formats() []string {
	return []string{FormatLines, FormatSRT, FormatVTT}
}

// Line renders one segment in the line format.
func Line(seg recognize.Segment, useComma bool) string {
	return prefix(seg, useComma) + " " + seg.Text
}

func prefix(seg recognize.Segment, useComma bool) string {
	return "[" + timestamp.Format(seg.Start, useComma) + " -> " + timestamp.Format(seg.End, useComma) + "]"
}

// Options configures a Writer.
type Options struct {
	// Format is one of FormatLines (default), FormatSRT or FormatVTT.
	Format string
	// UseComma selects "," as the millisecond separator in line output.
	UseComma bool
	// Color styles the timestamp prefix of line output. The escape codes
	// are only emitted when the destination is a colour-capable terminal.
	Color bool
}

// Writer renders segments to an io.Writer. One Writer may receive the
// segments of several files: the VTT header is written once and cue numbers
// continue across Write calls.
type Writer struct {
	out    io.Writer
	opts   Options
	stamp  lipgloss.Style
	styled bool

	cues   int
	header bool
}

func NewWriter(w io.Writer, opts Options) (*Writer, error) {
	opts.Format = strings.ToLower(strings.TrimSpace(opts.Format))
	if opts.Format == "" {
		opts.Format = FormatLines
	}

	switch opts.Format {
	case FormatLines, FormatSRT, FormatVTT:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}

	tw := &Writer{out: w, opts: opts}
	if opts.Color {
		r := lipgloss.NewRenderer(w)
		tw.stamp = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7D79F6"})
		tw.styled = true
	}

	return tw, nil
}

// Write renders segs. Nothing is written for an empty slice in line format;
// VTT still emits its header on the first call.
func (w *Writer) Write(segs []recognize.Segment) error {
	bw := bufio.NewWriter(w.out)

	switch w.opts.Format {
	case FormatSRT:
		w.writeSRT(bw, segs)
	case FormatVTT:
		w.writeVTT(bw, segs)
	default:
		w.writeLines(bw, segs)
	}

	return bw.Flush()
}

func (w *Writer) writeLines(bw *bufio.Writer, segs []recognize.Segment) {
	for _, seg := range segs {
		p := prefix(seg, w.opts.UseComma)
		if w.styled {
			p = w.stamp.Render(p)
		}
		bw.WriteString(p)
		bw.WriteByte(' ')
		bw.WriteString(seg.Text)
		bw.WriteByte('\n')
	}
}

func (w *Writer) writeSRT(bw *bufio.Writer, segs []recognize.Segment) {
	for _, seg := range segs {
		w.cues++
		fmt.Fprintf(bw, "%d\n%s --> %s\n%s\n\n",
			w.cues,
			timestamp.FormatFull(seg.Start, true),
			timestamp.FormatFull(seg.End, true),
			strings.TrimSpace(seg.Text))
	}
}

func (w *Writer) writeVTT(bw *bufio.Writer, segs []recognize.Segment) {
	if !w.header {
		bw.WriteString("WEBVTT\n\n")
		w.header = true
	}
	for _, seg := range segs {
		w.cues++
		fmt.Fprintf(bw, "%d\n%s --> %s\n%s\n\n",
			w.cues,
			timestamp.FormatFull(seg.Start, false),
			timestamp.FormatFull(seg.End, false),
			strings.TrimSpace(seg.Text))
	}
}
