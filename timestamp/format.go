// SPDX-License-Identifier: EPL-2.0

// Package timestamp renders recognizer time offsets for display.
//
// Offsets are integers in centiseconds (10 ms units), the native unit of the
// recognizer.
package timestamp

import "fmt"

const (
	msPerCentisecond = 10
	msPerSecond      = 1000
	msPerMinute      = 60 * msPerSecond
	msPerHour        = 60 * msPerMinute
)

type parts struct {
	hours, minutes, seconds, millis int
}

func split(t int) parts {
	ms := t * msPerCentisecond

	var p parts
	p.hours = ms / msPerHour
	ms -= p.hours * msPerHour
	p.minutes = ms / msPerMinute
	ms -= p.minutes * msPerMinute
	p.seconds = ms / msPerSecond
	p.millis = ms - p.seconds*msPerSecond

	return p
}

func separator(useComma bool) byte {
	if useComma {
		return ','
	}
	return '.'
}

// Format renders t centiseconds as MM:SS.mmm, or MM:SS,mmm when useComma is
// set. t must not be negative.
//
// The hour component is computed and then dropped, so 1h02m03s renders as
// "02:03.000". Use FormatFull where elapsed hours must be visible.
func Format(t int, useComma bool) string {
	p := split(t)
	return fmt.Sprintf("%02d:%02d%c%03d", p.minutes, p.seconds, separator(useComma), p.millis)
}

// FormatFull renders t centiseconds as HH:MM:SS.mmm (or with a comma),
// keeping the hour. Subtitle formats need this form.
func FormatFull(t int, useComma bool) string {
	p := split(t)
	return fmt.Sprintf("%02d:%02d:%02d%c%03d", p.hours, p.minutes, p.seconds, separator(useComma), p.millis)
}
