// SPDX-License-Identifier: EPL-2.0

package recognize

import "errors"

var (
	ErrNoModel       = errors.New("no whisper model configured")
	ErrWhisperFailed = errors.New("whisper.cpp failed")
	ErrBadOutput     = errors.New("unreadable whisper.cpp output")
	ErrNoSamples     = errors.New("no samples to transcribe")
	ErrNoCompletion  = errors.New("recognizer finished without reporting a result")
)
