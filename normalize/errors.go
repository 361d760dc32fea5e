// SPDX-License-Identifier: EPL-2.0

package normalize

import (
	"errors"
	"fmt"
)

var (
	// ErrTranscode wraps failures of the transcoding step: unsupported or
	// unreadable input, or an unwritable temporary location.
	ErrTranscode = errors.New("transcode failed")

	// ErrRead wraps failures reading back or decoding the canonical
	// container after a successful transcode.
	ErrRead = errors.New("reading canonical container failed")

	ErrNoInput      = errors.New("no input file")
	ErrNoCompletion = errors.New("transcoder finished without reporting a result")
)

// CleanupError reports a temporary container that could not be removed.
// It is logged as a warning and never returned from Normalize.
type CleanupError struct {
	Path string
	Err  error
}

func (e *CleanupError) Error() string {
	return fmt.Sprintf("remove temporary container %s: %v", e.Path, e.Err)
}

func (e *CleanupError) Unwrap() error { return e.Err }
