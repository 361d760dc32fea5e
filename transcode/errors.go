// SPDX-License-Identifier: EPL-2.0

package transcode

import "errors"

var (
	ErrUnknownTranscoder = errors.New("unknown transcoder")
	ErrUnsupportedInput  = errors.New("unsupported input format")
	ErrFFmpegNotFound    = errors.New("ffmpeg binary not found")
	ErrFFmpegFailed      = errors.New("ffmpeg failed")
)
