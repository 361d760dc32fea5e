// SPDX-License-Identifier: EPL-2.0

// Package pcmscribe turns audio files into time-stamped transcripts.
//
// The work happens in two stages. Normalization converts any supported input
// into the canonical container (mono, 16 kHz, signed 16-bit little-endian
// PCM behind a 44-byte RIFF header) in a temporary file, reads it back as
// float32 samples in [-1,1] and deletes the file. Recognition hands those
// samples to a speech recognizer, whose segments are rendered as
//
//	[MM:SS.mmm -> MM:SS.mmm] text
//
// # Supported Formats
//
// The native transcoder decodes:
//   - WAV (8/16/24/32-bit PCM) via formats/wav
//   - AIFF (8/16/24/32-bit PCM) via formats/aiff
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//
// Anything ffmpeg reads is available through the ffmpeg transcoder.
//
// # Quick Start
//
//	samples, err := pcmscribe.NormalizeFile(ctx, "meeting.mp3")
//	if err != nil {
//	    return err
//	}
//	// samples is mono 16 kHz float32, ready for a recognizer
//
// # Building Blocks
//
//   - normalize: the Normalizer and its temporary-file lifecycle
//   - transcode: native and ffmpeg transcoders behind one interface
//   - audio: streaming sources, cubic resampler, mono mixer
//   - recognize: the recognizer boundary and the whisper.cpp CLI recognizer
//   - timestamp: centisecond offsets to MM:SS.mmm
//   - transcript: line, SRT and VTT output
//   - pipeline: normalize, recognize and write in one call
//
// The pcmscribe command in cmd/pcmscribe drives all of the above.
package pcmscribe
