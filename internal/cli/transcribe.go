// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/ik5/pcmscribe/pipeline"
	"github.com/ik5/pcmscribe/recognize"
	"github.com/ik5/pcmscribe/transcript"
	"github.com/spf13/cobra"
)

func (a *app) newTranscribeCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "transcribe <file>...",
		Short: "Transcribe audio files into time-stamped lines",
		Long: "Transcribe converts each file to mono 16 kHz PCM, runs whisper.cpp on it and " +
			"prints one \"[MM:SS.mmm -> MM:SS.mmm] text\" line per segment. Files that fail " +
			"are reported and skipped.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			norm, err := a.normalizer()
			if err != nil {
				return err
			}

			var out io.Writer = cmd.OutOrStdout()
			var file io.Closer
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating output: %w", err)
				}
				defer f.Close()
				out, file = f, f
			}

			w, err := transcript.NewWriter(out, transcript.Options{
				Format:   a.cfg.Output.Format,
				UseComma: a.cfg.Output.Comma,
				Color:    a.cfg.Output.Color,
			})
			if err != nil {
				return err
			}

			p := &pipeline.Pipeline{
				Normalizer: norm,
				Recognizer: recognize.NewWhisperCPP(recognize.WhisperConfig{
					Binary:   a.cfg.Whisper.Binary,
					Model:    a.cfg.Whisper.Model,
					Language: a.cfg.Whisper.Language,
					Threads:  a.cfg.Whisper.Threads,
					MaxLen:   a.cfg.Whisper.MaxLen,
					TempDir:  a.cfg.TempDir,
				}, a.log),
				Writer: w,
				Log:    a.log,
			}

			return closeOutput(file, p.RunAll(cmd.Context(), args))
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "", "write the transcript to this file instead of stdout")
	flags.String("whisper-bin", a.cfg.Whisper.Binary, "whisper.cpp command line binary")
	flags.String("model", "", "whisper.cpp ggml model file")
	flags.String("language", a.cfg.Whisper.Language, "spoken language code, or auto")
	flags.Int("threads", 0, "whisper.cpp threads (0 = its default)")
	flags.Int("max-len", a.cfg.Whisper.MaxLen, "maximum segment length in characters (1 = per word)")
	flags.String("format", a.cfg.Output.Format, "output format: lines, srt or vtt")
	flags.Bool("comma", false, "use a comma as the millisecond separator in lines output")
	flags.Bool("color", false, "colour the timestamps of lines output on a terminal")

	return cmd
}

// closeOutput closes the transcript file, if any, and reports a close
// failure unless runErr already carries an error.
func closeOutput(c io.Closer, runErr error) error {
	if c == nil {
		return runErr
	}
	if err := c.Close(); err != nil && runErr == nil {
		return fmt.Errorf("closing output: %w", err)
	}
	return runErr
}
