// SPDX-License-Identifier: EPL-2.0

// Package cli implements the pcmscribe command tree.
package cli

import (
	"github.com/ik5/pcmscribe/formats"
	"github.com/ik5/pcmscribe/internal/config"
	"github.com/ik5/pcmscribe/internal/logging"
	"github.com/ik5/pcmscribe/normalize"
	"github.com/ik5/pcmscribe/transcode"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app carries the resolved configuration and logger from the root
// command's pre-run hook to the subcommands.
type app struct {
	configPath string
	cfg        *config.Config
	log        *logrus.Logger
}

// NewRootCmd creates the root command for pcmscribe.
func NewRootCmd() *cobra.Command {
	a := &app{cfg: config.Default()}

	rootCmd := &cobra.Command{
		Use:   "pcmscribe",
		Short: "Turn audio files into time-stamped transcripts",
		Long: "pcmscribe normalizes any supported audio file to mono 16 kHz 16-bit PCM " +
			"and runs it through whisper.cpp, printing one line per recognized segment.",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "YAML config file (default $"+config.EnvConfigPath+")")
	flags.String("transcoder", a.cfg.Transcoder, "transcoder: native or ffmpeg")
	flags.String("ffmpeg", a.cfg.FFmpeg, "ffmpeg binary used by the ffmpeg transcoder")
	flags.String("temp-dir", "", "directory for temporary containers (default system temp)")
	flags.String("log-level", a.cfg.Log.Level, "log level: debug, info, warn, error")
	flags.String("log-format", a.cfg.Log.Format, "log format: text or json")

	rootCmd.AddCommand(a.newTranscribeCmd())
	rootCmd.AddCommand(a.newConvertCmd())
	rootCmd.AddCommand(a.newSamplesCmd())

	return rootCmd
}

// setup loads the configuration, lays explicitly set flags over it and
// builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	str := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	num := func(name string, dst *int) {
		if flags.Changed(name) {
			*dst, _ = flags.GetInt(name)
		}
	}
	boolean := func(name string, dst *bool) {
		if flags.Changed(name) {
			*dst, _ = flags.GetBool(name)
		}
	}

	str("transcoder", &cfg.Transcoder)
	str("ffmpeg", &cfg.FFmpeg)
	str("temp-dir", &cfg.TempDir)
	str("log-level", &cfg.Log.Level)
	str("log-format", &cfg.Log.Format)
	str("whisper-bin", &cfg.Whisper.Binary)
	str("model", &cfg.Whisper.Model)
	str("language", &cfg.Whisper.Language)
	num("threads", &cfg.Whisper.Threads)
	num("max-len", &cfg.Whisper.MaxLen)
	str("format", &cfg.Output.Format)
	boolean("comma", &cfg.Output.Comma)
	boolean("color", &cfg.Output.Color)

	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logging.NewWithWriter(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	a.cfg, a.log = cfg, log

	return nil
}

func (a *app) transcoder() (transcode.Transcoder, error) {
	return transcode.New(a.cfg.Transcoder, transcode.Options{
		Registry:   formats.DefaultRegistry(),
		FFmpegPath: a.cfg.FFmpeg,
		Log:        a.log,
	})
}

func (a *app) normalizer() (*normalize.Normalizer, error) {
	tr, err := a.transcoder()
	if err != nil {
		return nil, err
	}

	return normalize.New(tr, normalize.WithTempDir(a.cfg.TempDir), normalize.WithLogger(a.log)), nil
}
