// SPDX-License-Identifier: EPL-2.0

// Package config loads pcmscribe settings.
//
// Sources are applied in order, later ones winning: built-in defaults, the
// YAML file, variables from .env files, PCMSCRIBE_* environment variables.
// Command line flags are layered on top by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/ik5/pcmscribe/internal/logging"
	"github.com/ik5/pcmscribe/transcode"
	"github.com/ik5/pcmscribe/transcript"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the variable holding the YAML file path when none is
// passed to Load.
const EnvConfigPath = "PCMSCRIBE_CONFIG"

var ErrInvalid = errors.New("invalid configuration")

type WhisperConfig struct {
	Binary   string `yaml:"binary,omitempty"`
	Model    string `yaml:"model,omitempty"`
	Language string `yaml:"language,omitempty"`
	Threads  int    `yaml:"threads,omitempty"`
	// MaxLen is the maximum segment length in characters; 1 gives
	// word-level timestamps.
	MaxLen int `yaml:"max_len,omitempty"`
}

type OutputConfig struct {
	Format string `yaml:"format,omitempty"`
	Comma  bool   `yaml:"comma,omitempty"`
	Color  bool   `yaml:"color,omitempty"`
}

type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// Config is the top-level configuration.
type Config struct {
	Transcoder string        `yaml:"transcoder,omitempty"`
	FFmpeg     string        `yaml:"ffmpeg,omitempty"`
	TempDir    string        `yaml:"temp_dir,omitempty"`
	Whisper    WhisperConfig `yaml:"whisper,omitempty"`
	Output     OutputConfig  `yaml:"output,omitempty"`
	Log        LogConfig     `yaml:"log,omitempty"`
}

func Default() *Config {
	return &Config{
		Transcoder: transcode.KindNative,
		FFmpeg:     "ffmpeg",
		Whisper: WhisperConfig{
			Binary:   "whisper-cli",
			Language: "auto",
			MaxLen:   1,
		},
		Output: OutputConfig{Format: transcript.FormatLines},
		Log:    LogConfig{Level: "info", Format: logging.FormatText},
	}
}

// Load builds a Config from defaults, the YAML file at path (or
// $PCMSCRIBE_CONFIG when path is empty), the given .env files (".env" when
// none are given) and the environment. Missing .env files are ignored; a
// missing YAML file is an error only when a path was supplied.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"PCMSCRIBE_TRANSCODER":  &c.Transcoder,
		"PCMSCRIBE_FFMPEG":      &c.FFmpeg,
		"PCMSCRIBE_TEMP_DIR":    &c.TempDir,
		"PCMSCRIBE_WHISPER_BIN": &c.Whisper.Binary,
		"PCMSCRIBE_MODEL":       &c.Whisper.Model,
		"PCMSCRIBE_LANGUAGE":    &c.Whisper.Language,
		"PCMSCRIBE_FORMAT":      &c.Output.Format,
		"PCMSCRIBE_LOG_LEVEL":   &c.Log.Level,
		"PCMSCRIBE_LOG_FORMAT":  &c.Log.Format,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}

	ints := map[string]*int{
		"PCMSCRIBE_THREADS": &c.Whisper.Threads,
		"PCMSCRIBE_MAX_LEN": &c.Whisper.MaxLen,
	}
	for key, dst := range ints {
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", ErrInvalid, key, v, err)
		}
		*dst = n
	}

	bools := map[string]*bool{
		"PCMSCRIBE_COMMA": &c.Output.Comma,
		"PCMSCRIBE_COLOR": &c.Output.Color,
	}
	for key, dst := range bools {
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", ErrInvalid, key, v, err)
		}
		*dst = b
	}

	return nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.Transcoder) {
	case transcode.KindNative, transcode.KindFFmpeg:
	default:
		errs = append(errs, fmt.Errorf("%w: transcoder %q (want %s or %s)",
			ErrInvalid, c.Transcoder, transcode.KindNative, transcode.KindFFmpeg))
	}

	if !slices.Contains(transcript.Formats(), strings.ToLower(c.Output.Format)) {
		errs = append(errs, fmt.Errorf("%w: output format %q (want one of %s)",
			ErrInvalid, c.Output.Format, strings.Join(transcript.Formats(), ", ")))
	}

	if c.Whisper.Threads < 0 {
		errs = append(errs, fmt.Errorf("%w: threads %d must not be negative", ErrInvalid, c.Whisper.Threads))
	}
	if c.Whisper.MaxLen < 0 {
		errs = append(errs, fmt.Errorf("%w: max_len %d must not be negative", ErrInvalid, c.Whisper.MaxLen))
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("%w: log level %q: %w", ErrInvalid, c.Log.Level, err))
	}
	switch strings.ToLower(c.Log.Format) {
	case logging.FormatText, logging.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("%w: log format %q", ErrInvalid, c.Log.Format))
	}

	return errors.Join(errs...)
}
