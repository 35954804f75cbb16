package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete tool configuration
type Config struct {
	Audio   AudioConfig   `yaml:"audio"`
	VAD     VADConfig     `yaml:"vad"`
	Output  OutputConfig  `yaml:"output"`
	HTTP    HTTPConfig    `yaml:"http"`
	Logging LoggingConfig `yaml:"logging"`
}

// AudioConfig contains audio processing parameters
type AudioConfig struct {
	SampleRate     int     `yaml:"sample_rate"`      // decode requires 16000
	HighPassCutoff float64 `yaml:"high_pass_cutoff"` // Hz applied to the whole buffer before VAD, 0 disables
}

// VADConfig contains voice activity detection and segmentation parameters
type VADConfig struct {
	Threshold          float32 `yaml:"threshold"`            // mean absolute amplitude per window
	FreqThreshold      float32 `yaml:"freq_threshold"`       // per-window high-pass cutoff in Hz
	WindowMS           int     `yaml:"window_ms"`            // classification window length
	MinSpeechDuration  float64 `yaml:"min_speech_duration"`  // seconds
	MinSilenceDuration float64 `yaml:"min_silence_duration"` // seconds
	MaxSegmentDuration float64 `yaml:"max_segment_duration"` // seconds
	Verbose            bool    `yaml:"verbose"`              // per-window energy diagnostics
}

// OutputConfig controls per-segment WAV output
type OutputConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Dir           string `yaml:"dir"`
	BitsPerSample int    `yaml:"bits_per_sample"`
}

// HTTPConfig contains the monitoring HTTP server configuration
type HTTPConfig struct {
	Enabled bool   `yaml:"enabled"`
	Address string `yaml:"address"`
	Port    int    `yaml:"port"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Audio: AudioConfig{
			SampleRate:     16000,
			HighPassCutoff: 0,
		},
		VAD: VADConfig{
			Threshold:          0.02,
			FreqThreshold:      100.0,
			WindowMS:           30,
			MinSpeechDuration:  0.2,
			MinSilenceDuration: 0.3,
			MaxSegmentDuration: 30.0,
		},
		Output: OutputConfig{
			Enabled:       false,
			Dir:           "segments",
			BitsPerSample: 16,
		},
		HTTP: HTTPConfig{
			Enabled: false,
			Address: "127.0.0.1",
			Port:    8090,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Validate performs comprehensive validation of the configuration
func (c *Config) Validate() error {
	if err := c.Audio.Validate(); err != nil {
		return fmt.Errorf("audio config: %w", err)
	}

	if err := c.VAD.Validate(); err != nil {
		return fmt.Errorf("vad config: %w", err)
	}

	if err := c.Output.Validate(); err != nil {
		return fmt.Errorf("output config: %w", err)
	}

	if err := c.HTTP.Validate(); err != nil {
		return fmt.Errorf("http config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// Validate checks audio configuration parameters
func (c *AudioConfig) Validate() error {
	if c.SampleRate != 16000 {
		return fmt.Errorf("sample_rate must be 16000, got %d", c.SampleRate)
	}
	if c.HighPassCutoff < 0 {
		return fmt.Errorf("high_pass_cutoff must not be negative, got %f", c.HighPassCutoff)
	}
	return nil
}

// Validate checks VAD configuration parameters
func (c *VADConfig) Validate() error {
	if c.Threshold <= 0 || c.Threshold >= 1 {
		return fmt.Errorf("threshold must be in (0, 1), got %f", c.Threshold)
	}
	if c.FreqThreshold < 0 {
		return fmt.Errorf("freq_threshold must not be negative, got %f", c.FreqThreshold)
	}
	if c.WindowMS <= 0 {
		return fmt.Errorf("window_ms must be positive, got %d", c.WindowMS)
	}
	if c.MinSpeechDuration <= 0 {
		return fmt.Errorf("min_speech_duration must be positive, got %f", c.MinSpeechDuration)
	}
	if c.MinSilenceDuration <= 0 {
		return fmt.Errorf("min_silence_duration must be positive, got %f", c.MinSilenceDuration)
	}
	if c.MaxSegmentDuration <= c.MinSpeechDuration {
		return fmt.Errorf("max_segment_duration must exceed min_speech_duration, got %f", c.MaxSegmentDuration)
	}
	return nil
}

// Validate checks output configuration parameters
func (c *OutputConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Dir == "" {
		return fmt.Errorf("dir must be set when output is enabled")
	}
	switch c.BitsPerSample {
	case 8, 16, 32:
	default:
		return fmt.Errorf("bits_per_sample must be 8, 16 or 32, got %d", c.BitsPerSample)
	}
	return nil
}

// Validate checks HTTP server configuration parameters
func (c *HTTPConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if c.Address == "" {
		return fmt.Errorf("address must be set when http is enabled")
	}
	return nil
}

// Validate checks logging configuration parameters
func (c *LoggingConfig) Validate() error {
	switch c.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("level must be one of debug/info/warn/error, got %q", c.Level)
	}
	switch c.Format {
	case "text", "json":
	default:
		return fmt.Errorf("format must be text or json, got %q", c.Format)
	}
	return nil
}

// GetMinSpeechDuration returns the minimum speech duration as time.Duration
func (c *VADConfig) GetMinSpeechDuration() time.Duration {
	return time.Duration(c.MinSpeechDuration * float64(time.Second))
}

// GetMinSilenceDuration returns the minimum silence duration as time.Duration
func (c *VADConfig) GetMinSilenceDuration() time.Duration {
	return time.Duration(c.MinSilenceDuration * float64(time.Second))
}

// GetMaxSegmentDuration returns the maximum segment duration as time.Duration
func (c *VADConfig) GetMaxSegmentDuration() time.Duration {
	return time.Duration(c.MaxSegmentDuration * float64(time.Second))
}
