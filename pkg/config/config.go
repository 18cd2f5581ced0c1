// Package config loads the trainer configuration from a YAML file,
// falling back to built-in defaults when the file is absent.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

const (
	// DefaultBaseDir is the base data/configuration directory name
	DefaultBaseDir = ".pentatonic"
	// DefaultConfigFile is the default configuration filename
	DefaultConfigFile = "config.yaml"
)

// Envelope shapes the amplitude of a synthesized note (ADSR).
type Envelope struct {
	// AttackMillis is the fade-in time at the start of the note
	AttackMillis int `yaml:"attack_ms"`

	// DecayMillis is the decay time from peak down to the sustain level
	DecayMillis int `yaml:"decay_ms"`

	// Sustain is the level held until the release begins (0..1)
	Sustain float64 `yaml:"sustain"`

	// ReleaseMillis is the fade-out time at the end of the note
	ReleaseMillis int `yaml:"release_ms"`
}

// Config holds all tunable parameters of the trainer.
type Config struct {
	// SampleRate in Hz for synthesis, capture and detection
	SampleRate int `yaml:"sample_rate"`

	// ChunkSize is the number of samples read per capture block
	ChunkSize int `yaml:"chunk_size"`

	// HarmonicWeights are amplitudes of the fundamental and overtones
	// used for note synthesis
	HarmonicWeights []float64 `yaml:"harmonic_weights"`

	// Gain scales synthesized audio after envelope shaping (0..1)
	Gain float64 `yaml:"gain"`

	// Envelope shapes synthesized notes
	Envelope Envelope `yaml:"envelope"`

	// ClickFreq is the metronome click frequency in Hz
	ClickFreq float64 `yaml:"click_freq"`

	// ClickMillis is the metronome click duration
	ClickMillis int `yaml:"click_ms"`

	// CountInBeats is the number of count-in clicks before the scale starts
	CountInBeats int `yaml:"count_in_beats"`

	// ToleranceSemitones is the maximum pitch distance still counted
	// as the expected note
	ToleranceSemitones float64 `yaml:"tolerance_semitones"`

	// PeakHeight is the minimum autocorrelation peak value accepted
	// by the pitch detector
	PeakHeight float64 `yaml:"peak_height"`

	// StartBPM is the tempo of a fresh progression
	StartBPM int `yaml:"start_bpm"`

	// TempoStep is how much the tempo rises after a perfect pass
	TempoStep int `yaml:"tempo_step"`

	// DataDir is the directory holding the progress store; empty means
	// the default under the user's home directory
	DataDir string `yaml:"data_dir,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		SampleRate:      44100,
		ChunkSize:       1024,
		HarmonicWeights: []float64{1.0, 0.5, 0.3, 0.2},
		Gain:            0.3,
		Envelope: Envelope{
			AttackMillis:  20,
			DecayMillis:   100,
			Sustain:       0.7,
			ReleaseMillis: 300,
		},
		ClickFreq:          1000,
		ClickMillis:        50,
		CountInBeats:       4,
		ToleranceSemitones: 0.5,
		PeakHeight:         0.1,
		StartBPM:           120,
		TempoStep:          5,
	}
}

// DefaultPath returns the default config file path under the user's
// home directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, DefaultBaseDir, DefaultConfigFile), nil
}

// Load reads the configuration from path. A missing file yields the
// defaults; a present file overrides them field by field. An empty path
// means the default location.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Dir returns the data directory, creating it if needed.
func (c *Config) Dir() (string, error) {
	dir := c.DataDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, DefaultBaseDir)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return dir, nil
}

func (c *Config) validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample_rate must be positive, got %d", c.SampleRate)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive, got %d", c.ChunkSize)
	}
	if len(c.HarmonicWeights) == 0 {
		return fmt.Errorf("harmonic_weights must not be empty")
	}
	if c.ToleranceSemitones <= 0 {
		return fmt.Errorf("tolerance_semitones must be positive, got %g", c.ToleranceSemitones)
	}
	if c.TempoStep <= 0 {
		return fmt.Errorf("tempo_step must be positive, got %d", c.TempoStep)
	}
	return nil
}
