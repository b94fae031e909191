package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/f4exb/goradioclock/internal/scope"
)

// FileConfig is the YAML-serializable superset of Config used by the CLI:
// it adds the capture device name and log level that have no place in the
// core's immutable session Config.
type FileConfig struct {
	Modulation             string  `yaml:"modulation"`
	RFBandwidth            float64 `yaml:"rf_bandwidth"`
	ThresholdDB            float64 `yaml:"threshold_db"`
	ChannelSampleRate      int     `yaml:"channel_sample_rate"`
	ChannelFrequencyOffset float64 `yaml:"channel_frequency_offset"`
	ScopeCh1               int     `yaml:"scope_ch1"`
	ScopeCh2               int     `yaml:"scope_ch2"`

	Device   string `yaml:"device"`
	LogLevel string `yaml:"log_level"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (FileConfig, error) {
	var fc FileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return fc, nil
}

// Save writes fc to path as YAML.
func Save(path string, fc FileConfig) error {
	data, err := yaml.Marshal(fc)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ToConfig narrows the file configuration down to the core's immutable
// session Config, defaulting an unrecognized modulation name to DCF77.
func (fc FileConfig) ToConfig() Config {
	mod, ok := ParseModulation(fc.Modulation)
	if !ok {
		mod = DCF77
	}
	return Config{
		Modulation:             mod,
		RFBandwidth:            fc.RFBandwidth,
		ThresholdDB:            fc.ThresholdDB,
		ChannelSampleRate:      fc.ChannelSampleRate,
		ChannelFrequencyOffset: fc.ChannelFrequencyOffset,
		ScopeCh1:               clampChannel(fc.ScopeCh1),
		ScopeCh2:               clampChannel(fc.ScopeCh2),
	}
}

// clampChannel keeps an out-of-range scope channel index inside the
// 0..7 table rather than silently wrapping to an unrelated signal.
func clampChannel(i int) scope.Channel {
	if i < 0 || i >= scope.NumChannels {
		return scope.ChanRaw
	}
	return scope.Channel(i)
}
