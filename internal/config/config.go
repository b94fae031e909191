// Package config holds the immutable per-session configuration plus the
// YAML file representation the CLI loads it from.
package config

import (
	"strings"

	"github.com/f4exb/goradioclock/internal/scope"
)

// Modulation selects which protocol state machine and slicer a Sink uses.
type Modulation int

const (
	DCF77 Modulation = iota
	TDF
	MSF60
)

// String renders the modulation name for logging.
func (m Modulation) String() string {
	switch m {
	case DCF77:
		return "DCF77"
	case TDF:
		return "TDF"
	case MSF60:
		return "MSF60"
	default:
		return "unknown"
	}
}

// ParseModulation parses a case-insensitive modulation name.
func ParseModulation(s string) (Modulation, bool) {
	switch strings.ToUpper(s) {
	case "DCF77":
		return DCF77, true
	case "TDF":
		return TDF, true
	case "MSF60":
		return MSF60, true
	default:
		return 0, false
	}
}

// Config is the immutable per-session configuration.
type Config struct {
	Modulation             Modulation
	RFBandwidth            float64 // Hz
	ThresholdDB            float64 // dB, positive
	ChannelSampleRate       int
	ChannelFrequencyOffset float64 // Hz
	ScopeCh1, ScopeCh2     scope.Channel
}

// DefaultConfig returns sensible defaults: DCF77 at 77.5kHz with a narrow
// channel bandwidth and the standard -16.5dB second-marker threshold.
func DefaultConfig() Config {
	return Config{
		Modulation:             DCF77,
		RFBandwidth:            600,
		ThresholdDB:            16.5,
		ChannelSampleRate:      48000,
		ChannelFrequencyOffset: 0,
		ScopeCh1:               scope.ChanRaw,
		ScopeCh2:               scope.ChanData,
	}
}
