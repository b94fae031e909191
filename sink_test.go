package goradioclock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f4exb/goradioclock/internal/config"
	"github.com/f4exb/goradioclock/internal/dsp"
	"github.com/f4exb/goradioclock/internal/protocol"
	"github.com/f4exb/goradioclock/internal/report"
	"github.com/f4exb/goradioclock/internal/scope"
)

func testConfig(mod config.Modulation) config.Config {
	cfg := config.DefaultConfig()
	cfg.Modulation = mod
	cfg.ChannelSampleRate = dsp.CanonicalRate // unity rate conversion, easiest to reason about
	cfg.ChannelFrequencyOffset = 0
	cfg.RFBandwidth = 2200 // pushes the lowpass cutoff to Nyquist: an effective pass-through
	return cfg
}

func TestNewSinkInitialState(t *testing.T) {
	s := NewSink(testConfig(config.DCF77), 8)
	assert.False(t, s.Locked(), "a freshly built Sink should not be locked")
	assert.True(t, s.Now().IsZero(), "a freshly built Sink should report a zero DateTime")
}

func TestApplyChannelSettingsUpdatesConfig(t *testing.T) {
	s := NewSink(testConfig(config.DCF77), 8)
	s.ApplyChannelSettings(48000, 1200, false)
	assert.Equal(t, 48000, s.cfg.ChannelSampleRate)
	assert.Equal(t, 1200.0, s.cfg.ChannelFrequencyOffset)
}

func TestApplyChannelSettingsNoopWhenUnchanged(t *testing.T) {
	s := NewSink(testConfig(config.DCF77), 8)
	before := s.rateConv
	s.ApplyChannelSettings(s.cfg.ChannelSampleRate, s.cfg.ChannelFrequencyOffset, false)
	assert.Equal(t, before, s.rateConv, "unchanged parameters with force=false should leave the rate converter untouched")
}

func TestApplySettingsSwapsMachineOnModulationChange(t *testing.T) {
	s := NewSink(testConfig(config.DCF77), 8)
	require.IsType(t, &protocol.DCF77{}, s.machine)

	// Drain the status message pushed by NewSink's own initial construction
	// so the assertion below observes only the modulation-change message.
	drainMessages(s)

	s.ApplySettings(testConfig(config.MSF60), false)
	assert.IsType(t, &protocol.MSF60{}, s.machine)

	msg := requireMsgStatus(t, s)
	assert.Equal(t, report.StatusLookingForMarker, msg.Text, "a modulation change must be observable as lock loss")
}

func drainMessages(s *Sink) {
	for {
		select {
		case <-s.Messages():
		default:
			return
		}
	}
}

func requireMsgStatus(t *testing.T, s *Sink) report.MsgStatus {
	t.Helper()
	select {
	case msg := <-s.Messages():
		status, ok := msg.(report.MsgStatus)
		require.True(t, ok, "expected a MsgStatus, got %T", msg)
		return status
	default:
		require.Fail(t, "expected a status message on the queue, found none")
		return report.MsgStatus{}
	}
}

func TestApplySettingsKeepsMachineWhenModulationUnchanged(t *testing.T) {
	s := NewSink(testConfig(config.DCF77), 8)
	before := s.machine
	s.ApplySettings(testConfig(config.DCF77), false)
	assert.Same(t, before, s.machine, "ApplySettings without a modulation change should not replace the machine, losing its lock state")
}

// TestFeedConstantSignalSettlesLevelMeter exercises the full Feed pipeline
// (NCO -> rate converter -> power estimator) with a zero frequency offset
// and a unity-rate, near-all-pass lowpass (cutoff pinned to Nyquist by a
// wide RFBandwidth), so the expected steady-state magnitude-squared is
// exactly |amplitude|^2 once the FIR history is warmed up.
func TestFeedConstantSignalSettlesLevelMeter(t *testing.T) {
	s := NewSink(testConfig(config.DCF77), 8)

	const amplitude = 3.0
	iq := make([]complex128, dsp.CanonicalRate) // well past the 33-tap warmup
	for i := range iq {
		iq[i] = complex(amplitude, 0)
	}
	s.Feed(iq)

	peak, avg, count := s.LevelMeter()
	assert.Equal(t, len(iq), count)
	want := amplitude * amplitude
	assert.InDelta(t, want, peak, 1e-6)
	// avg is pulled down by the handful of warmup samples seeing partial
	// (zero-padded) filter history, so it only needs to be close, not
	// exactly equal to the settled value.
	assert.Greater(t, avg, 0.0)
	assert.LessOrEqual(t, avg, want)
}

func TestFeedDoesNotPanicAcrossModulations(t *testing.T) {
	for _, mod := range []config.Modulation{config.DCF77, config.TDF, config.MSF60} {
		s := NewSink(testConfig(mod), 8)
		iq := make([]complex128, 500)
		for i := range iq {
			iq[i] = complex(float64(i%7)-3, float64(i%5)-2)
		}
		assert.NotPanics(t, func() { s.Feed(iq) })
	}
}

func TestScopeSinkReceivesSamples(t *testing.T) {
	s := NewSink(testConfig(config.DCF77), 8)
	rec := scope.NewRecorder(10)
	s.SetScopeSink(rec)

	iq := make([]complex128, 50)
	for i := range iq {
		iq[i] = complex(1, 0)
	}
	s.Feed(iq)

	assert.NotEmpty(t, rec.Samples(), "expected the scope recorder to capture samples once a sink is attached")
}

func TestSetScopeSinkNilDisablesTap(t *testing.T) {
	s := NewSink(testConfig(config.DCF77), 8)
	rec := scope.NewRecorder(10)
	s.SetScopeSink(rec)
	s.SetScopeSink(nil)

	iq := []complex128{1, 1, 1}
	assert.NotPanics(t, func() { s.Feed(iq) })
	assert.Empty(t, rec.Samples(), "detaching the scope sink should stop further samples from reaching the old recorder")
}
