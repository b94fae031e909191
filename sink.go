// Package goradioclock implements a radio time-code demodulator and
// decoder for three longwave transmitter formats -- DCF77, TDF and
// MSF60. A Sink consumes baseband complex IQ samples at an arbitrary
// channel rate and emits, once per locked second, a decoded civil
// date/time plus status transitions.
package goradioclock

import (
	"github.com/f4exb/goradioclock/internal/clock"
	"github.com/f4exb/goradioclock/internal/config"
	"github.com/f4exb/goradioclock/internal/dsp"
	"github.com/f4exb/goradioclock/internal/protocol"
	"github.com/f4exb/goradioclock/internal/report"
	"github.com/f4exb/goradioclock/internal/scope"
)

// Short/long power moving-average smoothing constants. These give a
// short average that tracks the ~1-10ms OOK envelope and a long average
// that tracks the whole-second carrier baseline used as the threshold
// reference.
const (
	shortAvgAlpha = 0.3
	longAvgAlpha  = 0.002
)

// fmDemodAvgAlpha smooths the TDF phase discriminator output
// (fm_demod_avg) over roughly ten samples, short against the 50ms phase
// windows the TDF machine samples.
const fmDemodAvgAlpha = 0.2

// Sink is the single owner of the pipeline's runtime state: one session's
// NCO, rate converter, power estimator, slicer and protocol state
// machine. It is not safe for concurrent use -- the sample path is
// strictly single-threaded.
type Sink struct {
	cfg config.Config

	nco      dsp.NCO
	rateConv dsp.RateConverter
	power    *dsp.PowerEstimator

	ookSlicer   dsp.OOKSlicer
	phaseSlicer dsp.PhaseSlicer

	machine protocol.Machine

	queue     *report.Queue
	scopeSink scope.Sink

	canonicalScratch [4]complex128 // reused across Feed calls; see Feed
}

// NewSink builds a Sink for the given initial configuration and queue
// capacity. The queue may be read via Messages().
func NewSink(cfg config.Config, queueCapacity int) *Sink {
	s := &Sink{
		queue: report.NewQueue(queueCapacity),
		power: dsp.NewPowerEstimator(shortAvgAlpha, longAvgAlpha),
	}
	s.phaseSlicer.Smooth.Alpha = fmDemodAvgAlpha
	s.ApplyChannelSettings(cfg.ChannelSampleRate, cfg.ChannelFrequencyOffset, true)
	s.ApplySettings(cfg, true)
	return s
}

// Messages returns the outbound report queue's receive side.
func (s *Sink) Messages() <-chan report.Message {
	return s.queue.Messages()
}

// SetScopeSink installs or removes the optional visualization consumer.
// A nil sink disables the tap.
func (s *Sink) SetScopeSink(sink scope.Sink) {
	s.scopeSink = sink
}

// ApplyChannelSettings reconfigures the NCO and rate converter for a new
// channel sample rate / frequency offset. This resets the NCO phase and
// the rate converter's accumulator.
func (s *Sink) ApplyChannelSettings(sampleRate int, frequencyOffset float64, force bool) {
	changed := force || sampleRate != s.cfg.ChannelSampleRate || frequencyOffset != s.cfg.ChannelFrequencyOffset
	if !changed {
		return
	}

	s.nco.SetFreq(frequencyOffset, float64(sampleRate))
	s.nco.Reset()
	s.rateConv.Create(sampleRate, s.cfg.RFBandwidth/2.2)

	s.cfg.ChannelSampleRate = sampleRate
	s.cfg.ChannelFrequencyOffset = frequencyOffset
}

// ApplySettings updates modulation, rf_bandwidth and threshold_db. A
// modulation change resets lock state: a configuration change is treated
// as lock loss.
func (s *Sink) ApplySettings(cfg config.Config, force bool) {
	if force || cfg.RFBandwidth != s.cfg.RFBandwidth {
		s.rateConv.Create(s.cfg.ChannelSampleRate, cfg.RFBandwidth/2.2)
	}

	if force || cfg.ThresholdDB != s.cfg.ThresholdDB {
		lin := dsp.ThresholdLinear(cfg.ThresholdDB)
		s.ookSlicer.ThresholdLin = lin
	}

	if force || cfg.Modulation != s.cfg.Modulation {
		s.power.Reset()
		s.phaseSlicer.Reset()
		s.machine = newMachine(cfg.Modulation, s.queue)
		// A fresh machine starts unlocked but, being a zero-value struct,
		// never actually announces that -- push the status explicitly so
		// a modulation change is observably treated as lock loss.
		s.machine.Reset()
	}

	s.cfg = cfg
}

func newMachine(mod config.Modulation, queue *report.Queue) protocol.Machine {
	switch mod {
	case config.TDF:
		return protocol.NewTDF(queue)
	case config.MSF60:
		return protocol.NewMSF60(queue)
	default:
		return protocol.NewDCF77(queue)
	}
}

// Feed consumes a contiguous block of complex IQ samples at the
// configured channel sample rate. It runs to completion synchronously;
// there are no suspension points inside the pipeline.
func (s *Sink) Feed(iq []complex128) {
	for _, raw := range iq {
		c := raw * s.nco.NextIQ()
		canonical := s.rateConv.Process(c, s.canonicalScratch[:0])
		for _, ci := range canonical {
			s.processOneSample(ci)
		}
	}
}

// processOneSample runs one canonical (1ms) sample through the power
// estimator, slicer, protocol state machine and optional scope tap.
func (s *Sink) processOneSample(ci complex128) {
	magsq, shortAvg, longAvg := s.power.Update(ci)

	var data int
	var threshold, fmDemodAvg float64

	switch s.cfg.Modulation {
	case config.TDF:
		data, fmDemodAvg = s.phaseSlicer.Slice(ci)
	default:
		data, threshold = s.ookSlicer.Slice(shortAvg, longAvg)
	}

	periodBefore := s.machine.Period()
	s.machine.Step(data)
	sampled := isSamplePoint(s.cfg.Modulation, periodBefore+1)

	if s.scopeSink != nil {
		sample := scope.Sample{
			RawI:            real(ci),
			RawQ:            imag(ci),
			Magsq:           magsq,
			MagsqAvg:        longAvg,
			Threshold:       threshold,
			FMDemodAvg:      fmDemodAvg,
			Data:            float64(data),
			SampleMarker:    boolToFloat(sampled),
			GotMinuteMarker: boolToFloat(s.machine.Locked()),
		}
		scope.Feed(s.scopeSink, sample, s.cfg.ScopeCh1, s.cfg.ScopeCh2)
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// LevelMeter exposes the power estimator's peak/avg/count accumulators,
// pulled and reset by an external level-meter consumer.
func (s *Sink) LevelMeter() (peak, avg float64, count int) {
	return s.power.LevelMeter()
}

// Now returns the machine's current DateTime, mainly for tests and for a
// host that wants to poll rather than drain the message queue.
func (s *Sink) Now() clock.DateTime {
	return s.machine.Now()
}

// Locked reports whether the state machine currently holds the minute
// marker lock.
func (s *Sink) Locked() bool {
	return s.machine.Locked()
}

// isSamplePoint reports whether periodCount is one of the protocol's
// defined per-second sampling offsets: used only to drive the scope
// tap's sample_marker channel.
func isSamplePoint(mod config.Modulation, periodCount int) bool {
	switch mod {
	case config.TDF:
		switch periodCount {
		case 12, 62, 112, 162:
			return true
		}
	case config.MSF60:
		switch periodCount {
		case 50, 150, 250:
			return true
		}
	default: // DCF77
		switch periodCount {
		case 50, 150:
			return true
		}
	}
	return false
}
