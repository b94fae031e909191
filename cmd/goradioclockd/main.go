// Command goradioclockd wires a soundcard capture front end, the
// goradioclock core pipeline, and a console report sink together. It
// plays the role of the external collaborators the core decoder leaves
// out of scope (SDR front end, report consumer, scope sink), and
// contains no decoding logic of its own.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	goradioclock "github.com/f4exb/goradioclock"
	"github.com/f4exb/goradioclock/internal/audiosrc"
	"github.com/f4exb/goradioclock/internal/config"
	"github.com/f4exb/goradioclock/internal/dsp"
	"github.com/f4exb/goradioclock/internal/report"
	"github.com/f4exb/goradioclock/internal/scope"
)

func main() {
	var (
		configPath   = pflag.StringP("config", "c", "", "Path to a YAML config file.")
		modulation   = pflag.StringP("modulation", "m", "DCF77", "Modulation: DCF77, TDF or MSF60.")
		rfBandwidth  = pflag.Float64P("rf-bandwidth", "b", 600, "RF bandwidth in Hz.")
		thresholdDB  = pflag.Float64P("threshold", "t", 16.5, "OOK slicer threshold, dB below the long-term average.")
		sampleRate   = pflag.IntP("sample-rate", "s", 48000, "Capture sample rate in Hz.")
		freqOffset   = pflag.Float64P("freq-offset", "f", 0, "Channel frequency offset in Hz.")
		deviceIndex  = pflag.IntP("device", "d", -1, "PortAudio capture device index (-1 = default).")
		listDevices  = pflag.Bool("list-devices", false, "List capture devices and exit.")
		scopeWavPath = pflag.String("scope-wav", "", "Record the two scope tap channels and write them to this path as a stereo float32 WAV on exit.")
		scopeSeconds = pflag.Int("scope-seconds", 60, "Seconds of scope tap history to retain when -scope-wav is set.")
		help         = pflag.Bool("help", false, "Display help text.")
	)
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help {
		pflag.Usage()
		return
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "goradioclockd"})

	if *listDevices {
		devices, err := audiosrc.ListCaptureDevices()
		if err != nil {
			logger.Fatal("list devices", "err", err)
		}
		for i, d := range devices {
			fmt.Printf("%d: %s (%s)\n", i, d.Name, d.Node)
		}
		return
	}

	cfg := config.DefaultConfig()
	if *configPath != "" {
		fc, err := config.Load(*configPath)
		if err != nil {
			logger.Fatal("load config", "err", err)
		}
		cfg = fc.ToConfig()
	} else {
		mod, ok := config.ParseModulation(*modulation)
		if !ok {
			logger.Fatal("unknown modulation", "modulation", *modulation)
		}
		cfg.Modulation = mod
		cfg.RFBandwidth = *rfBandwidth
		cfg.ThresholdDB = *thresholdDB
		cfg.ChannelSampleRate = *sampleRate
		cfg.ChannelFrequencyOffset = *freqOffset
	}

	logger.Info("starting", "modulation", cfg.Modulation, "sample_rate", cfg.ChannelSampleRate)

	src, err := audiosrc.Open(*deviceIndex, cfg.ChannelSampleRate, 1024)
	if err != nil {
		logger.Fatal("open audio source", "err", err)
	}
	defer src.Close()

	sink := goradioclock.NewSink(cfg, 64)

	var rec *scope.Recorder
	if *scopeWavPath != "" {
		rec = scope.NewRecorder(dsp.CanonicalRate * *scopeSeconds)
		sink.SetScopeSink(rec)
	}

	go consumeReports(logger, sink.Messages())
	go flushScopeOnSignal(logger, rec, *scopeWavPath, dsp.CanonicalRate)

	iqBuf := make([]complex128, 0, 1024)
	for {
		iqBuf = iqBuf[:0]
		iqBuf, err = src.Read(iqBuf)
		if err != nil {
			logger.Error("audio read", "err", err)
			continue
		}
		sink.Feed(iqBuf)
	}
}

// flushScopeOnSignal waits for an interrupt or termination signal, then
// (if scope recording was requested) writes the recorder's buffered
// samples to path before exiting the process. It is a no-op wait when
// rec is nil, so it can always be started.
func flushScopeOnSignal(logger *log.Logger, rec *scope.Recorder, path string, sampleRate int) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	if rec != nil {
		if err := scope.WriteWAV(path, rec.Samples(), sampleRate); err != nil {
			logger.Error("write scope wav", "path", path, "err", err)
		} else {
			logger.Info("wrote scope wav", "path", path)
		}
	}
	os.Exit(0)
}

func consumeReports(logger *log.Logger, messages <-chan report.Message) {
	for msg := range messages {
		switch m := msg.(type) {
		case report.MsgStatus:
			logger.Info("status", "text", m.Text)
		case report.MsgDateTime:
			logger.Info("datetime", "time", report.FormatDateTime(m))
		}
	}
}
