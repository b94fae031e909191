// Package audiosrc is a practical stand-in SDR front end: it captures
// real-time samples from a soundcard via PortAudio and hands them to a
// Sink as the channel IQ stream. This is the same technique amateur radio
// operators use to receive DCF77/MSF60/TDF with nothing more than an
// outboard ferrite-rod receiver feeding a sound card line-in -- the
// envelope arriving at the audio input already carries the OOK/phase
// modulation the core pipeline expects, one real-valued "I" sample per
// frame with "Q" left at zero.
//
// The SDR front-end proper is explicitly out of scope for the core
// decoder; this package exists only so the daemon in cmd/goradioclockd
// has something concrete to feed Sink.Feed with.
package audiosrc

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// Source streams mono audio samples from a capture device as a complex
// IQ stream (Q held at zero).
type Source struct {
	stream     *portaudio.Stream
	buf        []float32
	SampleRate int
}

// Open starts capturing from the given device index at sampleRate with
// the given frame buffer size. deviceIndex < 0 selects the system
// default input device.
func Open(deviceIndex, sampleRate, framesPerBuffer int) (*Source, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("audiosrc: initialize: %w", err)
	}

	dev, err := inputDevice(deviceIndex)
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}

	s := &Source{
		buf:        make([]float32, framesPerBuffer),
		SampleRate: sampleRate,
	}

	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   dev,
			Channels: 1,
			Latency:  dev.DefaultLowInputLatency,
		},
		SampleRate:      float64(sampleRate),
		FramesPerBuffer: framesPerBuffer,
	}

	stream, err := portaudio.OpenStream(params, s.buf)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("audiosrc: open stream: %w", err)
	}
	s.stream = stream

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("audiosrc: start stream: %w", err)
	}

	return s, nil
}

func inputDevice(index int) (*portaudio.DeviceInfo, error) {
	if index < 0 {
		return portaudio.DefaultInputDevice()
	}
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("audiosrc: list devices: %w", err)
	}
	if index >= len(devices) {
		return nil, fmt.Errorf("audiosrc: device index %d out of range (%d devices)", index, len(devices))
	}
	return devices[index], nil
}

// Read blocks until one buffer of samples is available and appends them
// to dst as complex IQ samples (Q = 0), returning the extended slice.
func (s *Source) Read(dst []complex128) ([]complex128, error) {
	if err := s.stream.Read(); err != nil {
		return dst, fmt.Errorf("audiosrc: read: %w", err)
	}
	for _, v := range s.buf {
		dst = append(dst, complex(float64(v), 0))
	}
	return dst, nil
}

// Close stops capture and releases PortAudio resources.
func (s *Source) Close() error {
	if s.stream == nil {
		return nil
	}
	err := s.stream.Close()
	portaudio.Terminate()
	return err
}
