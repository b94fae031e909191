package scope

import (
	"encoding/binary"
	"math"
	"os"
)

// WriteWAV dumps samples as a stereo, 32-bit IEEE-float WAV file at
// sampleRate: the real component becomes the left channel, the
// imaginary component the right channel. This is the on-disk form the
// CLI's scope-dump flag hands the two selected tap channels to, so they
// can be opened directly in any waveform viewer.
func WriteWAV(path string, samples []complex128, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	const (
		channels      = 2
		bitsPerSample = 32
	)
	blockAlign := channels * bitsPerSample / 8
	byteRate := sampleRate * blockAlign
	dataSize := len(samples) * blockAlign

	buf := make([]byte, 0, 44+dataSize)
	buf = append(buf, "RIFF"...)
	buf = appendUint32(buf, uint32(36+dataSize))
	buf = append(buf, "WAVE"...)

	buf = append(buf, "fmt "...)
	buf = appendUint32(buf, 16)
	buf = appendUint16(buf, 3) // WAVE_FORMAT_IEEE_FLOAT
	buf = appendUint16(buf, channels)
	buf = appendUint32(buf, uint32(sampleRate))
	buf = appendUint32(buf, uint32(byteRate))
	buf = appendUint16(buf, uint16(blockAlign))
	buf = appendUint16(buf, bitsPerSample)

	buf = append(buf, "data"...)
	buf = appendUint32(buf, uint32(dataSize))
	for _, s := range samples {
		buf = appendFloat32(buf, float32(real(s)))
		buf = appendFloat32(buf, float32(imag(s)))
	}

	_, err = f.Write(buf)
	return err
}

func appendUint16(buf []byte, v uint16) []byte {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	return append(buf, b[:]...)
}

func appendUint32(buf []byte, v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return append(buf, b[:]...)
}

func appendFloat32(buf []byte, v float32) []byte {
	return appendUint32(buf, math.Float32bits(v))
}
