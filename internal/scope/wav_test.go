package scope

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteWAVHeaderAndSamples(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scope.wav")
	samples := []complex128{complex(1, -1), complex(0.5, 0.25)}

	require.NoError(t, WriteWAV(path, samples, 1000))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	const headerSize = 44
	require.Len(t, data, headerSize+len(samples)*2*4)

	require.Equal(t, "RIFF", string(data[0:4]))
	require.Equal(t, "WAVE", string(data[8:12]))
	require.Equal(t, "fmt ", string(data[12:16]))
	require.EqualValues(t, 3, binary.LittleEndian.Uint16(data[20:22]), "format tag must be IEEE float")
	require.EqualValues(t, 2, binary.LittleEndian.Uint16(data[22:24]), "channel count")
	require.EqualValues(t, 1000, binary.LittleEndian.Uint32(data[24:28]), "sample rate")
	require.EqualValues(t, 32, binary.LittleEndian.Uint16(data[34:36]), "bits per sample")
	require.Equal(t, "data", string(data[36:40]))

	left0 := math.Float32frombits(binary.LittleEndian.Uint32(data[44:48]))
	right0 := math.Float32frombits(binary.LittleEndian.Uint32(data[48:52]))
	require.InDelta(t, 1.0, left0, 1e-6)
	require.InDelta(t, -1.0, right0, 1e-6)
}
