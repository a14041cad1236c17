package soundsystem

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

// wavBytes builds a 16-bit stereo PCM WAV containing a 440Hz sine.
func wavBytes(sampleRate, frames int) []byte {
	dataSize := frames * 4
	buf := &bytes.Buffer{}
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(1)) // linear PCM
	binary.Write(buf, binary.LittleEndian, uint16(2)) // stereo
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate*4))
	binary.Write(buf, binary.LittleEndian, uint16(4))
	binary.Write(buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(dataSize))
	for i := 0; i < frames; i++ {
		v := int16(math.Sin(2*math.Pi*440*float64(i)/float64(sampleRate)) * 16000)
		binary.Write(buf, binary.LittleEndian, v)
		binary.Write(buf, binary.LittleEndian, v)
	}
	return buf.Bytes()
}

func newTestSystem(t *testing.T) *System {
	t.Helper()
	sys, err := New(&Options{
		Backend: BackendNull,
		Logger:  log.New(io.Discard),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sys.Close() })
	return sys
}

// loadTone registers a sine tone of the given duration under id.
func loadTone(t *testing.T, sys *System, id string, d time.Duration) {
	t.Helper()
	path := filepath.Join(t.TempDir(), id+".wav")
	frames := int(float64(defaultSampleRate) * d.Seconds())
	if frames < 1 {
		frames = 1
	}
	require.NoError(t, os.WriteFile(path, wavBytes(defaultSampleRate, frames), 0o644))
	require.NoError(t, sys.Load(id, path))
}
