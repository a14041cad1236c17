package loaders_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sndkit/go-soundsystem/loaders"
)

// wavBytes builds a minimal 16-bit stereo PCM WAV of silence.
func wavBytes(sampleRate, frames int) []byte {
	dataSize := frames * 4
	buf := &bytes.Buffer{}
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(1))
	binary.Write(buf, binary.LittleEndian, uint16(2))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate*4))
	binary.Write(buf, binary.LittleEndian, uint16(4))
	binary.Write(buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(dataSize))
	buf.Write(make([]byte, dataSize))
	return buf.Bytes()
}

func TestDecodeWav(t *testing.T) {
	rc := io.NopCloser(bytes.NewReader(wavBytes(44100, 256)))
	stream, format, err := loaders.Decode(rc, ".wav")
	if err != nil {
		t.Fatalf("error decoding wav: %s", err.Error())
	}
	defer stream.Close()
	if format.SampleRate != 44100 {
		t.Fatalf("expected 44100Hz, got %d", format.SampleRate)
	}
	if stream.Len() != 256 {
		t.Fatalf("expected 256 frames, got %d", stream.Len())
	}
}

func TestDecodeUppercaseExtension(t *testing.T) {
	rc := io.NopCloser(bytes.NewReader(wavBytes(44100, 16)))
	if _, _, err := loaders.Decode(rc, ".WAV"); err != nil {
		t.Fatalf("extension matching should be case-insensitive: %s", err.Error())
	}
}

func TestDecodeUnknownExtension(t *testing.T) {
	rc := io.NopCloser(bytes.NewReader([]byte("data")))
	_, _, err := loaders.Decode(rc, ".xyz")
	if !errors.Is(err, loaders.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestDecodeGarbage(t *testing.T) {
	rc := io.NopCloser(bytes.NewReader([]byte("definitely not a wav file")))
	if _, _, err := loaders.Decode(rc, ".wav"); err == nil {
		t.Fatalf("should not decode garbage without error")
	}
}

func TestDecodeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	if err := os.WriteFile(path, wavBytes(22050, 128), 0o644); err != nil {
		t.Fatal(err)
	}
	stream, format, err := loaders.DecodeFile(path)
	if err != nil {
		t.Fatalf("error decoding file: %s", err.Error())
	}
	defer stream.Close()
	if format.SampleRate != 22050 {
		t.Fatalf("expected 22050Hz, got %d", format.SampleRate)
	}
}

func TestDecodeFileMissing(t *testing.T) {
	if _, _, err := loaders.DecodeFile(filepath.Join(t.TempDir(), "missing.wav")); err == nil {
		t.Fatalf("should not open missing files without error")
	}
}

func TestFormats(t *testing.T) {
	formats := loaders.Formats()
	want := map[string]bool{".wav": false, ".mp3": false, ".ogg": false, ".flac": false}
	for _, ext := range formats {
		if _, ok := want[ext]; ok {
			want[ext] = true
		}
	}
	for ext, seen := range want {
		if !seen {
			t.Fatalf("expected %s in supported formats %v", ext, formats)
		}
	}
}
