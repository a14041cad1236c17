// Package loaders selects an audio decoder by file extension.
//
// All decoding is done by the engine's format packages; this package only
// routes to the right one.
package loaders

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// ErrUnsupported is returned for extensions with no registered decoder.
var ErrUnsupported = errors.New("loaders: unsupported audio format")

// DecodeFunc decodes one container format into a seekable stream.
type DecodeFunc func(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error)

var decoders = map[string]DecodeFunc{
	".wav": func(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
		return wav.Decode(rc)
	},
	".mp3": func(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
		return mp3.Decode(rc)
	},
	".ogg": func(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
		return vorbis.Decode(rc)
	},
	".oga": func(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
		return vorbis.Decode(rc)
	},
	".flac": func(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
		return flac.Decode(rc)
	},
}

// Formats lists the supported extensions, sorted.
func Formats() []string {
	exts := make([]string, 0, len(decoders))
	for ext := range decoders {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Decode decodes rc as the format implied by ext (".wav", ".mp3", ...).
// The returned stream reads from rc; closing the stream closes rc.
func Decode(rc io.ReadCloser, ext string) (beep.StreamSeekCloser, beep.Format, error) {
	dec, ok := decoders[strings.ToLower(ext)]
	if !ok {
		return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
	return dec(rc)
}

// DecodeFile opens path and decodes it according to its extension.
func DecodeFile(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}
	stream, format, err := Decode(f, filepath.Ext(path))
	if err != nil {
		_ = f.Close()
		return nil, beep.Format{}, fmt.Errorf("%s: %w", path, err)
	}
	return stream, format, nil
}
