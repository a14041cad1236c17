package soundsystem

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// BackendKind selects the output device implementation.
type BackendKind int

const (
	// BackendAuto picks the default backend for the platform.
	BackendAuto BackendKind = iota
	// BackendSpeaker plays through the engine's speaker package (oto).
	BackendSpeaker
	// BackendPulse plays through a PulseAudio stream. Linux only.
	BackendPulse
	// BackendNull consumes audio without a device. Useful for tests and
	// headless environments.
	BackendNull
)

const (
	defaultSampleRate = 44100
	defaultBufferSize = 100 * time.Millisecond
	defaultQuality    = 3
)

// Options configures a System. The zero value is usable; any zero field is
// replaced with its default.
type Options struct {
	// SampleRate is the mixing rate in Hz. Sounds with a different native
	// rate are resampled once at load time. Defaults to 44100.
	SampleRate int

	// BufferSize is the device buffer length. Larger values add latency,
	// smaller ones risk underruns. Defaults to 100ms.
	BufferSize time.Duration

	// Backend selects the output device implementation.
	Backend BackendKind

	// Quality is the resampler quality (1..64) used for load-time
	// resampling and pitch shifting. Defaults to 3.
	Quality int

	// Logger receives the operation log. Defaults to a stderr logger with
	// the "soundsystem" prefix.
	Logger *log.Logger
}

func (o *Options) withDefaults() Options {
	var opts Options
	if o != nil {
		opts = *o
	}
	if opts.SampleRate <= 0 {
		opts.SampleRate = defaultSampleRate
	}
	if opts.BufferSize <= 0 {
		opts.BufferSize = defaultBufferSize
	}
	if opts.Quality <= 0 {
		opts.Quality = defaultQuality
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "soundsystem"})
	}
	return opts
}
