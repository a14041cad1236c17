package soundsystem

import "errors"

var (
	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("soundsystem: system is closed")
	// ErrNotLoaded is returned when a sound id is not in the registry.
	ErrNotLoaded = errors.New("soundsystem: sound id not loaded")
	// ErrNotPlaying is returned when an operation requires an active voice.
	ErrNotPlaying = errors.New("soundsystem: sound is not playing")
	// ErrBackendUnavailable is returned when the requested output backend
	// is not supported on this platform.
	ErrBackendUnavailable = errors.New("soundsystem: backend not available on this platform")
	// ErrUnknownChannel is returned for channel names outside the
	// predefined set.
	ErrUnknownChannel = errors.New("soundsystem: unknown channel name")
)
