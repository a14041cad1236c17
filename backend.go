package soundsystem

import "github.com/gopxl/beep/v2"

// backend abstracts the output device. Start begins pulling from root;
// lock/unlock guard mutation of anything reachable from root against the
// audio goroutine.
type backend interface {
	start(sampleRate beep.SampleRate, bufferSize int, root beep.Streamer) error
	lock()
	unlock()
	close() error
}

func newBackend(kind BackendKind) (backend, error) {
	switch kind {
	case BackendAuto, BackendSpeaker:
		return &speakerBackend{}, nil
	case BackendPulse:
		return newPulseBackend()
	case BackendNull:
		return &nullBackend{}, nil
	}
	return nil, ErrBackendUnavailable
}

func (k BackendKind) String() string {
	switch k {
	case BackendAuto:
		return "auto"
	case BackendSpeaker:
		return "speaker"
	case BackendPulse:
		return "pulse"
	case BackendNull:
		return "null"
	}
	return "unknown"
}
