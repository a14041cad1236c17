//go:build !linux

package soundsystem

func newPulseBackend() (backend, error) {
	return nil, ErrBackendUnavailable
}
