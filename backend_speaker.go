package soundsystem

import (
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// speakerBackend plays through the engine's speaker package, which opens
// the platform's default device via oto.
type speakerBackend struct{}

func (b *speakerBackend) start(sampleRate beep.SampleRate, bufferSize int, root beep.Streamer) error {
	if err := speaker.Init(sampleRate, bufferSize); err != nil {
		return err
	}
	speaker.Play(root)
	return nil
}

func (b *speakerBackend) lock()   { speaker.Lock() }
func (b *speakerBackend) unlock() { speaker.Unlock() }

func (b *speakerBackend) close() error {
	speaker.Clear()
	speaker.Close()
	return nil
}
