package soundsystem

import (
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
)

const nullChunkFrames = 512

// nullBackend drains the root streamer at roughly real-time pace without
// touching any device. Sounds still start, progress and finish, which makes
// it suitable for tests and machines without audio hardware.
type nullBackend struct {
	mu   sync.Mutex
	done chan struct{}
}

func (b *nullBackend) start(sampleRate beep.SampleRate, _ int, root beep.Streamer) error {
	b.done = make(chan struct{})
	go b.loop(sampleRate, root)
	return nil
}

func (b *nullBackend) loop(sampleRate beep.SampleRate, root beep.Streamer) {
	var buf [nullChunkFrames][2]float64
	sleep := time.Duration(float64(time.Second) * nullChunkFrames / float64(sampleRate))
	for {
		select {
		case <-b.done:
			return
		default:
		}
		b.mu.Lock()
		root.Stream(buf[:])
		b.mu.Unlock()
		time.Sleep(sleep)
	}
}

func (b *nullBackend) lock()   { b.mu.Lock() }
func (b *nullBackend) unlock() { b.mu.Unlock() }

func (b *nullBackend) close() error {
	close(b.done)
	return nil
}
