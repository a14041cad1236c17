package soundsystem

import (
	"sync/atomic"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"

	"github.com/sndkit/go-soundsystem/spatial"
)

// Sound is one registry entry: the fully decoded samples plus the
// persistent playback parameters and, while audible, the live effect
// chain feeding the mixer.
type Sound struct {
	id      string
	buf     *beep.Buffer
	channel Channel

	volume   float64 // [0, 1]
	pan      float64 // [-1, 1]
	pitch    float64 // > 0, 1 is native speed
	position spatial.Vec3

	// Live voice, nil while idle. The chain is
	// buffer -> loop -> resampler -> volume -> pan -> ctrl -> mixer.
	ctrl      *beep.Ctrl
	volNode   *effects.Volume
	panNode   *effects.Pan
	resampler *beep.Resampler
	done      *atomic.Bool
	loop      bool
	paused    bool
}

// active reports whether the voice exists and has not drained on its own.
func (snd *Sound) active() bool {
	return snd.ctrl != nil && !snd.done.Load()
}

// startVoice builds a fresh chain from frame 0. The voice is not audible
// until the caller adds snd.ctrl to the mixer.
func (snd *Sound) startVoice(quality int, loop bool) error {
	base := snd.buf.Streamer(0, snd.buf.Len())
	var src beep.Streamer = base
	if loop {
		looped, err := beep.Loop2(base)
		if err != nil {
			return err
		}
		src = looped
	}
	done := &atomic.Bool{}
	resampler := beep.ResampleRatio(quality, snd.pitch, src)
	vol := &effects.Volume{Streamer: resampler, Base: volumeBase}
	pan := &effects.Pan{Streamer: vol}
	ctrl := &beep.Ctrl{
		Streamer: beep.Seq(pan, beep.Callback(func() { done.Store(true) })),
	}

	snd.ctrl = ctrl
	snd.volNode = vol
	snd.panNode = pan
	snd.resampler = resampler
	snd.done = done
	snd.loop = loop
	snd.paused = false
	return nil
}

// clearVoice forgets the chain. The caller must already have starved the
// ctrl (set its Streamer to nil under the backend lock) so the mixer drops
// it.
func (snd *Sound) clearVoice() {
	snd.ctrl = nil
	snd.volNode = nil
	snd.panNode = nil
	snd.resampler = nil
	snd.done = nil
	snd.loop = false
	snd.paused = false
}
