// Package playlist sequences music tracks on top of a soundsystem.System.
//
// Tracks are sound ids that must already be loaded. A playlist with one
// track loops it through the engine; with more tracks it plays them in
// order, advancing when the current one drains, and wraps around.
package playlist

import (
	"errors"
	"sync"
	"time"

	soundsystem "github.com/sndkit/go-soundsystem"
)

// DefaultPollInterval is how often the advance loop checks whether the
// current track has finished.
const DefaultPollInterval = 200 * time.Millisecond

var ErrNoTracks = errors.New("playlist: no tracks")

type Playlist struct {
	// PollInterval overrides DefaultPollInterval when set before Play.
	PollInterval time.Duration

	sys    *soundsystem.System
	tracks []string

	mu      sync.Mutex
	current int
	playing bool
	stop    chan struct{}
}

// New creates a playlist over already-loaded sound ids.
func New(sys *soundsystem.System, tracks ...string) *Playlist {
	return &Playlist{sys: sys, tracks: tracks}
}

// Play starts the current track. Multi-track playlists spawn a watcher
// that advances to the next track when the current one finishes.
func (pl *Playlist) Play() error {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	if len(pl.tracks) == 0 {
		return ErrNoTracks
	}
	if pl.playing {
		return nil
	}
	loop := len(pl.tracks) == 1
	if err := pl.sys.Play(pl.tracks[pl.current], loop); err != nil {
		return err
	}
	pl.playing = true
	if !loop {
		pl.stop = make(chan struct{})
		go pl.watch(pl.stop)
	}
	return nil
}

// Stop halts playback and the advance loop. The playlist keeps its
// position, so Play continues with the same track.
func (pl *Playlist) Stop() {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	if !pl.playing {
		return
	}
	pl.playing = false
	if pl.stop != nil {
		close(pl.stop)
		pl.stop = nil
	}
	_ = pl.sys.Stop(pl.tracks[pl.current])
}

// Next skips to the following track, wrapping around.
func (pl *Playlist) Next() error {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	if len(pl.tracks) == 0 {
		return ErrNoTracks
	}
	return pl.advance()
}

// Current returns the id of the current track.
func (pl *Playlist) Current() string {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	if len(pl.tracks) == 0 {
		return ""
	}
	return pl.tracks[pl.current]
}

// advance moves to the next track and, if the playlist is playing,
// starts it. Caller holds pl.mu.
func (pl *Playlist) advance() error {
	wasPlaying := pl.playing
	if wasPlaying {
		_ = pl.sys.Stop(pl.tracks[pl.current])
	}
	pl.current = (pl.current + 1) % len(pl.tracks)
	if !wasPlaying {
		return nil
	}
	return pl.sys.Play(pl.tracks[pl.current], len(pl.tracks) == 1)
}

func (pl *Playlist) watch(stop chan struct{}) {
	interval := pl.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			pl.mu.Lock()
			if pl.playing && !pl.sys.IsPlaying(pl.tracks[pl.current]) {
				_ = pl.advance()
			}
			pl.mu.Unlock()
		}
	}
}
