package soundsystem

import "fmt"

// Channel groups sounds for shared volume and pause control, like mixer
// buses in a game: pausing ChannelMusic silences every sound assigned to
// it without touching per-sound state.
type Channel int

const (
	ChannelDefault Channel = iota
	ChannelMusic
	ChannelAmbience
	ChannelSfx
	ChannelUi
	ChannelDialog
)

var channelNames = map[string]Channel{
	"":         ChannelDefault,
	"default":  ChannelDefault,
	"music":    ChannelMusic,
	"ambience": ChannelAmbience,
	"sfx":      ChannelSfx,
	"ui":       ChannelUi,
	"dialog":   ChannelDialog,
}

// ParseChannel maps a manifest channel name to its Channel. The empty
// string is ChannelDefault.
func ParseChannel(name string) (Channel, error) {
	if c, ok := channelNames[name]; ok {
		return c, nil
	}
	return ChannelDefault, fmt.Errorf("%w: %q", ErrUnknownChannel, name)
}

func (c Channel) String() string {
	switch c {
	case ChannelDefault:
		return "default"
	case ChannelMusic:
		return "music"
	case ChannelAmbience:
		return "ambience"
	case ChannelSfx:
		return "sfx"
	case ChannelUi:
		return "ui"
	case ChannelDialog:
		return "dialog"
	}
	return "unknown"
}

type channelState struct {
	volume float64
	paused bool
}

func (s *System) channelState(c Channel) channelState {
	if st, ok := s.channels[c]; ok {
		return st
	}
	return channelState{volume: 1}
}

// SetChannelVolume scales every sound on the channel by v, clamped to
// [0, 1]. Independent of per-sound and master volume.
func (s *System) SetChannelVolume(c Channel, v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	st := s.channelState(c)
	st.volume = clampF(v, 0, 1)
	s.channels[c] = st
	s.refreshAll()
	s.logger.Info("set channel volume", "channel", c.String(), "volume", st.volume)
}

// PauseChannel silences the channel until ResumeChannel.
func (s *System) PauseChannel(c Channel) {
	s.setChannelPaused(c, true)
}

// ResumeChannel undoes PauseChannel.
func (s *System) ResumeChannel(c Channel) {
	s.setChannelPaused(c, false)
}

func (s *System) setChannelPaused(c Channel, paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	st := s.channelState(c)
	st.paused = paused
	s.channels[c] = st
	s.refreshAll()
	s.logger.Info("set channel paused", "channel", c.String(), "paused", paused)
}

// SetChannel moves a sound to another channel.
func (s *System) SetChannel(id string, c Channel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	snd, err := s.get(id)
	if err != nil {
		return err
	}
	snd.channel = c
	if snd.ctrl != nil {
		s.backend.lock()
		s.applyParams(snd)
		s.backend.unlock()
	}
	return nil
}
