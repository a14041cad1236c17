package soundsystem

import (
	"fmt"
	"math"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"

	"github.com/sndkit/go-soundsystem/loaders"
	"github.com/sndkit/go-soundsystem/spatial"
)

// volumeBase makes effects.Volume exponents behave like log2 gain, so a
// linear gain g maps to Volume = log2(g).
const volumeBase = 2

// System owns the output device, the master bus and the id-keyed sound
// registry. All methods are safe for concurrent use.
type System struct {
	mu sync.Mutex

	sampleRate beep.SampleRate
	format     beep.Format
	quality    int
	logger     *log.Logger

	backend backend
	mixer   *beep.Mixer
	master  *effects.Volume

	sounds   map[string]*Sound
	channels map[Channel]channelState
	listener spatial.Listener
	atten    spatial.Attenuation

	closed bool
}

// New opens the output device and returns a ready System.
func New(opts *Options) (*System, error) {
	o := opts.withDefaults()

	be, err := newBackend(o.Backend)
	if err != nil {
		return nil, err
	}

	s := &System{
		sampleRate: beep.SampleRate(o.SampleRate),
		quality:    o.Quality,
		logger:     o.Logger,
		backend:    be,
		mixer:      &beep.Mixer{},
		sounds:     make(map[string]*Sound),
		channels:   make(map[Channel]channelState),
		listener:   spatial.DefaultListener(),
		atten:      spatial.DefaultAttenuation(),
	}
	s.format = beep.Format{SampleRate: s.sampleRate, NumChannels: 2, Precision: 2}
	s.master = &effects.Volume{Streamer: s.mixer, Base: volumeBase}

	if err := be.start(s.sampleRate, s.sampleRate.N(o.BufferSize), s.master); err != nil {
		return nil, fmt.Errorf("soundsystem: backend init: %w", err)
	}

	s.logger.Info("initialized", "sample_rate", o.SampleRate, "backend", o.Backend.String())
	return s, nil
}

// Close stops every sound and releases the output device. The System
// cannot be reused afterwards.
func (s *System) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	for _, snd := range s.sounds {
		s.stopVoice(snd)
	}
	s.sounds = make(map[string]*Sound)
	err := s.backend.close()
	s.closed = true
	s.logger.Info("shut down")
	return err
}

// Load decodes the file at path fully into memory and registers it under
// id. Loading an id twice keeps the first sound and succeeds, so callers
// can re-run their setup safely.
func (s *System) Load(id, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if _, ok := s.sounds[id]; ok {
		s.logger.Warn("sound id already loaded, keeping existing", "id", id)
		return nil
	}
	stream, format, err := loaders.DecodeFile(path)
	if err != nil {
		s.logger.Error("failed to load sound", "id", id, "path", path, "err", err)
		return err
	}
	snd, err := s.bufferStream(id, stream, format)
	if err != nil {
		s.logger.Error("failed to decode sound", "id", id, "path", path, "err", err)
		return err
	}
	s.sounds[id] = snd
	s.logger.Info("loaded sound", "id", id, "path", path, "frames", snd.buf.Len())
	return nil
}

// LoadStream registers an already-decoded stream under id. The stream is
// fully buffered (and closed) before LoadStream returns.
func (s *System) LoadStream(id string, stream beep.StreamSeekCloser, format beep.Format) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if _, ok := s.sounds[id]; ok {
		s.logger.Warn("sound id already loaded, keeping existing", "id", id)
		return nil
	}
	snd, err := s.bufferStream(id, stream, format)
	if err != nil {
		s.logger.Error("failed to decode sound", "id", id, "err", err)
		return err
	}
	s.sounds[id] = snd
	s.logger.Info("loaded sound", "id", id, "frames", snd.buf.Len())
	return nil
}

// bufferStream drains stream into an in-memory buffer at the system rate.
func (s *System) bufferStream(id string, stream beep.StreamSeekCloser, format beep.Format) (*Sound, error) {
	defer stream.Close()

	var src beep.Streamer = stream
	if format.SampleRate != s.sampleRate {
		src = beep.Resample(s.quality, format.SampleRate, s.sampleRate, stream)
	}
	buf := beep.NewBuffer(s.format)
	buf.Append(src)
	if err := stream.Err(); err != nil {
		return nil, err
	}
	return &Sound{id: id, buf: buf, volume: 1, pitch: 1}, nil
}

// Unload stops the sound if it is playing and drops it from the registry.
func (s *System) Unload(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	snd, err := s.get(id)
	if err != nil {
		return err
	}
	s.stopVoice(snd)
	delete(s.sounds, id)
	s.logger.Info("unloaded sound", "id", id)
	return nil
}

// Play starts the sound from the beginning, restarting it if it is
// already playing. With loop the sound repeats until Stop or Unload.
func (s *System) Play(id string, loop bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	snd, err := s.get(id)
	if err != nil {
		return err
	}
	s.stopVoice(snd)
	if err := snd.startVoice(s.quality, loop); err != nil {
		s.logger.Error("failed to play sound", "id", id, "err", err)
		return err
	}
	s.backend.lock()
	s.applyParams(snd)
	s.mixer.Add(snd.ctrl)
	s.backend.unlock()
	s.logger.Info("playing sound", "id", id, "loop", loop)
	return nil
}

// Stop halts playback and rewinds; the next Play starts from frame 0.
// Stopping a sound that is not playing is a logged no-op.
func (s *System) Stop(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	snd, err := s.get(id)
	if err != nil {
		return err
	}
	if !snd.active() {
		s.logger.Debug("sound not playing, nothing to stop", "id", id)
		s.stopVoice(snd)
		return nil
	}
	s.stopVoice(snd)
	s.logger.Info("stopped sound", "id", id)
	return nil
}

// Pause freezes playback keeping the position.
func (s *System) Pause(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	snd, err := s.get(id)
	if err != nil {
		return err
	}
	if !snd.active() {
		s.logger.Warn("attempted to pause sound that is not playing", "id", id)
		return fmt.Errorf("%w: %q", ErrNotPlaying, id)
	}
	snd.paused = true
	s.backend.lock()
	s.applyParams(snd)
	s.backend.unlock()
	s.logger.Info("paused sound", "id", id)
	return nil
}

// Resume continues a paused sound from where Pause left it.
func (s *System) Resume(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	snd, err := s.get(id)
	if err != nil {
		return err
	}
	if !snd.active() {
		s.logger.Warn("attempted to resume sound that is not playing", "id", id)
		return fmt.Errorf("%w: %q", ErrNotPlaying, id)
	}
	snd.paused = false
	s.backend.lock()
	s.applyParams(snd)
	s.backend.unlock()
	s.logger.Info("resumed sound", "id", id)
	return nil
}

// IsPlaying reports whether the sound is audible right now. Paused sounds,
// sounds on a paused channel and unknown ids report false.
func (s *System) IsPlaying(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	snd, ok := s.sounds[id]
	if !ok {
		return false
	}
	if !snd.active() || snd.paused {
		return false
	}
	return !s.channelState(snd.channel).paused
}

// SetMasterVolume scales the whole mix. v is clamped to [0, 1].
func (s *System) SetMasterVolume(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	v = clampF(v, 0, 1)
	s.backend.lock()
	applyGain(s.master, v)
	s.backend.unlock()
	s.logger.Info("set master volume", "volume", v)
}

// SetVolume sets the sound's own gain, clamped to [0, 1]. The effective
// gain also includes channel volume and distance attenuation.
func (s *System) SetVolume(id string, v float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	snd, err := s.get(id)
	if err != nil {
		return err
	}
	snd.volume = clampF(v, 0, 1)
	s.refreshSound(snd)
	s.logger.Info("set sound volume", "id", id, "volume", snd.volume)
	return nil
}

// SetPan sets the sound's base stereo position, clamped to [-1, 1].
// Spatial panning from the 3D position is added on top.
func (s *System) SetPan(id string, pan float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	snd, err := s.get(id)
	if err != nil {
		return err
	}
	snd.pan = clampF(pan, -1, 1)
	s.refreshSound(snd)
	s.logger.Info("set sound pan", "id", id, "pan", snd.pan)
	return nil
}

// SetPitch sets the playback rate multiplier; 1 is native speed. Values
// at or below zero are coerced to 0.001 rather than rejected.
func (s *System) SetPitch(id string, pitch float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	snd, err := s.get(id)
	if err != nil {
		return err
	}
	if pitch <= 0 {
		pitch = 0.001
	}
	snd.pitch = pitch
	s.refreshSound(snd)
	s.logger.Info("set sound pitch", "id", id, "pitch", snd.pitch)
	return nil
}

// SetPosition places the sound in the 3D scene. Gain and pan are derived
// from the distance and direction to the listener.
func (s *System) SetPosition(id string, x, y, z float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	snd, err := s.get(id)
	if err != nil {
		return err
	}
	snd.position = spatial.Vec3{X: x, Y: y, Z: z}
	s.refreshSound(snd)
	s.logger.Info("set sound position", "id", id, "x", x, "y", y, "z", z)
	return nil
}

// SetListenerPosition moves the listener; every playing sound is
// re-spatialized.
func (s *System) SetListenerPosition(x, y, z float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.listener.Position = spatial.Vec3{X: x, Y: y, Z: z}
	s.refreshAll()
	s.logger.Info("set listener position", "x", x, "y", y, "z", z)
}

// SetListenerOrientation sets the listener's forward vector. The up
// vector stays (0, 1, 0).
func (s *System) SetListenerOrientation(fx, fy, fz float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.listener.Forward = spatial.Vec3{X: fx, Y: fy, Z: fz}
	s.refreshAll()
	s.logger.Info("set listener orientation", "fx", fx, "fy", fy, "fz", fz)
}

// SetAttenuation replaces the distance rolloff model for all sounds.
func (s *System) SetAttenuation(a spatial.Attenuation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.atten = a
	s.refreshAll()
}

// get looks up a sound, logging a warning for unknown ids the way the
// rest of the API reports them.
func (s *System) get(id string) (*Sound, error) {
	snd, ok := s.sounds[id]
	if !ok {
		s.logger.Warn("unknown sound id", "id", id)
		return nil, fmt.Errorf("%w: %q", ErrNotLoaded, id)
	}
	return snd, nil
}

// stopVoice starves the sound's ctrl so the mixer drops it, then forgets
// the chain. Safe to call on idle sounds.
func (s *System) stopVoice(snd *Sound) {
	if snd.ctrl == nil {
		return
	}
	s.backend.lock()
	snd.ctrl.Streamer = nil
	s.backend.unlock()
	snd.clearVoice()
}

// applyParams pushes the effective volume, pan, pitch and pause state
// into the live chain. The caller must hold the backend lock, unless the
// voice is not yet reachable by the audio goroutine.
func (s *System) applyParams(snd *Sound) {
	if snd.ctrl == nil {
		return
	}
	gain, span := spatial.Spatialize(s.listener, snd.position, s.atten)
	ch := s.channelState(snd.channel)
	applyGain(snd.volNode, snd.volume*ch.volume*gain)
	snd.panNode.Pan = clampF(snd.pan+span, -1, 1)
	snd.resampler.SetRatio(snd.pitch)
	snd.ctrl.Paused = snd.paused || ch.paused
}

// refreshSound re-applies one sound's parameters under the backend lock.
func (s *System) refreshSound(snd *Sound) {
	if snd.ctrl == nil {
		return
	}
	s.backend.lock()
	s.applyParams(snd)
	s.backend.unlock()
}

// refreshAll re-applies every sound's parameters under one backend lock.
func (s *System) refreshAll() {
	s.backend.lock()
	for _, snd := range s.sounds {
		s.applyParams(snd)
	}
	s.backend.unlock()
}

// applyGain maps a linear gain to the volume node's exponent, using
// Silent for full mute since log2(0) is not representable.
func applyGain(node *effects.Volume, g float64) {
	if g <= 0 {
		node.Silent = true
		return
	}
	node.Silent = false
	node.Volume = math.Log2(g)
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
