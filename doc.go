// Package soundsystem wraps the beep audio engine behind a flat,
// id-based playback API.
//
// A System owns the audio device, a master volume bus and a registry of
// named sounds. Sounds are decoded fully into memory on Load and can then
// be played, stopped, paused and resumed by id. Per-sound volume, pan and
// pitch as well as a simple 3D model (source positions plus a single
// listener) are forwarded to the engine's effect chain.
//
// Decoding, mixing, resampling and device I/O are entirely delegated to
// github.com/gopxl/beep/v2; this package is the bookkeeping around it.
package soundsystem
