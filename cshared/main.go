// Command cshared builds the flat C surface of the sound system as a
// shared library:
//
//	go build -buildmode=c-shared -o libsoundsystem.so ./cshared
//
// The exported functions operate on one process-global System, mirroring
// how engine bindings typically consume an audio DLL.
package main

/*
#include <stdbool.h>
*/
import "C"

import (
	"sync"

	soundsystem "github.com/sndkit/go-soundsystem"
)

var (
	mu  sync.Mutex
	sys *soundsystem.System
)

//export InitializeSoundSystem
func InitializeSoundSystem() C.bool {
	mu.Lock()
	defer mu.Unlock()
	if sys != nil {
		return true
	}
	s, err := soundsystem.New(nil)
	if err != nil {
		return false
	}
	sys = s
	return true
}

//export ShutdownSoundSystem
func ShutdownSoundSystem() {
	mu.Lock()
	defer mu.Unlock()
	if sys == nil {
		return
	}
	_ = sys.Close()
	sys = nil
}

//export LoadSound
func LoadSound(filePath, soundId *C.char) C.bool {
	s := current()
	if s == nil || filePath == nil || soundId == nil {
		return false
	}
	return s.Load(C.GoString(soundId), C.GoString(filePath)) == nil
}

//export UnloadSound
func UnloadSound(soundId *C.char) {
	if s := current(); s != nil && soundId != nil {
		_ = s.Unload(C.GoString(soundId))
	}
}

//export SndPlaySound
func SndPlaySound(soundId *C.char, loop C.bool) {
	if s := current(); s != nil && soundId != nil {
		_ = s.Play(C.GoString(soundId), bool(loop))
	}
}

//export StopSound
func StopSound(soundId *C.char) {
	if s := current(); s != nil && soundId != nil {
		_ = s.Stop(C.GoString(soundId))
	}
}

//export PauseSound
func PauseSound(soundId *C.char) {
	if s := current(); s != nil && soundId != nil {
		_ = s.Pause(C.GoString(soundId))
	}
}

//export ResumeSound
func ResumeSound(soundId *C.char) {
	if s := current(); s != nil && soundId != nil {
		_ = s.Resume(C.GoString(soundId))
	}
}

//export SetMasterVolume
func SetMasterVolume(volume C.float) {
	if s := current(); s != nil {
		s.SetMasterVolume(float64(volume))
	}
}

//export SetSoundVolume
func SetSoundVolume(soundId *C.char, volume C.float) {
	if s := current(); s != nil && soundId != nil {
		_ = s.SetVolume(C.GoString(soundId), float64(volume))
	}
}

//export SetSoundPan
func SetSoundPan(soundId *C.char, pan C.float) {
	if s := current(); s != nil && soundId != nil {
		_ = s.SetPan(C.GoString(soundId), float64(pan))
	}
}

//export SetSoundPitch
func SetSoundPitch(soundId *C.char, pitch C.float) {
	if s := current(); s != nil && soundId != nil {
		_ = s.SetPitch(C.GoString(soundId), float64(pitch))
	}
}

//export SetSoundPosition
func SetSoundPosition(soundId *C.char, x, y, z C.float) {
	if s := current(); s != nil && soundId != nil {
		_ = s.SetPosition(C.GoString(soundId), float64(x), float64(y), float64(z))
	}
}

//export SetListenerPosition
func SetListenerPosition(x, y, z C.float) {
	if s := current(); s != nil {
		s.SetListenerPosition(float64(x), float64(y), float64(z))
	}
}

//export SetListenerOrientation
func SetListenerOrientation(forwardX, forwardY, forwardZ C.float) {
	if s := current(); s != nil {
		s.SetListenerOrientation(float64(forwardX), float64(forwardY), float64(forwardZ))
	}
}

//export IsSoundPlaying
func IsSoundPlaying(soundId *C.char) C.bool {
	s := current()
	if s == nil || soundId == nil {
		return false
	}
	return C.bool(s.IsPlaying(C.GoString(soundId)))
}

func current() *soundsystem.System {
	mu.Lock()
	defer mu.Unlock()
	return sys
}

func main() {}
