package soundsystem

import (
	"encoding/json"
	"fmt"
	"io"
	"path"
	"time"

	"golang.org/x/tools/godoc/vfs"

	"github.com/sndkit/go-soundsystem/loaders"
)

// BankManifest is the file LoadBank expects at the root of the
// filesystem: a JSON list of sounds to preload.
const BankManifest = "sounds.json"

// BankEntry describes one sound in the manifest. Parameter fields are
// optional; absent ones keep their defaults (volume 1, pan 0, pitch 1,
// default channel).
type BankEntry struct {
	Id      string   `json:"id"`
	Path    string   `json:"path"`
	Volume  *float64 `json:"volume,omitempty"`
	Pan     *float64 `json:"pan,omitempty"`
	Pitch   *float64 `json:"pitch,omitempty"`
	Channel string   `json:"channel,omitempty"`
}

// LoadBankFolder loads a sound bank from a regular folder.
// See LoadBank for more information.
func (s *System) LoadBankFolder(folder string) error {
	return s.LoadBank(vfs.OS(folder))
}

// LoadBank loads sounds from a virtual filesystem. At the root there must
// be a "sounds.json" manifest referencing the files to load. Entries that
// fail to load are logged and skipped; LoadBank fails only when the
// manifest itself is unreadable.
func (s *System) LoadBank(fileSystem vfs.Opener) error {
	start := time.Now()
	entries, err := loadManifest(fileSystem, BankManifest)
	if err != nil {
		return err
	}

	loaded := 0
	for _, e := range entries {
		if err := s.loadBankEntry(fileSystem, e); err != nil {
			s.logger.Error("failed to load bank entry", "id", e.Id, "path", e.Path, "err", err)
			continue
		}
		loaded++
	}

	s.logger.Info("loaded sound bank",
		"sounds", loaded, "entries", len(entries),
		"elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

func (s *System) loadBankEntry(fileSystem vfs.Opener, e BankEntry) error {
	ch, err := ParseChannel(e.Channel)
	if err != nil {
		return err
	}
	file, err := fileSystem.Open(e.Path)
	if err != nil {
		return err
	}
	stream, format, err := loaders.Decode(file, path.Ext(e.Path))
	if err != nil {
		_ = file.Close()
		return err
	}
	if err := s.LoadStream(e.Id, stream, format); err != nil {
		return err
	}

	if err := s.SetChannel(e.Id, ch); err != nil {
		return err
	}
	if e.Volume != nil {
		if err := s.SetVolume(e.Id, *e.Volume); err != nil {
			return err
		}
	}
	if e.Pan != nil {
		if err := s.SetPan(e.Id, *e.Pan); err != nil {
			return err
		}
	}
	if e.Pitch != nil {
		if err := s.SetPitch(e.Id, *e.Pitch); err != nil {
			return err
		}
	}
	return nil
}

func loadManifest(fileSystem vfs.Opener, manifestPath string) (entries []BankEntry, err error) {
	file, err := fileSystem.Open(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", manifestPath, err)
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", manifestPath, err)
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", manifestPath, err)
	}
	return entries, nil
}
