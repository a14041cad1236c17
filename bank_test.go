package soundsystem

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/godoc/vfs/mapfs"
)

func TestLoadBank(t *testing.T) {
	sys := newTestSystem(t)

	manifest := `[
		{"id": "explosion", "path": "sfx/explosion.wav", "volume": 0.5, "pan": -0.25, "pitch": 1.2, "channel": "sfx"},
		{"id": "theme", "path": "music/theme.wav", "channel": "music"},
		{"id": "broken", "path": "sfx/missing.wav"}
	]`
	fs := mapfs.New(map[string]string{
		"sounds.json":       manifest,
		"sfx/explosion.wav": string(wavBytes(defaultSampleRate, 441)),
		"music/theme.wav":   string(wavBytes(defaultSampleRate, 441)),
	})

	require.NoError(t, sys.LoadBank(fs))

	// The broken entry is skipped, the others land with their parameters.
	assert.Len(t, sys.sounds, 2)

	snd := sys.sounds["explosion"]
	require.NotNil(t, snd)
	assert.Equal(t, 0.5, snd.volume)
	assert.Equal(t, -0.25, snd.pan)
	assert.Equal(t, 1.2, snd.pitch)
	assert.Equal(t, ChannelSfx, snd.channel)

	theme := sys.sounds["theme"]
	require.NotNil(t, theme)
	assert.Equal(t, 1.0, theme.volume)
	assert.Equal(t, ChannelMusic, theme.channel)

	require.NoError(t, sys.Play("explosion", false))
	require.Eventually(t, func() bool { return !sys.IsPlaying("explosion") },
		2*time.Second, 5*time.Millisecond)
}

func TestLoadBankBadManifest(t *testing.T) {
	sys := newTestSystem(t)

	require.Error(t, sys.LoadBank(mapfs.New(map[string]string{})),
		"missing manifest")
	require.Error(t, sys.LoadBank(mapfs.New(map[string]string{
		"sounds.json": "not json",
	})))
}

func TestLoadBankUnknownChannelSkipsEntry(t *testing.T) {
	sys := newTestSystem(t)

	fs := mapfs.New(map[string]string{
		"sounds.json": `[{"id": "x", "path": "x.wav", "channel": "drums"}]`,
		"x.wav":       string(wavBytes(defaultSampleRate, 100)),
	})
	require.NoError(t, sys.LoadBank(fs))
	assert.Empty(t, sys.sounds)
}
