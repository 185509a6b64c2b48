package assets

import (
	"bytes"
	"embed"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/milk9111/kinematic/controller"
)

//go:embed *.wav
var assetsFS embed.FS

const sampleRate = 44100

// LoadFile loads an embedded asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	return assetsFS.ReadFile(cleanAssetPath(path))
}

// LoadAudioPlayer decodes an embedded wav into a player on ctx.
func LoadAudioPlayer(ctx *audio.Context, path string) (*audio.Player, error) {
	b, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(strings.ToLower(path), ".wav") {
		return nil, fmt.Errorf("assets: %q is not a wav file", path)
	}
	stream, err := wav.DecodeWithSampleRate(ctx.SampleRate(), bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode wav %q: %w", path, err)
	}
	return ctx.NewPlayer(stream)
}

// SoundFor names the clip played for a controller event, or "" for none.
func SoundFor(evt controller.Event) string {
	switch evt.Type {
	case controller.EventGrounded:
		return "land.wav"
	case controller.EventJumpFired:
		switch {
		case evt.WallBounce:
			return "wall_bounce.wav"
		case evt.Jump.Air():
			return "air_jump.wav"
		default:
			return "jump.wav"
		}
	}
	return ""
}

// Sounds plays one clip per controller event.
type Sounds struct {
	players map[string]*audio.Player
}

// NewSounds decodes every clip SoundFor can return.
func NewSounds() (*Sounds, error) {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	}
	s := &Sounds{players: map[string]*audio.Player{}}
	for _, name := range []string{"land.wav", "jump.wav", "air_jump.wav", "wall_bounce.wav"} {
		p, err := LoadAudioPlayer(ctx, name)
		if err != nil {
			return nil, err
		}
		s.players[name] = p
	}
	return s, nil
}

// Play restarts the clip for evt.
func (s *Sounds) Play(evt controller.Event) {
	if s == nil {
		return
	}
	p, ok := s.players[SoundFor(evt)]
	if !ok {
		return
	}
	_ = p.Rewind()
	p.Play()
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if filepath.IsAbs(path) {
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	return strings.TrimPrefix(s, "assets/")
}
