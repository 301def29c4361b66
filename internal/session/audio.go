package session

import (
	"fmt"

	"github.com/olivier-w/ripple/internal/playback"
	"github.com/olivier-w/ripple/internal/player"
)

// Audio adapts player.Engine to the playback.Engine capability.
type Audio struct {
	*player.Engine
}

func NewAudio(sink player.Sink, volume float64) *Audio {
	return &Audio{Engine: player.NewEngine(sink, volume)}
}

func (a *Audio) Open(path string) (playback.Handle, error) {
	t, err := player.Open(path)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (a *Audio) Load(h playback.Handle) error {
	t, ok := h.(*player.Track)
	if !ok {
		return fmt.Errorf("unexpected handle type %T", h)
	}
	return a.Engine.Load(t)
}
