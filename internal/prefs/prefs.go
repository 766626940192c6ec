// Package prefs persists the last-used session settings under the same
// keys the storage always used.
package prefs

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/lol-team-randomizer/backend/internal/engine"
	"github.com/lol-team-randomizer/backend/internal/kv"
)

const (
	keyPlayers          = "players"
	keyIncludeChampions = "includeChampions"
	keyPlayerCount      = "playerCount"
	keyUsername         = "username"

	defaultPlayerCount = 5
)

type Preferences struct {
	Players          []engine.Player `json:"players"`
	IncludeChampions bool            `json:"includeChampions"`
	PlayerCount      int             `json:"playerCount"`
	Username         string          `json:"username"`
}

type Service struct {
	store kv.Store
}

func NewService(store kv.Store) *Service {
	return &Service{store: store}
}

// Load fills in defaults for keys that were never written.
func (s *Service) Load(ctx context.Context) (Preferences, error) {
	p := Preferences{PlayerCount: defaultPlayerCount}

	if err := s.read(ctx, keyPlayers, &p.Players); err != nil {
		return Preferences{}, err
	}
	if err := s.read(ctx, keyIncludeChampions, &p.IncludeChampions); err != nil {
		return Preferences{}, err
	}
	if err := s.read(ctx, keyPlayerCount, &p.PlayerCount); err != nil {
		return Preferences{}, err
	}
	if err := s.read(ctx, keyUsername, &p.Username); err != nil {
		return Preferences{}, err
	}
	return p, nil
}

func (s *Service) Save(ctx context.Context, p Preferences) error {
	if err := s.write(ctx, keyPlayers, p.Players); err != nil {
		return err
	}
	if err := s.write(ctx, keyIncludeChampions, p.IncludeChampions); err != nil {
		return err
	}
	if err := s.write(ctx, keyPlayerCount, p.PlayerCount); err != nil {
		return err
	}
	return s.write(ctx, keyUsername, p.Username)
}

func (s *Service) read(ctx context.Context, key string, out any) error {
	raw, err := s.store.Get(ctx, key)
	if errors.Is(err, kv.ErrNoValue) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (s *Service) write(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, key, raw)
}
