// Package history keeps a bounded, most-recent-first cache of generated
// teams in the injected key-value store.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/lol-team-randomizer/backend/internal/engine"
	"github.com/lol-team-randomizer/backend/internal/kv"
)

const (
	storageKey = "randomizer-history"
	maxEntries = 20
)

type Entry struct {
	ID                string          `json:"id"`
	Timestamp         time.Time       `json:"timestamp"`
	Team              []engine.Player `json:"team"`
	IncludesChampions bool            `json:"includesChampions"`
}

type Service struct {
	store kv.Store
}

func NewService(store kv.Store) *Service {
	return &Service{store: store}
}

// Add prepends a snapshot of team and trims the list to its cap.
func (s *Service) Add(ctx context.Context, team []engine.Player, includesChampions bool) (Entry, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return Entry{}, err
	}

	entry := Entry{
		ID:                uuid.NewString(),
		Timestamp:         time.Now().UTC(),
		Team:              team,
		IncludesChampions: includesChampions,
	}
	entries = append([]Entry{entry}, entries...)
	if len(entries) > maxEntries {
		entries = entries[:maxEntries]
	}

	if err := s.save(ctx, entries); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// List returns entries most-recent-first; an empty store is an empty list.
func (s *Service) List(ctx context.Context) ([]Entry, error) {
	raw, err := s.store.Get(ctx, storageKey)
	if errors.Is(err, kv.ErrNoValue) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, err
	}

	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Delete removes one entry by id; unknown ids are a no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	entries, err := s.List(ctx)
	if err != nil {
		return err
	}

	kept := entries[:0]
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	return s.save(ctx, kept)
}

func (s *Service) Clear(ctx context.Context) error {
	return s.store.Delete(ctx, storageKey)
}

func (s *Service) save(ctx context.Context, entries []Entry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, storageKey, raw)
}
