// Package store provides room.Store implementations: an in-memory map
// for tests and single-node deployments, and a postgres-backed store
// for anything shared.
package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/lol-team-randomizer/backend/internal/room"
)

// Memory keeps rooms in a mutex-guarded map. Update runs its mutate
// closure under the lock, which is what makes capacity checks safe
// against concurrent joins.
type Memory struct {
	mu    sync.Mutex
	rooms map[string]room.Room
}

func NewMemory() *Memory {
	return &Memory{rooms: make(map[string]room.Room)}
}

func (m *Memory) Create(ctx context.Context, r room.Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.rooms[r.ID]; exists {
		return room.ErrAlreadyExists
	}
	m.rooms[r.ID] = cloneRoom(r)
	return nil
}

func (m *Memory) Get(ctx context.Context, code string) (room.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.rooms[code]
	if !ok {
		return room.Room{}, room.ErrNotFound
	}
	return cloneRoom(r), nil
}

func (m *Memory) Update(ctx context.Context, code string, mutate func(room.Room) (room.Room, error)) (room.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.rooms[code]
	if !ok {
		return room.Room{}, room.ErrNotFound
	}

	updated, err := mutate(cloneRoom(r))
	if err != nil {
		return room.Room{}, err
	}
	updated.ID = code
	m.rooms[code] = cloneRoom(updated)
	return updated, nil
}

func (m *Memory) DeleteExpired(ctx context.Context, olderThan time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	deleted := 0
	for code, r := range m.rooms {
		if r.CreatedAt.Before(olderThan) {
			delete(m.rooms, code)
			deleted++
		}
	}
	return deleted, nil
}

func cloneRoom(r room.Room) room.Room {
	r.Players = slices.Clone(r.Players)
	r.GeneratedTeam = slices.Clone(r.GeneratedTeam)
	r.ConnectedPlayers = slices.Clone(r.ConnectedPlayers)
	return r
}
