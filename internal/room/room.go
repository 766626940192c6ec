package room

import (
	"context"
	"errors"
	"time"

	"github.com/lol-team-randomizer/backend/internal/engine"
)

var (
	ErrNotFound      = errors.New("room not found")
	ErrRoomFull      = errors.New("room is full")
	ErrAlreadyExists = errors.New("room code already exists")
	ErrCodeSpaceBusy = errors.New("could not allocate a free room code")
)

// Room is the shared record persisted in the document store. The store
// is the source of truth; clients hold eventually-consistent copies
// delivered through Subscribe.
type Room struct {
	ID               string          `json:"id"`
	CreatedAt        time.Time       `json:"createdAt"`
	Owner            string          `json:"owner"`
	Players          []engine.Player `json:"players"`
	GeneratedTeam    []engine.Player `json:"generatedTeam,omitempty"`
	IncludeChampions bool            `json:"includeChampions"`
	MaxPlayers       int             `json:"maxPlayers"`
	ConnectedPlayers []string        `json:"connectedPlayers"`
}

// Store is the document-store contract the façade runs against. Update
// must apply the mutate closure atomically: the read, the closure and
// the write commit as one unit, so capacity checks cannot be overtaken
// by a concurrent writer.
type Store interface {
	Create(ctx context.Context, r Room) error
	Get(ctx context.Context, code string) (Room, error)
	Update(ctx context.Context, code string, mutate func(Room) (Room, error)) (Room, error)
	DeleteExpired(ctx context.Context, olderThan time.Time) (int, error)
}

// Notifier fans room snapshots out to subscribed clients.
type Notifier interface {
	Publish(r Room)
	Subscribe(code string) (<-chan Room, func())
}
