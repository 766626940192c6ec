package room

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"slices"
	"strings"
	"time"

	"github.com/lol-team-randomizer/backend/internal/engine"
)

const (
	codeLength      = 6
	codeCharset     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	maxCodeAttempts = 5

	MsgMissingOwnerName = "Veuillez entrer votre nom"
)

// Service is the synchronization façade: it translates room lifecycle
// operations into store calls and pushes every committed mutation to
// the notifier.
type Service struct {
	store    Store
	notifier Notifier
}

func NewService(store Store, notifier Notifier) *Service {
	return &Service{store: store, notifier: notifier}
}

// GenerateCode returns a random 6-character room code.
func GenerateCode() (string, error) {
	code := make([]byte, codeLength)
	for i := 0; i < codeLength; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeCharset))))
		if err != nil {
			return "", err
		}
		code[i] = codeCharset[num.Int64()]
	}
	return string(code), nil
}

// NormalizeCode makes lookups case-insensitive.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Create allocates a fresh room code and writes the initial record with
// the owner as the sole roster entry and connected player. Code
// generation retries on collision, capped rather than unbounded.
func (s *Service) Create(ctx context.Context, ownerName string, maxPlayers int) (string, error) {
	owner := strings.TrimSpace(ownerName)
	if owner == "" {
		return "", &engine.ValidationError{Message: MsgMissingOwnerName}
	}
	if maxPlayers < 1 {
		maxPlayers = 1
	}
	if maxPlayers > len(engine.RoleOrder) {
		maxPlayers = len(engine.RoleOrder)
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := GenerateCode()
		if err != nil {
			return "", err
		}

		r := Room{
			ID:               code,
			CreatedAt:        time.Now().UTC(),
			Owner:            owner,
			Players:          []engine.Player{{ID: owner, Name: owner}},
			IncludeChampions: false,
			MaxPlayers:       maxPlayers,
			ConnectedPlayers: []string{owner},
		}

		err = s.store.Create(ctx, r)
		if errors.Is(err, ErrAlreadyExists) {
			continue
		}
		if err != nil {
			return "", err
		}
		return code, nil
	}
	return "", ErrCodeSpaceBusy
}

// Join is a read-only lookup; ErrNotFound on a miss.
func (s *Service) Join(ctx context.Context, code string) (Room, error) {
	return s.store.Get(ctx, NormalizeCode(code))
}

// AddPlayer appends a player to the roster and connected set. The
// capacity check and the write happen inside one atomic Update, so two
// concurrent joins cannot both take the last slot. Joining twice with
// the same name is a no-op.
func (s *Service) AddPlayer(ctx context.Context, code, playerName string) error {
	name := strings.TrimSpace(playerName)
	if name == "" {
		return &engine.ValidationError{Message: MsgMissingOwnerName}
	}

	updated, err := s.store.Update(ctx, NormalizeCode(code), func(r Room) (Room, error) {
		if slices.Contains(r.ConnectedPlayers, name) {
			return r, nil
		}
		if len(r.ConnectedPlayers) >= r.MaxPlayers {
			return Room{}, ErrRoomFull
		}
		r.Players = append(slices.Clone(r.Players), engine.Player{ID: name, Name: name})
		r.ConnectedPlayers = append(slices.Clone(r.ConnectedPlayers), name)
		return r, nil
	})
	if err != nil {
		return err
	}
	s.notifier.Publish(updated)
	return nil
}

// ReplaceRoster overwrites the roster wholesale. Host-only by
// convention; the store does not enforce it.
func (s *Service) ReplaceRoster(ctx context.Context, code string, players []engine.Player) error {
	return s.overwrite(ctx, code, func(r Room) Room {
		r.Players = slices.Clone(players)
		return r
	})
}

// PublishTeam overwrites the room's generated team.
func (s *Service) PublishTeam(ctx context.Context, code string, team []engine.Player) error {
	return s.overwrite(ctx, code, func(r Room) Room {
		r.GeneratedTeam = slices.Clone(team)
		return r
	})
}

// SetIncludeChampions overwrites the champion-inclusion option.
func (s *Service) SetIncludeChampions(ctx context.Context, code string, include bool) error {
	return s.overwrite(ctx, code, func(r Room) Room {
		r.IncludeChampions = include
		return r
	})
}

// Subscribe registers a push listener for the room's change stream.
// The returned cancel func stops further deliveries immediately;
// writes already in flight are not retracted.
func (s *Service) Subscribe(code string) (<-chan Room, func()) {
	return s.notifier.Subscribe(NormalizeCode(code))
}

func (s *Service) overwrite(ctx context.Context, code string, apply func(Room) Room) error {
	updated, err := s.store.Update(ctx, NormalizeCode(code), func(r Room) (Room, error) {
		return apply(r), nil
	})
	if err != nil {
		return err
	}
	s.notifier.Publish(updated)
	return nil
}
