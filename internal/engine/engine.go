package engine

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

var ErrInvalidRosterSize = errors.New("invalid roster size")

// Player is one roster slot. Role and Champion stay empty until a
// generation pass fills them in.
type Player struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Role     Role   `json:"role,omitempty"`
	Champion string `json:"champion,omitempty"`
}

// ValidationError carries the user-facing message verbatim; handlers
// surface it without rewording.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

const (
	MsgMissingNames   = "Veuillez entrer tous les noms des joueurs"
	MsgDuplicateNames = "Tous les noms des joueurs doivent être uniques"
)

// Swappable so tests can pin the permutation.
var randIntN = rand.IntN

// AssignRoles gives every player a distinct role drawn from the first
// len(players) entries of RoleOrder, permuted by a Fisher-Yates shuffle.
// The input slice is never mutated.
func AssignRoles(players []Player) ([]Player, error) {
	if len(players) == 0 {
		return nil, fmt.Errorf("%w: l'équipe doit avoir au moins un joueur", ErrInvalidRosterSize)
	}
	if len(players) > len(RoleOrder) {
		return nil, fmt.Errorf("%w: une équipe ne peut pas avoir plus de %d joueurs", ErrInvalidRosterSize, len(RoleOrder))
	}

	roles := make([]Role, len(players))
	copy(roles, RoleOrder[:len(players)])
	for i := len(roles) - 1; i > 0; i-- {
		j := randIntN(i + 1)
		roles[i], roles[j] = roles[j], roles[i]
	}

	out := make([]Player, len(players))
	for i, p := range players {
		p.Role = roles[i]
		out[i] = p
	}
	return out, nil
}

// ValidateRoster rejects blank and duplicate names (case-sensitive,
// trimmed) before any assignment is allowed to run.
func ValidateRoster(players []Player) error {
	seen := make(map[string]struct{}, len(players))
	for _, p := range players {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return &ValidationError{Message: MsgMissingNames}
		}
		if _, dup := seen[name]; dup {
			return &ValidationError{Message: MsgDuplicateNames}
		}
		seen[name] = struct{}{}
	}
	return nil
}
