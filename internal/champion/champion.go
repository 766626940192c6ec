// Package champion picks random champions from per-role candidate pools.
// Pool exhaustion is not an error: a player can end up without a champion
// and the caller shows them as-is.
package champion

import (
	"math/rand/v2"

	"github.com/lol-team-randomizer/backend/internal/engine"
)

var randIntN = rand.IntN

// Pick returns a uniformly chosen champion for role that is not in used.
// The second return is false when the pool is missing or exhausted.
func Pick(role engine.Role, used map[string]bool) (string, bool) {
	pool := PoolByRole[role]
	candidates := make([]string, 0, len(pool))
	for _, name := range pool {
		if !used[name] {
			candidates = append(candidates, name)
		}
	}
	if len(candidates) == 0 {
		return "", false
	}
	return candidates[randIntN(len(candidates))], true
}

// AssignAll runs a full-team pass, accumulating picked names so no two
// players share a champion. Players whose pool is exhausted keep an
// empty Champion field.
func AssignAll(team []engine.Player) []engine.Player {
	used := make(map[string]bool, len(team))
	out := make([]engine.Player, len(team))
	for i, p := range team {
		if name, ok := Pick(p.Role, used); ok {
			p.Champion = name
			used[name] = true
		}
		out[i] = p
	}
	return out
}
