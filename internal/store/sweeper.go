package store

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/lol-team-randomizer/backend/internal/room"
)

// RunSweeper deletes rooms older than ttl on every interval tick until
// ctx is cancelled. Without it, room records accumulate forever.
func RunSweeper(ctx context.Context, st room.Store, ttl, interval time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := st.DeleteExpired(ctx, time.Now().Add(-ttl))
			if err != nil {
				log.Warn("room sweep failed", zap.Error(err))
				continue
			}
			if n > 0 {
				log.Info("expired rooms removed", zap.Int("count", n))
			}
		}
	}
}
