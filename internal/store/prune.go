// internal/store/prune.go
//
// Background cleanup of idle sessions.

package store

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// RunPruner removes sessions idle for longer than idle every interval until ctx is done.
// A non-positive interval or idle disables pruning.
func RunPruner(ctx context.Context, st Store, interval, idle time.Duration) {
	if interval <= 0 || idle <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			pruneOnce(ctx, st, now.Add(-idle))
		}
	}
}

func pruneOnce(ctx context.Context, st Store, cutoff time.Time) int {
	n, err := st.Prune(ctx, cutoff)
	if err != nil {
		if ctx.Err() == nil {
			log.Warn().Err(err).Msg("prune sessions")
		}
		return 0
	}
	if n > 0 {
		log.Info().Int("removed", n).Int("live", st.Len()).Msg("pruned idle sessions")
	}
	return n
}
