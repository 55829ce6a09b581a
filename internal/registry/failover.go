package registry

import (
	"context"

	"github.com/rs/zerolog"
)

// Failover wraps a persistent registry with an in-memory fallback. Registry
// unavailability must degrade to a process-scoped check, never fail the
// document, so errors from the primary are logged and absorbed.
type Failover struct {
	primary  Registry
	fallback *Memory
	log      zerolog.Logger
}

func NewFailover(primary Registry, log zerolog.Logger) *Failover {
	return &Failover{primary: primary, fallback: NewMemory(), log: log}
}

func (f *Failover) Seen(ctx context.Context, hash string) (bool, error) {
	seen, err := f.primary.Seen(ctx, hash)
	if err != nil {
		f.log.Warn().Err(err).Msg("duplicate registry unavailable, using in-memory fallback")
		return f.fallback.Seen(ctx, hash)
	}
	return seen, nil
}

func (f *Failover) Mark(ctx context.Context, hash string) error {
	// The fallback is always kept current so a later primary outage still
	// catches duplicates seen during this process's lifetime.
	_ = f.fallback.Mark(ctx, hash)
	if err := f.primary.Mark(ctx, hash); err != nil {
		f.log.Warn().Err(err).Msg("duplicate registry write failed, hash kept in memory only")
	}
	return nil
}
