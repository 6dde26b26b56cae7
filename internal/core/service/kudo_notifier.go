package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kudoshq/kudos-api/internal/core/ports"
)

// KudoNotifier consumes kudo notifications from the dispatcher workers. Its
// only fan-out today is dropping the stale recent-kudos cache so the next
// widget read sees the new kudo.
type KudoNotifier struct {
	cache RecentCache
	log   zerolog.Logger
}

func NewKudoNotifier(cache RecentCache, log zerolog.Logger) *KudoNotifier {
	return &KudoNotifier{cache: cache, log: log}
}

func (n *KudoNotifier) ProcessNotification(ctx context.Context, notification ports.KudoNotification) error {
	if n.cache != nil {
		if err := n.cache.Invalidate(ctx); err != nil {
			return fmt.Errorf("invalidate recent cache: %w", err)
		}
	}
	n.log.Debug().
		Str("kudo_id", notification.KudoID).
		Str("recipient_id", notification.RecipientID).
		Msg("kudo notification processed")
	return nil
}
