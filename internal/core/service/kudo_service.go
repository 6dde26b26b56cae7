package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kudoshq/kudos-api/internal/core/domain"
	"github.com/kudoshq/kudos-api/internal/core/ports"
)

const recentLimit = 3

// RecentCache abstracts the recent-kudos widget cache (Redis).
type RecentCache interface {
	Get(ctx context.Context) ([]*ports.RecentEntry, bool, error)
	Set(ctx context.Context, entries []*ports.RecentEntry) error
	Invalidate(ctx context.Context) error
}

// Enqueuer accepts kudo notifications for asynchronous delivery.
type Enqueuer interface {
	Enqueue(n ports.KudoNotification)
}

// KudoService implements the kudos use cases behind the session guard.
type KudoService struct {
	kudoRepo ports.KudoRepository
	userRepo ports.UserRepository
	cache    RecentCache
	queue    Enqueuer
	log      zerolog.Logger
}

// NewKudoService builds the service. queue may be nil in tests;
// notifications are then skipped.
func NewKudoService(
	kudoRepo ports.KudoRepository,
	userRepo ports.UserRepository,
	cache RecentCache,
	queue Enqueuer,
	log zerolog.Logger,
) *KudoService {
	return &KudoService{
		kudoRepo: kudoRepo,
		userRepo: userRepo,
		cache:    cache,
		queue:    queue,
		log:      log,
	}
}

// Create persists a kudo from the session user to an existing recipient and
// enqueues a notification for async fan-out.
func (s *KudoService) Create(ctx context.Context, input ports.CreateKudoInput) (*domain.Kudo, error) {
	if _, err := s.userRepo.FindByID(ctx, input.RecipientID); err != nil {
		return nil, err
	}

	kudo := &domain.Kudo{
		Message:     input.Message,
		Style:       input.Style,
		AuthorID:    input.AuthorID,
		RecipientID: input.RecipientID,
	}

	created, err := s.kudoRepo.Create(ctx, kudo)
	if err != nil {
		return nil, fmt.Errorf("create kudo: %w", err)
	}

	if s.queue != nil {
		s.queue.Enqueue(ports.KudoNotification{
			KudoID:      created.ID,
			RecipientID: created.RecipientID,
			Emoji:       created.Style.Emoji,
		})
	}

	return created, nil
}

// Feed returns the kudos received by the session user, sorted and filtered.
func (s *KudoService) Feed(ctx context.Context, filter ports.FeedFilter) ([]*ports.FeedEntry, error) {
	entries, err := s.kudoRepo.Feed(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("load feed: %w", err)
	}
	return entries, nil
}

// Recent serves the 3-item widget, preferring the cache. A cache failure is
// logged and the repository is queried directly.
func (s *KudoService) Recent(ctx context.Context) ([]*ports.RecentEntry, error) {
	if s.cache != nil {
		entries, hit, err := s.cache.Get(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("recent cache read failed, falling back to store")
		} else if hit {
			return entries, nil
		}
	}

	entries, err := s.kudoRepo.Recent(ctx, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("load recent kudos: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, entries); err != nil {
			s.log.Warn().Err(err).Msg("failed to populate recent cache")
		}
	}
	return entries, nil
}
