package ports

import (
	"context"

	"github.com/kudoshq/kudos-api/internal/core/domain"
)

// CreateKudoInput is the DTO passed from the transport layer to KudoService.
// AuthorID comes from the resolved session, never from client input.
type CreateKudoInput struct {
	AuthorID    string
	RecipientID string
	Message     string
	Style       domain.KudoStyle
}

// KudoNotification is handed to the dispatcher after a kudo is created.
type KudoNotification struct {
	KudoID      string
	RecipientID string
	Emoji       domain.KudoEmoji
}

// KudoService implements the kudos use cases behind the session guard.
type KudoService interface {
	Create(ctx context.Context, input CreateKudoInput) (*domain.Kudo, error)
	Feed(ctx context.Context, filter FeedFilter) ([]*FeedEntry, error)
	Recent(ctx context.Context) ([]*RecentEntry, error)
}

// NotificationProcessor consumes kudo notifications delivered by the
// dispatcher workers.
type NotificationProcessor interface {
	ProcessNotification(ctx context.Context, n KudoNotification) error
}
