package ports

import (
	"context"

	"github.com/kudoshq/kudos-api/internal/core/domain"
)

// FeedFilter carries the query parameters for a user's received-kudos feed.
type FeedFilter struct {
	RecipientID string          // always enforced by the service layer
	Sort        domain.FeedSort // empty = date descending
	Search      string          // optional: case-insensitive match on message or author name
}

// FeedEntry is a kudo joined with its author's profile for display.
type FeedEntry struct {
	Kudo          domain.Kudo    `json:"kudo"`
	AuthorProfile domain.Profile `json:"author_profile"`
}

// RecentEntry is the compact shape used by the recent-kudos widget.
type RecentEntry struct {
	KudoID           string           `json:"kudo_id"`
	Emoji            domain.KudoEmoji `json:"emoji"`
	RecipientID      string           `json:"recipient_id"`
	RecipientProfile domain.Profile   `json:"recipient_profile"`
}

// KudoRepository defines persistence operations for kudos.
type KudoRepository interface {
	Create(ctx context.Context, k *domain.Kudo) (*domain.Kudo, error)
	// Feed returns kudos received by filter.RecipientID, joined with author
	// profiles, ordered and filtered per FeedFilter.
	Feed(ctx context.Context, filter FeedFilter) ([]*FeedEntry, error)
	// Recent returns the limit most recently created kudos across all users.
	Recent(ctx context.Context, limit int) ([]*RecentEntry, error)
}
