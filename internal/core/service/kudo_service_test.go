package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"github.com/kudoshq/kudos-api/internal/core/domain"
	"github.com/kudoshq/kudos-api/internal/core/ports"
)

type stubKudoRepo struct {
	kudos  []*domain.Kudo
	nextID int
}

func (r *stubKudoRepo) Create(_ context.Context, k *domain.Kudo) (*domain.Kudo, error) {
	r.nextID++
	clone := *k
	clone.ID = "kudo-" + strconv.Itoa(r.nextID)
	r.kudos = append(r.kudos, &clone)
	out := clone
	return &out, nil
}

func (r *stubKudoRepo) Feed(_ context.Context, filter ports.FeedFilter) ([]*ports.FeedEntry, error) {
	var entries []*ports.FeedEntry
	for _, k := range r.kudos {
		if k.RecipientID != filter.RecipientID {
			continue
		}
		entries = append(entries, &ports.FeedEntry{Kudo: *k})
	}
	return entries, nil
}

func (r *stubKudoRepo) Recent(_ context.Context, limit int) ([]*ports.RecentEntry, error) {
	var entries []*ports.RecentEntry
	for i := len(r.kudos) - 1; i >= 0 && len(entries) < limit; i-- {
		entries = append(entries, &ports.RecentEntry{
			KudoID:      r.kudos[i].ID,
			Emoji:       r.kudos[i].Style.Emoji,
			RecipientID: r.kudos[i].RecipientID,
		})
	}
	return entries, nil
}

type stubCache struct {
	entries []*ports.RecentEntry
	has     bool
	sets    int
	drops   int
}

func (c *stubCache) Get(_ context.Context) ([]*ports.RecentEntry, bool, error) {
	return c.entries, c.has, nil
}

func (c *stubCache) Set(_ context.Context, entries []*ports.RecentEntry) error {
	c.entries = entries
	c.has = true
	c.sets++
	return nil
}

func (c *stubCache) Invalidate(_ context.Context) error {
	c.entries = nil
	c.has = false
	c.drops++
	return nil
}

type stubQueue struct {
	notifications []ports.KudoNotification
}

func (q *stubQueue) Enqueue(n ports.KudoNotification) {
	q.notifications = append(q.notifications, n)
}

func seedUser(t *testing.T, repo *stubUserRepo, email string) *domain.User {
	t.Helper()
	user, err := repo.Create(context.Background(), &domain.User{Email: email})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestKudoService_Create(t *testing.T) {
	userRepo := newStubUserRepo()
	author := seedUser(t, userRepo, "author@x.com")
	recipient := seedUser(t, userRepo, "recipient@x.com")

	kudoRepo := &stubKudoRepo{}
	queue := &stubQueue{}
	svc := NewKudoService(kudoRepo, userRepo, nil, queue, zerolog.Nop())

	kudo, err := svc.Create(context.Background(), ports.CreateKudoInput{
		AuthorID:    author.ID,
		RecipientID: recipient.ID,
		Message:     "great work",
		Style:       domain.KudoStyle{BackgroundColor: domain.ColorBlue, TextColor: domain.ColorWhite, Emoji: domain.EmojiParty},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if kudo.ID == "" {
		t.Fatalf("expected an id on the created kudo")
	}
	if len(queue.notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(queue.notifications))
	}
	if queue.notifications[0].RecipientID != recipient.ID {
		t.Fatalf("notification carries wrong recipient")
	}
}

func TestKudoService_Create_UnknownRecipient(t *testing.T) {
	userRepo := newStubUserRepo()
	author := seedUser(t, userRepo, "author@x.com")

	kudoRepo := &stubKudoRepo{}
	svc := NewKudoService(kudoRepo, userRepo, nil, nil, zerolog.Nop())

	_, err := svc.Create(context.Background(), ports.CreateKudoInput{
		AuthorID:    author.ID,
		RecipientID: "missing",
		Message:     "hello",
	})
	if err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if len(kudoRepo.kudos) != 0 {
		t.Fatalf("no kudo must be persisted for an unknown recipient")
	}
}

func TestKudoService_Recent_CacheMissThenHit(t *testing.T) {
	userRepo := newStubUserRepo()
	author := seedUser(t, userRepo, "author@x.com")
	recipient := seedUser(t, userRepo, "recipient@x.com")

	kudoRepo := &stubKudoRepo{}
	cache := &stubCache{}
	svc := NewKudoService(kudoRepo, userRepo, cache, nil, zerolog.Nop())

	if _, err := svc.Create(context.Background(), ports.CreateKudoInput{
		AuthorID: author.ID, RecipientID: recipient.ID, Message: "hi",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	// First read misses and populates the cache.
	entries, err := svc.Recent(context.Background())
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 recent entry, got %d", len(entries))
	}
	if cache.sets != 1 {
		t.Fatalf("expected cache to be populated once, got %d", cache.sets)
	}

	// Second read is served from the cache.
	if _, err := svc.Recent(context.Background()); err != nil {
		t.Fatalf("Recent (cached): %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("cached read must not repopulate, sets=%d", cache.sets)
	}
}

func TestKudoNotifier_InvalidatesCache(t *testing.T) {
	cache := &stubCache{has: true}
	notifier := NewKudoNotifier(cache, zerolog.Nop())

	err := notifier.ProcessNotification(context.Background(), ports.KudoNotification{KudoID: "kudo-1"})
	if err != nil {
		t.Fatalf("ProcessNotification: %v", err)
	}
	if cache.drops != 1 || cache.has {
		t.Fatalf("expected the recent cache to be invalidated")
	}
}
