package mongo

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kudoshq/kudos-api/internal/core/domain"
	"github.com/kudoshq/kudos-api/internal/core/ports"
)

const kudoCollection = "kudos"

type MongoKudoRepository struct {
	coll  *mongo.Collection
	users *MongoUserRepository
}

// NewKudoRepository wraps the kudos collection. Author and recipient
// profiles are joined through the user repository.
func NewKudoRepository(db *mongo.Database, users *MongoUserRepository) *MongoKudoRepository {
	return &MongoKudoRepository{coll: db.Collection(kudoCollection), users: users}
}

type mongoKudoStyle struct {
	BackgroundColor string `bson:"background_color"`
	TextColor       string `bson:"text_color"`
	Emoji           string `bson:"emoji"`
}

type mongoKudo struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Message     string             `bson:"message"`
	Style       mongoKudoStyle     `bson:"style"`
	AuthorID    string             `bson:"author_id"`
	RecipientID string             `bson:"recipient_id"`
	CreatedAt   int64              `bson:"created_at"`
}

func (r *MongoKudoRepository) Create(ctx context.Context, k *domain.Kudo) (*domain.Kudo, error) {
	doc := mongoKudo{
		Message: k.Message,
		Style: mongoKudoStyle{
			BackgroundColor: string(k.Style.BackgroundColor),
			TextColor:       string(k.Style.TextColor),
			Emoji:           string(k.Style.Emoji),
		},
		AuthorID:    k.AuthorID,
		RecipientID: k.RecipientID,
		CreatedAt:   time.Now().UTC().Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert kudo: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert kudo: unexpected inserted id type %T", res.InsertedID)
	}
	doc.ID = id
	return toDomainKudo(doc), nil
}

// Feed loads the kudos received by filter.RecipientID and joins author
// profiles. Date and emoji orderings are pushed down to the store; the
// sender ordering and the free-text filter depend on the author profile and
// are applied after the join.
func (r *MongoKudoRepository) Feed(ctx context.Context, filter ports.FeedFilter) ([]*ports.FeedEntry, error) {
	opts := options.Find().SetSort(feedSort(filter.Sort))
	cur, err := r.coll.Find(ctx, bson.M{"recipient_id": filter.RecipientID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find kudos: %w", err)
	}
	defer cur.Close(ctx)

	var kudos []mongoKudo
	for cur.Next(ctx) {
		var mk mongoKudo
		if err := cur.Decode(&mk); err != nil {
			return nil, fmt.Errorf("decode kudo: %w", err)
		}
		kudos = append(kudos, mk)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("find kudos: %w", err)
	}

	profiles, err := r.authorProfiles(ctx, kudos)
	if err != nil {
		return nil, err
	}

	entries := make([]*ports.FeedEntry, 0, len(kudos))
	for _, mk := range kudos {
		entry := &ports.FeedEntry{
			Kudo:          *toDomainKudo(mk),
			AuthorProfile: profiles[mk.AuthorID],
		}
		if filter.Search != "" && !matchesSearch(entry, filter.Search) {
			continue
		}
		entries = append(entries, entry)
	}

	if filter.Sort == domain.SortSender {
		sort.SliceStable(entries, func(i, j int) bool {
			return strings.ToLower(entries[i].AuthorProfile.FirstName) < strings.ToLower(entries[j].AuthorProfile.FirstName)
		})
	}
	return entries, nil
}

func (r *MongoKudoRepository) Recent(ctx context.Context, limit int) ([]*ports.RecentEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find recent kudos: %w", err)
	}
	defer cur.Close(ctx)

	var entries []*ports.RecentEntry
	for cur.Next(ctx) {
		var mk mongoKudo
		if err := cur.Decode(&mk); err != nil {
			return nil, fmt.Errorf("decode kudo: %w", err)
		}

		entry := &ports.RecentEntry{
			KudoID:      mk.ID.Hex(),
			Emoji:       domain.KudoEmoji(mk.Style.Emoji),
			RecipientID: mk.RecipientID,
		}
		if recipient, err := r.users.FindByID(ctx, mk.RecipientID); err == nil {
			entry.RecipientProfile = recipient.Profile
		}
		entries = append(entries, entry)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("find recent kudos: %w", err)
	}
	return entries, nil
}

// authorProfiles resolves the distinct author ids of kudos to their profiles.
// A missing author (deleted account) yields a zero profile, not an error.
func (r *MongoKudoRepository) authorProfiles(ctx context.Context, kudos []mongoKudo) (map[string]domain.Profile, error) {
	profiles := make(map[string]domain.Profile)
	for _, mk := range kudos {
		if _, seen := profiles[mk.AuthorID]; seen {
			continue
		}
		author, err := r.users.FindByID(ctx, mk.AuthorID)
		if err != nil {
			if err == domain.ErrUserNotFound {
				profiles[mk.AuthorID] = domain.Profile{}
				continue
			}
			return nil, fmt.Errorf("load author profile: %w", err)
		}
		profiles[mk.AuthorID] = author.Profile
	}
	return profiles, nil
}

func feedSort(s domain.FeedSort) bson.D {
	switch s {
	case domain.SortEmoji:
		return bson.D{{Key: "style.emoji", Value: 1}}
	case domain.SortSender:
		// Actual ordering happens after the author join; a stable date
		// ordering here keeps ties deterministic.
		return bson.D{{Key: "created_at", Value: -1}}
	default:
		return bson.D{{Key: "created_at", Value: -1}}
	}
}

func matchesSearch(entry *ports.FeedEntry, search string) bool {
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(entry.Kudo.Message), needle) ||
		strings.Contains(strings.ToLower(entry.AuthorProfile.FullName()), needle)
}

func toDomainKudo(mk mongoKudo) *domain.Kudo {
	return &domain.Kudo{
		ID:      mk.ID.Hex(),
		Message: mk.Message,
		Style: domain.KudoStyle{
			BackgroundColor: domain.KudoColor(mk.Style.BackgroundColor),
			TextColor:       domain.KudoColor(mk.Style.TextColor),
			Emoji:           domain.KudoEmoji(mk.Style.Emoji),
		},
		AuthorID:    mk.AuthorID,
		RecipientID: mk.RecipientID,
		CreatedAt:   unixToTime(mk.CreatedAt),
	}
}
