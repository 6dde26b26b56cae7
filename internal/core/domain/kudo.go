package domain

import (
	"errors"
	"time"
)

// KudoColor is a style color usable for a kudo's background or text.
type KudoColor string

const (
	ColorRed    KudoColor = "RED"
	ColorGreen  KudoColor = "GREEN"
	ColorYellow KudoColor = "YELLOW"
	ColorBlue   KudoColor = "BLUE"
	ColorWhite  KudoColor = "WHITE"
)

// KudoEmoji decorates a kudo card.
type KudoEmoji string

const (
	EmojiThumbsUp KudoEmoji = "THUMBSUP"
	EmojiParty    KudoEmoji = "PARTY"
	EmojiHandsUp  KudoEmoji = "HANDSUP"
)

var ErrKudoNotFound = errors.New("kudo not found")

// KudoStyle is the visual presentation picked by the author.
type KudoStyle struct {
	BackgroundColor KudoColor `json:"background_color"`
	TextColor       KudoColor `json:"text_color"`
	Emoji           KudoEmoji `json:"emoji"`
}

// Kudo is a short appreciation message sent from one user to another.
type Kudo struct {
	ID          string    `json:"id"`
	Message     string    `json:"message"`
	Style       KudoStyle `json:"style"`
	AuthorID    string    `json:"author_id"`
	RecipientID string    `json:"recipient_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// FeedSort selects the ordering of a user's kudo feed.
type FeedSort string

const (
	SortDate   FeedSort = "date"
	SortSender FeedSort = "sender"
	SortEmoji  FeedSort = "emoji"
)

// ValidColor reports whether c is a known style color.
func ValidColor(c KudoColor) bool {
	switch c {
	case ColorRed, ColorGreen, ColorYellow, ColorBlue, ColorWhite:
		return true
	}
	return false
}

// ValidEmoji reports whether e is a known emoji.
func ValidEmoji(e KudoEmoji) bool {
	switch e {
	case EmojiThumbsUp, EmojiParty, EmojiHandsUp:
		return true
	}
	return false
}
