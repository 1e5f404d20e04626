package domain

import (
	"strings"
	"time"
)

// InteractionType identifies the kind of touchpoint a user had with an artist
type InteractionType string

const (
	InteractionView           InteractionType = "view"
	InteractionClick          InteractionType = "click"
	InteractionTicketPurchase InteractionType = "ticket_purchase"
	InteractionMerchPurchase  InteractionType = "merch_purchase"
	InteractionStream         InteractionType = "stream"
	InteractionSocialLike     InteractionType = "social_like"
	InteractionSocialComment  InteractionType = "social_comment"
	InteractionSocialShare    InteractionType = "social_share"
)

var knownInteractionTypes = map[InteractionType]struct{}{
	InteractionView:           {},
	InteractionClick:          {},
	InteractionTicketPurchase: {},
	InteractionMerchPurchase:  {},
	InteractionStream:         {},
	InteractionSocialLike:     {},
	InteractionSocialComment:  {},
	InteractionSocialShare:    {},
}

// Known reports whether t is one of the canonical interaction types
func (t InteractionType) Known() bool {
	_, ok := knownInteractionTypes[t]
	return ok
}

// IsSocial reports whether t is a social engagement type
func (t InteractionType) IsSocial() bool {
	return t.Known() && strings.HasPrefix(string(t), "social_")
}

// CanonicalEvent is the source-agnostic shape every connector normalizes into
type CanonicalEvent struct {
	ArtistName      string          `json:"artist_name"`
	UserIdentifier  string          `json:"user_identifier"`
	InteractionType InteractionType `json:"interaction_type"`
	Channel         string          `json:"channel"`
	OccurredAt      time.Time       `json:"occurred_at"`
	ConcertID       *uint64         `json:"concert_id,omitempty"`
	Metadata        map[string]any  `json:"metadata,omitempty"`
}

// IsAnonymous reports whether the event carries no user identifier. Such
// events resolve to the single anonymous placeholder user.
func (e CanonicalEvent) IsAnonymous() bool {
	return e.UserIdentifier == ""
}

// NormalizeIdentifier maps a raw email or external id onto the single
// identity key space: emails are lower-cased, everything is trimmed.
func NormalizeIdentifier(raw string) string {
	id := strings.TrimSpace(raw)
	if strings.Contains(id, "@") {
		return strings.ToLower(id)
	}
	return id
}

// DayStart truncates t to 00:00 UTC of its calendar day
func DayStart(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
