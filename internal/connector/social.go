package connector

import (
	"iter"

	"github.com/hanabenko/ticket-scraping-api/internal/domain"
)

// Unrecognized social actions count as likes
var socialMapping = fieldMapping{
	channel:  "social",
	typeKeys: []string{"action", "type", "interaction_type"},
	types: map[string]domain.InteractionType{
		"like":           domain.InteractionSocialLike,
		"comment":        domain.InteractionSocialComment,
		"share":          domain.InteractionSocialShare,
		"social_like":    domain.InteractionSocialLike,
		"social_comment": domain.InteractionSocialComment,
		"social_share":   domain.InteractionSocialShare,
	},
	defaultType: domain.InteractionSocialLike,
}

type SocialConnector struct{}

func (SocialConnector) Name() string { return "social" }

func (SocialConnector) Normalize(records []map[string]any) iter.Seq[domain.CanonicalEvent] {
	return socialMapping.normalize(records)
}
