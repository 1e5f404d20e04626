package connector

import (
	"iter"

	"github.com/hanabenko/ticket-scraping-api/internal/domain"
)

var merchMapping = fieldMapping{
	channel:  "merch",
	typeKeys: []string{"action", "type", "interaction_type"},
	types: map[string]domain.InteractionType{
		"purchase":       domain.InteractionMerchPurchase,
		"order":          domain.InteractionMerchPurchase,
		"merch_purchase": domain.InteractionMerchPurchase,
		"view":           domain.InteractionView,
		"click":          domain.InteractionClick,
	},
	defaultType: domain.InteractionMerchPurchase,
}

type MerchConnector struct{}

func (MerchConnector) Name() string { return "merch" }

func (MerchConnector) Normalize(records []map[string]any) iter.Seq[domain.CanonicalEvent] {
	return merchMapping.normalize(records)
}
