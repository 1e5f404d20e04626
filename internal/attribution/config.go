package attribution

import (
	"errors"

	"github.com/hanabenko/ticket-scraping-api/internal/domain"
)

// DefaultHalfLifeDays is the age at which an interaction counts half
const DefaultHalfLifeDays = 14.0

// Config holds the scoring parameters of the engine
type Config struct {
	HalfLifeDays float64
	// Weights maps an interaction type to its undecayed contribution.
	// Types missing from the map contribute nothing.
	Weights map[domain.InteractionType]float64
}

// DefaultConfig returns a 14-day half-life and the standard weight table
func DefaultConfig() Config {
	return Config{
		HalfLifeDays: DefaultHalfLifeDays,
		Weights: map[domain.InteractionType]float64{
			domain.InteractionView:           0.1,
			domain.InteractionClick:          0.5,
			domain.InteractionTicketPurchase: 5.0,
			domain.InteractionMerchPurchase:  3.0,
			domain.InteractionStream:         0.2,
			domain.InteractionSocialLike:     0.15,
			domain.InteractionSocialComment:  0.15,
			domain.InteractionSocialShare:    0.15,
		},
	}
}

func (c Config) validate() error {
	if c.HalfLifeDays <= 0 {
		return errors.New("half-life must be positive")
	}
	return nil
}
