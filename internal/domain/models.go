package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Artist is identified by its exact, case-sensitive name
type Artist struct {
	ID            uint64            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string            `gorm:"type:varchar(255);not null;uniqueIndex:uq_artists_name" json:"name"`
	Genre         *string           `gorm:"type:varchar(120)" json:"genre,omitempty"`
	SocialHandles datatypes.JSONMap `gorm:"column:social_handles" json:"social_handles,omitempty"`
	CreatedAt     time.Time         `gorm:"not null" json:"created_at"`
}

func (Artist) TableName() string { return "artists" }

// ArtistProfile carries descriptive artist fields; nil fields are left as stored
type ArtistProfile struct {
	Genre         *string
	SocialHandles map[string]any
}

// User is keyed by a normalized external identifier (see NormalizeIdentifier).
// The anonymous placeholder has no identity key and Anonymous set; at most
// one such row exists.
type User struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	IdentityKey *string   `gorm:"type:varchar(255);uniqueIndex:uq_users_identity_key" json:"identity_key,omitempty"`
	Anonymous   bool      `gorm:"not null;default:false;uniqueIndex:uq_users_anonymous,where:anonymous = true" json:"anonymous"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

func (User) TableName() string { return "users" }

// Concert is a scheduled show of one artist
type Concert struct {
	ID        uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ArtistID  uint64     `gorm:"not null;index" json:"artist_id"`
	Venue     *string    `gorm:"type:varchar(255)" json:"venue,omitempty"`
	City      *string    `gorm:"type:varchar(120)" json:"city,omitempty"`
	Country   *string    `gorm:"type:varchar(120)" json:"country,omitempty"`
	EventDate *time.Time `gorm:"type:date" json:"event_date,omitempty"`
	Source    *string    `gorm:"type:varchar(120)" json:"source,omitempty"`
	URL       *string    `gorm:"column:url;type:varchar(512)" json:"url,omitempty"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
}

func (Concert) TableName() string { return "concerts" }

// Interaction is an immutable touchpoint row written only by ingestion
type Interaction struct {
	ID              uint64            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          uint64            `gorm:"not null;index:ix_interactions_user_artist_time,priority:1" json:"user_id"`
	ArtistID        uint64            `gorm:"not null;index:ix_interactions_user_artist_time,priority:2" json:"artist_id"`
	ConcertID       *uint64           `gorm:"index" json:"concert_id,omitempty"`
	InteractionType InteractionType   `gorm:"type:varchar(64);not null;index" json:"interaction_type"`
	Channel         string            `gorm:"type:varchar(64);index" json:"channel"`
	Metadata        datatypes.JSONMap `gorm:"column:metadata" json:"metadata,omitempty"`
	OccurredAt      time.Time         `gorm:"not null;index;index:ix_interactions_user_artist_time,priority:3" json:"occurred_at"`
	CreatedAt       time.Time         `gorm:"not null" json:"created_at"`
}

func (Interaction) TableName() string { return "interactions" }

// Attribution holds the latest decayed score of one user for one artist
type Attribution struct {
	ID          uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint64     `gorm:"not null;uniqueIndex:uq_attr_user_artist,priority:1" json:"user_id"`
	ArtistID    uint64     `gorm:"not null;uniqueIndex:uq_attr_user_artist,priority:2;index" json:"artist_id"`
	Score       float64    `gorm:"not null;default:0" json:"score"`
	LastTouchAt *time.Time `json:"last_touch_at,omitempty"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}

func (Attribution) TableName() string { return "attributions" }

// ArtistDailyMetrics is the funnel rollup of one artist for one UTC day
type ArtistDailyMetrics struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ArtistID   uint64    `gorm:"not null;uniqueIndex:uq_artist_daily,priority:1" json:"artist_id"`
	MetricDate time.Time `gorm:"type:date;not null;uniqueIndex:uq_artist_daily,priority:2;index" json:"metric_date"`

	Views           int `gorm:"not null;default:0" json:"views"`
	Clicks          int `gorm:"not null;default:0" json:"clicks"`
	TicketPurchases int `gorm:"not null;default:0" json:"ticket_purchases"`
	MerchPurchases  int `gorm:"not null;default:0" json:"merch_purchases"`
	Streams         int `gorm:"not null;default:0" json:"streams"`

	// Ratios are nil when their denominator is zero
	CTR                  *float64 `gorm:"column:ctr" json:"ctr"`
	TicketConversionRate *float64 `json:"ticket_conversion_rate"`
	MerchConversionRate  *float64 `json:"merch_conversion_rate"`
	StreamLift           *float64 `json:"stream_lift"`

	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (ArtistDailyMetrics) TableName() string { return "artist_daily_metrics" }
