package dto

import "time"

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error" example:"validation_error"`
	Message string `json:"message,omitempty" example:"artist_name is required"`
}

// PublishEventResponse represents an event accepted onto the queue
type PublishEventResponse struct {
	MessageID string `json:"message_id" example:"5f0c6a52-3f0e-4a5e-9bb4-1f0a3c7d2b11"`
	Status    string `json:"status" example:"accepted"`
}

// PublishBulkEventsResponse represents the outcome of a bulk publish
type PublishBulkEventsResponse struct {
	Accepted   int      `json:"accepted" example:"5"`
	Rejected   int      `json:"rejected" example:"0"`
	MessageIDs []string `json:"message_ids,omitempty"`
	Errors     []string `json:"errors,omitempty" example:"event 3: unknown interaction type"`
}

// IngestResponse represents a committed synchronous ingest
type IngestResponse struct {
	Written         int      `json:"written" example:"3"`
	Skipped         int      `json:"skipped" example:"0"`
	UsersRecomputed int      `json:"users_recomputed" example:"2"`
	Dates           []string `json:"dates" example:"2025-10-01"`
}

// AttributionData is one user/artist score
type AttributionData struct {
	ArtistID    uint64     `json:"artist_id" example:"7"`
	Score       float64    `json:"score" example:"5.25"`
	LastTouchAt *time.Time `json:"last_touch_at,omitempty"`
}

// UserAttributionsResponse lists a user's scores, highest first
type UserAttributionsResponse struct {
	UserID        uint64            `json:"user_id" example:"42"`
	ReferenceTime *time.Time        `json:"reference_time,omitempty"`
	Attributions  []AttributionData `json:"attributions"`
}

// ArtistMetricsData is one artist's rollup for one day
type ArtistMetricsData struct {
	ArtistID             uint64   `json:"artist_id" example:"7"`
	Date                 string   `json:"date" example:"2025-10-01"`
	Views                int      `json:"views" example:"10"`
	Clicks               int      `json:"clicks" example:"2"`
	TicketPurchases      int      `json:"ticket_purchases" example:"1"`
	MerchPurchases       int      `json:"merch_purchases" example:"0"`
	Streams              int      `json:"streams" example:"4"`
	CTR                  *float64 `json:"ctr" example:"0.2"`
	TicketConversionRate *float64 `json:"ticket_conversion_rate" example:"0.5"`
	MerchConversionRate  *float64 `json:"merch_conversion_rate" example:"0"`
	StreamLift           *float64 `json:"stream_lift"`
}

// DailyRollupResponse represents the rebuilt rollup of one day
type DailyRollupResponse struct {
	Date    string              `json:"date" example:"2025-10-01"`
	Artists []ArtistMetricsData `json:"artists"`
}

// TopArtistsResponse represents the most clicked artists of one day
type TopArtistsResponse struct {
	Date    string              `json:"date" example:"2025-10-01"`
	Limit   int                 `json:"limit" example:"10"`
	Artists []ArtistMetricsData `json:"artists"`
}

// ArtistMetricsResponse represents an artist's recent rollups
type ArtistMetricsResponse struct {
	ArtistID uint64              `json:"artist_id" example:"7"`
	From     string              `json:"from" example:"2025-09-25"`
	To       string              `json:"to" example:"2025-10-01"`
	Metrics  []ArtistMetricsData `json:"metrics"`
}

// ChannelGroupData represents aggregated interactions for a specific group
type ChannelGroupData struct {
	GroupValue  string `json:"group_value" example:"ticketing"`
	TotalCount  uint64 `json:"total_count" example:"1500"`
	UniqueUsers uint64 `json:"unique_users" example:"320"`
}

// ChannelBreakdownResponse represents the mirrored interaction breakdown of an artist
type ChannelBreakdownResponse struct {
	ArtistID    uint64             `json:"artist_id" example:"7"`
	From        int64              `json:"from" example:"1759276800"`
	To          int64              `json:"to" example:"1759363200"`
	TotalCount  uint64             `json:"total_count" example:"5000"`
	UniqueUsers uint64             `json:"unique_users" example:"2500"`
	GroupBy     string             `json:"group_by" example:"channel"`
	Groups      []ChannelGroupData `json:"groups"`
}

// ArtistResponse represents a stored artist
type ArtistResponse struct {
	ID            uint64         `json:"id" example:"7"`
	Name          string         `json:"name" example:"The Echoes"`
	Genre         *string        `json:"genre,omitempty" example:"indie rock"`
	SocialHandles map[string]any `json:"social_handles,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

// ConcertResponse represents a stored concert
type ConcertResponse struct {
	ID        uint64    `json:"id" example:"3"`
	ArtistID  uint64    `json:"artist_id" example:"7"`
	Venue     *string   `json:"venue,omitempty" example:"Paradiso"`
	City      *string   `json:"city,omitempty" example:"Amsterdam"`
	Country   *string   `json:"country,omitempty" example:"NL"`
	EventDate string    `json:"event_date,omitempty" example:"2025-11-20"`
	Source    *string   `json:"source,omitempty" example:"seatgeek"`
	URL       *string   `json:"url,omitempty" example:"https://seatgeek.com/e/123"`
	CreatedAt time.Time `json:"created_at"`
}
