package dto

import "time"

// PublishEventRequest represents one canonical touchpoint event
type PublishEventRequest struct {
	ArtistName      string         `json:"artist_name" binding:"required" example:"The Echoes"`
	UserIdentifier  string         `json:"user_identifier" example:"alice@example.com"`
	InteractionType string         `json:"interaction_type" binding:"required" example:"ticket_purchase"`
	Channel         string         `json:"channel" example:"ticketing"`
	OccurredAt      time.Time      `json:"occurred_at" binding:"required" example:"2025-10-01T10:05:00Z"`
	ConcertID       *uint64        `json:"concert_id" binding:"omitempty,min=1" example:"3"`
	Metadata        map[string]any `json:"metadata"`
}

// PublishEventsBulkRequest represents a publish bulk event request
type PublishEventsBulkRequest struct {
	Events []PublishEventRequest `json:"events" binding:"required,min=1,max=1000,dive"`
}

// IngestRequest represents a synchronous ingest of canonical events
type IngestRequest struct {
	Events []PublishEventRequest `json:"events" binding:"required,min=1,max=5000,dive"`
}

// SourceRequest declares one connector source
type SourceRequest struct {
	Connector string `json:"connector" binding:"required" example:"ticketing"`
	Location  string `json:"location" binding:"required" example:"/data/ticketing.json"`
}

// PipelineRunRequest represents a pipeline run over a list of sources
type PipelineRunRequest struct {
	Sources []SourceRequest `json:"sources" binding:"required,min=1,dive"`
}

// RecomputeAttributionRequest optionally pins the reference time of a recompute
type RecomputeAttributionRequest struct {
	ReferenceTime *time.Time `json:"reference_time" example:"2025-10-15T00:00:00Z"`
}

// TopArtistsRequest represents a top artists query
type TopArtistsRequest struct {
	Date  string `form:"date" example:"2025-10-01"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=100" example:"10"`
}

// ArtistMetricsRequest represents an artist rollup history query
type ArtistMetricsRequest struct {
	Days int `form:"days" binding:"omitempty,min=1,max=366" example:"7"`
}

// ChannelBreakdownRequest represents a mirrored interaction breakdown query
type ChannelBreakdownRequest struct {
	From    int64  `form:"from" binding:"required" example:"1759276800"`
	To      int64  `form:"to" binding:"required" example:"1759363200"`
	GroupBy string `form:"group_by" example:"channel"`
}

// ArtistRequest creates an artist by exact name or updates its profile
type ArtistRequest struct {
	Name          string         `json:"name" binding:"required" example:"The Echoes"`
	Genre         *string        `json:"genre" example:"indie rock"`
	SocialHandles map[string]any `json:"social_handles"`
}

// ConcertRequest represents a scheduled show of an artist
type ConcertRequest struct {
	ArtistName string  `json:"artist_name" binding:"required" example:"The Echoes"`
	Venue      *string `json:"venue" example:"Paradiso"`
	City       *string `json:"city" example:"Amsterdam"`
	Country    *string `json:"country" example:"NL"`
	EventDate  string  `json:"event_date" example:"2025-11-20"`
	Source     *string `json:"source" example:"seatgeek"`
	URL        *string `json:"url" binding:"omitempty,url" example:"https://seatgeek.com/e/123"`
}
