package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanabenko/ticket-scraping-api/internal/domain"
)

func TestEventMessage_EncodeDecode(t *testing.T) {
	occurredAt := time.Date(2025, 10, 1, 12, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	message := &EventMessage{
		ID: "b7c4",
		Event: domain.CanonicalEvent{
			ArtistName:      "The Echoes",
			UserIdentifier:  " Alice@Example.com ",
			InteractionType: domain.InteractionClick,
			Channel:         "ticketing",
			OccurredAt:      occurredAt,
			Metadata:        map[string]any{"section": "B"},
		},
	}

	body, err := message.Encode()
	require.NoError(t, err)

	decoded, err := DecodeEventMessage(body)
	require.NoError(t, err)
	assert.Equal(t, "b7c4", decoded.ID)
	assert.Equal(t, "alice@example.com", decoded.Event.UserIdentifier)
	assert.Equal(t, time.UTC, decoded.Event.OccurredAt.Location())
	assert.True(t, occurredAt.Equal(decoded.Event.OccurredAt))
	assert.Equal(t, "B", decoded.Event.Metadata["section"])
}

func TestDecodeEventMessage_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"malformed", `{"event":`, "unmarshal"},
		{"no artist", `{"event":{"interaction_type":"click","occurred_at":"2025-10-01T10:00:00Z"}}`, "artist"},
		{"no timestamp", `{"event":{"artist_name":"A","interaction_type":"click"}}`, "occurred_at"},
		{"no type", `{"event":{"artist_name":"A","occurred_at":"2025-10-01T10:00:00Z"}}`, "interaction type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeEventMessage([]byte(tt.body))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
