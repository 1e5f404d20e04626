package connector

import (
	"slices"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanabenko/ticket-scraping-api/internal/domain"
)

func collect(c Connector, records []map[string]any) []domain.CanonicalEvent {
	return slices.Collect(c.Normalize(records))
}

func TestTicketingConnector_Normalize(t *testing.T) {
	records := []map[string]any{
		{
			"artist":      "The Echoes",
			"email":       "Alice@Example.com",
			"type":        "ticket_purchase",
			"occurred_at": "2025-10-01T10:05:00Z",
			"price":       42.5,
		},
	}

	events := collect(TicketingConnector{}, records)

	require.Len(t, events, 1)
	e := events[0]
	assert.Equal(t, "The Echoes", e.ArtistName)
	assert.Equal(t, "alice@example.com", e.UserIdentifier)
	assert.Equal(t, domain.InteractionTicketPurchase, e.InteractionType)
	assert.Equal(t, "ticketing", e.Channel)
	assert.Equal(t, time.Date(2025, 10, 1, 10, 5, 0, 0, time.UTC), e.OccurredAt)
	assert.Equal(t, map[string]any{"price": 42.5}, e.Metadata)
}

func TestTicketingConnector_PassesUnknownTypeThrough(t *testing.T) {
	events := collect(TicketingConnector{}, []map[string]any{
		{"artist": "A", "type": "refund"},
	})

	require.Len(t, events, 1)
	assert.Equal(t, domain.InteractionType("refund"), events[0].InteractionType)
	assert.False(t, events[0].InteractionType.Known())
}

func TestTicketingConnector_HTTPAliases(t *testing.T) {
	events := collect(TicketingConnector{}, []map[string]any{
		{"artist_name": "B", "user_id": 1234, "interaction_type": "view", "timestamp": 1759313100.0, "channel": "seatgeek"},
	})

	require.Len(t, events, 1)
	e := events[0]
	assert.Equal(t, "B", e.ArtistName)
	assert.Equal(t, "1234", e.UserIdentifier)
	assert.Equal(t, domain.InteractionView, e.InteractionType)
	assert.Equal(t, "seatgeek", e.Channel)
	assert.Equal(t, time.Unix(1759313100, 0).UTC(), e.OccurredAt)
	assert.Nil(t, e.Metadata)
}

func TestTicketingConnector_JSONNumberFields(t *testing.T) {
	events := collect(TicketingConnector{}, []map[string]any{
		{"artist": "A", "user_id": json.Number("9007199254740993"), "timestamp": json.Number("1759313100"), "concert_id": json.Number("3")},
		{"artist": "A", "user_id": json.Number("9007199254740992"), "concert_id": "x"},
	})

	require.Len(t, events, 2)
	assert.Equal(t, "9007199254740993", events[0].UserIdentifier)
	assert.Equal(t, "9007199254740992", events[1].UserIdentifier)
	assert.Equal(t, time.Unix(1759313100, 0).UTC(), events[0].OccurredAt)
	require.NotNil(t, events[0].ConcertID)
	assert.Equal(t, uint64(3), *events[0].ConcertID)
	assert.Nil(t, events[1].ConcertID)
}

func TestParseID(t *testing.T) {
	assert.Equal(t, uint64(12), *parseID(json.Number("12")))
	assert.Equal(t, uint64(12), *parseID(" 12 "))
	assert.Equal(t, uint64(12), *parseID(12.0))
	assert.Nil(t, parseID(json.Number("1.5")))
	assert.Nil(t, parseID(0))
	assert.Nil(t, parseID("-4"))
	assert.Nil(t, parseID(nil))
}

func TestTicketingConnector_MissingFieldsDegrade(t *testing.T) {
	events := collect(TicketingConnector{}, []map[string]any{
		{"occurred_at": "not a date", "artist": 12},
	})

	require.Len(t, events, 1)
	e := events[0]
	assert.Equal(t, "12", e.ArtistName)
	assert.Empty(t, e.UserIdentifier)
	assert.Equal(t, domain.InteractionClick, e.InteractionType)
	assert.True(t, e.OccurredAt.IsZero())
}

func TestSocialConnector_ActionMapping(t *testing.T) {
	tests := []struct {
		action   any
		expected domain.InteractionType
	}{
		{"like", domain.InteractionSocialLike},
		{"Comment", domain.InteractionSocialComment},
		{"share", domain.InteractionSocialShare},
		{"retweet", domain.InteractionSocialLike},
		{nil, domain.InteractionSocialLike},
	}

	for _, tt := range tests {
		events := collect(SocialConnector{}, []map[string]any{{"artist": "A", "action": tt.action}})
		require.Len(t, events, 1)
		assert.Equal(t, tt.expected, events[0].InteractionType, "action %v", tt.action)
		assert.Equal(t, "social", events[0].Channel)
		assert.NotContains(t, events[0].Metadata, "action")
	}
}

func TestMerchConnector_Normalize(t *testing.T) {
	events := collect(MerchConnector{}, []map[string]any{
		{"artist": "A", "email": "bob@example.com", "occurred_at": "2025-10-01", "sku": "TSHIRT-M"},
		{"artist": "A", "action": "view"},
	})

	require.Len(t, events, 2)
	assert.Equal(t, domain.InteractionMerchPurchase, events[0].InteractionType)
	assert.Equal(t, "merch", events[0].Channel)
	assert.Equal(t, time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), events[0].OccurredAt)
	assert.Equal(t, "TSHIRT-M", events[0].Metadata["sku"])
	assert.Equal(t, domain.InteractionView, events[1].InteractionType)
}

func TestStreamingConnector_Normalize(t *testing.T) {
	events := collect(StreamingConnector{}, []map[string]any{
		{"artist": "A", "external_id": "spotify:42", "occurred_at": "2025-10-01 08:00:00", "track": "Intro"},
	})

	require.Len(t, events, 1)
	assert.Equal(t, domain.InteractionStream, events[0].InteractionType)
	assert.Equal(t, "streaming", events[0].Channel)
	assert.Equal(t, "spotify:42", events[0].UserIdentifier)
	assert.Equal(t, time.Date(2025, 10, 1, 8, 0, 0, 0, time.UTC), events[0].OccurredAt)
}

func TestNormalize_IsRestartable(t *testing.T) {
	seq := SocialConnector{}.Normalize([]map[string]any{
		{"artist": "A", "action": "share", "post": "p1"},
		{"artist": "B", "action": "like"},
	})

	first := slices.Collect(seq)
	second := slices.Collect(seq)

	assert.Len(t, first, 2)
	assert.Equal(t, first, second)
}

func TestNormalize_StopsEarly(t *testing.T) {
	seq := StreamingConnector{}.Normalize([]map[string]any{{"artist": "A"}, {"artist": "B"}, {"artist": "C"}})

	var seen []string
	for e := range seq {
		seen = append(seen, e.ArtistName)
		if len(seen) == 2 {
			break
		}
	}

	assert.Equal(t, []string{"A", "B"}, seen)
}

func TestParseTime(t *testing.T) {
	expected := time.Date(2025, 10, 1, 10, 5, 0, 0, time.UTC)

	assert.Equal(t, expected, parseTime("2025-10-01T12:05:00+02:00"))
	assert.Equal(t, expected, parseTime("2025-10-01T10:05:00"))
	assert.Equal(t, expected, parseTime(float64(expected.Unix())))
	assert.Equal(t, expected, parseTime(float64(expected.UnixMilli())))
	assert.Equal(t, expected, parseTime("1759313100"))
	assert.True(t, parseTime(true).IsZero())
	assert.True(t, parseTime("").IsZero())
	assert.True(t, parseTime(-5.0).IsZero())
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()

	assert.Equal(t, []string{"merch", "social", "streaming", "ticketing"}, r.Names())

	c, err := r.Get("social")
	require.NoError(t, err)
	assert.Equal(t, "social", c.Name())

	_, err = r.Get("radio")
	assert.ErrorContains(t, err, "unknown connector")
}
