package consumer

import (
	"github.com/hanabenko/ticket-scraping-api/internal/domain"
	"github.com/hanabenko/ticket-scraping-api/internal/queue"
)

// JSONEventParser implements MessageParser for queue.EventMessage bodies
type JSONEventParser struct{}

// NewJSONEventParser creates a new JSON event parser
func NewJSONEventParser() *JSONEventParser {
	return &JSONEventParser{}
}

// Parse decodes a message body into a canonical event
func (p *JSONEventParser) Parse(body []byte) (*domain.CanonicalEvent, error) {
	message, err := queue.DecodeEventMessage(body)
	if err != nil {
		return nil, err
	}
	return &message.Event, nil
}
