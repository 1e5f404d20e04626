package consumer

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"

	"github.com/hanabenko/ticket-scraping-api/internal/metrics"
	"github.com/hanabenko/ticket-scraping-api/internal/queue"
)

// Parse outcomes counted per message
const (
	outcomeAccepted    = "accepted"
	outcomeUnknownType = "unknown_interaction_type"
	outcomeUnparseable = "unparseable"
)

// ParserStage turns queued touchpoint messages into envelopes. Messages that
// cannot be parsed are deleted so they never block the queue. Unknown
// interaction types are forwarded, they are stored but carry no weight.
type ParserStage struct {
	consumer queue.QueueConsumer
	parser   MessageParser
	log      *zap.Logger
}

// NewParserStage creates a new parser stage
func NewParserStage(consumer queue.QueueConsumer, parser MessageParser, log *zap.Logger) *ParserStage {
	return &ParserStage{
		consumer: consumer,
		parser:   parser,
		log:      log,
	}
}

// Start parses messages from in until it is closed or ctx is done
func (p *ParserStage) Start(ctx context.Context, in <-chan types.Message, out chan<- *Envelope) {
	defer close(out)

	for {
		select {
		case <-ctx.Done():
			p.log.Info("Parser stage shutting down")
			return
		case msg, ok := <-in:
			if !ok {
				p.log.Info("Parser stage input channel closed")
				return
			}

			envelope := p.toEnvelope(ctx, msg)
			if envelope == nil {
				continue
			}

			select {
			case <-ctx.Done():
				return
			case out <- envelope:
			}
		}
	}
}

func (p *ParserStage) toEnvelope(ctx context.Context, msg types.Message) *Envelope {
	messageID := aws.ToString(msg.MessageId)

	event, err := p.parser.Parse([]byte(aws.ToString(msg.Body)))
	if err != nil {
		metrics.QueueMessagesParsed.WithLabelValues(outcomeUnparseable).Inc()
		p.drop(ctx, msg, err)
		return nil
	}

	fields := []zap.Field{
		zap.String("message_id", messageID),
		zap.String("artist", event.ArtistName),
		zap.String("channel", event.Channel),
		zap.String("interaction_type", string(event.InteractionType)),
	}
	if event.InteractionType.Known() {
		metrics.QueueMessagesParsed.WithLabelValues(outcomeAccepted).Inc()
		p.log.Debug("Touchpoint received", fields...)
	} else {
		metrics.QueueMessagesParsed.WithLabelValues(outcomeUnknownType).Inc()
		p.log.Warn("Touchpoint has an unknown interaction type", fields...)
	}

	ack := func(ctx context.Context) error {
		return p.deleteMessage(ctx, msg)
	}

	// the message becomes visible again once its visibility timeout expires
	nack := func(ctx context.Context) error {
		p.log.Debug("Touchpoint left for redelivery",
			zap.String("message_id", messageID),
			zap.String("artist", event.ArtistName))
		return nil
	}

	return NewEnvelope(messageID, *event, ack, nack)
}

// drop deletes a message that can never become an interaction
func (p *ParserStage) drop(ctx context.Context, msg types.Message, cause error) {
	messageID := aws.ToString(msg.MessageId)
	p.log.Warn("Dropping unparseable touchpoint message",
		zap.String("message_id", messageID),
		zap.Error(cause))

	if err := p.deleteMessage(ctx, msg); err != nil {
		p.log.Error("Failed to delete unparseable message",
			zap.String("message_id", messageID),
			zap.Error(err))
	}
}

func (p *ParserStage) deleteMessage(ctx context.Context, msg types.Message) error {
	_, err := p.consumer.DeleteMessage(ctx, &awssqs.DeleteMessageInput{
		QueueUrl:      aws.String(p.consumer.QueueURL()),
		ReceiptHandle: msg.ReceiptHandle,
	})
	return err
}
