package consumer

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/hanabenko/ticket-scraping-api/internal/config"
	"github.com/hanabenko/ticket-scraping-api/internal/domain"
	"github.com/hanabenko/ticket-scraping-api/internal/ingest"
)

const testMessageBody = `{"id":"1","event":{"artist_name":"The Echoes","user_identifier":"alice@example.com","interaction_type":"click","channel":"ticketing","occurred_at":"2025-10-01T10:05:00Z"}}`

func TestConsumer_Start_PipelineCoordination(t *testing.T) {
	mockConsumer := new(MockQueueConsumer)
	processor := new(MockBatchProcessor)

	mockConsumer.On("QueueURL").Return(testQueueURL)
	mockConsumer.On("ReceiveMessages", mock.Anything, mock.AnythingOfType("*sqs.ReceiveMessageInput")).
		Return(&sqs.ReceiveMessageOutput{Messages: []types.Message{{
			MessageId:     aws.String("msg-1"),
			Body:          aws.String(testMessageBody),
			ReceiptHandle: aws.String("receipt-1"),
		}}}, nil).Once()
	mockConsumer.On("ReceiveMessages", mock.Anything, mock.AnythingOfType("*sqs.ReceiveMessageInput")).
		Return(&sqs.ReceiveMessageOutput{}, nil).Maybe()
	mockConsumer.On("DeleteMessage", mock.Anything, mock.MatchedBy(func(input *sqs.DeleteMessageInput) bool {
		return aws.ToString(input.ReceiptHandle) == "receipt-1"
	})).Return(&sqs.DeleteMessageOutput{}, nil)

	processor.On("Process", mock.Anything, mock.MatchedBy(func(events []domain.CanonicalEvent) bool {
		return len(events) == 1 &&
			events[0].ArtistName == "The Echoes" &&
			events[0].InteractionType == domain.InteractionClick &&
			events[0].OccurredAt.Equal(testOccurredAt)
	})).Return(&ingest.Result{Written: 1}, nil)

	consumer := NewConsumer(config.Consumer{BatchSizeMax: 10, BatchTimeoutSec: 1}, mockConsumer, processor, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 1500*time.Millisecond)
	defer cancel()

	err := consumer.Start(ctx)

	assert.NoError(t, err)
	processor.AssertExpectations(t)
	mockConsumer.AssertCalled(t, "DeleteMessage", mock.Anything, mock.Anything)
}

func TestConsumer_Start_MalformedMessageNeverReachesProcessor(t *testing.T) {
	mockConsumer := new(MockQueueConsumer)
	processor := new(MockBatchProcessor)

	mockConsumer.On("QueueURL").Return(testQueueURL)
	mockConsumer.On("ReceiveMessages", mock.Anything, mock.Anything).
		Return(&sqs.ReceiveMessageOutput{Messages: []types.Message{{
			MessageId:     aws.String("msg-bad"),
			Body:          aws.String(`{"event":{"interaction_type":"click"}}`),
			ReceiptHandle: aws.String("receipt-bad"),
		}}}, nil).Once()
	mockConsumer.On("ReceiveMessages", mock.Anything, mock.Anything).
		Return(&sqs.ReceiveMessageOutput{}, nil).Maybe()
	mockConsumer.On("DeleteMessage", mock.Anything, mock.Anything).Return(&sqs.DeleteMessageOutput{}, nil)

	consumer := NewConsumer(config.Consumer{BatchSizeMax: 10, BatchTimeoutSec: 1}, mockConsumer, processor, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	assert.NoError(t, consumer.Start(ctx))
	processor.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
	mockConsumer.AssertNumberOfCalls(t, "DeleteMessage", 1)
}

func TestConsumer_Start_StopsOnCanceledContext(t *testing.T) {
	mockConsumer := new(MockQueueConsumer)
	consumer := NewConsumer(config.Consumer{BatchSizeMax: 10, BatchTimeoutSec: 1}, mockConsumer, new(MockBatchProcessor), zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() { done <- consumer.Start(ctx) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("consumer did not stop")
	}
}
