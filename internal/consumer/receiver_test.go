package consumer

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockQueueConsumer is a mock implementation of queue.QueueConsumer
type MockQueueConsumer struct {
	mock.Mock
}

func (m *MockQueueConsumer) ReceiveMessages(ctx context.Context, input *sqs.ReceiveMessageInput) (*sqs.ReceiveMessageOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sqs.ReceiveMessageOutput), args.Error(1)
}

func (m *MockQueueConsumer) DeleteMessage(ctx context.Context, input *sqs.DeleteMessageInput) (*sqs.DeleteMessageOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sqs.DeleteMessageOutput), args.Error(1)
}

func (m *MockQueueConsumer) QueueURL() string {
	args := m.Called()
	return args.String(0)
}

func newTestReceiver(consumer *MockQueueConsumer) *Receiver {
	return NewReceiver(consumer, ReceiverConfig{
		MaxMessages:     10,
		WaitTimeSeconds: 20,
		ErrorBackoff:    10 * time.Millisecond,
	}, zap.NewNop())
}

func TestReceiver_Start_ForwardsMessages(t *testing.T) {
	mockConsumer := new(MockQueueConsumer)
	receiver := newTestReceiver(mockConsumer)

	mockConsumer.On("QueueURL").Return(testQueueURL)
	mockConsumer.On("ReceiveMessages", mock.Anything, mock.MatchedBy(func(input *sqs.ReceiveMessageInput) bool {
		return aws.ToString(input.QueueUrl) == testQueueURL && input.MaxNumberOfMessages == 10
	})).Return(&sqs.ReceiveMessageOutput{Messages: []types.Message{
		{MessageId: aws.String("msg-1")},
		{MessageId: aws.String("msg-2")},
	}}, nil).Once()
	mockConsumer.On("ReceiveMessages", mock.Anything, mock.Anything).
		Return(&sqs.ReceiveMessageOutput{}, nil).Maybe()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	out := make(chan types.Message, 10)
	go receiver.Start(ctx, out)

	var received []types.Message
	for msg := range out {
		received = append(received, msg)
	}

	assert.Len(t, received, 2)
	assert.Equal(t, "msg-1", aws.ToString(received[0].MessageId))
	assert.Equal(t, "msg-2", aws.ToString(received[1].MessageId))
}

func TestReceiver_Start_BacksOffOnError(t *testing.T) {
	mockConsumer := new(MockQueueConsumer)
	receiver := newTestReceiver(mockConsumer)

	var calls atomic.Int32
	mockConsumer.On("QueueURL").Return(testQueueURL)
	mockConsumer.On("ReceiveMessages", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { calls.Add(1) }).
		Return(nil, errors.New("SQS connection error"))

	ctx, cancel := context.WithTimeout(context.Background(), 55*time.Millisecond)
	defer cancel()

	out := make(chan types.Message, 10)
	receiver.Start(ctx, out)

	_, ok := <-out
	assert.False(t, ok)
	assert.GreaterOrEqual(t, calls.Load(), int32(2))
	assert.LessOrEqual(t, calls.Load(), int32(7))
}

func TestReceiver_Start_ContextCancellation(t *testing.T) {
	receiver := newTestReceiver(new(MockQueueConsumer))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := make(chan types.Message, 10)
	receiver.Start(ctx, out)

	_, ok := <-out
	assert.False(t, ok, "Channel should be closed after context cancellation")
}

func TestReceiver_Start_Backpressure(t *testing.T) {
	mockConsumer := new(MockQueueConsumer)
	receiver := newTestReceiver(mockConsumer)

	messages := make([]types.Message, 5)
	for i := range messages {
		messages[i] = types.Message{MessageId: aws.String(string(rune('a' + i)))}
	}

	mockConsumer.On("QueueURL").Return(testQueueURL)
	mockConsumer.On("ReceiveMessages", mock.Anything, mock.Anything).
		Return(&sqs.ReceiveMessageOutput{Messages: messages}, nil).Once()
	mockConsumer.On("ReceiveMessages", mock.Anything, mock.Anything).
		Return(&sqs.ReceiveMessageOutput{}, nil).Maybe()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	out := make(chan types.Message, 1)
	go receiver.Start(ctx, out)

	var received []types.Message
	for len(received) < 5 {
		select {
		case msg := <-out:
			received = append(received, msg)
			time.Sleep(5 * time.Millisecond)
		case <-ctx.Done():
			t.Fatal("receiver stalled under backpressure")
		}
	}

	assert.Equal(t, "a", aws.ToString(received[0].MessageId))
	assert.Equal(t, "e", aws.ToString(received[4].MessageId))
}
