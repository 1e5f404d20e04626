package consumer

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hanabenko/ticket-scraping-api/internal/domain"
)

// BatchWriterConfig configures the batch writer
type BatchWriterConfig struct {
	MaxBatchSize int
	FlushTimeout time.Duration
}

// BatchWriter groups envelopes into batches and hands each to the processor.
// A batch is acked only after it has been committed and recomputed.
type BatchWriter struct {
	processor BatchProcessor
	config    BatchWriterConfig
	log       *zap.Logger
}

// NewBatchWriter creates a new batch writer
func NewBatchWriter(processor BatchProcessor, config BatchWriterConfig, log *zap.Logger) *BatchWriter {
	return &BatchWriter{
		processor: processor,
		config:    config,
		log:       log,
	}
}

// Start batches envelopes until in is closed or ctx is done, flushing on
// size or timeout
func (w *BatchWriter) Start(ctx context.Context, in <-chan *Envelope) {
	ticker := time.NewTicker(w.config.FlushTimeout)
	defer ticker.Stop()

	batch := make([]*Envelope, 0, w.config.MaxBatchSize)
	flush := func(reason string) {
		if len(batch) == 0 {
			return
		}
		w.log.Debug("Flushing batch", zap.String("reason", reason), zap.Int("envelope_count", len(batch)))
		w.processBatch(ctx, batch)
		batch = make([]*Envelope, 0, w.config.MaxBatchSize)
	}

	for {
		select {
		case <-ctx.Done():
			w.log.Info("Batch writer shutting down")
			// the final flush runs detached so the in-flight batch can still commit
			ctx = context.WithoutCancel(ctx)
			flush("shutdown")
			return

		case envelope, ok := <-in:
			if !ok {
				w.log.Info("Batch writer input channel closed")
				flush("input closed")
				return
			}

			batch = append(batch, envelope)
			if len(batch) >= w.config.MaxBatchSize {
				flush("size")
				ticker.Reset(w.config.FlushTimeout)
			}

		case <-ticker.C:
			flush("timeout")
		}
	}
}

func (w *BatchWriter) processBatch(ctx context.Context, envelopes []*Envelope) {
	events := make([]domain.CanonicalEvent, len(envelopes))
	for i, env := range envelopes {
		events[i] = env.Event
	}

	result, err := w.processor.Process(ctx, events)
	if err != nil {
		w.log.Error("Failed to process batch",
			zap.Int("event_count", len(events)),
			zap.Error(err))
		if result == nil {
			w.nackAll(ctx, envelopes)
			return
		}
		// ingest committed, only a recompute failed
	}

	w.log.Info("Batch committed",
		zap.Int("written", result.Written),
		zap.Int("skipped", result.Skipped))
	w.ackAll(ctx, envelopes)
}

func (w *BatchWriter) ackAll(ctx context.Context, envelopes []*Envelope) {
	for _, env := range envelopes {
		if err := env.Ack(ctx); err != nil {
			w.log.Error("Failed to ack envelope", zap.String("message_id", env.MessageID), zap.Error(err))
		}
	}
}

func (w *BatchWriter) nackAll(ctx context.Context, envelopes []*Envelope) {
	for _, env := range envelopes {
		if err := env.Nack(ctx); err != nil {
			w.log.Error("Failed to nack envelope", zap.String("message_id", env.MessageID), zap.Error(err))
		}
	}
}
