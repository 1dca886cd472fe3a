// Package worker runs the poll loop that feeds Kafka audit records to a
// consumer handler.
package worker

import (
	"context"
	"errors"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"
)

// Source is the subset of *kgo.Client the worker polls.
type Source interface {
	PollFetches(ctx context.Context) kgo.Fetches
	CommitRecords(ctx context.Context, rs ...*kgo.Record) error
}

// Handler processes a single record.
type Handler interface {
	Handle(ctx context.Context, record *kgo.Record) error
}

// Worker polls a Source and hands records to a Handler. Offsets are committed
// only for records the handler accepted, so a failing store is retried on the
// next poll after a rebalance or restart.
type Worker struct {
	source  Source
	handler Handler
	logger  *slog.Logger
}

func NewWorker(source Source, handler Handler, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{source: source, handler: handler, logger: logger}
}

// Run polls until ctx is cancelled or the client is closed.
func (w *Worker) Run(ctx context.Context) error {
	for {
		fetches := w.source.PollFetches(ctx)
		if fetches.IsClientClosed() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		fetches.EachError(func(topic string, partition int32, err error) {
			if errors.Is(err, context.Canceled) {
				return
			}
			w.logger.Warn("audit fetch failed", "topic", topic, "partition", partition, "error", err)
		})

		var done []*kgo.Record
		fetches.EachPartition(func(p kgo.FetchTopicPartition) {
			for _, record := range p.Records {
				if err := w.handler.Handle(ctx, record); err != nil {
					w.logger.Error("audit record not stored",
						"topic", record.Topic,
						"partition", record.Partition,
						"offset", record.Offset,
						"error", err,
					)
					// later records in this partition wait for the failed one
					return
				}
				done = append(done, record)
			}
		})
		if len(done) == 0 {
			continue
		}
		if err := w.source.CommitRecords(ctx, done...); err != nil {
			w.logger.Warn("audit offset commit failed", "error", err)
		}
	}
}
