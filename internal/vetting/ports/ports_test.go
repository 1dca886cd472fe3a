package ports

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vetting/internal/vetting/models"
	"vetting/pkg/platform/audit"
	"vetting/pkg/requestcontext"
)

type capturePublisher struct {
	events []audit.Event
	err    error
}

func (p *capturePublisher) Emit(_ context.Context, event audit.Event) error {
	p.events = append(p.events, event)
	return p.err
}

func TestLogAudit(t *testing.T) {
	ctx := requestcontext.WithRequestID(context.Background(), "req-9")
	ctx = requestcontext.WithReviewerID(ctx, "rev-1")

	t.Run("emits event with lifted attributes", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, nil))
		pub := &capturePublisher{}

		LogAudit(ctx, logger, pub, audit.EventNomineeStatusChanged,
			"nominee_id", models.NomineeID("n1"),
			"decision", "Approved",
		)

		require.Len(t, pub.events, 1)
		ev := pub.events[0]
		assert.Equal(t, "n1", ev.Subject)
		assert.Equal(t, "rev-1", ev.ActorID)
		assert.Equal(t, "Approved", ev.Decision)
		assert.Equal(t, "req-9", ev.RequestID)
		assert.Equal(t, audit.CategoryCompliance, ev.Category)
		assert.Contains(t, buf.String(), `"log_type":"audit"`)
	})

	t.Run("nil publisher only logs", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, nil))
		LogAudit(ctx, logger, nil, audit.EventNomineeOpened, "nominee_id", "n1")
		assert.Contains(t, buf.String(), "nominee_opened")
	})

	t.Run("publisher errors are logged not returned", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, nil))
		pub := &capturePublisher{err: errors.New("broker down")}
		LogAudit(ctx, logger, pub, audit.EventNomineeDataUpdated, "nominee_id", "n1")
		assert.Contains(t, buf.String(), "failed to emit audit event")
	})
}
