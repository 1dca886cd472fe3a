package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	audit "vetting/pkg/platform/audit"
)

type recordingProducer struct {
	records []*kgo.Record
	err     error
}

func (p *recordingProducer) ProduceSync(_ context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	p.records = append(p.records, rs...)
	results := make(kgo.ProduceResults, 0, len(rs))
	for _, r := range rs {
		results = append(results, kgo.ProduceResult{Record: r, Err: p.err})
	}
	return results
}

func TestAppend(t *testing.T) {
	producer := &recordingProducer{}
	store := New(producer, "vetting.audit")
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	err := store.Append(context.Background(), audit.Event{
		ID:        "evt-1",
		Timestamp: ts,
		Subject:   "nom-1",
		Action:    string(audit.EventNomineeStatusChanged),
		ActorID:   "reviewer-7",
		Decision:  "Approved",
	})
	require.NoError(t, err)
	require.Len(t, producer.records, 1)

	record := producer.records[0]
	assert.Equal(t, "vetting.audit", record.Topic)
	assert.Equal(t, []byte("nom-1"), record.Key)
	assert.Equal(t, "event_type", record.Headers[0].Key)

	var body map[string]string
	require.NoError(t, json.Unmarshal(record.Value, &body))
	assert.Equal(t, "compliance", body["category"], "category derived from action")
	assert.Equal(t, "Approved", body["decision"])
	assert.Equal(t, "2026-03-01T12:00:00Z", body["timestamp"])
}

func TestAppendSurfacesProduceErrors(t *testing.T) {
	producer := &recordingProducer{err: errors.New("broker down")}
	store := New(producer, "vetting.audit")

	err := store.Append(context.Background(), audit.Event{Subject: "nom-1", Action: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
}

func TestDecodeRoundTripsEncode(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 5, time.UTC)
	event := audit.Event{
		ID:        "evt-2",
		Timestamp: ts,
		Subject:   "nom-9",
		Action:    string(audit.EventNomineeDataUpdated),
		ActorID:   "reviewer-1",
		Batch:     "batch-1",
	}
	value, err := Encode(event)
	require.NoError(t, err)

	decoded, err := Decode(value)
	require.NoError(t, err)
	event.Category = audit.CategoryCompliance
	assert.Equal(t, event, decoded)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte("not json"))
	require.Error(t, err)

	_, err = Decode([]byte(`{"timestamp":"yesterday"}`))
	require.Error(t, err)
}
