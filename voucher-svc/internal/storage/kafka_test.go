package storage

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedding-voucher/voucher-svc/internal/domain"
)

type recordingWriter struct {
	messages []kafka.Message
	err      error
}

func (w *recordingWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func TestKafkaPublisher_PublishJob(t *testing.T) {
	writer := &recordingWriter{}
	publisher := NewKafkaPublisher(writer)

	job := domain.VoucherJob{
		Type:        domain.JobIssueVoucher,
		GuestID:     42,
		Attempt:     1,
		RequestedAt: time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, publisher.PublishJob(context.Background(), job))

	require.Len(t, writer.messages, 1)
	assert.Equal(t, []byte("42"), writer.messages[0].Key)

	var decoded domain.VoucherJob
	require.NoError(t, json.Unmarshal(writer.messages[0].Value, &decoded))
	assert.Equal(t, job.Type, decoded.Type)
	assert.Equal(t, job.GuestID, decoded.GuestID)
	assert.Equal(t, job.Attempt, decoded.Attempt)
	assert.True(t, job.RequestedAt.Equal(decoded.RequestedAt))
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	publisher := NewKafkaPublisher(&recordingWriter{err: errors.New("broker down")})

	err := publisher.PublishJob(context.Background(), domain.VoucherJob{Type: domain.JobIssueVoucher, GuestID: 42})
	assert.Error(t, err)
}
