package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/segmentio/kafka-go"

	"wedding-voucher/voucher-svc/internal/domain"
	"wedding-voucher/voucher-svc/internal/service"
)

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type KafkaPublisher struct {
	Writer MessageWriter
}

func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer}
}

// PublishJob keys messages by guest id so jobs for one guest stay on one partition.
func (p *KafkaPublisher) PublishJob(ctx context.Context, job domain.VoucherJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to encode voucher job: %w", err)
	}
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(job.GuestID, 10)),
		Value: payload,
	})
}

var _ service.JobPublisher = (*KafkaPublisher)(nil)
