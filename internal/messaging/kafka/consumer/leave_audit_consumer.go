package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"go-hrm/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeLeaveLifecycle reads leave lifecycle events and records them to the
// audit log. Malformed payloads are committed and skipped so one bad message
// cannot wedge the group.
func ConsumeLeaveLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_audit")
	log.Info("leave lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				log.Info("leave lifecycle consumer stopped")
				return
			}
			log.Error("fetch message failed", zap.Error(err))
			continue
		}

		var event events.LeaveLifecycleEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Warn("skip malformed leave event",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		log.Info("leave lifecycle event",
			zap.String("event_type", event.EventType),
			zap.Int("request_id", event.RequestID),
			zap.Int("emp_id", event.EmpID),
			zap.String("status", event.Status),
			zap.Int("no_of_days", event.NoOfDays),
			zap.Time("occurred_at", event.OccurredAt),
		)

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit message failed", zap.Error(err))
		}
	}
}
