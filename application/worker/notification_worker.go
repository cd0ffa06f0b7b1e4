// Package worker contains the queue-consuming notification worker.
package worker

import (
	"context"
	"encoding/json"
	"time"

	"fintrack-backend/application/ports"
	"fintrack-backend/domain"
	"fintrack-backend/pkg/observability"

	"go.uber.org/zap"
)

// NotificationWorker polls the queue and forwards each message to the
// notification topic, acknowledging on success. There is no retry policy of
// its own; an unacknowledged message reappears after the queue's visibility
// timeout and any redrive is the queue's business.
type NotificationWorker struct {
	queue        ports.MessageQueue
	topics       ports.TopicPublisher
	topicName    string
	queueName    string
	maxMessages  int32
	pollInterval time.Duration
	metrics      *observability.Metrics
	logger       *zap.Logger

	topicARN string
}

// NewNotificationWorker creates a worker bound to one queue/topic pair.
func NewNotificationWorker(
	queue ports.MessageQueue,
	topics ports.TopicPublisher,
	topicName, queueName string,
	maxMessages int32,
	pollIntervalSeconds int32,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *NotificationWorker {
	return &NotificationWorker{
		queue:        queue,
		topics:       topics,
		topicName:    topicName,
		queueName:    queueName,
		maxMessages:  maxMessages,
		pollInterval: time.Duration(pollIntervalSeconds) * time.Second,
		metrics:      metrics,
		logger:       logger,
	}
}

// Run polls until the context is cancelled. The long-poll wait doubles as
// the pacing between non-empty batches; empty receives additionally sleep
// one poll interval.
func (w *NotificationWorker) Run(ctx context.Context) error {
	topicARN, err := w.topics.EnsureTopic(ctx, w.topicName)
	if err != nil {
		return err
	}
	w.topicARN = topicARN

	if _, err := w.queue.EnsureQueue(ctx, w.queueName); err != nil {
		return err
	}

	w.logger.Info("notification worker started",
		zap.String("queue", w.queueName),
		zap.String("topic", w.topicName),
		zap.Int32("maxMessages", w.maxMessages),
		zap.Duration("pollInterval", w.pollInterval),
	)

	waitSeconds := int32(w.pollInterval / time.Second)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("notification worker stopping")
			return ctx.Err()
		default:
		}

		messages, err := w.queue.Receive(ctx, w.queueName, w.maxMessages, waitSeconds)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			w.logger.Error("receive failed", zap.Error(err))
			if !w.sleep(ctx) {
				return ctx.Err()
			}
			continue
		}

		if len(messages) == 0 {
			if !w.sleep(ctx) {
				return ctx.Err()
			}
			continue
		}

		for _, message := range messages {
			w.handle(ctx, message)
		}
	}
}

// handle forwards one message and acknowledges it on success. Messages that
// do not decode are acknowledged too; redelivering them cannot help.
func (w *NotificationWorker) handle(ctx context.Context, message ports.QueueMessage) {
	var notification domain.Notification
	if err := json.Unmarshal(message.Body, &notification); err != nil {
		w.logger.Warn("dropping malformed queue message",
			zap.String("messageID", message.ID),
			zap.Error(err),
		)
		w.ack(ctx, message)
		return
	}

	if err := w.topics.Publish(ctx, w.topicARN, notification.Subject, notification.Message); err != nil {
		w.metrics.WorkerMessagesFailed.Inc()
		w.logger.Error("failed to forward notification",
			zap.String("messageID", message.ID),
			zap.String("subject", notification.Subject),
			zap.Error(err),
		)
		return
	}

	w.metrics.WorkerMessagesHandled.Inc()
	w.ack(ctx, message)
}

func (w *NotificationWorker) ack(ctx context.Context, message ports.QueueMessage) {
	if err := w.queue.Delete(ctx, w.queueName, message.ReceiptHandle); err != nil {
		w.logger.Error("failed to delete queue message",
			zap.String("messageID", message.ID),
			zap.Error(err),
		)
	}
}

// sleep waits one poll interval, returning false when the context ends.
func (w *NotificationWorker) sleep(ctx context.Context) bool {
	timer := time.NewTimer(w.pollInterval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
