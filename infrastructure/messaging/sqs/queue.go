// Package sqs implements the message queue port on Amazon SQS.
package sqs

import (
	"context"
	"sync"

	"fintrack-backend/application/ports"
	apperrors "fintrack-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"
)

// Queue wraps SQS operations behind the message queue port. Queue URLs are
// resolved once per name and cached for the process lifetime.
type Queue struct {
	client *sqs.Client
	logger *zap.Logger

	mu   sync.Mutex
	urls map[string]string
}

// NewQueue creates an SQS-backed message queue.
func NewQueue(client *sqs.Client, logger *zap.Logger) ports.MessageQueue {
	return &Queue{
		client: client,
		logger: logger,
		urls:   make(map[string]string),
	}
}

// EnsureQueue creates the queue if needed and returns its URL. CreateQueue
// with identical attributes is idempotent.
func (q *Queue) EnsureQueue(ctx context.Context, name string) (string, error) {
	out, err := q.client.CreateQueue(ctx, &sqs.CreateQueueInput{
		QueueName: aws.String(name),
		Attributes: map[string]string{
			string(types.QueueAttributeNameVisibilityTimeout):      "30",
			string(types.QueueAttributeNameMessageRetentionPeriod): "345600",
		},
	})
	if err != nil {
		return "", apperrors.NewExternalError("sqs", err)
	}

	url := aws.ToString(out.QueueUrl)
	q.mu.Lock()
	q.urls[name] = url
	q.mu.Unlock()
	return url, nil
}

func (q *Queue) queueURL(ctx context.Context, name string) (string, error) {
	q.mu.Lock()
	url, ok := q.urls[name]
	q.mu.Unlock()
	if ok {
		return url, nil
	}

	out, err := q.client.GetQueueUrl(ctx, &sqs.GetQueueUrlInput{
		QueueName: aws.String(name),
	})
	if err != nil {
		return "", apperrors.NewExternalError("sqs", err)
	}

	url = aws.ToString(out.QueueUrl)
	q.mu.Lock()
	q.urls[name] = url
	q.mu.Unlock()
	return url, nil
}

// Send enqueues a JSON payload, optionally delayed.
func (q *Queue) Send(ctx context.Context, name string, body []byte, delaySeconds int32) error {
	url, err := q.queueURL(ctx, name)
	if err != nil {
		return err
	}

	_, err = q.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:     aws.String(url),
		MessageBody:  aws.String(string(body)),
		DelaySeconds: delaySeconds,
	})
	if err != nil {
		q.logger.Error("failed to send queue message",
			zap.String("queue", name),
			zap.Error(err),
		)
		return apperrors.NewExternalError("sqs", err)
	}
	return nil
}

// Receive long-polls for up to max messages. SQS caps a single receive at
// ten messages.
func (q *Queue) Receive(ctx context.Context, name string, max int32, waitSeconds int32) ([]ports.QueueMessage, error) {
	url, err := q.queueURL(ctx, name)
	if err != nil {
		return nil, err
	}

	if max > 10 {
		max = 10
	}

	out, err := q.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(url),
		MaxNumberOfMessages: max,
		WaitTimeSeconds:     waitSeconds,
	})
	if err != nil {
		return nil, apperrors.NewExternalError("sqs", err)
	}

	messages := make([]ports.QueueMessage, 0, len(out.Messages))
	for _, msg := range out.Messages {
		messages = append(messages, ports.QueueMessage{
			ID:            aws.ToString(msg.MessageId),
			ReceiptHandle: aws.ToString(msg.ReceiptHandle),
			Body:          []byte(aws.ToString(msg.Body)),
		})
	}
	return messages, nil
}

// Delete acknowledges a processed message so it is not redelivered.
func (q *Queue) Delete(ctx context.Context, name string, receiptHandle string) error {
	url, err := q.queueURL(ctx, name)
	if err != nil {
		return err
	}

	_, err = q.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(url),
		ReceiptHandle: aws.String(receiptHandle),
	})
	if err != nil {
		return apperrors.NewExternalError("sqs", err)
	}
	return nil
}
