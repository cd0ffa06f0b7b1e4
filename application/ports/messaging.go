package ports

import "context"

// TopicSubscription is one endpoint subscribed to a notification topic.
type TopicSubscription struct {
	Protocol string
	Endpoint string
}

// TopicPublisher is the managed pub/sub topic used for notification fan-out.
type TopicPublisher interface {
	// EnsureTopic creates the topic if needed and returns its ARN.
	EnsureTopic(ctx context.Context, name string) (string, error)
	// SubscribeEmail subscribes an email endpoint, skipping duplicates.
	SubscribeEmail(ctx context.Context, topicARN, email string) error
	// SubscribeSMS subscribes a phone endpoint, skipping duplicates.
	SubscribeSMS(ctx context.Context, topicARN, phone string) error
	// ListSubscriptions lists current subscriptions on a topic.
	ListSubscriptions(ctx context.Context, topicARN string) ([]TopicSubscription, error)
	// Publish sends a message to every subscriber of the topic.
	Publish(ctx context.Context, topicARN, subject, message string) error
}

// QueueMessage is one message received from the queue.
type QueueMessage struct {
	ID            string
	ReceiptHandle string
	Body          []byte
}

// MessageQueue is the managed queue feeding the notification worker.
type MessageQueue interface {
	// EnsureQueue creates the queue if needed and returns its URL.
	EnsureQueue(ctx context.Context, name string) (string, error)
	// Send enqueues a JSON payload, optionally delayed.
	Send(ctx context.Context, name string, body []byte, delaySeconds int32) error
	// Receive long-polls for up to max messages.
	Receive(ctx context.Context, name string, max int32, waitSeconds int32) ([]QueueMessage, error)
	// Delete acknowledges a processed message.
	Delete(ctx context.Context, name string, receiptHandle string) error
}
