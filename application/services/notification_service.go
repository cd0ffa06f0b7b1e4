package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"fintrack-backend/application/ports"
	"fintrack-backend/domain"
	apperrors "fintrack-backend/pkg/errors"
	"fintrack-backend/pkg/observability"
	"fintrack-backend/pkg/utils"

	"go.uber.org/zap"
)

// SendResult reports what a notification fan-out actually did.
type SendResult struct {
	TopicPublished bool   `json:"sns_published"`
	Queued         bool   `json:"sqs_queued"`
	Subscriptions  int    `json:"subscriptions"`
	Timestamp      string `json:"timestamp"`
}

// NotificationStats describes the current fan-out surface.
type NotificationStats struct {
	Enabled            bool           `json:"enabled"`
	TopicName          string         `json:"topic_name"`
	TopicARN           string         `json:"topic_arn,omitempty"`
	QueueName          string         `json:"queue_name"`
	TotalEmails        int            `json:"total_emails"`
	TotalPhones        int            `json:"total_phone_numbers"`
	TotalSubscriptions int            `json:"total_subscriptions"`
	SubscriptionTypes  map[string]int `json:"subscription_types"`
}

// NotificationService fans a notification out to the pub/sub topic and the
// worker queue. Recipients default to every account in the user pool.
type NotificationService struct {
	topics    ports.TopicPublisher
	queue     ports.MessageQueue
	identity  ports.IdentityProvider
	topicName string
	queueName string
	enabled   bool
	metrics   *observability.Metrics
	logger    *zap.Logger
}

// NewNotificationService creates a notification service.
func NewNotificationService(
	topics ports.TopicPublisher,
	queue ports.MessageQueue,
	identity ports.IdentityProvider,
	topicName, queueName string,
	enabled bool,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{
		topics:    topics,
		queue:     queue,
		identity:  identity,
		topicName: topicName,
		queueName: queueName,
		enabled:   enabled,
		metrics:   metrics,
		logger:    logger,
	}
}

// Send publishes the notification to the topic and enqueues a copy for the
// worker. Both legs are attempted even if one fails; the result reports each
// leg separately, mirroring how little this layer promises about delivery.
func (s *NotificationService) Send(ctx context.Context, subject string, data map[string]string, recipients []domain.Recipient) (*SendResult, error) {
	if !s.enabled {
		return nil, apperrors.NewUnavailableError("notifications")
	}

	topicARN, err := s.topics.EnsureTopic(ctx, s.topicName)
	if err != nil {
		return nil, err
	}
	if _, err := s.queue.EnsureQueue(ctx, s.queueName); err != nil {
		return nil, err
	}

	if recipients == nil {
		recipients, err = s.identity.ListContacts(ctx)
		if err != nil {
			s.logger.Warn("could not list pool contacts, publishing to existing subscribers only", zap.Error(err))
			recipients = nil
		}
	}

	subscribed := 0
	for _, recipient := range recipients {
		if recipient.Email != "" {
			if err := s.topics.SubscribeEmail(ctx, topicARN, recipient.Email); err == nil {
				subscribed++
			}
		}
		if recipient.Phone != "" {
			if err := s.topics.SubscribeSMS(ctx, topicARN, recipient.Phone); err == nil {
				subscribed++
			}
		}
	}

	message := FormatMessage(subject, data)
	result := &SendResult{
		Subscriptions: subscribed,
		Timestamp:     utils.NowRFC3339(),
	}

	if err := s.topics.Publish(ctx, topicARN, subject, message); err != nil {
		s.logger.Error("failed to publish notification", zap.Error(err))
	} else {
		result.TopicPublished = true
		s.metrics.NotificationsPublished.Inc()
	}

	envelope := domain.NewNotification("notification", subject, message, data)
	body, err := json.Marshal(envelope)
	if err != nil {
		return result, apperrors.NewInternalError("failed to marshal notification").WithCause(err)
	}
	if err := s.queue.Send(ctx, s.queueName, body, 0); err != nil {
		s.logger.Error("failed to enqueue notification", zap.Error(err))
	} else {
		result.Queued = true
	}

	return result, nil
}

// Stats reports the topic, queue and subscription state.
func (s *NotificationService) Stats(ctx context.Context) (*NotificationStats, error) {
	stats := &NotificationStats{
		Enabled:           s.enabled,
		TopicName:         s.topicName,
		QueueName:         s.queueName,
		SubscriptionTypes: map[string]int{},
	}
	if !s.enabled {
		return stats, nil
	}

	contacts, err := s.identity.ListContacts(ctx)
	if err != nil {
		return nil, err
	}
	for _, contact := range contacts {
		if contact.Email != "" {
			stats.TotalEmails++
		}
		if contact.Phone != "" {
			stats.TotalPhones++
		}
	}

	topicARN, err := s.topics.EnsureTopic(ctx, s.topicName)
	if err != nil {
		return nil, err
	}
	stats.TopicARN = topicARN

	subs, err := s.topics.ListSubscriptions(ctx, topicARN)
	if err != nil {
		return nil, err
	}
	stats.TotalSubscriptions = len(subs)
	for _, sub := range subs {
		stats.SubscriptionTypes[sub.Protocol]++
	}

	return stats, nil
}

// FormatMessage renders the data map as readable lines under the subject.
// Keys are sorted so the rendering is deterministic.
func FormatMessage(subject string, data map[string]string) string {
	lines := []string{fmt.Sprintf("Event: %s", subject), ""}

	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		lines = append(lines, fmt.Sprintf("%s: %s", titleCase(key), data[key]))
	}
	return strings.Join(lines, "\n")
}

// titleCase turns a snake_case key into a display label.
func titleCase(key string) string {
	words := strings.Split(strings.ReplaceAll(key, "_", " "), " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
