// Package sns implements the topic publisher port on Amazon SNS.
package sns

import (
	"context"

	"fintrack-backend/application/ports"
	apperrors "fintrack-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"go.uber.org/zap"
)

// Publisher manages one notification topic and its subscriptions.
type Publisher struct {
	client *sns.Client
	logger *zap.Logger
}

// NewPublisher creates an SNS-backed topic publisher.
func NewPublisher(client *sns.Client, logger *zap.Logger) ports.TopicPublisher {
	return &Publisher{client: client, logger: logger}
}

// EnsureTopic creates the topic if needed; CreateTopic is idempotent and
// returns the existing ARN for a known name.
func (p *Publisher) EnsureTopic(ctx context.Context, name string) (string, error) {
	out, err := p.client.CreateTopic(ctx, &sns.CreateTopicInput{
		Name: aws.String(name),
	})
	if err != nil {
		return "", apperrors.NewExternalError("sns", err)
	}
	return aws.ToString(out.TopicArn), nil
}

// SubscribeEmail subscribes an email endpoint unless it already is.
func (p *Publisher) SubscribeEmail(ctx context.Context, topicARN, email string) error {
	return p.subscribe(ctx, topicARN, "email", email)
}

// SubscribeSMS subscribes a phone endpoint unless it already is.
func (p *Publisher) SubscribeSMS(ctx context.Context, topicARN, phone string) error {
	return p.subscribe(ctx, topicARN, "sms", phone)
}

func (p *Publisher) subscribe(ctx context.Context, topicARN, protocol, endpoint string) error {
	existing, err := p.ListSubscriptions(ctx, topicARN)
	if err != nil {
		return err
	}
	for _, sub := range existing {
		if sub.Protocol == protocol && sub.Endpoint == endpoint {
			return nil
		}
	}

	_, err = p.client.Subscribe(ctx, &sns.SubscribeInput{
		TopicArn: aws.String(topicARN),
		Protocol: aws.String(protocol),
		Endpoint: aws.String(endpoint),
	})
	if err != nil {
		p.logger.Warn("failed to subscribe endpoint",
			zap.String("protocol", protocol),
			zap.Error(err),
		)
		return apperrors.NewExternalError("sns", err)
	}
	return nil
}

// ListSubscriptions lists current subscriptions on a topic.
func (p *Publisher) ListSubscriptions(ctx context.Context, topicARN string) ([]ports.TopicSubscription, error) {
	var subs []ports.TopicSubscription

	paginator := sns.NewListSubscriptionsByTopicPaginator(p.client, &sns.ListSubscriptionsByTopicInput{
		TopicArn: aws.String(topicARN),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, apperrors.NewExternalError("sns", err)
		}
		for _, sub := range page.Subscriptions {
			subs = append(subs, ports.TopicSubscription{
				Protocol: aws.ToString(sub.Protocol),
				Endpoint: aws.ToString(sub.Endpoint),
			})
		}
	}

	return subs, nil
}

// Publish sends a message to every subscriber of the topic.
func (p *Publisher) Publish(ctx context.Context, topicARN, subject, message string) error {
	_, err := p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(topicARN),
		Subject:  aws.String(subject),
		Message:  aws.String(message),
	})
	if err != nil {
		return apperrors.NewExternalError("sns", err)
	}
	return nil
}
