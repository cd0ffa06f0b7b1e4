package di

import (
	"context"
	"time"

	"fintrack-backend/application/ports"
	"fintrack-backend/application/services"
	"fintrack-backend/application/worker"
	"fintrack-backend/infrastructure/config"
	"fintrack-backend/infrastructure/identity/cognito"
	"fintrack-backend/infrastructure/messaging/sns"
	"fintrack-backend/infrastructure/messaging/sqs"
	"fintrack-backend/infrastructure/persistence/dynamodb"
	"fintrack-backend/infrastructure/storage/s3"
	"fintrack-backend/interfaces/http/rest/handlers"
	"fintrack-backend/pkg/auth"
	"fintrack-backend/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscognito "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	"go.uber.org/zap"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.IsProduction() || cfg.IsLambda {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	if cfg.LogLevel != "" {
		level, err := zap.ParseAtomicLevel(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		zapCfg.Level = level
	}

	return zapCfg.Build()
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideCognitoClient creates a Cognito Identity Provider client
func ProvideCognitoClient(awsCfg aws.Config) *awscognito.Client {
	return awscognito.NewFromConfig(awsCfg)
}

// ProvideS3Client creates an S3 client
func ProvideS3Client(awsCfg aws.Config) *awss3.Client {
	return awss3.NewFromConfig(awsCfg)
}

// ProvideSNSClient creates an SNS client
func ProvideSNSClient(awsCfg aws.Config) *awssns.Client {
	return awssns.NewFromConfig(awsCfg)
}

// ProvideSQSClient creates an SQS client
func ProvideSQSClient(awsCfg aws.Config) *awssqs.Client {
	return awssqs.NewFromConfig(awsCfg)
}

// ProvideVerifier creates a token verifier, or nil when the user pool is not
// configured. The auth middleware answers 503 on a nil verifier.
func ProvideVerifier(cfg *config.Config) *auth.Verifier {
	if !cfg.CognitoConfigured() {
		return nil
	}
	return auth.NewVerifier(cfg.AWSRegion, cfg.CognitoUserPoolID, cfg.CognitoClientID)
}

// ProvideMetrics creates the Prometheus collectors
func ProvideMetrics() *observability.Metrics {
	return observability.NewMetrics()
}

// ProvideUserRepository creates a user profile repository
func ProvideUserRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.UserRepository {
	return dynamodb.NewUserRepository(client, cfg.UsersTable, cfg.UsersEmailIndex, logger)
}

// ProvideExpenseRepository creates an expense repository
func ProvideExpenseRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.ExpenseRepository {
	return dynamodb.NewExpenseRepository(client, cfg.ExpensesTable, cfg.ExpensesUserIndex, cfg.ExpensesCategoryIndex, logger)
}

// ProvideIdentityProvider creates the Cognito-backed identity provider
func ProvideIdentityProvider(client *awscognito.Client, cfg *config.Config, logger *zap.Logger) ports.IdentityProvider {
	return cognito.NewClient(client, cfg.CognitoUserPoolID, cfg.CognitoClientID, logger)
}

// ProvideObjectStore creates the S3-backed object store
func ProvideObjectStore(client *awss3.Client, cfg *config.Config, logger *zap.Logger) ports.ObjectStore {
	return s3.NewStore(client, cfg.S3BucketName, logger)
}

// ProvideTopicPublisher creates the SNS-backed topic publisher
func ProvideTopicPublisher(client *awssns.Client, logger *zap.Logger) ports.TopicPublisher {
	return sns.NewPublisher(client, logger)
}

// ProvideMessageQueue creates the SQS-backed message queue
func ProvideMessageQueue(client *awssqs.Client, logger *zap.Logger) ports.MessageQueue {
	return sqs.NewQueue(client, logger)
}

// ProvideAuthService creates the auth service
func ProvideAuthService(identity ports.IdentityProvider, users ports.UserRepository, logger *zap.Logger) *services.AuthService {
	return services.NewAuthService(identity, users, logger)
}

// ProvideUserService creates the user profile service
func ProvideUserService(users ports.UserRepository) *services.UserService {
	return services.NewUserService(users)
}

// ProvideExpenseService creates the expense service
func ProvideExpenseService(expenses ports.ExpenseRepository, logger *zap.Logger) *services.ExpenseService {
	return services.NewExpenseService(expenses, logger)
}

// ProvideNotificationService creates the notification service
func ProvideNotificationService(
	topics ports.TopicPublisher,
	queue ports.MessageQueue,
	identity ports.IdentityProvider,
	cfg *config.Config,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *services.NotificationService {
	return services.NewNotificationService(
		topics,
		queue,
		identity,
		cfg.SNSTopicName,
		cfg.SQSQueueName,
		cfg.EnableNotifications,
		metrics,
		logger,
	)
}

// ProvideFileService creates the file service
func ProvideFileService(store ports.ObjectStore, notifications *services.NotificationService, cfg *config.Config, logger *zap.Logger) *services.FileService {
	return services.NewFileService(
		store,
		notifications,
		time.Duration(cfg.PresignExpirySeconds)*time.Second,
		logger,
	)
}

// ProvideNotificationWorker creates the queue-draining worker
func ProvideNotificationWorker(
	queue ports.MessageQueue,
	topics ports.TopicPublisher,
	cfg *config.Config,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *worker.NotificationWorker {
	return worker.NewNotificationWorker(
		queue,
		topics,
		cfg.SNSTopicName,
		cfg.SQSQueueName,
		cfg.SQSMaxMessages,
		cfg.SQSPollInterval,
		metrics,
		logger,
	)
}

// ProvideAuthHandler creates the auth handler
func ProvideAuthHandler(auth *services.AuthService, logger *zap.Logger) *handlers.AuthHandler {
	return handlers.NewAuthHandler(auth, logger)
}

// ProvideExpenseHandler creates the expense handler
func ProvideExpenseHandler(expenses *services.ExpenseService, logger *zap.Logger) *handlers.ExpenseHandler {
	return handlers.NewExpenseHandler(expenses, logger)
}

// ProvideUserHandler creates the user handler
func ProvideUserHandler(users *services.UserService, logger *zap.Logger) *handlers.UserHandler {
	return handlers.NewUserHandler(users, logger)
}

// ProvideFileHandler creates the file handler
func ProvideFileHandler(files *services.FileService, logger *zap.Logger) *handlers.FileHandler {
	return handlers.NewFileHandler(files, logger)
}

// ProvideNotificationHandler creates the notification handler
func ProvideNotificationHandler(notifications *services.NotificationService, logger *zap.Logger) *handlers.NotificationHandler {
	return handlers.NewNotificationHandler(notifications, logger)
}
