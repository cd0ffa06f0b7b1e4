//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"fintrack-backend/application/ports"
	"fintrack-backend/application/services"
	"fintrack-backend/application/worker"
	"fintrack-backend/infrastructure/config"
	"fintrack-backend/interfaces/http/rest"
	"fintrack-backend/pkg/auth"
	"fintrack-backend/pkg/observability"

	"github.com/google/wire"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	Verifier *auth.Verifier
	Metrics  *observability.Metrics

	UserRepo    ports.UserRepository
	ExpenseRepo ports.ExpenseRepository
	Identity    ports.IdentityProvider
	Store       ports.ObjectStore
	Topics      ports.TopicPublisher
	Queue       ports.MessageQueue

	AuthService         *services.AuthService
	UserService         *services.UserService
	ExpenseService      *services.ExpenseService
	NotificationService *services.NotificationService
	FileService         *services.FileService

	Worker *worker.NotificationWorker
	Router *rest.Router
}

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideCognitoClient,
	ProvideS3Client,
	ProvideSNSClient,
	ProvideSQSClient,
	ProvideVerifier,
	ProvideMetrics,
	ProvideUserRepository,
	ProvideExpenseRepository,
	ProvideIdentityProvider,
	ProvideObjectStore,
	ProvideTopicPublisher,
	ProvideMessageQueue,
	ProvideAuthService,
	ProvideUserService,
	ProvideExpenseService,
	ProvideNotificationService,
	ProvideFileService,
	ProvideNotificationWorker,
	ProvideAuthHandler,
	ProvideExpenseHandler,
	ProvideUserHandler,
	ProvideFileHandler,
	ProvideNotificationHandler,
	rest.NewRouter,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
