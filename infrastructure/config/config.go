package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// AWS configuration
	AWSRegion string

	// DynamoDB tables and secondary indexes
	UsersTable            string
	ExpensesTable         string
	UsersEmailIndex       string
	ExpensesUserIndex     string
	ExpensesCategoryIndex string

	// Identity provider
	CognitoUserPoolID string
	CognitoClientID   string

	// Object storage
	S3BucketName         string
	PresignExpirySeconds int

	// Notifications
	EnableNotifications bool
	SNSTopicName        string
	SQSQueueName        string
	SQSMaxMessages      int32
	SQSPollInterval     int32 // seconds, also used as the long-poll wait

	// Lambda
	IsLambda bool

	// Logging and features
	LogLevel      string
	EnableMetrics bool
	EnableCORS    bool
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		AWSRegion:     getEnv("AWS_REGION", "us-east-1"),

		UsersTable:            getEnv("USERS_TABLE", "user_profiles"),
		ExpensesTable:         getEnv("EXPENSES_TABLE", "finance_expenses"),
		UsersEmailIndex:       getEnv("USERS_EMAIL_INDEX", "email-index"),
		ExpensesUserIndex:     getEnv("EXPENSES_USER_INDEX", "user_id-index"),
		ExpensesCategoryIndex: getEnv("EXPENSES_CATEGORY_INDEX", "category-index"),

		CognitoUserPoolID: getEnv("COGNITO_USER_POOL_ID", ""),
		CognitoClientID:   getEnv("COGNITO_CLIENT_ID", ""),

		S3BucketName:         getEnv("S3_BUCKET_NAME", ""),
		PresignExpirySeconds: getEnvInt("PRESIGN_EXPIRY_SECONDS", 3600),

		EnableNotifications: getEnvBool("ENABLE_NOTIFICATIONS", true),
		SNSTopicName:        getEnv("SNS_TOPIC_NAME", "file-upload-notifications"),
		SQSQueueName:        getEnv("SQS_QUEUE_NAME", "upload-notification-queue"),
		SQSMaxMessages:      int32(getEnvInt("SQS_MAX_MESSAGES", 10)),
		SQSPollInterval:     int32(getEnvInt("SQS_POLL_INTERVAL", 5)),

		IsLambda: getEnvBool("IS_LAMBDA", false),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		EnableMetrics: getEnvBool("ENABLE_METRICS", true),
		EnableCORS:    getEnvBool("ENABLE_CORS", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that required configuration is present. Outside production
// a missing identity provider or bucket only disables the matching endpoints.
func (c *Config) Validate() error {
	if c.SQSMaxMessages < 1 || c.SQSMaxMessages > 10 {
		return fmt.Errorf("SQS_MAX_MESSAGES must be between 1 and 10, got %d", c.SQSMaxMessages)
	}
	if c.SQSPollInterval < 0 || c.SQSPollInterval > 20 {
		return fmt.Errorf("SQS_POLL_INTERVAL must be between 0 and 20 seconds, got %d", c.SQSPollInterval)
	}

	if c.Environment == "production" {
		if c.CognitoUserPoolID == "" || c.CognitoClientID == "" {
			return fmt.Errorf("COGNITO_USER_POOL_ID and COGNITO_CLIENT_ID are required in production")
		}
		if c.UsersTable == "" || c.ExpensesTable == "" {
			return fmt.Errorf("USERS_TABLE and EXPENSES_TABLE are required in production")
		}
		if c.S3BucketName == "" {
			return fmt.Errorf("S3_BUCKET_NAME is required in production")
		}
	}

	return nil
}

// CognitoConfigured reports whether the identity provider is set up.
func (c *Config) CognitoConfigured() bool {
	return c.CognitoUserPoolID != "" && c.CognitoClientID != ""
}

// StorageConfigured reports whether the object store is set up.
func (c *Config) StorageConfigured() bool {
	return c.S3BucketName != ""
}

// IsDevelopment checks if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
