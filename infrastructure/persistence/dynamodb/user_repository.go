// Package dynamodb implements the repository ports on AWS DynamoDB.
package dynamodb

import (
	"context"
	"errors"
	"time"

	"fintrack-backend/application/ports"
	"fintrack-backend/domain"
	apperrors "fintrack-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// UserRepository stores user profiles in the users table. Email uniqueness
// is backed by the email GSI.
type UserRepository struct {
	client     *dynamodb.Client
	tableName  string
	emailIndex string
	logger     *zap.Logger
}

// NewUserRepository creates a DynamoDB-backed user repository.
func NewUserRepository(client *dynamodb.Client, tableName, emailIndex string, logger *zap.Logger) ports.UserRepository {
	return &UserRepository{
		client:     client,
		tableName:  tableName,
		emailIndex: emailIndex,
		logger:     logger,
	}
}

// Create writes a new profile, refusing to overwrite an existing id.
func (r *UserRepository) Create(ctx context.Context, profile *domain.UserProfile) error {
	av, err := attributevalue.MarshalMap(profile)
	if err != nil {
		return apperrors.NewInternalError("failed to marshal user profile").WithCause(err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return apperrors.NewConflictError("user with this id already exists")
		}
		r.logger.Error("failed to put user profile",
			zap.String("userID", profile.ID),
			zap.Error(err),
		)
		return translateError("create user", err)
	}

	return nil
}

// GetByID fetches a profile by primary key.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return nil, translateError("get user", err)
	}
	if out.Item == nil {
		return nil, apperrors.NewNotFoundError("user")
	}

	var profile domain.UserProfile
	if err := attributevalue.UnmarshalMap(out.Item, &profile); err != nil {
		return nil, apperrors.NewInternalError("failed to unmarshal user profile").WithCause(err)
	}
	return &profile, nil
}

// GetByEmail resolves a profile through the email index.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.UserProfile, error) {
	keyEx := expression.Key("email").Equal(expression.Value(email))
	expr, err := expression.NewBuilder().WithKeyCondition(keyEx).Build()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build email query").WithCause(err)
	}

	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(r.emailIndex),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, translateError("get user by email", err)
	}
	if len(out.Items) == 0 {
		return nil, apperrors.NewNotFoundError("user")
	}

	var profile domain.UserProfile
	if err := attributevalue.UnmarshalMap(out.Items[0], &profile); err != nil {
		return nil, apperrors.NewInternalError("failed to unmarshal user profile").WithCause(err)
	}
	return &profile, nil
}

// Update applies a partial update and returns the stored row.
func (r *UserRepository) Update(ctx context.Context, id string, update domain.UserProfileUpdate) (*domain.UserProfile, error) {
	set := expression.Set(
		expression.Name("updated_at"),
		expression.Value(time.Now().UTC().Format(time.RFC3339)),
	)
	if update.Name != nil {
		set = set.Set(expression.Name("name"), expression.Value(*update.Name))
	}
	if update.AvatarKey != nil {
		set = set.Set(expression.Name("avatar_key"), expression.Value(*update.AvatarKey))
	}
	if update.Metadata != nil {
		set = set.Set(expression.Name("metadata"), expression.Value(*update.Metadata))
	}

	condition := expression.AttributeExists(expression.Name("id"))
	expr, err := expression.NewBuilder().WithUpdate(set).WithCondition(condition).Build()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build user update").WithCause(err)
	}

	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return nil, apperrors.NewNotFoundError("user")
		}
		return nil, translateError("update user", err)
	}

	var profile domain.UserProfile
	if err := attributevalue.UnmarshalMap(out.Attributes, &profile); err != nil {
		return nil, apperrors.NewInternalError("failed to unmarshal user profile").WithCause(err)
	}
	return &profile, nil
}

// Delete removes a profile, reporting not found for unknown ids.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(id)"),
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return apperrors.NewNotFoundError("user")
		}
		return translateError("delete user", err)
	}
	return nil
}

// Ping verifies the table answers queries at all.
func (r *UserRepository) Ping(ctx context.Context) error {
	_, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
		Limit:     aws.Int32(1),
	})
	if err != nil {
		return translateError("ping users table", err)
	}
	return nil
}
