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

// ExpenseRepository stores expense records. User- and category-scoped
// listings go through the matching GSIs; unfiltered listing is a scan,
// exactly as wide as the managed store makes it.
type ExpenseRepository struct {
	client        *dynamodb.Client
	tableName     string
	userIndex     string
	categoryIndex string
	logger        *zap.Logger
}

// NewExpenseRepository creates a DynamoDB-backed expense repository.
func NewExpenseRepository(client *dynamodb.Client, tableName, userIndex, categoryIndex string, logger *zap.Logger) ports.ExpenseRepository {
	return &ExpenseRepository{
		client:        client,
		tableName:     tableName,
		userIndex:     userIndex,
		categoryIndex: categoryIndex,
		logger:        logger,
	}
}

// Create writes a new expense, refusing to overwrite an existing id.
func (r *ExpenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	av, err := attributevalue.MarshalMap(expense)
	if err != nil {
		return apperrors.NewInternalError("failed to marshal expense").WithCause(err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return apperrors.NewConflictError("expense with this id already exists")
		}
		r.logger.Error("failed to put expense",
			zap.String("expenseID", expense.ID),
			zap.String("userID", expense.UserID),
			zap.Error(err),
		)
		return translateError("create expense", err)
	}

	return nil
}

// GetByID fetches an expense by primary key.
func (r *ExpenseRepository) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return nil, translateError("get expense", err)
	}
	if out.Item == nil {
		return nil, apperrors.NewNotFoundError("expense")
	}

	var expense domain.Expense
	if err := attributevalue.UnmarshalMap(out.Item, &expense); err != nil {
		return nil, apperrors.NewInternalError("failed to unmarshal expense").WithCause(err)
	}
	return &expense, nil
}

// ListByUser queries the user GSI.
func (r *ExpenseRepository) ListByUser(ctx context.Context, userID string, limit int32) ([]domain.Expense, error) {
	keyEx := expression.Key("user_id").Equal(expression.Value(userID))
	return r.queryIndex(ctx, r.userIndex, keyEx, limit, "list expenses by user")
}

// ListByCategory queries the category GSI.
func (r *ExpenseRepository) ListByCategory(ctx context.Context, category string, limit int32) ([]domain.Expense, error) {
	keyEx := expression.Key("category").Equal(expression.Value(category))
	return r.queryIndex(ctx, r.categoryIndex, keyEx, limit, "list expenses by category")
}

func (r *ExpenseRepository) queryIndex(ctx context.Context, index string, keyEx expression.KeyConditionBuilder, limit int32, operation string) ([]domain.Expense, error) {
	expr, err := expression.NewBuilder().WithKeyCondition(keyEx).Build()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build expense query").WithCause(err)
	}

	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(index),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Limit:                     aws.Int32(limit),
	})
	if err != nil {
		return nil, translateError(operation, err)
	}

	expenses := make([]domain.Expense, 0, len(out.Items))
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &expenses); err != nil {
		return nil, apperrors.NewInternalError("failed to unmarshal expenses").WithCause(err)
	}
	return expenses, nil
}

// ListAll scans the table up to limit items.
func (r *ExpenseRepository) ListAll(ctx context.Context, limit int32) ([]domain.Expense, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
		Limit:     aws.Int32(limit),
	})
	if err != nil {
		return nil, translateError("list expenses", err)
	}

	expenses := make([]domain.Expense, 0, len(out.Items))
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &expenses); err != nil {
		return nil, apperrors.NewInternalError("failed to unmarshal expenses").WithCause(err)
	}
	return expenses, nil
}

// Update applies a partial update and returns the stored record.
func (r *ExpenseRepository) Update(ctx context.Context, id string, update domain.ExpenseUpdate) (*domain.Expense, error) {
	set := expression.Set(
		expression.Name("updated_at"),
		expression.Value(time.Now().UTC().Format(time.RFC3339)),
	)
	if update.ExpenseDate != nil {
		set = set.Set(expression.Name("expense_date"), expression.Value(*update.ExpenseDate))
	}
	if update.Amount != nil {
		set = set.Set(expression.Name("amount"), expression.Value(*update.Amount))
	}
	if update.Category != nil {
		set = set.Set(expression.Name("category"), expression.Value(*update.Category))
	}
	if update.Merchant != nil {
		set = set.Set(expression.Name("merchant"), expression.Value(*update.Merchant))
	}
	if update.Note != nil {
		set = set.Set(expression.Name("note"), expression.Value(*update.Note))
	}
	if update.Tags != nil {
		set = set.Set(expression.Name("tags"), expression.Value(*update.Tags))
	}
	if update.Attachments != nil {
		set = set.Set(expression.Name("attachments"), expression.Value(*update.Attachments))
	}
	if update.Metadata != nil {
		set = set.Set(expression.Name("metadata"), expression.Value(*update.Metadata))
	}

	condition := expression.AttributeExists(expression.Name("id"))
	expr, err := expression.NewBuilder().WithUpdate(set).WithCondition(condition).Build()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build expense update").WithCause(err)
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
			return nil, apperrors.NewNotFoundError("expense")
		}
		return nil, translateError("update expense", err)
	}

	var expense domain.Expense
	if err := attributevalue.UnmarshalMap(out.Attributes, &expense); err != nil {
		return nil, apperrors.NewInternalError("failed to unmarshal expense").WithCause(err)
	}
	return &expense, nil
}

// Delete removes an expense, reporting not found for unknown ids.
func (r *ExpenseRepository) Delete(ctx context.Context, id string) error {
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
			return apperrors.NewNotFoundError("expense")
		}
		return translateError("delete expense", err)
	}
	return nil
}

// Ping verifies the table answers queries at all.
func (r *ExpenseRepository) Ping(ctx context.Context) error {
	_, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
		Limit:     aws.Int32(1),
	})
	if err != nil {
		return translateError("ping expenses table", err)
	}
	return nil
}
