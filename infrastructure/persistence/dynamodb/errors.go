package dynamodb

import (
	"errors"

	apperrors "fintrack-backend/pkg/errors"

	"github.com/aws/smithy-go"
)

// translateError maps DynamoDB API errors onto application errors. Callers
// handle ConditionalCheckFailedException themselves since its meaning
// depends on the condition.
func translateError(operation string, err error) error {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return apperrors.NewDatabaseError(operation, err)
	}

	switch apiErr.ErrorCode() {
	case "ResourceNotFoundException":
		return apperrors.NewDatabaseError(operation, err).WithCode("TABLE_NOT_FOUND")
	case "ProvisionedThroughputExceededException", "RequestLimitExceeded", "ThrottlingException":
		return apperrors.NewUnavailableError("database").WithCause(err)
	default:
		return apperrors.NewDatabaseError(operation, err)
	}
}
