// Package cognito implements the identity provider port on Amazon Cognito.
package cognito

import (
	"context"
	"errors"
	"fmt"

	"fintrack-backend/application/ports"
	"fintrack-backend/domain"
	apperrors "fintrack-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Client wraps the Cognito user pool operations behind the identity port.
type Client struct {
	cip        *cognitoidentityprovider.Client
	userPoolID string
	clientID   string
	logger     *zap.Logger
}

// NewClient creates a Cognito-backed identity provider.
func NewClient(cip *cognitoidentityprovider.Client, userPoolID, clientID string, logger *zap.Logger) ports.IdentityProvider {
	return &Client{
		cip:        cip,
		userPoolID: userPoolID,
		clientID:   clientID,
		logger:     logger,
	}
}

// SignUp registers the account, admin-confirms it so no email round trip is
// needed, and logs it straight in.
func (c *Client) SignUp(ctx context.Context, email, password, name string) (*domain.AuthSession, error) {
	_, err := c.cip.SignUp(ctx, &cognitoidentityprovider.SignUpInput{
		ClientId: aws.String(c.clientID),
		Username: aws.String(email),
		Password: aws.String(password),
		UserAttributes: []types.AttributeType{
			{Name: aws.String("email"), Value: aws.String(email)},
			{Name: aws.String("name"), Value: aws.String(name)},
		},
	})
	if err != nil {
		var exists *types.UsernameExistsException
		if errors.As(err, &exists) {
			return nil, apperrors.NewConflictError("user already exists").WithCode("USER_EXISTS")
		}
		var badPassword *types.InvalidPasswordException
		if errors.As(err, &badPassword) {
			return nil, apperrors.NewValidationError("password does not meet the pool policy")
		}
		return nil, apperrors.NewExternalError("cognito", err)
	}

	_, err = c.cip.AdminConfirmSignUp(ctx, &cognitoidentityprovider.AdminConfirmSignUpInput{
		UserPoolId: aws.String(c.userPoolID),
		Username:   aws.String(email),
	})
	if err != nil {
		c.logger.Error("failed to auto-confirm user",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, apperrors.NewExternalError("cognito", err)
	}

	return c.Login(ctx, email, password)
}

// Login resolves the pool username by email, then runs the password flow.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.AuthSession, error) {
	users, err := c.cip.ListUsers(ctx, &cognitoidentityprovider.ListUsersInput{
		UserPoolId: aws.String(c.userPoolID),
		Filter:     aws.String(fmt.Sprintf("email = %q", email)),
		Limit:      aws.Int32(1),
	})
	if err != nil {
		return nil, apperrors.NewExternalError("cognito", err)
	}
	if len(users.Users) == 0 {
		return nil, apperrors.NewNotFoundError("user").WithCode("USER_NOT_FOUND")
	}
	username := aws.ToString(users.Users[0].Username)

	out, err := c.cip.InitiateAuth(ctx, &cognitoidentityprovider.InitiateAuthInput{
		ClientId: aws.String(c.clientID),
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		AuthParameters: map[string]string{
			"USERNAME": username,
			"PASSWORD": password,
		},
	})
	if err != nil {
		var notAuthorized *types.NotAuthorizedException
		if errors.As(err, &notAuthorized) {
			return nil, apperrors.NewUnauthorizedError("invalid email or password").WithCode("INVALID_CREDENTIALS")
		}
		var notFound *types.UserNotFoundException
		if errors.As(err, &notFound) {
			return nil, apperrors.NewNotFoundError("user").WithCode("USER_NOT_FOUND")
		}
		return nil, apperrors.NewExternalError("cognito", err)
	}
	if out.AuthenticationResult == nil {
		return nil, apperrors.NewExternalError("cognito", errors.New("auth flow returned no tokens"))
	}

	tokens := out.AuthenticationResult
	session := &domain.AuthSession{
		AccessToken:  aws.ToString(tokens.AccessToken),
		IDToken:      aws.ToString(tokens.IdToken),
		RefreshToken: aws.ToString(tokens.RefreshToken),
		ExpiresIn:    tokens.ExpiresIn,
		User:         identityFromIDToken(aws.ToString(tokens.IdToken)),
	}
	return session, nil
}

// Refresh exchanges a refresh token for a new access/id token pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*domain.AuthSession, error) {
	out, err := c.cip.InitiateAuth(ctx, &cognitoidentityprovider.InitiateAuthInput{
		ClientId: aws.String(c.clientID),
		AuthFlow: types.AuthFlowTypeRefreshTokenAuth,
		AuthParameters: map[string]string{
			"REFRESH_TOKEN": refreshToken,
		},
	})
	if err != nil {
		var notAuthorized *types.NotAuthorizedException
		if errors.As(err, &notAuthorized) {
			return nil, apperrors.NewUnauthorizedError("refresh token rejected")
		}
		return nil, apperrors.NewExternalError("cognito", err)
	}
	if out.AuthenticationResult == nil {
		return nil, apperrors.NewExternalError("cognito", errors.New("refresh flow returned no tokens"))
	}

	tokens := out.AuthenticationResult
	return &domain.AuthSession{
		AccessToken: aws.ToString(tokens.AccessToken),
		IDToken:     aws.ToString(tokens.IdToken),
		ExpiresIn:   tokens.ExpiresIn,
		User:        identityFromIDToken(aws.ToString(tokens.IdToken)),
	}, nil
}

// ResetPassword kicks off the provider-managed reset flow for the account.
func (c *Client) ResetPassword(ctx context.Context, email string) error {
	_, err := c.cip.AdminResetUserPassword(ctx, &cognitoidentityprovider.AdminResetUserPasswordInput{
		UserPoolId: aws.String(c.userPoolID),
		Username:   aws.String(email),
	})
	if err != nil {
		var notFound *types.UserNotFoundException
		if errors.As(err, &notFound) {
			return apperrors.NewNotFoundError("user")
		}
		return apperrors.NewExternalError("cognito", err)
	}
	return nil
}

// GetUser resolves the account behind an access token.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*domain.IdentityUser, error) {
	out, err := c.cip.GetUser(ctx, &cognitoidentityprovider.GetUserInput{
		AccessToken: aws.String(accessToken),
	})
	if err != nil {
		var notAuthorized *types.NotAuthorizedException
		if errors.As(err, &notAuthorized) {
			return nil, apperrors.NewUnauthorizedError("access token rejected")
		}
		return nil, apperrors.NewExternalError("cognito", err)
	}

	attrs := make(map[string]string, len(out.UserAttributes))
	for _, attr := range out.UserAttributes {
		attrs[aws.ToString(attr.Name)] = aws.ToString(attr.Value)
	}

	return &domain.IdentityUser{
		ID:            attrs["sub"],
		Email:         attrs["email"],
		Name:          attrs["name"],
		Username:      aws.ToString(out.Username),
		Phone:         attrs["phone_number"],
		EmailVerified: attrs["email_verified"] == "true",
	}, nil
}

// ListContacts walks the whole pool and collects reachable endpoints.
func (c *Client) ListContacts(ctx context.Context) ([]domain.Recipient, error) {
	var contacts []domain.Recipient

	paginator := cognitoidentityprovider.NewListUsersPaginator(c.cip, &cognitoidentityprovider.ListUsersInput{
		UserPoolId: aws.String(c.userPoolID),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, apperrors.NewExternalError("cognito", err)
		}
		for _, user := range page.Users {
			var recipient domain.Recipient
			for _, attr := range user.Attributes {
				switch aws.ToString(attr.Name) {
				case "email":
					recipient.Email = aws.ToString(attr.Value)
				case "phone_number":
					recipient.Phone = aws.ToString(attr.Value)
				}
			}
			if recipient.Email != "" || recipient.Phone != "" {
				contacts = append(contacts, recipient)
			}
		}
	}

	return contacts, nil
}

// identityFromIDToken reads display claims out of the id token without
// verifying it; the token just came off the provider's TLS response.
func identityFromIDToken(idToken string) domain.IdentityUser {
	if idToken == "" {
		return domain.IdentityUser{}
	}

	parser := jwt.NewParser()
	token, _, err := parser.ParseUnverified(idToken, jwt.MapClaims{})
	if err != nil {
		return domain.IdentityUser{}
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.IdentityUser{}
	}

	var user domain.IdentityUser
	user.ID, _ = claims["sub"].(string)
	user.Email, _ = claims["email"].(string)
	user.Name, _ = claims["name"].(string)
	user.Username, _ = claims["cognito:username"].(string)
	user.Phone, _ = claims["phone_number"].(string)
	if verified, ok := claims["email_verified"].(bool); ok {
		user.EmailVerified = verified
	}
	return user
}
