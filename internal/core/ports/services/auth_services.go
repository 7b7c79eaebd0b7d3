package services

import (
	"context"
	"time"

	"golang.org/x/oauth2"

	"github.com/skillswap/skillswap_app/internal/core/domain"
)

// TokenSvcFacade issues and inspects the application's access tokens.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a signed JWT for the user, carrying the
	// user id as subject and the role as a private claim.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}

// GoogleOAuthSvcFacade wraps the Google side of the OAuth login flow.
type GoogleOAuthSvcFacade interface {
	// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)

	// GetUserInfo fetches the Google profile for the token's owner.
	GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error)
}
