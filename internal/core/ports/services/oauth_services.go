package services

import (
	"context"

	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// GoogleOAuthSvcFacade covers the Google side of the sign-in flow.
type GoogleOAuthSvcFacade interface {
	// ExchangeCodeForToken exchanges an authorization code for Google tokens.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)

	// ValidateIDToken verifies a Google ID token against the configured client
	// ID and returns its payload.
	ValidateIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}
