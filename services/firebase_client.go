package services

import (
	"context"
	"fmt"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"

	"racquet-stats-system/apperrors"
)

// IdentityClaims is the verified subset of a Firebase ID token this service
// cares about. FirebaseID is the stable subject; the rest is best-effort
// profile data.
type IdentityClaims struct {
	FirebaseID string
	Name       string
	Email      string
	Picture    string
}

// IdentityVerifier turns an opaque bearer token into verified claims. Any
// verification failure wraps apperrors.ErrInvalidIdentity and is treated as
// "unauthenticated", never as a server fault.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*IdentityClaims, error)
}

// Google publishes the signing keys for Firebase ID tokens here.
const firebaseJWKSURL = "https://www.googleapis.com/service_accounts/v1/jwk/securetoken%40system.gserviceaccount.com"

// FirebaseVerifier checks Firebase ID tokens locally against Google's JWKS,
// with issuer and audience pinned to the Firebase project.
type FirebaseVerifier struct {
	projectID string
	jwks      keyfunc.Keyfunc
}

var _ IdentityVerifier = (*FirebaseVerifier)(nil)

func NewFirebaseVerifier(projectID string) (*FirebaseVerifier, error) {
	if projectID == "" {
		return nil, fmt.Errorf("FIREBASE_PROJECT_ID is not set")
	}
	jwks, err := keyfunc.NewDefault([]string{firebaseJWKSURL})
	if err != nil {
		return nil, fmt.Errorf("failed to load Firebase JWKS: %w", err)
	}
	return &FirebaseVerifier{projectID: projectID, jwks: jwks}, nil
}

func (v *FirebaseVerifier) Verify(ctx context.Context, tokenString string) (*IdentityClaims, error) {
	if tokenString == "" {
		return nil, apperrors.ErrInvalidIdentity
	}

	token, err := jwt.Parse(tokenString, v.jwks.Keyfunc,
		jwt.WithIssuer("https://securetoken.google.com/"+v.projectID),
		jwt.WithAudience(v.projectID),
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidIdentity, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidIdentity
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("%w: token has no subject", apperrors.ErrInvalidIdentity)
	}
	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)
	picture, _ := claims["picture"].(string)

	return &IdentityClaims{
		FirebaseID: sub,
		Name:       name,
		Email:      email,
		Picture:    picture,
	}, nil
}
