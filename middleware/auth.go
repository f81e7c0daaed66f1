package middleware

import (
	"context"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"racquet-stats-system/models"
	"racquet-stats-system/services"
	"racquet-stats-system/store"
)

// IdentityHeader carries the caller's Firebase ID token.
const IdentityHeader = "X-Firebase-Token"

// FirebaseAuthMiddleware resolves the caller: it verifies the token, loads the
// matching user and attaches it to the request context. The first verified
// login creates the user row together with its owner player. A missing or
// invalid token is not fatal here: the request continues with no user
// attached and each handler decides whether that is acceptable.
func FirebaseAuthMiddleware(verifier services.IdentityVerifier, st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get(IdentityHeader)
		if token == "" {
			return c.Next()
		}

		claims, err := verifier.Verify(c.Context(), token)
		if err != nil {
			log.Printf("🚫 [AUTH] rejected token on %s %s: %v", c.Method(), c.Path(), err)
			return c.Next()
		}

		user, err := st.GetUserByFirebaseID(c.Context(), claims.FirebaseID)
		if err != nil {
			log.Printf("❌ [AUTH] user lookup failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to resolve user"})
		}
		if user == nil {
			user, err = registerUser(c.Context(), st, claims)
			if err != nil {
				log.Printf("❌ [AUTH] user registration failed: %v", err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to register user"})
			}
			log.Printf("✅ [AUTH] registered new user %s", user.ID)
		}

		c.Locals(services.UserContextKey, user)
		return c.Next()
	}
}

// registerUser creates the account and its owner player in one transaction.
// Every account has exactly one is_owner player from the moment it exists.
func registerUser(ctx context.Context, st store.Store, claims *services.IdentityClaims) (*models.User, error) {
	firstName, lastName := splitName(claims.Name)
	user := &models.User{
		ID:         uuid.NewString(),
		FirebaseID: claims.FirebaseID,
		FirstName:  firstName,
		LastName:   lastName,
		ImageURL:   claims.Picture,
	}
	owner := &models.Player{
		ID:          uuid.NewString(),
		OwnerUserID: user.ID,
		IsOwner:     true,
		FirstName:   firstName,
		LastName:    lastName,
	}
	if claims.Picture != "" {
		picture := claims.Picture
		owner.ImageURL = &picture
	}
	if claims.Email != "" {
		email := claims.Email
		owner.EmailAddress = &email
	}
	if err := st.CreateUser(ctx, user, owner); err != nil {
		return nil, err
	}
	return user, nil
}

// splitName splits a display name on the first space: first word becomes the
// first name, everything after it the last name.
func splitName(name string) (string, string) {
	parts := strings.SplitN(strings.TrimSpace(name), " ", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return parts[0], ""
}
