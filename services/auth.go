package services

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"racquet-stats-system/apperrors"
	"racquet-stats-system/models"
)

// UserContextKey is where the auth middleware parks the resolved user for the
// duration of a request.
const UserContextKey = "current_user"

// CurrentUser returns the authenticated caller or ErrUnauthenticated when the
// request carried no verified identity.
func CurrentUser(c *fiber.Ctx) (*models.User, error) {
	user, _ := c.Locals(UserContextKey).(*models.User)
	if user == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	return user, nil
}

// requireOwnership rejects operations on records owned by someone else. Callers
// check existence first so a missing record reads as 404, not 403.
func requireOwnership(resourceOwnerID string, caller *models.User) error {
	if resourceOwnerID != caller.ID {
		return fmt.Errorf("record belongs to another user: %w", apperrors.ErrForbidden)
	}
	return nil
}

// fail maps a taxonomy error onto the HTTP boundary.
func fail(c *fiber.Ctx, err error) error {
	status := apperrors.Status(err)
	if status == fiber.StatusInternalServerError {
		log.Printf("❌ %s %s failed: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
