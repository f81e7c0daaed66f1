package services

import (
	"github.com/gofiber/fiber/v2"

	"racquet-stats-system/store"
)

type UserService struct {
	Store store.Store
}

func NewUserService(st store.Store) *UserService {
	return &UserService{Store: st}
}

// Login returns the caller's user record. The auth middleware already created
// the record (and its owner player) on first verified login, so by the time we
// get here the account either exists or the request is unauthenticated.
func (s *UserService) Login(c *fiber.Ctx) error {
	user, err := CurrentUser(c)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user)
}
