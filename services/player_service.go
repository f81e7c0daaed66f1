package services

import (
	"fmt"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"racquet-stats-system/apperrors"
	"racquet-stats-system/models"
	"racquet-stats-system/store"
	"racquet-stats-system/utils"
)

type PlayerService struct {
	Store store.Store
}

func NewPlayerService(st store.Store) *PlayerService {
	return &PlayerService{Store: st}
}

type playerRequest struct {
	PlayerID     string   `json:"player_id"`
	ImageURL     *string  `json:"image_url"`
	FirstName    string   `json:"first_name"`
	LastName     string   `json:"last_name"`
	DominantHand *string  `json:"dominant_hand"`
	Notes        *string  `json:"notes"`
	PhoneNumber  *string  `json:"phone_number"`
	Email        *string  `json:"email"`
	Level        *float64 `json:"level"`
}

// toPlayer builds the row a request describes. The owner always comes from the
// verified caller and is_owner is always false: the owner player exists from
// signup and can never be created through the API.
func (r *playerRequest) toPlayer(ownerUserID string) (*models.Player, error) {
	if r.FirstName == "" || r.LastName == "" {
		return nil, apperrors.Validation("first_name and last_name are required")
	}
	if r.Level != nil && (*r.Level < 0 || *r.Level > 10) {
		return nil, apperrors.Validation("level must be between 0 and 10")
	}
	id := r.PlayerID
	if id == "" {
		id = uuid.NewString()
	}
	return &models.Player{
		ID:           id,
		OwnerUserID:  ownerUserID,
		IsOwner:      false,
		ImageURL:     r.ImageURL,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		DominantHand: r.DominantHand,
		Notes:        r.Notes,
		PhoneNumber:  r.PhoneNumber,
		EmailAddress: r.Email,
		Level:        r.Level,
	}, nil
}

func (s *PlayerService) ListPlayers(c *fiber.Ctx) error {
	user, err := CurrentUser(c)
	if err != nil {
		return fail(c, err)
	}
	players, err := s.Store.GetPlayers(c.Context(), user.ID)
	if err != nil {
		return fail(c, err)
	}
	if players == nil {
		players = []models.Player{}
	}
	return c.JSON(players)
}

func (s *PlayerService) CreatePlayer(c *fiber.Ctx) error {
	user, err := CurrentUser(c)
	if err != nil {
		return fail(c, err)
	}
	var req playerRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, apperrors.Validation("invalid request body: %v", err))
	}
	player, err := req.toPlayer(user.ID)
	if err != nil {
		return fail(c, err)
	}
	created, err := s.Store.CreatePlayer(c.Context(), player)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (s *PlayerService) UpdatePlayer(c *fiber.Ctx) error {
	user, err := CurrentUser(c)
	if err != nil {
		return fail(c, err)
	}
	id := c.Params("id")
	existing, err := s.Store.GetPlayer(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	if existing == nil {
		return fail(c, fmt.Errorf("player %s: %w", id, apperrors.ErrNotFound))
	}
	if err := requireOwnership(existing.OwnerUserID, user); err != nil {
		return fail(c, err)
	}

	var req playerRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, apperrors.Validation("invalid request body: %v", err))
	}
	player, err := req.toPlayer(user.ID)
	if err != nil {
		return fail(c, err)
	}
	updated, err := s.Store.UpdatePlayer(c.Context(), id, player)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(updated)
}

func (s *PlayerService) DeletePlayer(c *fiber.Ctx) error {
	user, err := CurrentUser(c)
	if err != nil {
		return fail(c, err)
	}
	id := c.Params("id")
	existing, err := s.Store.GetPlayer(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	if existing == nil {
		return fail(c, fmt.Errorf("player %s: %w", id, apperrors.ErrNotFound))
	}
	if err := requireOwnership(existing.OwnerUserID, user); err != nil {
		return fail(c, err)
	}
	if existing.IsOwner {
		return fail(c, fmt.Errorf("the owner player cannot be deleted: %w", apperrors.ErrForbidden))
	}
	if err := s.Store.DeletePlayer(c.Context(), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "player deleted"})
}

// UploadAvatar stores a multipart avatar image and points the player's
// image_url at it.
func (s *PlayerService) UploadAvatar(c *fiber.Ctx) error {
	user, err := CurrentUser(c)
	if err != nil {
		return fail(c, err)
	}
	id := c.Params("id")
	existing, err := s.Store.GetPlayer(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	if existing == nil {
		return fail(c, fmt.Errorf("player %s: %w", id, apperrors.ErrNotFound))
	}
	if err := requireOwnership(existing.OwnerUserID, user); err != nil {
		return fail(c, err)
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		return fail(c, apperrors.Validation("avatar file is required"))
	}
	ext := filepath.Ext(file.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	key := "avatars/" + uuid.NewString() + ext
	url, err := utils.UploadFileToR2(file, key)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to upload avatar"})
	}

	existing.ImageURL = &url
	updated, err := s.Store.UpdatePlayer(c.Context(), id, existing)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(updated)
}
