package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"racquet-stats-system/apperrors"
	"racquet-stats-system/models"
)

// GormStore is the relational implementation of Store.
type GormStore struct {
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

func New(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates or updates the four tables and their cascade constraints.
func (s *GormStore) Migrate() error {
	return s.db.AutoMigrate(
		&models.User{},
		&models.Player{},
		&models.MatchRecord{},
		&models.Stat{},
	)
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *GormStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	return &user, nil
}

func (s *GormStore) GetUserByFirebaseID(ctx context.Context, firebaseID string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "firebase_id = ?", firebaseID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	return &user, nil
}

func (s *GormStore) CreateUser(ctx context.Context, user *models.User, owner *models.Player) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if owner != nil {
			if err := tx.Create(owner).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.Storage(err)
	}
	return nil
}

func (s *GormStore) GetPlayers(ctx context.Context, ownerUserID string) ([]models.Player, error) {
	var players []models.Player
	if err := s.db.WithContext(ctx).Find(&players, "owner_user_id = ?", ownerUserID).Error; err != nil {
		return nil, apperrors.Storage(err)
	}
	return players, nil
}

func (s *GormStore) GetPlayer(ctx context.Context, id string) (*models.Player, error) {
	var player models.Player
	err := s.db.WithContext(ctx).First(&player, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	return &player, nil
}

// CreatePlayer inserts the player and re-reads it so the caller gets the
// database-normalized values back (e.g. the rounded numeric level).
func (s *GormStore) CreatePlayer(ctx context.Context, player *models.Player) (*models.Player, error) {
	if err := s.db.WithContext(ctx).Create(player).Error; err != nil {
		return nil, apperrors.Storage(err)
	}
	return s.GetPlayer(ctx, player.ID)
}

// playerMutableColumns are the only columns UpdatePlayer rewrites.
var playerMutableColumns = []string{
	"image_url", "first_name", "last_name", "dominant_hand",
	"notes", "phone_number", "email_address", "level",
}

func (s *GormStore) UpdatePlayer(ctx context.Context, id string, player *models.Player) (*models.Player, error) {
	err := s.db.WithContext(ctx).
		Model(&models.Player{}).
		Where("id = ?", id).
		Select(playerMutableColumns).
		Updates(player).Error
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	return s.GetPlayer(ctx, id)
}

func (s *GormStore) DeletePlayer(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Delete(&models.Player{}, "id = ?", id).Error; err != nil {
		return apperrors.Storage(err)
	}
	return nil
}
