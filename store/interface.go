package store

import (
	"context"

	"racquet-stats-system/models"
)

// Store is the persistence capability the services and middleware depend on.
// "No matching row" is reported as a nil result, never as an error; every
// other failure surfaces as an apperrors.StorageError.
type Store interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByFirebaseID(ctx context.Context, firebaseID string) (*models.User, error)
	// CreateUser inserts the user and, when owner is non-nil, its is_owner
	// player in the same transaction. An account never exists without its
	// owner player.
	CreateUser(ctx context.Context, user *models.User, owner *models.Player) error

	GetPlayers(ctx context.Context, ownerUserID string) ([]models.Player, error)
	GetPlayer(ctx context.Context, id string) (*models.Player, error)
	CreatePlayer(ctx context.Context, player *models.Player) (*models.Player, error)
	// UpdatePlayer rewrites the mutable profile fields only; id, owner and the
	// is_owner flag are never touched regardless of what player carries.
	UpdatePlayer(ctx context.Context, id string, player *models.Player) (*models.Player, error)
	DeletePlayer(ctx context.Context, id string) error

	// GetMatches returns the owner's assembled matches, newest first.
	GetMatches(ctx context.Context, ownerUserID string) ([]*models.Match, error)
	GetMatch(ctx context.Context, id string) (*models.Match, error)
	// CreateMatch atomically inserts the match row and all stat rows, then
	// re-reads the committed aggregate. After a failed call nothing is
	// observably persisted.
	CreateMatch(ctx context.Context, record *models.MatchRecord, stats []models.Stat) (*models.Match, error)
	DeleteMatch(ctx context.Context, id string) error

	Close() error
}
