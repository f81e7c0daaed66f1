package services

import (
	"context"
	"sort"

	"racquet-stats-system/apperrors"
	"racquet-stats-system/models"
	"racquet-stats-system/store"
)

// fakeStore is an in-memory Store for handler tests.
type fakeStore struct {
	users   map[string]*models.User
	players map[string]*models.Player
	matches map[string]*models.Match

	storageErr error // when set, every write fails with it

	lastRecord *models.MatchRecord
	lastStats  []models.Stat
}

var _ store.Store = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:   map[string]*models.User{},
		players: map[string]*models.Player{},
		matches: map[string]*models.Match{},
	}
}

func (f *fakeStore) GetUser(_ context.Context, id string) (*models.User, error) {
	return f.users[id], nil
}

func (f *fakeStore) GetUserByFirebaseID(_ context.Context, firebaseID string) (*models.User, error) {
	for _, user := range f.users {
		if user.FirebaseID == firebaseID {
			return user, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CreateUser(_ context.Context, user *models.User, owner *models.Player) error {
	if f.storageErr != nil {
		return f.storageErr
	}
	f.users[user.ID] = user
	if owner != nil {
		f.players[owner.ID] = owner
	}
	return nil
}

func (f *fakeStore) GetPlayers(_ context.Context, ownerUserID string) ([]models.Player, error) {
	var players []models.Player
	for _, player := range f.players {
		if player.OwnerUserID == ownerUserID {
			players = append(players, *player)
		}
	}
	sort.Slice(players, func(i, j int) bool { return players[i].ID < players[j].ID })
	return players, nil
}

func (f *fakeStore) GetPlayer(_ context.Context, id string) (*models.Player, error) {
	return f.players[id], nil
}

func (f *fakeStore) CreatePlayer(_ context.Context, player *models.Player) (*models.Player, error) {
	if f.storageErr != nil {
		return nil, f.storageErr
	}
	f.players[player.ID] = player
	return player, nil
}

func (f *fakeStore) UpdatePlayer(_ context.Context, id string, player *models.Player) (*models.Player, error) {
	if f.storageErr != nil {
		return nil, f.storageErr
	}
	existing := f.players[id]
	if existing == nil {
		return nil, apperrors.Storage(apperrors.ErrNotFound)
	}
	updated := *player
	updated.ID = existing.ID
	updated.OwnerUserID = existing.OwnerUserID
	updated.IsOwner = existing.IsOwner
	f.players[id] = &updated
	return &updated, nil
}

func (f *fakeStore) DeletePlayer(_ context.Context, id string) error {
	if f.storageErr != nil {
		return f.storageErr
	}
	delete(f.players, id)
	return nil
}

func (f *fakeStore) GetMatches(_ context.Context, ownerUserID string) ([]*models.Match, error) {
	matches := []*models.Match{}
	for _, match := range f.matches {
		if match.UserID == ownerUserID {
			matches = append(matches, match)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Date.After(matches[j].Date) })
	return matches, nil
}

func (f *fakeStore) GetMatch(_ context.Context, id string) (*models.Match, error) {
	return f.matches[id], nil
}

func (f *fakeStore) CreateMatch(_ context.Context, record *models.MatchRecord, stats []models.Stat) (*models.Match, error) {
	if f.storageErr != nil {
		return nil, f.storageErr
	}
	f.lastRecord = record
	f.lastStats = stats

	scores, err := models.DecodeScores(record.Scores)
	if err != nil {
		return nil, err
	}
	match := &models.Match{
		ID:           record.ID,
		UserID:       record.UserID,
		Date:         record.Date,
		Team1Player1: f.players[record.Team1Player1ID],
		Team2Player1: f.players[record.Team2Player1ID],
		Scores:       scores,
		Stats:        stats,
	}
	if record.Team1Player2ID != nil {
		match.Team1Player2 = f.players[*record.Team1Player2ID]
	}
	if record.Team2Player2ID != nil {
		match.Team2Player2 = f.players[*record.Team2Player2ID]
	}
	f.matches[match.ID] = match
	return match, nil
}

func (f *fakeStore) DeleteMatch(_ context.Context, id string) error {
	if f.storageErr != nil {
		return f.storageErr
	}
	delete(f.matches, id)
	return nil
}

func (f *fakeStore) Close() error { return nil }
