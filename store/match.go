package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"racquet-stats-system/apperrors"
	"racquet-stats-system/models"
)

// GetMatches loads the owner's match rows newest first, then assembles them
// against the owner's players and stats. With no match rows the grouping
// queries are skipped entirely.
func (s *GormStore) GetMatches(ctx context.Context, ownerUserID string) ([]*models.Match, error) {
	var records []models.MatchRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ?", ownerUserID).
		Order("date DESC").
		Find(&records).Error
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if len(records) == 0 {
		return []*models.Match{}, nil
	}

	players, err := s.GetPlayers(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}

	var stats []models.Stat
	err = s.db.WithContext(ctx).
		Where("user_id = ?", ownerUserID).
		Order("game_index ASC").
		Find(&stats).Error
	if err != nil {
		return nil, apperrors.Storage(err)
	}

	return assembleMatches(records, players, stats)
}

func (s *GormStore) GetMatch(ctx context.Context, id string) (*models.Match, error) {
	var record models.MatchRecord
	err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Storage(err)
	}

	players, err := s.GetPlayers(ctx, record.UserID)
	if err != nil {
		return nil, err
	}

	var stats []models.Stat
	err = s.db.WithContext(ctx).
		Where("match_id = ?", record.ID).
		Order("game_index ASC").
		Find(&stats).Error
	if err != nil {
		return nil, apperrors.Storage(err)
	}

	matches, err := assembleMatches([]models.MatchRecord{record}, players, stats)
	if err != nil {
		return nil, err
	}
	return matches[0], nil
}

// CreateMatch inserts the match row and, when present, all stat rows in one
// transaction. Any failure rolls the whole write back; nothing of a failed
// match is ever observable. The committed aggregate is re-read afterwards so
// the caller gets resolved team players, not just the ids it sent.
func (s *GormStore) CreateMatch(ctx context.Context, record *models.MatchRecord, stats []models.Stat) (*models.Match, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return err
		}
		// An empty batch is driver-dependent behavior; never issue one.
		if len(stats) > 0 {
			if err := tx.Create(&stats).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	return s.GetMatch(ctx, record.ID)
}

func (s *GormStore) DeleteMatch(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Stat{}, "match_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.MatchRecord{}, "id = ?", id).Error
	})
	if err != nil {
		return apperrors.Storage(err)
	}
	return nil
}

// assembleMatches projects flat match rows into aggregates. Output order
// follows the input rows, so callers control sorting upstream. A dangling
// player reference is a broken invariant, not a user-facing condition:
// referential integrity should have made it impossible.
func assembleMatches(records []models.MatchRecord, players []models.Player, stats []models.Stat) ([]*models.Match, error) {
	playersByID := make(map[string]*models.Player, len(players))
	for i := range players {
		playersByID[players[i].ID] = &players[i]
	}
	statsByMatch := make(map[string][]models.Stat, len(records))
	for _, stat := range stats {
		statsByMatch[stat.MatchID] = append(statsByMatch[stat.MatchID], stat)
	}

	matches := make([]*models.Match, 0, len(records))
	for _, record := range records {
		team1Player1 := playersByID[record.Team1Player1ID]
		team2Player1 := playersByID[record.Team2Player1ID]
		if team1Player1 == nil || team2Player1 == nil {
			return nil, apperrors.Consistency("match %s references a player missing from owner scope", record.ID)
		}
		team1Player2, err := optionalPlayer(playersByID, record.Team1Player2ID, record.ID)
		if err != nil {
			return nil, err
		}
		team2Player2, err := optionalPlayer(playersByID, record.Team2Player2ID, record.ID)
		if err != nil {
			return nil, err
		}

		scores, err := models.DecodeScores(record.Scores)
		if err != nil {
			return nil, err
		}

		matchStats := statsByMatch[record.ID]
		if matchStats == nil {
			matchStats = []models.Stat{}
		}

		matches = append(matches, &models.Match{
			ID:           record.ID,
			UserID:       record.UserID,
			Date:         record.Date,
			Team1Player1: team1Player1,
			Team1Player2: team1Player2,
			Team2Player1: team2Player1,
			Team2Player2: team2Player2,
			Scores:       scores,
			Stats:        matchStats,
		})
	}
	return matches, nil
}

func optionalPlayer(playersByID map[string]*models.Player, id *string, matchID string) (*models.Player, error) {
	if id == nil {
		return nil, nil
	}
	player := playersByID[*id]
	if player == nil {
		return nil, apperrors.Consistency("match %s references a player missing from owner scope", matchID)
	}
	return player, nil
}
