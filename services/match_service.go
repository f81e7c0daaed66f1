package services

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"racquet-stats-system/apperrors"
	"racquet-stats-system/models"
	"racquet-stats-system/store"
)

type MatchService struct {
	Store store.Store
}

func NewMatchService(st store.Store) *MatchService {
	return &MatchService{Store: st}
}

type teamMemberRequest struct {
	PlayerID string `json:"player_id"`
}

type scoreRequest struct {
	Team1Score *int `json:"team1_score"`
	Team2Score *int `json:"team2_score"`
}

type statRequest struct {
	PlayerID   string  `json:"player_id"`
	GameIndex  *int    `json:"game_index"`
	ShotResult string  `json:"shot_result"`
	ShotType   string  `json:"shot_type"`
	ShotSide   *string `json:"shot_side"`
}

type matchRequest struct {
	MatchID string              `json:"match_id"`
	Date    string              `json:"date"`
	Team1   []teamMemberRequest `json:"team1"`
	Team2   []teamMemberRequest `json:"team2"`
	Scores  []scoreRequest      `json:"scores"`
	Stats   []statRequest       `json:"stats"`
}

// toRecord validates the request and builds the flat rows the writer inserts.
// Everything here fails before any persistence call happens.
func (r *matchRequest) toRecord(ownerUserID string) (*models.MatchRecord, []models.Stat, error) {
	if len(r.Team1) == 0 || len(r.Team2) == 0 {
		return nil, nil, apperrors.Validation("not enough players provided in each team")
	}
	if len(r.Team1) > 2 || len(r.Team2) > 2 {
		return nil, nil, apperrors.Validation("a team has at most two players")
	}
	if len(r.Scores) == 0 {
		return nil, nil, apperrors.Validation("a match must consist of at least one game")
	}

	date, err := time.Parse(time.RFC3339, r.Date)
	if err != nil {
		return nil, nil, apperrors.Validation("date must be an RFC3339 timestamp")
	}

	scores := make([]models.GameScore, len(r.Scores))
	for i, score := range r.Scores {
		if score.Team1Score == nil || score.Team2Score == nil {
			return nil, nil, apperrors.Validation("score %d must have team1_score and team2_score", i)
		}
		if !validGameScore(*score.Team1Score) || !validGameScore(*score.Team2Score) {
			return nil, nil, apperrors.Validation("score %d is out of range (0 to %d)", i, models.MaxGameScore)
		}
		scores[i] = models.GameScore{Team1Score: *score.Team1Score, Team2Score: *score.Team2Score}
	}

	for _, member := range append(append([]teamMemberRequest{}, r.Team1...), r.Team2...) {
		if member.PlayerID == "" {
			return nil, nil, apperrors.Validation("every team member needs a player_id")
		}
	}

	matchID := r.MatchID
	if matchID == "" {
		matchID = uuid.NewString()
	}

	record := &models.MatchRecord{
		ID:             matchID,
		UserID:         ownerUserID,
		Date:           date,
		Team1Player1ID: r.Team1[0].PlayerID,
		Team2Player1ID: r.Team2[0].PlayerID,
		Scores:         models.EncodeScores(scores),
	}
	if len(r.Team1) > 1 {
		record.Team1Player2ID = &r.Team1[1].PlayerID
	}
	if len(r.Team2) > 1 {
		record.Team2Player2ID = &r.Team2[1].PlayerID
	}
	stats := make([]models.Stat, len(r.Stats))
	for i, stat := range r.Stats {
		if stat.PlayerID == "" {
			return nil, nil, apperrors.Validation("stat %d is missing player_id", i)
		}
		if stat.GameIndex == nil || *stat.GameIndex < 0 || *stat.GameIndex >= len(scores) {
			return nil, nil, apperrors.Validation("stat %d has no valid game_index", i)
		}
		if stat.ShotResult == "" || stat.ShotType == "" {
			return nil, nil, apperrors.Validation("stat %d must have shot_result and shot_type", i)
		}
		stats[i] = models.Stat{
			ID:         uuid.NewString(),
			UserID:     ownerUserID,
			MatchID:    matchID,
			PlayerID:   stat.PlayerID,
			GameIndex:  *stat.GameIndex,
			ShotResult: stat.ShotResult,
			ShotType:   stat.ShotType,
			ShotSide:   stat.ShotSide,
		}
	}

	return record, stats, nil
}

func validGameScore(n int) bool {
	return n >= 0 && n <= models.MaxGameScore
}

func (s *MatchService) ListMatches(c *fiber.Ctx) error {
	user, err := CurrentUser(c)
	if err != nil {
		return fail(c, err)
	}
	matches, err := s.Store.GetMatches(c.Context(), user.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(matches)
}

func (s *MatchService) CreateMatch(c *fiber.Ctx) error {
	user, err := CurrentUser(c)
	if err != nil {
		return fail(c, err)
	}
	var req matchRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, apperrors.Validation("invalid request body: %v", err))
	}
	record, stats, err := req.toRecord(user.ID)
	if err != nil {
		return fail(c, err)
	}
	match, err := s.Store.CreateMatch(c.Context(), record, stats)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(match)
}

func (s *MatchService) DeleteMatch(c *fiber.Ctx) error {
	user, err := CurrentUser(c)
	if err != nil {
		return fail(c, err)
	}
	id := c.Params("id")
	match, err := s.Store.GetMatch(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	if match == nil {
		return fail(c, fmt.Errorf("match %s: %w", id, apperrors.ErrNotFound))
	}
	if err := requireOwnership(match.UserID, user); err != nil {
		return fail(c, err)
	}
	if err := s.Store.DeleteMatch(c.Context(), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "match deleted"})
}
