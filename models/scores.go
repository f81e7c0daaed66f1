package models

import (
	"strconv"
	"strings"

	"racquet-stats-system/apperrors"
)

// GameScore is one game's points for each team, embedded in a Match.
type GameScore struct {
	Team1Score int `json:"team1_score"`
	Team2Score int `json:"team2_score"`
}

// MaxGameScore bounds a single game's points. No racquet scoring system gets
// anywhere near it, and it keeps the encoded column width predictable.
const MaxGameScore = 999

// EncodeScores renders an ordered game list as the single-column text form
// stored on the matches row, e.g. "10-1,2-10". DecodeScores inverts it exactly.
func EncodeScores(scores []GameScore) string {
	parts := make([]string, len(scores))
	for i, score := range scores {
		parts[i] = strconv.Itoa(score.Team1Score) + "-" + strconv.Itoa(score.Team2Score)
	}
	return strings.Join(parts, ",")
}

// DecodeScores parses the encoded score column back into the ordered game
// list. Persisted matches always carry at least one game, so an empty string
// is malformed, as is any segment that is not two bounded non-negative
// integers.
func DecodeScores(encoded string) ([]GameScore, error) {
	if encoded == "" {
		return nil, apperrors.MalformedScore(encoded, "empty score string")
	}
	segments := strings.Split(encoded, ",")
	scores := make([]GameScore, 0, len(segments))
	for _, segment := range segments {
		sides := strings.Split(segment, "-")
		if len(sides) != 2 {
			return nil, apperrors.MalformedScore(encoded, "segment "+strconv.Quote(segment)+" is not two scores")
		}
		team1, err := parseGameScore(sides[0])
		if err != nil {
			return nil, apperrors.MalformedScore(encoded, err.Error())
		}
		team2, err := parseGameScore(sides[1])
		if err != nil {
			return nil, apperrors.MalformedScore(encoded, err.Error())
		}
		scores = append(scores, GameScore{Team1Score: team1, Team2Score: team2})
	}
	return scores, nil
}

func parseGameScore(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, strconv.ErrSyntax
	}
	if n < 0 || n > MaxGameScore {
		return 0, strconv.ErrRange
	}
	return n, nil
}
