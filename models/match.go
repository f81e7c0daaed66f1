package models

import (
	"encoding/json"
	"time"
)

// MatchRecord is the flat matches row. Team slots hold player ids only and the
// per-game scores are denormalized into a single text column; the store's
// assembler turns records back into Match aggregates.
type MatchRecord struct {
	ID             string    `gorm:"column:id;primaryKey"`
	UserID         string    `gorm:"column:user_id;not null;index"`
	Date           time.Time `gorm:"column:date;not null"`
	Team1Player1ID string    `gorm:"column:team1_player1_id;not null"`
	Team1Player2ID *string   `gorm:"column:team1_player2_id"`
	Team2Player1ID string    `gorm:"column:team2_player1_id;not null"`
	Team2Player2ID *string   `gorm:"column:team2_player2_id"`
	Scores         string    `gorm:"column:scores;type:text;not null"`

	User         *User   `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Team1Player1 *Player `gorm:"foreignKey:Team1Player1ID;references:ID"`
	Team1Player2 *Player `gorm:"foreignKey:Team1Player2ID;references:ID"`
	Team2Player1 *Player `gorm:"foreignKey:Team2Player1ID;references:ID"`
	Team2Player2 *Player `gorm:"foreignKey:Team2Player2ID;references:ID"`
}

func (MatchRecord) TableName() string { return "matches" }

// Match is the fully assembled aggregate: the match row with its team players
// resolved, its score column decoded and its stats attached. The second slot of
// each team is nil for singles.
type Match struct {
	ID           string
	UserID       string
	Date         time.Time
	Team1Player1 *Player
	Team1Player2 *Player
	Team2Player1 *Player
	Team2Player2 *Player
	Scores       []GameScore
	Stats        []Stat
}

// MarshalJSON renders the nested API shape: teams as arrays of one or two
// players, the date as a UTC second-precision timestamp.
func (m *Match) MarshalJSON() ([]byte, error) {
	stats := m.Stats
	if stats == nil {
		stats = []Stat{}
	}
	return json.Marshal(struct {
		MatchID string      `json:"match_id"`
		Date    string      `json:"date"`
		Team1   []*Player   `json:"team1"`
		Team2   []*Player   `json:"team2"`
		Scores  []GameScore `json:"scores"`
		Stats   []Stat      `json:"stats"`
	}{
		MatchID: m.ID,
		Date:    m.Date.UTC().Format("2006-01-02T15:04:05Z"),
		Team1:   team(m.Team1Player1, m.Team1Player2),
		Team2:   team(m.Team2Player1, m.Team2Player2),
		Scores:  m.Scores,
		Stats:   stats,
	})
}

func team(player1, player2 *Player) []*Player {
	players := []*Player{player1}
	if player2 != nil {
		players = append(players, player2)
	}
	return players
}
