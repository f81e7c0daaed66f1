package models

// Stat is one recorded shot within a game of a match. Stats belong exclusively
// to their match and go down with it.
type Stat struct {
	ID         string  `gorm:"column:id;primaryKey" json:"-"`
	UserID     string  `gorm:"column:user_id;not null;index" json:"-"`
	MatchID    string  `gorm:"column:match_id;not null;index" json:"-"`
	PlayerID   string  `gorm:"column:player_id;not null" json:"player_id"`
	GameIndex  int     `gorm:"column:game_index;not null" json:"game_index"`
	ShotResult string  `gorm:"column:shot_result;not null" json:"shot_result"`
	ShotType   string  `gorm:"column:shot_type;not null" json:"shot_type"`
	ShotSide   *string `gorm:"column:shot_side" json:"shot_side,omitempty"`

	User   *User        `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Match  *MatchRecord `gorm:"foreignKey:MatchID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Player *Player      `gorm:"foreignKey:PlayerID;references:ID" json:"-"`
}

func (Stat) TableName() string { return "stats" }
