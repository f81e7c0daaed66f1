package models

// Player is a profile a user manages and can line up in a match. Exactly one
// player per user carries is_owner = true: the player auto-created at signup to
// represent the user themselves. That player cannot be deleted.
type Player struct {
	ID           string   `gorm:"column:id;primaryKey" json:"player_id"`
	OwnerUserID  string   `gorm:"column:owner_user_id;not null;index" json:"owner_user_id"`
	IsOwner      bool     `gorm:"column:is_owner;not null;default:false" json:"is_owner"`
	ImageURL     *string  `gorm:"column:image_url" json:"image_url,omitempty"`
	FirstName    string   `gorm:"column:first_name;not null" json:"first_name"`
	LastName     string   `gorm:"column:last_name;not null" json:"last_name"`
	DominantHand *string  `gorm:"column:dominant_hand" json:"dominant_hand,omitempty"`
	Notes        *string  `gorm:"column:notes" json:"notes,omitempty"`
	PhoneNumber  *string  `gorm:"column:phone_number" json:"phone_number,omitempty"`
	EmailAddress *string  `gorm:"column:email_address" json:"email,omitempty"`
	Level        *float64 `gorm:"column:level;type:numeric(4,2)" json:"level,omitempty"`

	Owner *User `gorm:"foreignKey:OwnerUserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Player) TableName() string { return "players" }
