package models

// User is the identity record created on the first verified login. It is never
// updated afterwards; profile edits happen on the owner player instead.
type User struct {
	ID         string `gorm:"column:id;primaryKey" json:"user_id"`
	FirebaseID string `gorm:"column:firebase_id;uniqueIndex;not null" json:"firebase_id"`
	FirstName  string `gorm:"column:first_name" json:"first_name"`
	LastName   string `gorm:"column:last_name" json:"last_name"`
	ImageURL   string `gorm:"column:image_url" json:"image_url"`
}

func (User) TableName() string { return "users" }
