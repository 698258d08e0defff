package postgres

import (
	"time"
)

/*
 * 'User' contains the account information of a registered user. It contains
 * a reference to Profile
 */
type User struct {
	Email           string    `gorm:"primaryKey;size:100;not null"`
	ProfileUsername string    `gorm:"size:50;not null;uniqueIndex"`
	PasswordHash    string    `gorm:"size:255;not null"`
	FullName        string    `gorm:"size:100"`
	IsModerator     bool      `gorm:"default:false"`
	MemberSince     time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationship with the public profile
	Profile Profile `gorm:"foreignKey:ProfileUsername;constraint:OnDelete:CASCADE"`
}
