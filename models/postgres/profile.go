package postgres

import (
	"gorm.io/datatypes"
)

/*
 * 'Profile' defines the structure for a user's public esports profile. It is
 * referenced in User, Friendship, FriendshipRequest, TeamMember, Match and
 * MatchChatMessage
 */
type Profile struct {
	Username  string         `gorm:"primaryKey;size:50;not null"`
	UserIcon  int            `gorm:"default:0"`
	Country   string         `gorm:"size:2"`
	Bio       string         `gorm:"size:500"`
	UserStats datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	Friendships1    []Friendship        `gorm:"foreignKey:Username1"`
	Friendships2    []Friendship        `gorm:"foreignKey:Username2"`
	FriendRequests1 []FriendshipRequest `gorm:"foreignKey:Sender"`
	FriendRequests2 []FriendshipRequest `gorm:"foreignKey:Recipient"`
	TeamMemberships []TeamMember        `gorm:"foreignKey:Username"`
	CreatedMatches  []Match             `gorm:"foreignKey:CreatorUsername"`
	PlayerStats     []PlayerStats       `gorm:"foreignKey:Username"`
}
