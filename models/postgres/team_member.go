package postgres

import (
	"time"
)

type TeamRole string

const (
	RoleOwner   TeamRole = "owner"
	RoleCaptain TeamRole = "captain"
	RoleMember  TeamRole = "member"
)

/*
 * 'TeamMember' links a user to a Team with a role. Owners and captains can
 * act on the team's behalf (accept match invitations, manage the roster)
 */
type TeamMember struct {
	// NOTE: composite primary key definition
	TeamID   string    `gorm:"primaryKey;size:36;not null"`
	Username string    `gorm:"primaryKey;size:50;not null;index"`
	Role     TeamRole  `gorm:"size:20;default:'member'"`
	JoinedAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationships
	Team    Team    `gorm:"foreignKey:TeamID"`
	Profile Profile `gorm:"foreignKey:Username"`
}

// CanActForTeam reports whether this member may accept/decline invitations
// and manage the roster
func (m *TeamMember) CanActForTeam() bool {
	return m.Role == RoleOwner || m.Role == RoleCaptain
}
