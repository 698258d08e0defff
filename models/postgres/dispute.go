package postgres

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DisputeStatus string

const (
	DisputeOpen     DisputeStatus = "open"
	DisputeResolved DisputeStatus = "resolved"
	DisputeRejected DisputeStatus = "rejected"
)

/*
 * 'Dispute' represents a contested match result filed by one of the
 * participants. It contains references to Match, Team and Profile (reporter)
 */
type Dispute struct {
	ID               string        `gorm:"primaryKey;size:36;not null"`
	MatchID          string        `gorm:"size:36;not null;index:idx_disputes_match"`
	TeamID           string        `gorm:"size:36;not null"`
	ReporterUsername string        `gorm:"size:50;not null"`
	Status           DisputeStatus `gorm:"size:20;default:'open'"`
	Reason           string        `gorm:"type:text;not null"`
	Resolution       string        `gorm:"type:text"`
	CreatedAt        time.Time     `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationships
	Match    Match   `gorm:"foreignKey:MatchID;constraint:OnDelete:CASCADE"`
	Team     Team    `gorm:"foreignKey:TeamID"`
	Reporter Profile `gorm:"foreignKey:ReporterUsername"`
}

func (d *Dispute) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// GORM hook: a dispute without a reason must never reach the table
func (d *Dispute) BeforeSave(tx *gorm.DB) error {
	if strings.TrimSpace(d.Reason) == "" {
		return errors.New("dispute reason cannot be empty")
	}
	return nil
}
