package match

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	models "Scrimhub/models/postgres"

	"gorm.io/gorm"
)

var ErrInvalidTransition = errors.New("invalid match status transition")
var ErrMatchNotReady = errors.New("match setup is not complete")
var ErrTooEarly = errors.New("scheduled start time has not been reached")
var ErrMatchFull = errors.New("match already has the maximum number of participants")

// MaxParticipants per match, both teams included
const MaxParticipants = 2

// allowedTransitions is the single authority over match status changes.
// 'disputed' is only reachable from 'completed'; completed/cancelled/disputed
// are terminal otherwise.
var allowedTransitions = map[models.MatchStatus][]models.MatchStatus{
	models.MatchScheduled:  {models.MatchInProgress, models.MatchCancelled},
	models.MatchInProgress: {models.MatchCompleted, models.MatchCancelled},
	models.MatchCompleted:  {models.MatchDisputed},
	models.MatchCancelled:  {},
	models.MatchDisputed:   {},
}

// CanTransition reports whether the table allows from -> to
func CanTransition(from, to models.MatchStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

/*
 * Lifecycle owns every match status mutation. Handlers and socket handlers
 * never write Match.Status directly: they go through Transition, which
 * validates the table and appends the system chat message in the same
 * transaction, so a half-applied lifecycle change can't be observed.
 */
type Lifecycle struct {
	DB *gorm.DB
}

func NewLifecycle(db *gorm.DB) *Lifecycle {
	return &Lifecycle{DB: db}
}

// Transition moves a match to a new status inside tx and records a system
// chat message. The caller supplies tx so multi-row flows (dispute filing,
// result reporting) stay atomic.
func (l *Lifecycle) Transition(tx *gorm.DB, m *models.Match, to models.MatchStatus, systemMessage string) error {
	if !CanTransition(m.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, m.Status, to)
	}

	result := tx.Model(&models.Match{}).Where("id = ? AND status = ?", m.ID, m.Status).
		Update("status", to)
	if result.Error != nil {
		return result.Error
	}
	// Zero rows means another request already moved the match: the caller's
	// copy is stale, so the transition must fail, not silently no-op
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s -> %s (match already changed)", ErrInvalidTransition, m.Status, to)
	}
	m.Status = to

	if systemMessage != "" {
		if err := AppendSystemMessage(tx, m.ID, systemMessage); err != nil {
			return err
		}
	}
	return nil
}

// AppendSystemMessage inserts a lifecycle chat entry authored by no user
func AppendSystemMessage(tx *gorm.DB, matchID string, body string) error {
	msg := models.MatchChatMessage{
		MatchID:  matchID,
		Body:     body,
		IsSystem: true,
	}
	if err := tx.Create(&msg).Error; err != nil {
		log.Printf("Error inserting system message for match %s: %v", matchID, err)
		return err
	}
	return nil
}

// SelectedMaps decodes the settings map list; nil when absent or malformed
func SelectedMaps(settings *models.MatchSettings) []string {
	if settings == nil || len(settings.SelectedMaps) == 0 {
		return nil
	}
	var maps []string
	if err := json.Unmarshal(settings.SelectedMaps, &maps); err != nil {
		return nil
	}
	return maps
}

// IsReady reports whether a scheduled match can be started: both
// participants present, maps selected and setup marked complete
func IsReady(m *models.Match) bool {
	return len(m.Participants) == MaxParticipants &&
		len(SelectedMaps(m.Settings)) > 0 &&
		m.SetupCompletedAt != nil
}

// Start moves a ready match into in_progress once its start time has been
// reached, announcing it in the match chat
func (l *Lifecycle) Start(m *models.Match, now time.Time) error {
	if !IsReady(m) {
		return ErrMatchNotReady
	}
	if now.Before(m.ScheduledStart) {
		return ErrTooEarly
	}
	return l.DB.Transaction(func(tx *gorm.DB) error {
		return l.Transition(tx, m, models.MatchInProgress, "Match has started. Good luck!")
	})
}

// Cancel aborts a match that has not finished
func (l *Lifecycle) Cancel(m *models.Match) error {
	return l.DB.Transaction(func(tx *gorm.DB) error {
		return l.Transition(tx, m, models.MatchCancelled, "Match has been cancelled by the scheduler.")
	})
}
