package models

import (
	"time"

	"github.com/google/uuid"
)

// StageTransition is an audit row appended in the same transaction as
// every stage write, including confirm-hire and undo-hire.
type StageTransition struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ApplicationID uuid.UUID  `gorm:"type:uuid;not null;index" json:"application_id"`
	FromStage     Stage      `gorm:"type:text;not null" json:"from_stage"`
	ToStage       Stage      `gorm:"type:text;not null" json:"to_stage"`
	ActorID       *uuid.UUID `gorm:"type:uuid" json:"actor_id,omitempty"`
	CreatedAt     time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (StageTransition) TableName() string {
	return "stage_transitions"
}
