package models

import (
	"time"

	"github.com/google/uuid"
)

const HireStatusActive = "active"

// Hire is the durable record of a confirmed, accepted offer. Live Hire
// rows are the sole source of truth for hire-count accounting; stage
// values alone never drive billing.
type Hire struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ApplicationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"application_id"`
	OrgID         uuid.UUID `gorm:"type:uuid;not null;index" json:"org_id"`
	ManagerID     uuid.UUID `gorm:"type:uuid;not null" json:"manager_id"`

	// PreviousStage is the stage the application held when the hire was
	// confirmed; an undo rolls back to this value.
	PreviousStage Stage `gorm:"type:text;not null" json:"previous_stage"`

	StartDate time.Time `gorm:"type:date;not null" json:"start_date"`
	Status    string    `gorm:"type:text;not null;default:'active'" json:"status"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Hire) TableName() string {
	return "hires"
}
