package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Stage string

const (
	StageNew         Stage = "new"
	StageShortlisted Stage = "shortlisted"
	StageInterview   Stage = "interview"
	StageOffer       Stage = "offer"
	StageHired       Stage = "hired"
	StageRejected    Stage = "rejected"
)

// ParseStage normalizes a stage string and reports whether it names a
// known pipeline stage.
func ParseStage(s string) (Stage, bool) {
	stage := Stage(strings.ToLower(strings.TrimSpace(s)))
	switch stage {
	case StageNew, StageShortlisted, StageInterview, StageOffer, StageHired, StageRejected:
		return stage, true
	default:
		return stage, false
	}
}

// Terminal stages cannot be left through a plain stage move. The only
// exit from hired is an undo within the undo window.
func (s Stage) Terminal() bool {
	return s == StageHired || s == StageRejected
}

type Application struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobID       uuid.UUID `gorm:"type:uuid;not null;index" json:"job_id"`
	CandidateID uuid.UUID `gorm:"type:uuid;not null;index" json:"candidate_id"`
	OrgID       uuid.UUID `gorm:"type:uuid;not null;index" json:"org_id"`
	Stage       Stage     `gorm:"type:text;not null;default:'new'" json:"stage"`

	// Revision guards concurrent stage writes: every stage change bumps it
	// and callers must present the last value they saw.
	Revision int64 `gorm:"not null;default:0" json:"revision"`

	OverallScore    *float64 `gorm:"type:decimal(3,2)" json:"overall_score,omitempty"`
	SkillFitScore   *float64 `gorm:"type:decimal(3,2)" json:"skill_fit_score,omitempty"`
	CultureFitScore *float64 `gorm:"type:decimal(3,2)" json:"culture_fit_score,omitempty"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Application) TableName() string {
	return "applications"
}
