package models

import (
	"time"

	"github.com/google/uuid"
)

type ReportStatus string

const (
	ReportQueued     ReportStatus = "queued"
	ReportProcessing ReportStatus = "processing"
	ReportCompleted  ReportStatus = "completed"
	ReportFailed     ReportStatus = "failed"
)

// Report is an async pipeline health report generated by the LLM from
// live stage counts, hire counts, and recent transitions.
type Report struct {
	ID           uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrgID        uuid.UUID    `gorm:"type:uuid;not null;index" json:"org_id"`
	JobID        *uuid.UUID   `gorm:"type:uuid" json:"job_id,omitempty"`
	Status       ReportStatus `gorm:"not null;default:'queued'" json:"status"`
	Summary      *string      `gorm:"type:text" json:"summary,omitempty"`
	HealthScore  *float64     `gorm:"type:decimal(3,2)" json:"health_score,omitempty"`
	RiskFactors  *string      `gorm:"type:text" json:"risk_factors,omitempty"`
	ErrorMessage *string      `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time    `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Report) TableName() string {
	return "reports"
}
