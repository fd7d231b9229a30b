package models

type CreateApplicationRequest struct {
	JobID       string `json:"job_id" validate:"required,uuid"`
	CandidateID string `json:"candidate_id" validate:"required,uuid"`
	OrgID       string `json:"org_id" validate:"required,uuid"`
}

type MoveStageRequest struct {
	TargetStage string `json:"target_stage" validate:"required"`
	Revision    *int64 `json:"revision" validate:"required"`
}

type ConfirmHireRequest struct {
	Revision *int64 `json:"revision" validate:"required"`
}

type BulkStageRequest struct {
	IDs         []string `json:"ids" validate:"required"`
	TargetStage string   `json:"target_stage" validate:"required"`
}

type BulkStageResponse struct {
	Updated int64  `json:"updated"`
	Stage   string `json:"stage"`
}

type HireCountResponse struct {
	OrgID string `json:"org_id"`
	Count int64  `json:"count"`
}

type ReportRequest struct {
	OrgID string `json:"org_id" validate:"required,uuid"`
	JobID string `json:"job_id,omitempty" validate:"omitempty,uuid"`
}

type ReportQueuedResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type ReportResultResponse struct {
	ID           string       `json:"id"`
	Status       string       `json:"status"`
	Result       *ReportData  `json:"result,omitempty"`
	ErrorMessage *string      `json:"error_message,omitempty"`
}

type ReportData struct {
	Summary     string   `json:"summary"`
	HealthScore float64  `json:"health_score"`
	RiskFactors []string `json:"risk_factors"`
}

type ResumeUploadResponse struct {
	ID           string `json:"id"`
	CandidateID  string `json:"candidate_id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	PageCount    int    `json:"page_count"`
}

type ResumeSearchHit struct {
	ResumeID     string  `json:"resume_id"`
	CandidateID  string  `json:"candidate_id"`
	OriginalName string  `json:"original_name,omitempty"`
	Score        float32 `json:"score"`
	Snippet      string  `json:"snippet"`
}
