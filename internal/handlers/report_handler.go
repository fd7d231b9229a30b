package handlers

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/david210690/futura-hire-ai-sub000/internal/common"
	"github.com/david210690/futura-hire-ai-sub000/internal/models"
	"github.com/david210690/futura-hire-ai-sub000/internal/repositories"
	"github.com/david210690/futura-hire-ai-sub000/internal/services"
)

type ReportHandler struct {
	reportRepo repositories.ReportRepository
	worker     services.Worker
}

func NewReportHandler(
	reportRepo repositories.ReportRepository,
	worker services.Worker,
) *ReportHandler {
	return &ReportHandler{
		reportRepo: reportRepo,
		worker:     worker,
	}
}

// HandleCreateReport handles POST /reports
func (h *ReportHandler) HandleCreateReport(c *fiber.Ctx) error {
	var req models.ReportRequest
	if err := c.BodyParser(&req); err != nil {
		return common.NewError(common.CodeValidation, "invalid request payload", err)
	}

	orgID, err := uuid.Parse(req.OrgID)
	if err != nil {
		return common.NewError(common.CodeValidation, "invalid org_id format", err)
	}

	var jobID *uuid.UUID
	if req.JobID != "" {
		parsed, err := uuid.Parse(req.JobID)
		if err != nil {
			return common.NewError(common.CodeValidation, "invalid job_id format", err)
		}
		jobID = &parsed
	}

	report := &models.Report{
		ID:        uuid.New(),
		OrgID:     orgID,
		JobID:     jobID,
		Status:    models.ReportQueued,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := h.reportRepo.Create(report); err != nil {
		return err
	}

	// Enqueue job to worker
	h.worker.EnqueueJob(report.ID)

	// Return job ID immediately
	return c.Status(fiber.StatusAccepted).JSON(models.ReportQueuedResponse{
		ID:     report.ID.String(),
		Status: string(models.ReportQueued),
	})
}

// HandleGetReport handles GET /reports/:id
func (h *ReportHandler) HandleGetReport(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return common.NewError(common.CodeValidation, "invalid report ID format", err)
	}

	report, err := h.reportRepo.FindByID(id)
	if err != nil {
		return err
	}

	response := models.ReportResultResponse{
		ID:     report.ID.String(),
		Status: string(report.Status),
	}

	if report.Status == models.ReportCompleted {
		data := &models.ReportData{}
		if report.Summary != nil {
			data.Summary = *report.Summary
		}
		if report.HealthScore != nil {
			data.HealthScore = *report.HealthScore
		}
		if report.RiskFactors != nil {
			// Stored as a JSON array; tolerate older rows that fail to decode
			_ = json.Unmarshal([]byte(*report.RiskFactors), &data.RiskFactors)
		}
		response.Result = data
	}

	if report.Status == models.ReportFailed && report.ErrorMessage != nil {
		response.ErrorMessage = report.ErrorMessage
	}

	return c.JSON(response)
}
