package repositories

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/david210690/futura-hire-ai-sub000/internal/common"
	"github.com/david210690/futura-hire-ai-sub000/internal/models"
)

type ReportRepository interface {
	Create(report *models.Report) error
	FindByID(id uuid.UUID) (*models.Report, error)
	UpdateStatus(id uuid.UUID, status models.ReportStatus) error
	UpdateResult(id uuid.UUID, result *ReportUpdateData) error
	UpdateError(id uuid.UUID, errorMsg string) error
	FindPendingJobs(limit int) ([]models.Report, error)
}

type ReportUpdateData struct {
	Summary     *string
	HealthScore *float64
	RiskFactors *string
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(report *models.Report) error {
	if err := r.db.Create(report).Error; err != nil {
		return common.NewError(common.CodeInternal, "failed to create report", err)
	}
	return nil
}

func (r *reportRepository) FindByID(id uuid.UUID) (*models.Report, error) {
	var report models.Report
	if err := r.db.Where("id = ?", id).First(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewError(common.CodeNotFound, "report not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to find report", err)
	}
	return &report, nil
}

func (r *reportRepository) UpdateStatus(id uuid.UUID, status models.ReportStatus) error {
	result := r.db.Model(&models.Report{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return common.NewError(common.CodeInternal, "failed to update report status", result.Error)
	}
	if result.RowsAffected == 0 {
		return common.NewError(common.CodeNotFound, "report not found", nil)
	}
	return nil
}

func (r *reportRepository) UpdateResult(id uuid.UUID, data *ReportUpdateData) error {
	updates := map[string]interface{}{
		"status":     models.ReportCompleted,
		"updated_at": time.Now(),
	}

	if data.Summary != nil {
		updates["summary"] = *data.Summary
	}
	if data.HealthScore != nil {
		updates["health_score"] = *data.HealthScore
	}
	if data.RiskFactors != nil {
		updates["risk_factors"] = *data.RiskFactors
	}

	result := r.db.Model(&models.Report{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return common.NewError(common.CodeInternal, "failed to update report result", result.Error)
	}
	if result.RowsAffected == 0 {
		return common.NewError(common.CodeNotFound, "report not found", nil)
	}
	return nil
}

func (r *reportRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	result := r.db.Model(&models.Report{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.ReportFailed,
			"error_message": errorMsg,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return common.NewError(common.CodeInternal, "failed to update report error", result.Error)
	}
	if result.RowsAffected == 0 {
		return common.NewError(common.CodeNotFound, "report not found", nil)
	}
	return nil
}

func (r *reportRepository) FindPendingJobs(limit int) ([]models.Report, error) {
	var reports []models.Report
	err := r.db.
		Where("status = ?", models.ReportQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&reports).Error

	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to find pending reports", err)
	}
	return reports, nil
}
