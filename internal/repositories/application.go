package repositories

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/david210690/futura-hire-ai-sub000/internal/common"
	"github.com/david210690/futura-hire-ai-sub000/internal/models"
)

type ApplicationRepository interface {
	Create(app *models.Application) error
	FindByID(id uuid.UUID) (*models.Application, error)
	ListByJob(jobID uuid.UUID, stage *models.Stage) ([]models.Application, error)
	MoveStage(id uuid.UUID, target models.Stage, expectedRevision int64, actorID *uuid.UUID) (*models.Application, error)
	BulkMoveStage(ids []uuid.UUID, target models.Stage) (int64, error)
	ListTransitions(id uuid.UUID) ([]models.StageTransition, error)
	RecentTransitions(orgID uuid.UUID, jobID *uuid.UUID, limit int) ([]models.StageTransition, error)
	CountByStage(orgID uuid.UUID, jobID *uuid.UUID) (map[models.Stage]int64, error)
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

// Create implements ApplicationRepository.
func (r *applicationRepository) Create(app *models.Application) error {
	if err := r.db.Create(app).Error; err != nil {
		return common.NewError(common.CodeInternal, "failed to create application", err)
	}
	return nil
}

// FindByID implements ApplicationRepository.
func (r *applicationRepository) FindByID(id uuid.UUID) (*models.Application, error) {
	var app models.Application
	if err := r.db.Where("id = ?", id).First(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to find application", err)
	}
	return &app, nil
}

// ListByJob implements ApplicationRepository.
func (r *applicationRepository) ListByJob(jobID uuid.UUID, stage *models.Stage) ([]models.Application, error) {
	query := r.db.Where("job_id = ?", jobID)
	if stage != nil {
		query = query.Where("stage = ?", *stage)
	}

	var apps []models.Application
	if err := query.Order("created_at ASC").Find(&apps).Error; err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	return apps, nil
}

// MoveStage performs the compare-and-swap stage write: the update only
// lands if the caller's revision still matches, and the audit transition
// row is appended in the same transaction.
func (r *applicationRepository) MoveStage(id uuid.UUID, target models.Stage, expectedRevision int64, actorID *uuid.UUID) (*models.Application, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var app models.Application
		if err := tx.Where("id = ?", id).First(&app).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.NewError(common.CodeNotFound, "application not found", err)
			}
			return common.NewError(common.CodeInternal, "failed to load application", err)
		}

		result := tx.Model(&models.Application{}).
			Where("id = ? AND revision = ?", id, expectedRevision).
			Updates(map[string]interface{}{
				"stage":      target,
				"revision":   gorm.Expr("revision + 1"),
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return common.NewError(common.CodeInternal, "failed to update stage", result.Error)
		}
		if result.RowsAffected == 0 {
			return common.NewError(common.CodeConflict, "application was modified by another actor", nil)
		}

		transition := models.StageTransition{
			ID:            uuid.New(),
			ApplicationID: id,
			FromStage:     app.Stage,
			ToStage:       target,
			ActorID:       actorID,
			CreatedAt:     time.Now(),
		}
		if err := tx.Create(&transition).Error; err != nil {
			return common.NewError(common.CodeInternal, "failed to record stage transition", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.FindByID(id)
}

// BulkMoveStage moves every application in ids to target inside one
// transaction. Any missing id or terminal-stage member aborts the whole
// batch so a bulk move is never partially applied.
func (r *applicationRepository) BulkMoveStage(ids []uuid.UUID, target models.Stage) (int64, error) {
	var updated int64

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var apps []models.Application
		if err := tx.Where("id IN ?", ids).Find(&apps).Error; err != nil {
			return common.NewError(common.CodeInternal, "failed to load applications", err)
		}
		if len(apps) != len(ids) {
			return common.NewError(common.CodeNotFound, "one or more applications not found", nil)
		}

		for _, app := range apps {
			if app.Stage.Terminal() {
				return common.NewError(common.CodeConflict, "batch contains an application in a final stage", nil)
			}
		}

		result := tx.Model(&models.Application{}).
			Where("id IN ?", ids).
			Updates(map[string]interface{}{
				"stage":      target,
				"revision":   gorm.Expr("revision + 1"),
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return common.NewError(common.CodeInternal, "failed to update stages", result.Error)
		}
		updated = result.RowsAffected

		transitions := make([]models.StageTransition, 0, len(apps))
		for _, app := range apps {
			transitions = append(transitions, models.StageTransition{
				ID:            uuid.New(),
				ApplicationID: app.ID,
				FromStage:     app.Stage,
				ToStage:       target,
				CreatedAt:     time.Now(),
			})
		}
		if err := tx.Create(&transitions).Error; err != nil {
			return common.NewError(common.CodeInternal, "failed to record stage transitions", err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return updated, nil
}

// ListTransitions implements ApplicationRepository.
func (r *applicationRepository) ListTransitions(id uuid.UUID) ([]models.StageTransition, error) {
	var transitions []models.StageTransition
	err := r.db.
		Where("application_id = ?", id).
		Order("created_at ASC").
		Find(&transitions).Error
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list stage transitions", err)
	}
	return transitions, nil
}

// RecentTransitions returns the latest stage movements for an org,
// optionally narrowed to one job. Used by the health report builder.
func (r *applicationRepository) RecentTransitions(orgID uuid.UUID, jobID *uuid.UUID, limit int) ([]models.StageTransition, error) {
	query := r.db.
		Table("stage_transitions").
		Joins("JOIN applications ON applications.id = stage_transitions.application_id").
		Where("applications.org_id = ?", orgID)
	if jobID != nil {
		query = query.Where("applications.job_id = ?", *jobID)
	}

	var transitions []models.StageTransition
	err := query.
		Order("stage_transitions.created_at DESC").
		Limit(limit).
		Select("stage_transitions.*").
		Find(&transitions).Error
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list recent transitions", err)
	}
	return transitions, nil
}

// CountByStage implements ApplicationRepository.
func (r *applicationRepository) CountByStage(orgID uuid.UUID, jobID *uuid.UUID) (map[models.Stage]int64, error) {
	query := r.db.Model(&models.Application{}).Where("org_id = ?", orgID)
	if jobID != nil {
		query = query.Where("job_id = ?", *jobID)
	}

	var rows []struct {
		Stage models.Stage
		Total int64
	}
	err := query.
		Select("stage, COUNT(*) AS total").
		Group("stage").
		Find(&rows).Error
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to count applications by stage", err)
	}

	counts := make(map[models.Stage]int64, len(rows))
	for _, row := range rows {
		counts[row.Stage] = row.Total
	}
	return counts, nil
}
