package repositories

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/david210690/futura-hire-ai-sub000/internal/common"
	"github.com/david210690/futura-hire-ai-sub000/internal/models"
)

type HireRepository interface {
	ConfirmHire(appID uuid.UUID, expectedRevision int64, managerID, orgID uuid.UUID) (*models.Hire, error)
	UndoHire(hire *models.Hire, actorID *uuid.UUID) error
	FindActiveByApplication(appID uuid.UUID) (*models.Hire, error)
	ListByOrg(orgID uuid.UUID) ([]models.Hire, error)
	CountActiveByOrg(orgID uuid.UUID) (int64, error)
}

type hireRepository struct {
	db *gorm.DB
}

func NewHireRepository(db *gorm.DB) HireRepository {
	return &hireRepository{db: db}
}

// ConfirmHire moves the application offer -> hired and inserts the Hire
// row as one transaction, so a Hire can never exist without the hired
// stage or the other way around. The stage and revision predicates are
// re-checked inside the transaction, not trusted from the caller.
func (r *hireRepository) ConfirmHire(appID uuid.UUID, expectedRevision int64, managerID, orgID uuid.UUID) (*models.Hire, error) {
	now := time.Now()
	hire := &models.Hire{
		ID:            uuid.New(),
		ApplicationID: appID,
		OrgID:         orgID,
		ManagerID:     managerID,
		PreviousStage: models.StageOffer,
		StartDate:     time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		Status:        models.HireStatusActive,
		CreatedAt:     now,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var app models.Application
		if err := tx.Where("id = ?", appID).First(&app).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.NewError(common.CodeNotFound, "application not found", err)
			}
			return common.NewError(common.CodeInternal, "failed to load application", err)
		}
		if app.Stage != models.StageOffer {
			return common.NewError(common.CodeConflict, "application is not in the offer stage", nil)
		}

		result := tx.Model(&models.Application{}).
			Where("id = ? AND stage = ? AND revision = ?", appID, models.StageOffer, expectedRevision).
			Updates(map[string]interface{}{
				"stage":      models.StageHired,
				"revision":   gorm.Expr("revision + 1"),
				"updated_at": now,
			})
		if result.Error != nil {
			return common.NewError(common.CodeInternal, "failed to update stage", result.Error)
		}
		if result.RowsAffected == 0 {
			return common.NewError(common.CodeConflict, "application was modified by another actor", nil)
		}

		if err := tx.Create(hire).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return common.NewError(common.CodeConflict, "a hire is already recorded for this application", err)
			}
			return common.NewError(common.CodeInternal, "failed to create hire", err)
		}

		transition := models.StageTransition{
			ID:            uuid.New(),
			ApplicationID: appID,
			FromStage:     models.StageOffer,
			ToStage:       models.StageHired,
			ActorID:       &managerID,
			CreatedAt:     now,
		}
		if err := tx.Create(&transition).Error; err != nil {
			return common.NewError(common.CodeInternal, "failed to record stage transition", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return hire, nil
}

// UndoHire deletes the Hire row and rolls the application back to the
// stage recorded at confirm time, as one transaction.
func (r *hireRepository) UndoHire(hire *models.Hire, actorID *uuid.UUID) error {
	now := time.Now()

	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", hire.ID).Delete(&models.Hire{})
		if result.Error != nil {
			return common.NewError(common.CodeInternal, "failed to delete hire", result.Error)
		}
		if result.RowsAffected == 0 {
			return common.NewError(common.CodeConflict, "hire was already undone", nil)
		}

		update := tx.Model(&models.Application{}).
			Where("id = ? AND stage = ?", hire.ApplicationID, models.StageHired).
			Updates(map[string]interface{}{
				"stage":      hire.PreviousStage,
				"revision":   gorm.Expr("revision + 1"),
				"updated_at": now,
			})
		if update.Error != nil {
			return common.NewError(common.CodeInternal, "failed to roll back stage", update.Error)
		}
		if update.RowsAffected == 0 {
			return common.NewError(common.CodeConflict, "application is no longer in the hired stage", nil)
		}

		transition := models.StageTransition{
			ID:            uuid.New(),
			ApplicationID: hire.ApplicationID,
			FromStage:     models.StageHired,
			ToStage:       hire.PreviousStage,
			ActorID:       actorID,
			CreatedAt:     now,
		}
		if err := tx.Create(&transition).Error; err != nil {
			return common.NewError(common.CodeInternal, "failed to record stage transition", err)
		}

		return nil
	})
}

// FindActiveByApplication implements HireRepository.
func (r *hireRepository) FindActiveByApplication(appID uuid.UUID) (*models.Hire, error) {
	var hire models.Hire
	err := r.db.
		Where("application_id = ? AND status = ?", appID, models.HireStatusActive).
		First(&hire).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewError(common.CodeNotFound, "no hire recorded for this application", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to find hire", err)
	}
	return &hire, nil
}

// ListByOrg implements HireRepository.
func (r *hireRepository) ListByOrg(orgID uuid.UUID) ([]models.Hire, error) {
	var hires []models.Hire
	err := r.db.
		Where("org_id = ? AND status = ?", orgID, models.HireStatusActive).
		Order("created_at DESC").
		Find(&hires).Error
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list hires", err)
	}
	return hires, nil
}

// CountActiveByOrg counts live Hire rows only; stage values never feed
// hire accounting.
func (r *hireRepository) CountActiveByOrg(orgID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Hire{}).
		Where("org_id = ? AND status = ?", orgID, models.HireStatusActive).
		Count(&count).Error
	if err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to count hires", err)
	}
	return count, nil
}
