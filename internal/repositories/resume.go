package repositories

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/david210690/futura-hire-ai-sub000/internal/common"
	"github.com/david210690/futura-hire-ai-sub000/internal/models"
)

type ResumeRepository interface {
	Create(resume *models.Resume) error
	FindByID(id uuid.UUID) (*models.Resume, error)
	FindByIDs(ids []uuid.UUID) ([]models.Resume, error)
	ListByCandidate(candidateID uuid.UUID) ([]models.Resume, error)
	ListAll() ([]models.Resume, error)
}

type resumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &resumeRepository{db: db}
}

// Create implements ResumeRepository.
func (r *resumeRepository) Create(resume *models.Resume) error {
	if err := r.db.Create(resume).Error; err != nil {
		return common.NewError(common.CodeInternal, "failed to create resume", err)
	}
	return nil
}

// FindByID implements ResumeRepository.
func (r *resumeRepository) FindByID(id uuid.UUID) (*models.Resume, error) {
	var resume models.Resume
	if err := r.db.Where("id = ?", id).First(&resume).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewError(common.CodeNotFound, "resume not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to find resume", err)
	}
	return &resume, nil
}

// FindByIDs implements ResumeRepository.
func (r *resumeRepository) FindByIDs(ids []uuid.UUID) ([]models.Resume, error) {
	var resumes []models.Resume
	if err := r.db.Where("id IN ?", ids).Find(&resumes).Error; err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to find resumes", err)
	}
	return resumes, nil
}

// ListByCandidate implements ResumeRepository.
func (r *resumeRepository) ListByCandidate(candidateID uuid.UUID) ([]models.Resume, error) {
	var resumes []models.Resume
	if err := r.db.Where("candidate_id = ?", candidateID).Order("created_at DESC").Find(&resumes).Error; err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list resumes", err)
	}
	return resumes, nil
}

// ListAll is used by the reindex script to rebuild the vector index.
func (r *resumeRepository) ListAll() ([]models.Resume, error) {
	var resumes []models.Resume
	if err := r.db.Order("created_at ASC").Find(&resumes).Error; err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list resumes", err)
	}
	return resumes, nil
}
