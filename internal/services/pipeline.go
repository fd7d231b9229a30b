package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/david210690/futura-hire-ai-sub000/internal/common"
	"github.com/david210690/futura-hire-ai-sub000/internal/models"
	"github.com/david210690/futura-hire-ai-sub000/internal/repositories"
)

type PipelineService interface {
	Create(ctx context.Context, jobID, candidateID, orgID uuid.UUID) (*models.Application, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Application, error)
	ListByJob(ctx context.Context, jobID uuid.UUID, stageFilter string) ([]models.Application, error)
	History(ctx context.Context, id uuid.UUID) ([]models.StageTransition, error)
	MoveStage(ctx context.Context, id uuid.UUID, target string, revision int64, actorID *uuid.UUID) (*models.Application, error)
	BulkMoveStage(ctx context.Context, ids []uuid.UUID, target string) (int64, error)
	ConfirmHire(ctx context.Context, id uuid.UUID, actorID, orgID uuid.UUID, revision int64) (*models.Hire, error)
	UndoHire(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) (*models.Application, error)
	ListHires(ctx context.Context, orgID uuid.UUID) ([]models.Hire, error)
	CountHires(ctx context.Context, orgID uuid.UUID) (int64, error)
}

type pipelineService struct {
	appRepo    repositories.ApplicationRepository
	hireRepo   repositories.HireRepository
	undoWindow time.Duration
	now        func() time.Time
}

func NewPipelineService(
	appRepo repositories.ApplicationRepository,
	hireRepo repositories.HireRepository,
	undoWindow time.Duration,
) PipelineService {
	return &pipelineService{
		appRepo:    appRepo,
		hireRepo:   hireRepo,
		undoWindow: undoWindow,
		now:        time.Now,
	}
}

// Create implements PipelineService.
func (s *pipelineService) Create(ctx context.Context, jobID, candidateID, orgID uuid.UUID) (*models.Application, error) {
	app := &models.Application{
		ID:          uuid.New(),
		JobID:       jobID,
		CandidateID: candidateID,
		OrgID:       orgID,
		Stage:       models.StageNew,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := s.appRepo.Create(app); err != nil {
		return nil, err
	}
	return app, nil
}

// Get implements PipelineService.
func (s *pipelineService) Get(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	return s.appRepo.FindByID(id)
}

// ListByJob implements PipelineService.
func (s *pipelineService) ListByJob(ctx context.Context, jobID uuid.UUID, stageFilter string) ([]models.Application, error) {
	var stage *models.Stage
	if stageFilter != "" {
		parsed, ok := models.ParseStage(stageFilter)
		if !ok {
			return nil, common.NewError(common.CodeValidation, fmt.Sprintf("unknown stage %q", stageFilter), nil)
		}
		stage = &parsed
	}
	return s.appRepo.ListByJob(jobID, stage)
}

// History implements PipelineService.
func (s *pipelineService) History(ctx context.Context, id uuid.UUID) ([]models.StageTransition, error) {
	if _, err := s.appRepo.FindByID(id); err != nil {
		return nil, err
	}
	return s.appRepo.ListTransitions(id)
}

// MoveStage relabels an application within the pipeline. The hired stage
// is never a valid target here: the only way in is ConfirmHire, so hire
// accounting can never be skewed by a plain stage write.
func (s *pipelineService) MoveStage(ctx context.Context, id uuid.UUID, target string, revision int64, actorID *uuid.UUID) (*models.Application, error) {
	stage, ok := models.ParseStage(target)
	if !ok {
		return nil, common.NewError(common.CodeValidation, fmt.Sprintf("unknown stage %q", target), nil)
	}
	if stage == models.StageHired {
		return nil, common.NewError(common.CodeValidation, "the hired stage is only reachable through confirm-hire", nil)
	}

	app, err := s.appRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	// Same-stage moves are idempotent no-ops.
	if app.Stage == stage {
		return app, nil
	}

	if app.Stage.Terminal() {
		return nil, common.NewError(common.CodeConflict, fmt.Sprintf("application stage %q is final", app.Stage), nil)
	}

	return s.appRepo.MoveStage(id, stage, revision, actorID)
}

// BulkMoveStage implements PipelineService.
func (s *pipelineService) BulkMoveStage(ctx context.Context, ids []uuid.UUID, target string) (int64, error) {
	if len(ids) == 0 {
		return 0, common.NewError(common.CodeValidation, "ids must not be empty", nil)
	}

	stage, ok := models.ParseStage(target)
	if !ok {
		return 0, common.NewError(common.CodeValidation, fmt.Sprintf("unknown stage %q", target), nil)
	}
	if stage == models.StageHired {
		return 0, common.NewError(common.CodeValidation, "the hired stage is only reachable through confirm-hire", nil)
	}

	return s.appRepo.BulkMoveStage(ids, stage)
}

// ConfirmHire records one successful hire. Interviews, evaluations, and
// rejections are never counted; only the Hire row created here feeds
// hire-count accounting.
func (s *pipelineService) ConfirmHire(ctx context.Context, id uuid.UUID, actorID, orgID uuid.UUID, revision int64) (*models.Hire, error) {
	if actorID == uuid.Nil || orgID == uuid.Nil {
		return nil, common.NewError(common.CodeUnauthenticated, "an acting user and organization are required to confirm a hire", nil)
	}

	app, err := s.appRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if app.Stage != models.StageOffer {
		return nil, common.NewError(common.CodeConflict, fmt.Sprintf("application must be in the offer stage, currently %q", app.Stage), nil)
	}

	hire, err := s.hireRepo.ConfirmHire(id, revision, actorID, orgID)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Hire confirmed for application %s by manager %s\n", id, actorID)
	return hire, nil
}

// UndoHire reverses a confirmed hire while the undo window is open.
// Eligibility is recomputed here from a fresh read of the Hire row, never
// from caller-supplied timestamps.
func (s *pipelineService) UndoHire(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) (*models.Application, error) {
	hire, err := s.hireRepo.FindActiveByApplication(id)
	if err != nil {
		return nil, err
	}

	elapsed := s.now().Sub(hire.CreatedAt)
	if elapsed > s.undoWindow {
		return nil, common.NewError(common.CodeGone,
			fmt.Sprintf("the undo window of %s has expired for this hire", s.undoWindow), nil)
	}

	if err := s.hireRepo.UndoHire(hire, actorID); err != nil {
		return nil, err
	}

	log.Printf("↩️  Hire undone for application %s\n", id)
	return s.appRepo.FindByID(id)
}

// ListHires implements PipelineService.
func (s *pipelineService) ListHires(ctx context.Context, orgID uuid.UUID) ([]models.Hire, error) {
	return s.hireRepo.ListByOrg(orgID)
}

// CountHires implements PipelineService.
func (s *pipelineService) CountHires(ctx context.Context, orgID uuid.UUID) (int64, error) {
	return s.hireRepo.CountActiveByOrg(orgID)
}
