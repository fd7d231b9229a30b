package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/david210690/futura-hire-ai-sub000/internal/common"
	"github.com/david210690/futura-hire-ai-sub000/internal/models"
	"github.com/david210690/futura-hire-ai-sub000/internal/services"
)

type PipelineHandler struct {
	pipeline services.PipelineService
}

func NewPipelineHandler(pipeline services.PipelineService) *PipelineHandler {
	return &PipelineHandler{
		pipeline: pipeline,
	}
}

// HandleCreate handles POST /applications
func (h *PipelineHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return common.NewError(common.CodeValidation, "invalid request payload", err)
	}

	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return common.NewError(common.CodeValidation, "invalid job_id format", err)
	}
	candidateID, err := uuid.Parse(req.CandidateID)
	if err != nil {
		return common.NewError(common.CodeValidation, "invalid candidate_id format", err)
	}
	orgID, err := uuid.Parse(req.OrgID)
	if err != nil {
		return common.NewError(common.CodeValidation, "invalid org_id format", err)
	}

	app, err := h.pipeline.Create(c.Context(), jobID, candidateID, orgID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(app)
}

// HandleGet handles GET /applications/:id
func (h *PipelineHandler) HandleGet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return common.NewError(common.CodeValidation, "invalid application ID format", err)
	}

	app, err := h.pipeline.Get(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(app)
}

// HandleHistory handles GET /applications/:id/history
func (h *PipelineHandler) HandleHistory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return common.NewError(common.CodeValidation, "invalid application ID format", err)
	}

	transitions, err := h.pipeline.History(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"application_id": id.String(),
		"transitions":    transitions,
	})
}

// HandleListByJob handles GET /jobs/:id/applications
func (h *PipelineHandler) HandleListByJob(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return common.NewError(common.CodeValidation, "invalid job ID format", err)
	}

	apps, err := h.pipeline.ListByJob(c.Context(), jobID, c.Query("stage"))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"job_id":       jobID.String(),
		"applications": apps,
	})
}

// HandleMoveStage handles POST /applications/:id/stage
func (h *PipelineHandler) HandleMoveStage(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return common.NewError(common.CodeValidation, "invalid application ID format", err)
	}

	var req models.MoveStageRequest
	if err := c.BodyParser(&req); err != nil {
		return common.NewError(common.CodeValidation, "invalid request payload", err)
	}
	if req.TargetStage == "" {
		return common.NewError(common.CodeValidation, "target_stage is required", nil)
	}
	if req.Revision == nil {
		return common.NewError(common.CodeValidation, "revision is required", nil)
	}

	var actorID *uuid.UUID
	if actor, ok := ActorFromCtx(c); ok {
		actorID = &actor
	}

	app, err := h.pipeline.MoveStage(c.Context(), id, req.TargetStage, *req.Revision, actorID)
	if err != nil {
		return err
	}

	return c.JSON(app)
}

// HandleBulkMoveStage handles POST /applications/bulk-stage
func (h *PipelineHandler) HandleBulkMoveStage(c *fiber.Ctx) error {
	var req models.BulkStageRequest
	if err := c.BodyParser(&req); err != nil {
		return common.NewError(common.CodeValidation, "invalid request payload", err)
	}
	if len(req.IDs) == 0 {
		return common.NewError(common.CodeValidation, "ids must not be empty", nil)
	}
	if req.TargetStage == "" {
		return common.NewError(common.CodeValidation, "target_stage is required", nil)
	}

	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return common.NewError(common.CodeValidation, "invalid application ID in ids", err)
		}
		ids = append(ids, id)
	}

	updated, err := h.pipeline.BulkMoveStage(c.Context(), ids, req.TargetStage)
	if err != nil {
		return err
	}

	return c.JSON(models.BulkStageResponse{
		Updated: updated,
		Stage:   req.TargetStage,
	})
}

// HandleConfirmHire handles POST /applications/:id/confirm-hire
func (h *PipelineHandler) HandleConfirmHire(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return common.NewError(common.CodeValidation, "invalid application ID format", err)
	}

	var req models.ConfirmHireRequest
	if err := c.BodyParser(&req); err != nil {
		return common.NewError(common.CodeValidation, "invalid request payload", err)
	}
	if req.Revision == nil {
		return common.NewError(common.CodeValidation, "revision is required", nil)
	}

	actorID, ok := ActorFromCtx(c)
	if !ok {
		return common.NewError(common.CodeUnauthenticated, "no acting user resolved", nil)
	}
	orgID, ok := OrgFromCtx(c)
	if !ok {
		return common.NewError(common.CodeUnauthenticated, "no acting organization resolved", nil)
	}

	hire, err := h.pipeline.ConfirmHire(c.Context(), id, actorID, orgID, *req.Revision)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(hire)
}

// HandleUndoHire handles POST /applications/:id/undo-hire
func (h *PipelineHandler) HandleUndoHire(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return common.NewError(common.CodeValidation, "invalid application ID format", err)
	}

	var actorID *uuid.UUID
	if actor, ok := ActorFromCtx(c); ok {
		actorID = &actor
	}

	app, err := h.pipeline.UndoHire(c.Context(), id, actorID)
	if err != nil {
		return err
	}

	return c.JSON(app)
}

// HandleListHires handles GET /hires
func (h *PipelineHandler) HandleListHires(c *fiber.Ctx) error {
	orgID, err := uuid.Parse(c.Query("org_id"))
	if err != nil {
		return common.NewError(common.CodeValidation, "invalid org_id format", err)
	}

	hires, err := h.pipeline.ListHires(c.Context(), orgID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"org_id": orgID.String(),
		"hires":  hires,
	})
}

// HandleHireCount handles GET /hires/count
func (h *PipelineHandler) HandleHireCount(c *fiber.Ctx) error {
	orgID, err := uuid.Parse(c.Query("org_id"))
	if err != nil {
		return common.NewError(common.CodeValidation, "invalid org_id format", err)
	}

	count, err := h.pipeline.CountHires(c.Context(), orgID)
	if err != nil {
		return err
	}

	return c.JSON(models.HireCountResponse{
		OrgID: orgID.String(),
		Count: count,
	})
}
