package handlers

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/david210690/futura-hire-ai-sub000/internal/common"
	"github.com/david210690/futura-hire-ai-sub000/internal/models"
	"github.com/david210690/futura-hire-ai-sub000/internal/repositories"
	"github.com/david210690/futura-hire-ai-sub000/internal/services"
)

const defaultSearchLimit = 10

type ResumeHandler struct {
	resumeRepo     repositories.ResumeRepository
	storageService services.StorageService
	pdfParser      services.PDFParserService
	indexer        services.ResumeIndexer
	maxFileSize    int64
}

func NewResumeHandler(
	resumeRepo repositories.ResumeRepository,
	storageService services.StorageService,
	pdfParser services.PDFParserService,
	indexer services.ResumeIndexer,
	maxFileSize int64,
) *ResumeHandler {
	return &ResumeHandler{
		resumeRepo:     resumeRepo,
		storageService: storageService,
		pdfParser:      pdfParser,
		indexer:        indexer,
		maxFileSize:    maxFileSize,
	}
}

// HandleUpload handles POST /resumes
func (h *ResumeHandler) HandleUpload(c *fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.FormValue("candidate_id"))
	if err != nil {
		return common.NewError(common.CodeValidation, "invalid candidate_id format", err)
	}

	file, err := c.FormFile("resume")
	if err != nil {
		return common.NewError(common.CodeValidation, "resume file is required", err)
	}

	if file.Size > h.maxFileSize {
		return common.NewError(common.CodeValidation,
			fmt.Sprintf("resume file too large. Max size: %d bytes", h.maxFileSize), nil)
	}

	// Save file
	filename, filePath, err := h.storageService.SaveFile(file, "resume")
	if err != nil {
		return common.NewError(common.CodeValidation, fmt.Sprintf("failed to save resume file: %v", err), err)
	}

	// Parse the PDF before creating the record so unreadable files are
	// rejected up front
	content, err := h.pdfParser.ExtractTextWithMetaData(filePath)
	if err != nil {
		h.storageService.DeleteFile(filename)
		return common.NewError(common.CodeValidation, fmt.Sprintf("failed to parse resume PDF: %v", err), err)
	}

	resume := &models.Resume{
		ID:               uuid.New(),
		CandidateID:      candidateID,
		Filename:         filename,
		OriginalFileName: file.Filename,
		FilePath:         filePath,
		PageCount:        content.PageCount,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := h.resumeRepo.Create(resume); err != nil {
		// Cleanup uploaded file if database insert fails
		h.storageService.DeleteFile(filename)
		return err
	}

	// Indexing failures are non-fatal: the upload stands and the resume
	// can be backfilled by the reindex script
	if err := h.indexer.IndexResume(c.Context(), resume, content.Text); err != nil {
		log.Printf("⚠️  Failed to index resume %s: %v\n", resume.ID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.ResumeUploadResponse{
		ID:           resume.ID.String(),
		CandidateID:  resume.CandidateID.String(),
		Filename:     resume.Filename,
		OriginalName: resume.OriginalFileName,
		PageCount:    resume.PageCount,
	})
}

// HandleGet handles GET /resumes/:id
func (h *ResumeHandler) HandleGet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return common.NewError(common.CodeValidation, "invalid resume ID format", err)
	}

	resume, err := h.resumeRepo.FindByID(id)
	if err != nil {
		return err
	}

	return c.JSON(resume)
}

// HandleListByCandidate handles GET /candidates/:id/resumes
func (h *ResumeHandler) HandleListByCandidate(c *fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return common.NewError(common.CodeValidation, "invalid candidate ID format", err)
	}

	resumes, err := h.resumeRepo.ListByCandidate(candidateID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"candidate_id": candidateID.String(),
		"resumes":      resumes,
	})
}

// HandleSearch handles GET /resumes/search
func (h *ResumeHandler) HandleSearch(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return common.NewError(common.CodeValidation, "query parameter q is required", nil)
	}

	limit := defaultSearchLimit
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 50 {
			limit = v
		}
	}

	matches, err := h.indexer.SearchResumes(c.Context(), query, limit)
	if err != nil {
		return common.NewError(common.CodeInternal, "resume search failed", err)
	}

	// Hydrate the matched chunks with their resume rows
	var resumeIDs []uuid.UUID
	seen := make(map[uuid.UUID]bool)
	for _, match := range matches {
		if id, err := uuid.Parse(match.ResumeID); err == nil && !seen[id] {
			seen[id] = true
			resumeIDs = append(resumeIDs, id)
		}
	}

	names := make(map[string]string, len(resumeIDs))
	if len(resumeIDs) > 0 {
		resumes, err := h.resumeRepo.FindByIDs(resumeIDs)
		if err != nil {
			return err
		}
		for _, resume := range resumes {
			names[resume.ID.String()] = resume.OriginalFileName
		}
	}

	hits := make([]models.ResumeSearchHit, 0, len(matches))
	for _, match := range matches {
		hits = append(hits, models.ResumeSearchHit{
			ResumeID:     match.ResumeID,
			CandidateID:  match.CandidateID,
			OriginalName: names[match.ResumeID],
			Score:        match.Score,
			Snippet:      match.Text,
		})
	}

	return c.JSON(fiber.Map{
		"query":   query,
		"results": hits,
	})
}
