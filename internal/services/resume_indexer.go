package services

import (
	"context"
	"fmt"
	"log"

	"github.com/david210690/futura-hire-ai-sub000/internal/models"
)

const (
	resumeChunkSize    = 1000
	resumeChunkOverlap = 150
)

// ResumeIndexer feeds parsed resume text into the vector index and runs
// semantic searches over it.
type ResumeIndexer interface {
	IndexResume(ctx context.Context, resume *models.Resume, text string) error
	SearchResumes(ctx context.Context, query string, limit int) ([]ResumeMatch, error)
}

type resumeIndexer struct {
	geminiService GeminiService
	qdrantService QdrantService
	chunker       TextChunker
}

func NewResumeIndexer(
	geminiService GeminiService,
	qdrantService QdrantService,
	chunker TextChunker,
) ResumeIndexer {
	return &resumeIndexer{
		geminiService: geminiService,
		qdrantService: qdrantService,
		chunker:       chunker,
	}
}

// IndexResume implements ResumeIndexer. Individual chunk failures are
// logged and skipped so one bad chunk does not lose the whole resume.
func (r *resumeIndexer) IndexResume(ctx context.Context, resume *models.Resume, text string) error {
	chunks := r.chunker.ChunkText(CleanText(text), resumeChunkSize, resumeChunkOverlap)
	if len(chunks) == 0 {
		return fmt.Errorf("no indexable text in resume %s", resume.ID)
	}

	indexed := 0
	for i, chunk := range chunks {
		embedding, err := r.geminiService.GenerateEmbedding(ctx, chunk)
		if err != nil {
			log.Printf("⚠️  Failed to embed chunk %d of resume %s: %v\n", i, resume.ID, err)
			continue
		}

		err = r.qdrantService.UpsertResumeChunk(
			ctx,
			resume.ID.String(),
			resume.CandidateID.String(),
			i,
			chunk,
			embedding,
		)
		if err != nil {
			log.Printf("⚠️  Failed to upsert chunk %d of resume %s: %v\n", i, resume.ID, err)
			continue
		}
		indexed++
	}

	if indexed == 0 {
		return fmt.Errorf("failed to index any chunk of resume %s", resume.ID)
	}

	log.Printf("✅ Indexed %d/%d chunks for resume %s\n", indexed, len(chunks), resume.ID)
	return nil
}

// SearchResumes implements ResumeIndexer.
func (r *resumeIndexer) SearchResumes(ctx context.Context, query string, limit int) ([]ResumeMatch, error) {
	embedding, err := r.geminiService.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	matches, err := r.qdrantService.SearchResumes(ctx, embedding, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search resumes: %w", err)
	}

	return matches, nil
}
