package main

import (
	"context"
	"log"

	"github.com/david210690/futura-hire-ai-sub000/internal/config"
	"github.com/david210690/futura-hire-ai-sub000/internal/repositories"
	"github.com/david210690/futura-hire-ai-sub000/internal/services"
)

// Rebuilds the Qdrant resume index from the files on disk, e.g. after a
// collection wipe or an embedding model change.
func main() {
	log.Println("🚀 Starting resume reindex...")

	// Load configuration
	cfg := config.Load()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	resumeRepo := repositories.NewResumeRepository(db)

	// Initialize services
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := qdrantService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	chunker := services.NewTextChunker()
	indexer := services.NewResumeIndexer(geminiService, qdrantService, chunker)

	ctx := context.Background()

	resumes, err := resumeRepo.ListAll()
	if err != nil {
		log.Fatalf("❌ Failed to list resumes: %v", err)
	}

	log.Printf("📄 Found %d resumes to index\n", len(resumes))

	indexed := 0
	for _, resume := range resumes {
		text, err := pdfParser.ExtractText(resume.FilePath)
		if err != nil {
			log.Printf("⚠️  Skipping resume %s: %v\n", resume.ID, err)
			continue
		}

		// Drop stale points before re-adding so chunk counts stay accurate
		if err := qdrantService.DeleteResume(ctx, resume.ID.String()); err != nil {
			log.Printf("⚠️  Failed to clear old points for resume %s: %v\n", resume.ID, err)
		}

		if err := indexer.IndexResume(ctx, &resume, text); err != nil {
			log.Printf("⚠️  Failed to index resume %s: %v\n", resume.ID, err)
			continue
		}
		indexed++
	}

	log.Printf("✅ Reindex complete: %d/%d resumes indexed\n", indexed, len(resumes))
}
