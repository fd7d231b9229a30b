package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/david210690/futura-hire-ai-sub000/internal/models"
	"github.com/david210690/futura-hire-ai-sub000/internal/repositories"
)

// recentTransitionsLimit caps how many stage movements feed one report.
const recentTransitionsLimit = 50

type InsightsService interface {
	GenerateReport(ctx context.Context, reportID uuid.UUID) error
}

type insightsService struct {
	reportRepo    repositories.ReportRepository
	appRepo       repositories.ApplicationRepository
	hireRepo      repositories.HireRepository
	geminiService GeminiService
	promptBuilder *PromptBuilder
	maxRetries    int
}

func NewInsightsService(
	reportRepo repositories.ReportRepository,
	appRepo repositories.ApplicationRepository,
	hireRepo repositories.HireRepository,
	geminiService GeminiService,
	maxRetries int,
) InsightsService {
	return &insightsService{
		reportRepo:    reportRepo,
		appRepo:       appRepo,
		hireRepo:      hireRepo,
		geminiService: geminiService,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
	}
}

type PipelineHealthResult struct {
	HealthScore float64  `json:"health_score"`
	Summary     string   `json:"summary"`
	RiskFactors []string `json:"risk_factors"`
}

func (s *insightsService) GenerateReport(ctx context.Context, reportID uuid.UUID) error {
	// Update status to processing
	if err := s.reportRepo.UpdateStatus(reportID, models.ReportProcessing); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	log.Printf("🔄 Starting report generation for job ID: %s\n", reportID)

	report, err := s.reportRepo.FindByID(reportID)
	if err != nil {
		s.reportRepo.UpdateError(reportID, err.Error())
		return fmt.Errorf("failed to get report: %w", err)
	}

	// Step 1: Collect the live pipeline snapshot
	stageCounts, err := s.appRepo.CountByStage(report.OrgID, report.JobID)
	if err != nil {
		s.reportRepo.UpdateError(reportID, fmt.Sprintf("Failed to count pipeline stages: %v", err))
		return fmt.Errorf("failed to count pipeline stages: %w", err)
	}

	liveHires, err := s.hireRepo.CountActiveByOrg(report.OrgID)
	if err != nil {
		s.reportRepo.UpdateError(reportID, fmt.Sprintf("Failed to count hires: %v", err))
		return fmt.Errorf("failed to count hires: %w", err)
	}

	transitions, err := s.appRepo.RecentTransitions(report.OrgID, report.JobID, recentTransitionsLimit)
	if err != nil {
		log.Printf("⚠️  Warning: Failed to load recent transitions: %v\n", err)
		transitions = nil
	}

	// Step 2: Generate the report with the LLM
	log.Println("🤖 Generating pipeline health report with LLM...")
	prompt := s.promptBuilder.BuildPipelineReportPrompt(stageCounts, liveHires, transitions)

	response, err := s.geminiService.GenerateTextWithRetry(ctx, prompt, 0.3, s.maxRetries)
	if err != nil {
		s.reportRepo.UpdateError(reportID, fmt.Sprintf("Failed to generate report: %v", err))
		return fmt.Errorf("failed to generate report: %w", err)
	}

	var result PipelineHealthResult
	if err := s.parseJSONResponse(response, &result); err != nil {
		s.reportRepo.UpdateError(reportID, fmt.Sprintf("Failed to parse report response: %v", err))
		return fmt.Errorf("failed to parse report response: %w", err)
	}

	// Step 3: Save results
	log.Println("💾 Saving report results...")
	risksJSON, err := json.Marshal(result.RiskFactors)
	if err != nil {
		s.reportRepo.UpdateError(reportID, fmt.Sprintf("Failed to encode risk factors: %v", err))
		return fmt.Errorf("failed to encode risk factors: %w", err)
	}
	risks := string(risksJSON)

	updateData := &repositories.ReportUpdateData{
		Summary:     &result.Summary,
		HealthScore: &result.HealthScore,
		RiskFactors: &risks,
	}
	if err := s.reportRepo.UpdateResult(reportID, updateData); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	log.Printf("✅ Report completed successfully for job ID: %s\n", reportID)
	return nil
}

func (s *insightsService) parseJSONResponse(response string, target interface{}) error {
	// Try to extract JSON from response (LLM might wrap it in markdown)
	jsonStr := extractJSON(response)

	if err := json.Unmarshal([]byte(jsonStr), target); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w\nResponse: %s", err, response)
	}

	return nil
}

// extractJSON tries to extract JSON from text that might contain markdown or other formatting
func extractJSON(text string) string {
	// Remove markdown code blocks
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	// Find JSON object or array boundaries
	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	if startObj != -1 && endObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	} else if startArr != -1 && endArr != -1 && endArr > startArr {
		return text[startArr : endArr+1]
	}

	return text
}
