package services

import (
	"fmt"
	"strings"

	"github.com/david210690/futura-hire-ai-sub000/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// pipelineStageOrder keeps the prompt deterministic regardless of map
// iteration order.
var pipelineStageOrder = []models.Stage{
	models.StageNew,
	models.StageShortlisted,
	models.StageInterview,
	models.StageOffer,
	models.StageHired,
	models.StageRejected,
}

// BuildPipelineReportPrompt creates the prompt for a pipeline health report.
func (pb *PromptBuilder) BuildPipelineReportPrompt(stageCounts map[models.Stage]int64, liveHires int64, transitions []models.StageTransition) string {
	return fmt.Sprintf(`You are an expert talent operations analyst reviewing a hiring pipeline for a recruiting team.

CURRENT PIPELINE SNAPSHOT (applications per stage):
%s

CONFIRMED HIRES (live hire records, the only number that counts as a hire): %d

RECENT STAGE MOVEMENTS (newest first):
%s

Your task is to assess the health of this pipeline.

Consider:
1. Funnel shape - are candidates pooling in early stages or stalling before offer?
2. Conversion - how does the hired count compare to pipeline volume?
3. Momentum - do the recent movements show progress or churn (rejections, undone hires)?
4. Risk - single points of failure such as an empty offer stage or heavy rejection streaks.

Return your response in the following JSON format:
{
  "health_score": <0-1 decimal, 1 means a healthy well-flowing pipeline>,
  "summary": "<3-5 sentences describing the pipeline's state and momentum>",
  "risk_factors": ["<short risk statement>", "..."]
}

Be specific and reference the actual numbers. Do not invent data that is not in the snapshot.`,
		formatStageCounts(stageCounts),
		liveHires,
		formatTransitions(transitions),
	)
}

func formatStageCounts(counts map[models.Stage]int64) string {
	var lines []string
	for _, stage := range pipelineStageOrder {
		lines = append(lines, fmt.Sprintf("- %s: %d", stage, counts[stage]))
	}
	return strings.Join(lines, "\n")
}

func formatTransitions(transitions []models.StageTransition) string {
	if len(transitions) == 0 {
		return "No recent stage movements."
	}

	var lines []string
	for _, t := range transitions {
		lines = append(lines, fmt.Sprintf("- %s: %s -> %s",
			t.CreatedAt.Format("2006-01-02 15:04"), t.FromStage, t.ToStage))
	}
	return strings.Join(lines, "\n")
}
