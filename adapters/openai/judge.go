package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"benchfuse/domain/artifact"
	"benchfuse/internal/cache"
	"benchfuse/internal/logging"
	"benchfuse/ports"
)

// judge.go
//
// LLM-backed claim/source alignment. The judge asks for a strict JSON
// verdict and tolerates the usual model formatting noise (code fences,
// leading chatter) before parsing.

const judgeMaxTokens = 400

// AlignmentJudge compares a discovery claim against one literature source
// through an LLM call.
type AlignmentJudge struct {
	llm   ports.LLMClient
	model string
	log   *logging.Logger
}

// NewAlignmentJudge creates a judge over the given client and model.
func NewAlignmentJudge(llm ports.LLMClient, model string) *AlignmentJudge {
	return &AlignmentJudge{
		llm:   llm,
		model: model,
		log:   logging.NewDefaultLogger("AlignmentJudge"),
	}
}

// judgeVerdict is the JSON shape the prompt demands.
type judgeVerdict struct {
	Aligned   bool    `json:"aligned"`
	Score     float64 `json:"score"`
	Rationale string  `json:"rationale"`
}

// JudgeAlignment implements the literature scorer's judge contract.
func (j *AlignmentJudge) JudgeAlignment(ctx context.Context, claim string, source artifact.LiteratureSource) (cache.AlignmentJudgment, error) {
	prompt := buildAlignmentPrompt(claim, source)

	content, err := j.llm.ChatCompletion(ctx, j.model, prompt, judgeMaxTokens)
	if err != nil {
		return cache.AlignmentJudgment{}, fmt.Errorf("alignment call failed: %w", err)
	}

	var verdict judgeVerdict
	if err := json.Unmarshal([]byte(extractJSON(content)), &verdict); err != nil {
		j.log.Warn("unparseable alignment verdict for %q: %v", source.Identity(), err)
		return cache.AlignmentJudgment{}, fmt.Errorf("failed to parse alignment verdict: %w", err)
	}

	if verdict.Score < 0 {
		verdict.Score = 0
	}
	if verdict.Score > 1 {
		verdict.Score = 1
	}
	return cache.AlignmentJudgment{
		Aligned:   verdict.Aligned,
		Score:     verdict.Score,
		Rationale: verdict.Rationale,
	}, nil
}

func buildAlignmentPrompt(claim string, source artifact.LiteratureSource) string {
	var b strings.Builder
	b.WriteString("You are checking whether a scientific claim is consistent with a published source.\n\n")
	fmt.Fprintf(&b, "Claim: %s\n\n", claim)
	fmt.Fprintf(&b, "Source title: %s\n", source.Title)
	if source.Summary != "" {
		fmt.Fprintf(&b, "Source summary: %s\n", source.Summary)
	}
	if source.Year > 0 {
		fmt.Fprintf(&b, "Publication year: %d\n", source.Year)
	}
	if source.DOI != "" {
		fmt.Fprintf(&b, "DOI: %s\n", source.DOI)
	}
	b.WriteString("\nRespond with JSON only, in this exact shape:\n")
	b.WriteString(`{"aligned": true, "score": 0.0, "rationale": "one sentence"}` + "\n")
	b.WriteString("aligned: whether the source supports or is consistent with the claim.\n")
	b.WriteString("score: your confidence in that judgment, 0 to 1.\n")
	return b.String()
}

// extractJSON strips code fences and any chatter preceding the first JSON
// object.
func extractJSON(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}
	if i := strings.Index(content, "{"); i > 0 {
		content = content[i:]
	}
	return content
}
