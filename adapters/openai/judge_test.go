package openai

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"benchfuse/domain/artifact"
	"benchfuse/ports"
)

type scriptedLLM struct {
	content string
	err     error
	prompts []string
}

func (s *scriptedLLM) ChatCompletion(ctx context.Context, model, prompt string, maxTokens int) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.content, s.err
}

func (s *scriptedLLM) ChatCompletionWithUsage(ctx context.Context, model, prompt string, maxTokens int) (*ports.LLMResponse, error) {
	content, err := s.ChatCompletion(ctx, model, prompt, maxTokens)
	if err != nil {
		return nil, err
	}
	return &ports.LLMResponse{Content: content}, nil
}

func TestJudgeAlignment_ParsesVerdict(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantAligned bool
		wantScore   float64
	}{
		{
			"plain json",
			`{"aligned": true, "score": 0.85, "rationale": "directly supported"}`,
			true, 0.85,
		},
		{
			"fenced json",
			"```json\n{\"aligned\": false, \"score\": 0.2, \"rationale\": \"contradicts\"}\n```",
			false, 0.2,
		},
		{
			"chatter before json",
			"Here is the verdict:\n{\"aligned\": true, \"score\": 0.7, \"rationale\": \"consistent\"}",
			true, 0.7,
		},
		{
			"score clamped",
			`{"aligned": true, "score": 1.4, "rationale": "overeager"}`,
			true, 1.0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			judge := NewAlignmentJudge(&scriptedLLM{content: tt.content}, "test-model")
			got, err := judge.JudgeAlignment(context.Background(), "claim", artifact.LiteratureSource{Title: "paper"})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Aligned != tt.wantAligned || got.Score != tt.wantScore {
				t.Errorf("got aligned=%v score=%v, want %v/%v", got.Aligned, got.Score, tt.wantAligned, tt.wantScore)
			}
		})
	}
}

func TestJudgeAlignment_PropagatesCallFailure(t *testing.T) {
	judge := NewAlignmentJudge(&scriptedLLM{err: fmt.Errorf("provider down")}, "test-model")
	if _, err := judge.JudgeAlignment(context.Background(), "claim", artifact.LiteratureSource{Title: "paper"}); err == nil {
		t.Fatalf("call failure must surface so the scorer can fall back")
	}
}

func TestJudgeAlignment_RejectsNonJSON(t *testing.T) {
	judge := NewAlignmentJudge(&scriptedLLM{content: "I cannot answer that."}, "test-model")
	if _, err := judge.JudgeAlignment(context.Background(), "claim", artifact.LiteratureSource{Title: "paper"}); err == nil {
		t.Fatalf("non-JSON output must be an error, not a silent verdict")
	}
}

func TestJudgeAlignment_PromptCarriesSourceFields(t *testing.T) {
	llm := &scriptedLLM{content: `{"aligned": true, "score": 0.9, "rationale": "ok"}`}
	judge := NewAlignmentJudge(llm, "test-model")

	src := artifact.LiteratureSource{Title: "Tandem cell limits", Summary: "detailed balance analysis", Year: 2023, DOI: "10.1000/x"}
	if _, err := judge.JudgeAlignment(context.Background(), "efficiency exceeds 0.30", src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prompt := llm.prompts[0]
	for _, want := range []string{"efficiency exceeds 0.30", "Tandem cell limits", "detailed balance analysis", "2023", "10.1000/x"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
