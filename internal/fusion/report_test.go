package fusion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"benchfuse/domain/benchmark"
	"benchfuse/domain/core"
	"benchfuse/domain/verdict"
)

func sampleVerdict() *verdict.AggregatedValidation {
	agg := NewAggregator(DefaultOptions())
	v := agg.Aggregate(core.NewValidationID(), []benchmark.Result{
		mkResult(benchmark.KindPhysicalLimits, 0.9, 1.0),
		mkResult(benchmark.KindPracticality, 0.5, 1.0),
	})
	v.Recommendations = NewRecommendationBuilder().Build(v.Benchmarks, v.Discrepancies, v.AgreementLevel)
	return &v
}

func TestRenderText(t *testing.T) {
	out := RenderText(sampleVerdict())

	assert.Contains(t, out, "Overall: 7.22/10 (PASSED)")
	assert.Contains(t, out, "[PASS] physical-limits")
	assert.Contains(t, out, "[FAIL] practicality")
	assert.Contains(t, out, "Discrepancies:")
	assert.Contains(t, out, "Recommendations:")
}

func TestRenderText_EmptyVerdict(t *testing.T) {
	v := NewAggregator(DefaultOptions()).Aggregate(core.NewValidationID(), nil)
	out := RenderText(&v)
	assert.Contains(t, out, "No benchmarks completed.")
}

func TestRenderMarkdown(t *testing.T) {
	out := RenderMarkdown(sampleVerdict())

	assert.True(t, strings.HasPrefix(out, "# Validation Report"))
	assert.Contains(t, out, "| physical-limits | 9.00/10 | true | 1.00 |")
	assert.Contains(t, out, "## Discrepancies")
}

func TestRenderHTML(t *testing.T) {
	out := string(RenderHTML(sampleVerdict()))

	assert.Contains(t, out, "<h1")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "physical-limits")
}
