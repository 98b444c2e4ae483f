package fusion

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"benchfuse/domain/verdict"
)

// report.go
//
// Human-readable rendering of a fused verdict. Pure formatting, no side
// effects; suitable for logs, terminals, or the API layer.

// RenderText renders the verdict as plain structured text.
func RenderText(v *verdict.AggregatedValidation) string {
	var b strings.Builder

	state := "FAILED"
	if v.OverallPassed {
		state = "PASSED"
	}
	fmt.Fprintf(&b, "Validation %s\n", v.ValidationID)
	fmt.Fprintf(&b, "Overall: %.2f/10 (%s) — agreement %s\n", v.OverallScore, state, v.AgreementLevel)
	b.WriteString("\n")

	if len(v.Benchmarks) == 0 {
		b.WriteString("No benchmarks completed.\n")
	}
	for _, bm := range v.Benchmarks {
		mark := "FAIL"
		if bm.Passed {
			mark = "PASS"
		}
		fmt.Fprintf(&b, "  [%s] %-16s %.2f/%.0f (confidence %.2f)\n",
			mark, bm.Kind, bm.Score, bm.MaxScore, bm.Confidence)
		for _, item := range bm.Items {
			if item.Passed {
				continue
			}
			fmt.Fprintf(&b, "         - %s: %s\n", item.Name, item.Reasoning)
		}
	}

	if len(v.Discrepancies) > 0 {
		b.WriteString("\nDiscrepancies:\n")
		for _, d := range v.Discrepancies {
			fmt.Fprintf(&b, "  %s vs %s (%.2f vs %.2f): %s\n",
				d.KindA, d.KindB, d.ScoreA, d.ScoreB, d.PossibleCause)
		}
	}

	if len(v.Recommendations) > 0 {
		b.WriteString("\nRecommendations:\n")
		for i, r := range v.Recommendations {
			fmt.Fprintf(&b, "  %d. [%s] %s\n", i+1, r.Priority, r.Summary)
			if r.Action != "" {
				fmt.Fprintf(&b, "     %s\n", r.Action)
			}
		}
	}

	return b.String()
}

// RenderMarkdown renders the verdict as a markdown document.
func RenderMarkdown(v *verdict.AggregatedValidation) string {
	var b strings.Builder

	state := "❌ failed"
	if v.OverallPassed {
		state = "✅ passed"
	}
	fmt.Fprintf(&b, "# Validation Report\n\n")
	fmt.Fprintf(&b, "**Overall score:** %.2f/10 (%s)  \n", v.OverallScore, state)
	fmt.Fprintf(&b, "**Agreement:** %s  \n", v.AgreementLevel)
	fmt.Fprintf(&b, "**Validation ID:** `%s`\n\n", v.ValidationID)

	fmt.Fprintf(&b, "## Benchmarks\n\n")
	if len(v.Benchmarks) == 0 {
		b.WriteString("_No benchmarks completed._\n\n")
	} else {
		b.WriteString("| Benchmark | Score | Passed | Confidence |\n")
		b.WriteString("|---|---|---|---|\n")
		for _, bm := range v.Benchmarks {
			fmt.Fprintf(&b, "| %s | %.2f/%.0f | %t | %.2f |\n",
				bm.Kind, bm.Score, bm.MaxScore, bm.Passed, bm.Confidence)
		}
		b.WriteString("\n")
	}

	if len(v.Discrepancies) > 0 {
		fmt.Fprintf(&b, "## Discrepancies\n\n")
		for _, d := range v.Discrepancies {
			fmt.Fprintf(&b, "- **%s vs %s** (%.2f vs %.2f): %s\n",
				d.KindA, d.KindB, d.ScoreA, d.ScoreB, d.PossibleCause)
		}
		b.WriteString("\n")
	}

	if len(v.Recommendations) > 0 {
		fmt.Fprintf(&b, "## Recommendations\n\n")
		for _, r := range v.Recommendations {
			fmt.Fprintf(&b, "1. **[%s]** %s", r.Priority, r.Summary)
			if r.Action != "" {
				fmt.Fprintf(&b, " — %s", r.Action)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}

// RenderHTML renders the verdict as an HTML fragment via the markdown
// renderer, for embedding in the API's report endpoint.
func RenderHTML(v *verdict.AggregatedValidation) []byte {
	md := []byte(RenderMarkdown(v))
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs | parser.Tables)
	doc := p.Parse(md)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.Render(doc, renderer)
}
