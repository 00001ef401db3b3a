package report

import (
	"bytes"
	"strings"
	"testing"
)

func TestMarkdownReport(t *testing.T) {
	var buf bytes.Buffer
	if err := Markdown(&buf, sampleReport()); err != nil {
		t.Fatalf("Markdown: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# Route Report: demo",
		"**Generated:** 2025-03-14 09:30:00",
		"- Pairs attempted: 2",
		"- Routes found: 1 (50.0%)",
		"- Longest route: Virrey to CAD (3 stations)",
		"### Virrey to CAD",
		"1. Virrey",
		"2. Centro Memoria",
		"3. CAD",
		"- Distance: 2.60 km",
		"### Virrey to Solo",
		"No route found.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestMarkdownSkipsStatsWithoutRoutes(t *testing.T) {
	r := sampleReport()
	r.Summary.RoutesFound = 0
	r.Records = nil

	var buf bytes.Buffer
	if err := Markdown(&buf, r); err != nil {
		t.Fatalf("Markdown: %v", err)
	}
	out := buf.String()

	if strings.Contains(out, "## Extremes") {
		t.Errorf("empty report renders extremes:\n%s", out)
	}
	if strings.Contains(out, "Path length:") {
		t.Errorf("empty report renders path stats:\n%s", out)
	}
}

func TestExplanationMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := ExplanationMarkdown(&buf, sampleExplanation()); err != nil {
		t.Fatalf("ExplanationMarkdown: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"## Route: Virrey to CAD",
		"1. **Virrey** (line: Troncal Caracas) transfer to Transbordo",
		"2. **Centro Memoria** (line: Transbordo) transfer to Troncal NQS",
		"3. **CAD** (line: Troncal NQS)\n",
		"- Transfers: 2",
		"- Total cost: 6.60",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}
