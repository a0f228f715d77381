package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mkravets/factlens/internal/model"
)

// Renderer writes scored reports as JSON, Markdown or a terminal summary
type Renderer struct {
	includeFooter bool
	out           io.Writer
}

// NewRenderer creates a renderer. The footer line can be disabled for
// machine-consumed output.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter, out: os.Stdout}
}

// RenderJSON writes the report as indented JSON to path, or to stdout when
// path is empty.
func (r *Renderer) RenderJSON(report *model.ScoredReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if path == "" {
		_, err = fmt.Fprintln(r.out, string(data))
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdown writes the report as a Markdown document
func (r *Renderer) RenderMarkdown(report *model.ScoredReport, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Fact-Check Report\n\n")
	fmt.Fprintf(&b, "**Article:** %s\n\n", report.ArticleURL)
	if report.ArticleTitle != "" {
		fmt.Fprintf(&b, "**Title:** %s\n\n", report.ArticleTitle)
	}
	fmt.Fprintf(&b, "**Generated:** %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))

	if s, ok := report.DisplayScore(); ok {
		fmt.Fprintf(&b, "## Score: %.1f/100 (%s confidence)\n\n", s, report.ConfidenceLevel)
	} else {
		fmt.Fprintf(&b, "## Score: unverifiable\n\n")
	}
	if report.Summary != "" {
		fmt.Fprintf(&b, "%s\n\n", report.Summary)
	}
	if report.Recommendations != "" {
		fmt.Fprintf(&b, "**Recommendations:** %s\n\n", report.Recommendations)
	}

	fmt.Fprintf(&b, "## Sources (%d analyzed, %d filtered, %d failed)\n\n",
		report.SourcesConsidered, report.SourcesFiltered, report.SourcesFailed)
	fmt.Fprintf(&b, "| Source | Type | Status | Relevance | Agreement |\n")
	fmt.Fprintf(&b, "|--------|------|--------|-----------|----------|\n")
	for _, s := range report.Sources {
		agreement := "-"
		relevance := "-"
		if s.Status == model.StatusAnalyzed {
			agreement = fmt.Sprintf("%.0f%%", s.AgreementRatio*100)
			relevance = fmt.Sprintf("%.2f", s.RelevanceScore)
		} else if s.Status == model.StatusFiltered {
			relevance = fmt.Sprintf("%.2f", s.RelevanceScore)
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n", s.Domain, s.Type, s.Status, relevance, agreement)
	}
	b.WriteString("\n")

	if len(report.Facts.WhatFacts) > 0 {
		b.WriteString("## Key Facts\n\n")
		for _, f := range report.Facts.WhatFacts {
			fmt.Fprintf(&b, "- %s _(importance: %s)_\n", f.Text, f.Importance)
		}
		b.WriteString("\n")
	}
	if len(report.Facts.Claims) > 0 {
		b.WriteString("## Claims\n\n")
		for _, c := range report.Facts.Claims {
			fmt.Fprintf(&b, "- %s _(confidence: %s)_\n", c.Text, c.Confidence)
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\nGenerated by FactLens. Scores describe source agreement, not absolute truth.\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// RenderSummary prints the short terminal summary
func (r *Renderer) RenderSummary(report *model.ScoredReport) {
	fmt.Fprintf(r.out, "\nArticle: %s\n", report.ArticleURL)
	if s, ok := report.DisplayScore(); ok {
		fmt.Fprintf(r.out, "Score:   %.1f/100 (%s confidence)\n", s, report.ConfidenceLevel)
	} else {
		fmt.Fprintf(r.out, "Score:   unverifiable (no analyzable sources)\n")
	}
	fmt.Fprintf(r.out, "Sources: %d analyzed, %d filtered, %d failed\n",
		report.SourcesConsidered, report.SourcesFiltered, report.SourcesFailed)
	if report.Summary != "" {
		fmt.Fprintf(r.out, "\n%s\n", report.Summary)
	}
	if report.Recommendations != "" {
		fmt.Fprintf(r.out, "\n%s\n", report.Recommendations)
	}
}
