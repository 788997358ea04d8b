package render

import (
	"fmt"
	"regexp"
	"strings"
)

// Context carries every placeholder value a template may reference.
// Missing values render as empty strings so the same template works with
// and without retrieval.
type Context struct {
	Subject         string
	Difficulty      string
	NumQuestions    int
	DocSnippets     string
	RagSummary      string
	ChunkCount      int
	DifficultyScore string // "" or formatted 0..1
	DifficultyLevel string // "" or "1".."5"
	Trickiness      string
	SourceText      string
	PresetNotes     string
}

var placeholderPattern = regexp.MustCompile(`\{([a-z_]+)\}`)

// Render substitutes {placeholder} markers in the template body. It is a
// pure function of (tmpl, ctx): the same inputs always produce byte-identical
// output, which is what makes the render stage safe to retry.
func Render(tmpl string, ctx Context) string {
	values := map[string]string{
		"subject":          ctx.Subject,
		"difficulty":       ctx.Difficulty,
		"num_questions":    fmt.Sprintf("%d", ctx.NumQuestions),
		"doc_snippets":     ctx.DocSnippets,
		"rag_summary":      ctx.RagSummary,
		"chunk_count":      fmt.Sprintf("%d", ctx.ChunkCount),
		"difficulty_score": ctx.DifficultyScore,
		"difficulty_level": ctx.DifficultyLevel,
		"trickiness":       ctx.Trickiness,
		"source_text":      ctx.SourceText,
		"preset_notes":     ctx.PresetNotes,
	}
	return placeholderPattern.ReplaceAllStringFunc(tmpl, func(m string) string {
		key := strings.Trim(m, "{}")
		if v, ok := values[key]; ok {
			return v
		}
		// Unknown placeholders stay visible instead of vanishing silently.
		return m
	})
}

// SummarizeSnippets joins retrieved snippets into the block templates
// reference through {doc_snippets}, truncating each snippet so a handful of
// long references cannot crowd out the instructions.
func SummarizeSnippets(snippets []string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = 200
	}
	var b strings.Builder
	for i, s := range snippets {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		runes := []rune(s)
		if len(runes) > maxLen {
			s = string(runes[:maxLen]) + "…"
		}
		fmt.Fprintf(&b, "[%d] %s\n", i+1, s)
	}
	return strings.TrimRight(b.String(), "\n")
}
