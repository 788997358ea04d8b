package render

import (
	"strings"
	"testing"
)

func TestRenderSubstitutesPlaceholders(t *testing.T) {
	tmpl := "科目: {subject}\n難易度: {difficulty}\n問題数: {num_questions}\n参照: {chunk_count}件\n{doc_snippets}"
	ctx := Context{
		Subject:      "微分積分",
		Difficulty:   "標準",
		NumQuestions: 3,
		ChunkCount:   2,
		DocSnippets:  "[1] 例題",
	}

	got := Render(tmpl, ctx)
	want := "科目: 微分積分\n難易度: 標準\n問題数: 3\n参照: 2件\n[1] 例題"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	tmpl := "{subject} / {difficulty_score} / {trickiness}"
	ctx := Context{Subject: "s", DifficultyScore: "0.7"}

	first := Render(tmpl, ctx)
	for i := 0; i < 5; i++ {
		if got := Render(tmpl, ctx); got != first {
			t.Fatalf("render %d differed: %q vs %q", i, got, first)
		}
	}
}

func TestRenderMissingValuesAreEmpty(t *testing.T) {
	got := Render("score={difficulty_score} level={difficulty_level}", Context{})
	if got != "score= level=" {
		t.Errorf("Render() = %q", got)
	}
}

func TestRenderUnknownPlaceholderSurvives(t *testing.T) {
	got := Render("keep {unknown_marker} visible", Context{})
	if got != "keep {unknown_marker} visible" {
		t.Errorf("Render() = %q, unknown placeholder must not vanish", got)
	}
}

func TestSummarizeSnippets(t *testing.T) {
	got := SummarizeSnippets([]string{"first", "", "  second  "}, 100)
	want := "[1] first\n[3] second"
	if got != want {
		t.Errorf("SummarizeSnippets() = %q, want %q", got, want)
	}
}

func TestSummarizeSnippetsTruncates(t *testing.T) {
	long := strings.Repeat("あ", 50)
	got := SummarizeSnippets([]string{long}, 10)
	if !strings.HasPrefix(got, "[1] "+strings.Repeat("あ", 10)+"…") {
		t.Errorf("SummarizeSnippets() = %q, want 10-rune truncation", got)
	}
}
