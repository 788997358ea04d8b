package llm

import (
	"context"
	"strings"
	"testing"
)

type captureProvider struct {
	history []Message
	opts    Options
	reply   string
	err     error
}

func (p *captureProvider) Chat(ctx context.Context, history []Message, options ...Option) (string, error) {
	p.history = history
	for _, o := range options {
		o(&p.opts)
	}
	return p.reply, p.err
}

func (p *captureProvider) Generate(ctx context.Context, prompt string, options ...Option) (string, error) {
	return p.Chat(ctx, []Message{{Role: "user", Content: prompt}}, options...)
}

func TestCompleteAssemblesSystemInstruction(t *testing.T) {
	provider := &captureProvider{reply: "output"}
	c := NewCompleter(provider, map[string]string{
		"exam": "試験形式のルール",
	})

	out, err := c.Complete(context.Background(), "問題を作成してください", "exam", "")
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if out != "output" {
		t.Errorf("out = %q", out)
	}

	if len(provider.history) != 2 {
		t.Fatalf("history = %d messages, want system + user", len(provider.history))
	}
	sys := provider.history[0]
	if sys.Role != "system" {
		t.Errorf("first message role = %s", sys.Role)
	}
	if !strings.Contains(sys.Content, "LaTeX") {
		t.Error("system instruction lost the base rules")
	}
	if !strings.HasSuffix(sys.Content, "試験形式のルール") {
		t.Error("preset instruction not appended")
	}
	if provider.history[1].Content != "問題を作成してください" {
		t.Errorf("user prompt = %q", provider.history[1].Content)
	}
}

func TestCompleteUnknownPresetUsesBaseOnly(t *testing.T) {
	provider := &captureProvider{reply: "x"}
	c := NewCompleter(provider, map[string]string{"exam": "rules"})

	if _, err := c.Complete(context.Background(), "p", "no_such_preset", ""); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(provider.history[0].Content, "rules") {
		t.Error("unknown preset pulled in another preset's rules")
	}
}

func TestCompletePrependsTitle(t *testing.T) {
	provider := &captureProvider{reply: "x"}
	c := NewCompleter(provider, nil)

	if _, err := c.Complete(context.Background(), "本文", "exam", "二次関数の復習"); err != nil {
		t.Fatal(err)
	}
	want := "タイトル: 二次関数の復習\n\n本文"
	if provider.history[1].Content != want {
		t.Errorf("user prompt = %q, want %q", provider.history[1].Content, want)
	}
}

func TestCompleteSetsSamplingOptions(t *testing.T) {
	provider := &captureProvider{reply: "x"}
	c := NewCompleter(provider, nil)

	if _, err := c.Complete(context.Background(), "p", "", ""); err != nil {
		t.Fatal(err)
	}
	if provider.opts.Temperature != 0.3 {
		t.Errorf("Temperature = %v, want 0.3", provider.opts.Temperature)
	}
	if provider.opts.MaxTokens != 8192 {
		t.Errorf("MaxTokens = %d, want 8192", provider.opts.MaxTokens)
	}
}

func TestCompleteTrimsOutput(t *testing.T) {
	provider := &captureProvider{reply: "\n  \\documentclass{article}  \n"}
	c := NewCompleter(provider, nil)

	out, err := c.Complete(context.Background(), "p", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if out != `\documentclass{article}` {
		t.Errorf("out = %q", out)
	}
}
