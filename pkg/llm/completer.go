package llm

import (
	"context"
	"strings"
)

// baseSystemInstruction is the shared contract for LaTeX output. Preset
// specific rules are appended below it.
const baseSystemInstruction = `あなたは数学・情報科学の問題を LaTeX 形式で出力するアシスタントです。
以下のルールを厳守してください:
1. 出力は \documentclass から \end{document} までの完全な LaTeX 文書のみ。
2. 余分な説明・コメント・マークダウン（` + "```" + ` 等）は一切出力しない。
3. 日本語を含む場合は \usepackage{iftex} でエンジンを判定し、
   PDFTeX なら CJKutf8、LuaTeX なら luatexja、XeTeX なら xeCJK を使用すること。
4. 数式は amsmath, amssymb, mathtools を使用。インライン数式は $...$、
   ディスプレイ数式は \[...\] を使用。$$ ... $$ および \(...\) は禁止。
5. 数学の計算は必ず自分で検算してから出力すること。計算ミスは許されない。
6. tcolorbox, mdframed, fbox 等のボックス環境は使用しない。
7. 指定された出力形式の構造ルールを厳守すること（形式固有のルールは下記参照）。`

// Completer adapts an LLMProvider to the generation pipeline. It owns the
// system instruction assembly so providers stay format-agnostic.
type Completer struct {
	provider    LLMProvider
	presets     map[string]string // preset id -> extra instruction
	temperature float64
	maxTokens   int
}

func NewCompleter(provider LLMProvider, presets map[string]string) *Completer {
	if presets == nil {
		presets = map[string]string{}
	}
	return &Completer{
		provider:    provider,
		presets:     presets,
		temperature: 0.3,
		maxTokens:   8192,
	}
}

func (c *Completer) Complete(ctx context.Context, prompt string, preset string, title string) (string, error) {
	instruction := baseSystemInstruction
	if extra, ok := c.presets[preset]; ok && extra != "" {
		instruction += "\n\n" + extra
	}

	userPrompt := prompt
	if title != "" {
		userPrompt = "タイトル: " + title + "\n\n" + prompt
	}

	out, err := c.provider.Chat(ctx, []Message{
		{Role: "system", Content: instruction},
		{Role: "user", Content: userPrompt},
	},
		WithTemperature(c.temperature),
		WithMaxTokens(c.maxTokens),
	)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
