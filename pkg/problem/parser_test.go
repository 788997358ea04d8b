package problem

import (
	"strings"
	"testing"
)

func TestParseFencedJSON(t *testing.T) {
	raw := "Here is the problem:\n```json\n{\"stem\": \"f(x)=x^2-4x の最小値を求めよ\", \"final_answer\": \"-4\"}\n```\nDone."

	p, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if p.Stem != "f(x)=x^2-4x の最小値を求めよ" {
		t.Errorf("Stem = %q", p.Stem)
	}
	if p.FinalAnswer != "-4" {
		t.Errorf("FinalAnswer = %q, want -4", p.FinalAnswer)
	}
}

func TestParseBareObjectInProse(t *testing.T) {
	raw := `The model says {"stem": "積分を計算せよ", "explanation": "部分積分を使う {hint}"} and that's all.`

	p, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if p.Stem != "積分を計算せよ" {
		t.Errorf("Stem = %q", p.Stem)
	}
	if p.Explanation != "部分積分を使う {hint}" {
		t.Errorf("Explanation = %q", p.Explanation)
	}
}

func TestParseProseFallback(t *testing.T) {
	raw := "  問1. 次の関数を微分せよ。 f(x) = sin(x)cos(x)  "

	p, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if p.Stem != strings.TrimSpace(raw) {
		t.Errorf("Stem = %q, want trimmed raw text", p.Stem)
	}
	if len(p.Checks) != MinChecks {
		t.Errorf("Checks = %d, want %d placeholders", len(p.Checks), MinChecks)
	}
}

func TestParseEmptyOutput(t *testing.T) {
	for _, raw := range []string{"", "   \n\t "} {
		_, err := Parse(raw)
		pe, ok := err.(*ParseError)
		if !ok {
			t.Fatalf("Parse(%q) error = %v, want *ParseError", raw, err)
		}
		if pe.Kind != KindMissingRequiredField {
			t.Errorf("Kind = %s, want %s", pe.Kind, KindMissingRequiredField)
		}
	}
}

func TestParseObjectWithoutStem(t *testing.T) {
	_, err := Parse("```json\n{\"explanation\": \"only explanation\"}\n```")
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if pe.Kind != KindMissingRequiredField {
		t.Errorf("Kind = %s, want %s", pe.Kind, KindMissingRequiredField)
	}
}

func TestParseNestedProblemObject(t *testing.T) {
	raw := `{"confidence": 0.9, "problem": {"stem": "nested stem", "final_answer": "12"}}`

	p, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if p.Stem != "nested stem" {
		t.Errorf("Stem = %q", p.Stem)
	}
	if p.Confidence == nil || *p.Confidence != 0.9 {
		t.Errorf("Confidence = %v, want 0.9", p.Confidence)
	}
}

func TestExtractObject(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{
			name: "plain object",
			in:   `{"a": 1}`,
			want: `{"a": 1}`,
			ok:   true,
		},
		{
			name: "object with prose around",
			in:   `before {"a": {"b": 2}} after`,
			want: `{"a": {"b": 2}}`,
			ok:   true,
		},
		{
			name: "braces inside strings ignored",
			in:   `{"text": "set {x} and }"} trailing`,
			want: `{"text": "set {x} and }"}`,
			ok:   true,
		},
		{
			name: "escaped quote inside string",
			in:   `{"text": "he said \"}\" loudly"}`,
			want: `{"text": "he said \"}\" loudly"}`,
			ok:   true,
		},
		{
			name: "unterminated object",
			in:   `{"a": 1`,
			ok:   false,
		},
		{
			name: "no object at all",
			in:   "just words",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, r, ok := ExtractObject(tt.in)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if got != tt.want {
				t.Errorf("object = %q, want %q", got, tt.want)
			}
			if tt.in[r[0]:r[1]] != got {
				t.Errorf("range [%d,%d) does not cover the object", r[0], r[1])
			}
		})
	}
}
