package problem

import "testing"

func TestNormalizeFinalAnswer(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"short value untouched", "-4", "-4"},
		{"short text untouched", "x = 2, y = 3", "x = 2, y = 3"},
		{"short sentence reduced to leading number", "-4 は最小値です", "-4"},
		{"sentence reduced to leading number", "-4 は最小値です。頂点は x=2 にあります", "-4"},
		{"decimal kept whole", "3.14159 が円周率の近似値として使われます", "3.14159"},
		{"long text without leading number kept", "答えは存在しないことを示すことができます", "答えは存在しないことを示すことができます"},
		{"surrounding space trimmed", "  42  ", "42"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeFinalAnswer(tt.in); got != tt.want {
				t.Errorf("NormalizeFinalAnswer(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeChecksPadding(t *testing.T) {
	raw := `{"stem": "s", "checks": [{"description": "式変形が正しい", "passed": true}]}`

	p, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(p.Checks) != MinChecks {
		t.Fatalf("Checks = %d, want %d", len(p.Checks), MinChecks)
	}
	if p.Checks[0].Description != "式変形が正しい" || !p.Checks[0].Passed {
		t.Errorf("original check not preserved first: %+v", p.Checks[0])
	}
	if p.Checks[1].Description != placeholderCheckText || p.Checks[1].Passed {
		t.Errorf("padding check = %+v, want unverified placeholder", p.Checks[1])
	}
}

func TestNormalizeChecksKeepsExtras(t *testing.T) {
	raw := `{"stem": "s", "checks": [
		{"description": "a", "passed": true},
		{"description": "b", "passed": false},
		{"description": "c", "passed": true}
	]}`

	p, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(p.Checks) != 3 {
		t.Fatalf("Checks = %d, want 3", len(p.Checks))
	}
	for i, want := range []string{"a", "b", "c"} {
		if p.Checks[i].Description != want {
			t.Errorf("Checks[%d] = %q, want %q", i, p.Checks[i].Description, want)
		}
	}
}

func TestNormalizeChecksCoercion(t *testing.T) {
	raw := `{"stem": "s", "checks": ["文字列だけのチェック", {"desc": "alt key", "ok": true}, 42]}`

	p, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(p.Checks) != MinChecks {
		t.Fatalf("Checks = %d, want %d", len(p.Checks), MinChecks)
	}
	if p.Checks[0].Description != "文字列だけのチェック" {
		t.Errorf("Checks[0] = %+v", p.Checks[0])
	}
	if p.Checks[1].Description != "alt key" || !p.Checks[1].Passed {
		t.Errorf("Checks[1] = %+v, want alt-key coercion", p.Checks[1])
	}
}

func TestDifficultyClamped(t *testing.T) {
	raw := `{"stem": "s", "difficulty": 1.7, "confidence": -0.2}`

	p, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if p.Difficulty == nil || *p.Difficulty != 1 {
		t.Errorf("Difficulty = %v, want clamped to 1", p.Difficulty)
	}
	if p.Confidence == nil || *p.Confidence != 0 {
		t.Errorf("Confidence = %v, want clamped to 0", p.Confidence)
	}
}

func TestNumericFinalAnswerCoerced(t *testing.T) {
	raw := `{"stem": "s", "final_answer": 12}`

	p, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if p.FinalAnswer != "12" {
		t.Errorf("FinalAnswer = %q, want \"12\"", p.FinalAnswer)
	}
}
