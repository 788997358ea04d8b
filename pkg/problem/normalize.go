package problem

import (
	"regexp"
	"strconv"
	"strings"
)

// Check is one verification item attached to a problem.
type Check struct {
	Description string `json:"description"`
	Passed      bool   `json:"passed"`
}

// NormalizedProblem is the structured record the store expects. Only the
// stem is mandatory; everything else survives as whatever the model gave us
// after repair.
type NormalizedProblem struct {
	Stem            string   `json:"stem"`
	StemFormatted   string   `json:"stem_formatted,omitempty"`
	SolutionOutline string   `json:"solution_outline,omitempty"`
	Explanation     string   `json:"explanation,omitempty"`
	AnswerBrief     string   `json:"answer_brief,omitempty"`
	FinalAnswer     string   `json:"final_answer,omitempty"`
	Checks          []Check  `json:"checks"`
	Difficulty      *float64 `json:"difficulty,omitempty"`
	Confidence      *float64 `json:"confidence,omitempty"`
}

// MinChecks is the smallest checks list the store accepts.
const MinChecks = 2

// placeholderCheckText matches the wording the rest of the toolchain shows
// for auto-filled, unverified checks.
const placeholderCheckText = "自動生成 — 未検証"

// finalAnswerMaxLen is the byte length above which a final answer is
// assumed to be an explanation rather than a terse value. Byte length on
// purpose: a handful of CJK characters already signals a sentence.
const finalAnswerMaxLen = 20

var leadingNumberPattern = regexp.MustCompile(`^[+-]?[0-9]+(?:\.[0-9]+)?`)

// normalizeObject turns a decoded JSON object into a validated record,
// repairing the deviations models commonly produce.
func normalizeObject(obj map[string]any) (*NormalizedProblem, error) {
	// Models sometimes nest everything under "problem".
	if nested, ok := obj["problem"].(map[string]any); ok {
		merged := make(map[string]any, len(obj)+len(nested))
		for k, v := range obj {
			merged[k] = v
		}
		for k, v := range nested {
			merged[k] = v
		}
		obj = merged
	}

	p := &NormalizedProblem{
		Stem:            str(obj, "stem"),
		StemFormatted:   firstStr(obj, "stem_formatted", "stemFormatted", "latex"),
		SolutionOutline: firstStr(obj, "solution_outline", "solutionOutline"),
		Explanation:     str(obj, "explanation"),
		AnswerBrief:     firstStr(obj, "answer_brief", "answerBrief"),
		FinalAnswer:     NormalizeFinalAnswer(anyToString(firstVal(obj, "final_answer", "finalAnswer"))),
		Checks:          normalizeChecks(firstVal(obj, "checks")),
		Difficulty:      unitFloat(firstVal(obj, "difficulty")),
		Confidence:      unitFloat(firstVal(obj, "confidence")),
	}

	if strings.TrimSpace(p.Stem) == "" {
		return nil, &ParseError{Kind: KindMissingRequiredField, Message: "record has no stem"}
	}
	p.Stem = strings.TrimSpace(p.Stem)
	return p, nil
}

// NormalizeFinalAnswer reduces a verbose final answer to its leading numeric
// token. Answers over finalAnswerMaxLen are almost always a sentence
// ("-4 は最小値です"); when such a value starts with a signed number, only
// that number is kept. Short values pass through untouched.
func NormalizeFinalAnswer(v string) string {
	v = strings.TrimSpace(v)
	if len(v) <= finalAnswerMaxLen {
		return v
	}
	if tok := leadingNumberPattern.FindString(v); tok != "" {
		return tok
	}
	return v
}

// normalizeChecks coerces whatever the model returned into an ordered list
// of at least MinChecks entries. Original entries are preserved in order;
// unverified placeholders pad the remainder.
func normalizeChecks(v any) []Check {
	list, ok := v.([]any)
	if !ok {
		return placeholderChecks(nil)
	}

	var checks []Check
	for i, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			// A bare string is still a usable description.
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				checks = append(checks, Check{Description: s})
			}
			continue
		}
		c := Check{
			Description: firstStr(m, "description", "desc"),
			Passed:      boolVal(firstVal(m, "passed", "ok")),
		}
		if c.Description == "" {
			c.Description = "check " + strconv.Itoa(i+1)
		}
		checks = append(checks, c)
	}
	return placeholderChecks(checks)
}

func placeholderChecks(checks []Check) []Check {
	for len(checks) < MinChecks {
		checks = append(checks, Check{Description: placeholderCheckText, Passed: false})
	}
	return checks
}

func str(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

func firstStr(obj map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := obj[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func firstVal(obj map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := obj[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func anyToString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func boolVal(v any) bool {
	b, _ := v.(bool)
	return b
}

// unitFloat accepts a number and clamps it into [0,1]; anything else is
// treated as absent.
func unitFloat(v any) *float64 {
	f, ok := v.(float64)
	if !ok {
		return nil
	}
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return &f
}
