package problem

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseErrorKind classifies permanent parse failures.
type ParseErrorKind string

const (
	// KindMissingRequiredField means the parsed record has no usable stem.
	KindMissingRequiredField ParseErrorKind = "MISSING_REQUIRED_FIELD"
)

// ParseError is returned when model output cannot become a valid record.
type ParseError struct {
	Kind    ParseErrorKind
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse: %s: %s", e.Kind, e.Message)
}

// Parse converts a raw model output blob into a NormalizedProblem.
//
// The blob is rarely clean JSON: models wrap it in markdown fences, prepend
// prose, or return prose only. Parse tries, in order, a fenced code block,
// the first balanced {...} object found anywhere in the text, and finally a
// prose fallback whose stem is the raw text itself. A prose fallback is a
// valid outcome, since a human reviewer can still use the text. Parse only
// fails when even the fallback would lack a non-empty stem.
func Parse(raw string) (*NormalizedProblem, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, &ParseError{Kind: KindMissingRequiredField, Message: "empty model output"}
	}

	if obj, ok := parseCandidate(fencedBlocks(trimmed)); ok {
		return normalizeObject(obj)
	}

	if body, _, ok := ExtractObject(trimmed); ok {
		var obj map[string]any
		if err := json.Unmarshal([]byte(body), &obj); err == nil {
			return normalizeObject(obj)
		}
	}

	// Plain prose fallback.
	return &NormalizedProblem{
		Stem:          trimmed,
		StemFormatted: trimmed,
		Checks:        placeholderChecks(nil),
	}, nil
}

// fencedBlocks returns the interiors of all triple-backtick fenced regions,
// optionally tagged (```json and friends).
func fencedBlocks(s string) []string {
	var blocks []string
	rest := s
	for {
		start := strings.Index(rest, "```")
		if start < 0 {
			return blocks
		}
		rest = rest[start+3:]
		// Drop the language tag on the opening line, if any.
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			tag := strings.TrimSpace(rest[:nl])
			if len(tag) <= 16 && !strings.ContainsAny(tag, "{}") {
				rest = rest[nl+1:]
			}
		}
		end := strings.Index(rest, "```")
		if end < 0 {
			return blocks
		}
		blocks = append(blocks, strings.TrimSpace(rest[:end]))
		rest = rest[end+3:]
	}
}

func parseCandidate(candidates []string) (map[string]any, bool) {
	for _, c := range candidates {
		var obj map[string]any
		if err := json.Unmarshal([]byte(c), &obj); err == nil {
			return obj, true
		}
		// The fence may still carry prose around the object.
		if body, _, ok := ExtractObject(c); ok {
			if err := json.Unmarshal([]byte(body), &obj); err == nil {
				return obj, true
			}
		}
	}
	return nil, false
}

// ExtractObject finds the first top-level {...} object in s by brace-depth
// counting and returns the substring together with its [start, end) range.
// Braces inside JSON strings are skipped, so nested objects and brace
// characters in text do not break the match.
func ExtractObject(s string) (string, [2]int, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", [2]int{}, false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], [2]int{start, i + 1}, true
			}
		}
	}
	return "", [2]int{}, false
}
