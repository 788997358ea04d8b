package compile

import "testing"

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "no fence passes through",
			in:   `\documentclass{article}`,
			want: `\documentclass{article}`,
		},
		{
			name: "latex fence stripped",
			in:   "```latex\n\\documentclass{article}\n\\begin{document}\n\\end{document}\n```",
			want: "\\documentclass{article}\n\\begin{document}\n\\end{document}",
		},
		{
			name: "untagged fence stripped",
			in:   "```\ncontent\n```",
			want: "content",
		},
		{
			name: "surrounding whitespace trimmed",
			in:   "  \n```latex\nbody\n```\n  ",
			want: "body",
		},
		{
			name: "unterminated fence keeps body",
			in:   "```latex\nbody only",
			want: "body only",
		},
		{
			name: "single line stays",
			in:   "```",
			want: "```",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripFences(tt.in); got != tt.want {
				t.Errorf("StripFences() = %q, want %q", got, tt.want)
			}
		})
	}
}
