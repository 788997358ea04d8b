package service

import "testing"

func TestFirstLatexError(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want string
	}{
		{
			name: "bang line wins",
			out:  "This is XeTeX\n(./document.tex\n! Undefined control sequence.\nl.4 \\frak\n",
			want: "! Undefined control sequence.",
		},
		{
			name: "indented bang line",
			out:  "log noise\n  ! Missing $ inserted.\nmore noise",
			want: "! Missing $ inserted.",
		},
		{
			name: "no bang falls back to last line",
			out:  "first\nsecond\nprocess exited abnormally",
			want: "process exited abnormally",
		},
		{
			name: "empty output",
			out:  "",
			want: "unknown error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := firstLatexError(tt.out); got != tt.want {
				t.Errorf("firstLatexError() = %q, want %q", got, tt.want)
			}
		})
	}
}
