package tui

import (
	"strings"
	"testing"
)

func TestMarkdownRender_StripsTags(t *testing.T) {
	r := NewMarkdownRenderer(NewTheme())
	out := r.Render("**Enrollment** opens in _July_.", 0)
	if strings.Contains(out, "<") {
		t.Fatalf("html leaked into output: %q", out)
	}
	if !strings.Contains(out, "Enrollment") || !strings.Contains(out, "July") {
		t.Fatalf("content missing: %q", out)
	}
}

func TestMarkdownRender_ListItems(t *testing.T) {
	r := NewMarkdownRenderer(NewTheme())
	out := r.Render("- tuition\n- scholarships", 0)
	if !strings.Contains(out, "• tuition") || !strings.Contains(out, "• scholarships") {
		t.Fatalf("list bullets missing: %q", out)
	}
}

func TestMarkdownRender_CodeBlockSurvives(t *testing.T) {
	r := NewMarkdownRenderer(NewTheme())
	// Token text must survive highlighting, though ANSI escapes may be
	// interleaved between tokens.
	out := r.Render("```go\nfmt.Println(\"hi\")\n```", 0)
	if !strings.Contains(out, "Println") {
		t.Fatalf("code content missing: %q", out)
	}
}

func TestMarkdownRender_InvalidInputFallsThrough(t *testing.T) {
	r := NewMarkdownRenderer(NewTheme())
	in := "plain text, no markup"
	if out := r.Render(in, 0); !strings.Contains(out, "plain text") {
		t.Fatalf("got %q", out)
	}
}
