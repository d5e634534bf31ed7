package app

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestTruncateTitle(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		want  string
		width int
	}{
		{"short verbatim", "Enrollment dates", "Enrollment dates", -1},
		{"trimmed", "  padded  ", "padded", -1},
		{"exactly at cap", strings.Repeat("a", 48), strings.Repeat("a", 48), 48},
		{"over cap", strings.Repeat("a", 49), strings.Repeat("a", 47) + "…", 48},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := TruncateTitle(tc.in)
			if got != tc.want {
				t.Fatalf("TruncateTitle(%q) = %q, want %q", tc.in, got, tc.want)
			}
			if tc.width >= 0 && runewidth.StringWidth(got) != tc.width {
				t.Fatalf("visible width = %d, want %d", runewidth.StringWidth(got), tc.width)
			}
		})
	}
}

func TestTruncateTitle_WideRunes(t *testing.T) {
	// CJK runes are two cells wide; the cap is on cells, not runes.
	got := TruncateTitle(strings.Repeat("学", 30))
	if w := runewidth.StringWidth(got); w > 48 {
		t.Fatalf("visible width = %d, want <= 48", w)
	}
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("truncated title %q should end with the marker", got)
	}
}

func TestDerivedTitle_LongFirstMessage(t *testing.T) {
	conv := NewConversation()
	conv.Transcript = append(conv.Transcript, Turn{
		Role: RoleUser,
		Text: "Hello world this is a very long first message exceeding forty eight chars",
	})

	title := conv.DerivedTitle()
	if w := runewidth.StringWidth(title); w != 48 {
		t.Fatalf("derived title width = %d, want exactly 48", w)
	}
	if !strings.HasSuffix(title, "…") {
		t.Fatalf("derived title %q should end with the truncation marker", title)
	}
}

func TestDerivedTitle_FirstLineOnly(t *testing.T) {
	conv := NewConversation()
	conv.Transcript = append(conv.Transcript,
		Turn{Role: RoleAssistant, Text: "ignored assistant preamble"},
		Turn{Role: RoleUser, Text: "  When is enrollment?  \nsecond line ignored"},
	)
	if got := conv.DerivedTitle(); got != "When is enrollment?" {
		t.Fatalf("DerivedTitle() = %q", got)
	}
}

func TestDerivedTitle_NoUserTurn(t *testing.T) {
	conv := NewConversation()
	if got := conv.DerivedTitle(); got != DefaultTitle {
		t.Fatalf("DerivedTitle() = %q, want sentinel %q", got, DefaultTitle)
	}
	conv.Transcript = append(conv.Transcript, Turn{Role: RoleAssistant, Text: "hi"})
	if got := conv.DerivedTitle(); got != DefaultTitle {
		t.Fatalf("DerivedTitle() with only assistant turns = %q", got)
	}
}
