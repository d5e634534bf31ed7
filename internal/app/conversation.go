package app

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-runewidth"
)

// DefaultTitle is the placeholder used until real content or an explicit
// rename replaces it.
const DefaultTitle = "New chat"

// titleWidth is the cap on visible title width, truncation marker included.
const titleWidth = 48

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one message of a transcript. Turns are append-only; they are
// never edited or removed individually.
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Conversation is one named, ordered transcript. The ID is assigned at
// creation and never changes.
type Conversation struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Transcript []Turn    `json:"transcript"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewConversation() *Conversation {
	now := time.Now()
	return &Conversation{
		ID:        uuid.NewString(),
		Title:     DefaultTitle,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (c *Conversation) touch() {
	c.UpdatedAt = time.Now()
}

// FirstUserLine returns the first line of the first user turn, trimmed, or
// "" when no user turn exists yet.
func (c *Conversation) FirstUserLine() string {
	for _, turn := range c.Transcript {
		if turn.Role != RoleUser {
			continue
		}
		text := strings.TrimSpace(turn.Text)
		if i := strings.IndexByte(text, '\n'); i >= 0 {
			text = strings.TrimSpace(text[:i])
		}
		return text
	}
	return ""
}

// DerivedTitle is the auto title for a conversation: the first user line
// capped at 48 visible characters, or the sentinel default when the
// conversation has no user turn.
func (c *Conversation) DerivedTitle() string {
	line := c.FirstUserLine()
	if line == "" {
		return DefaultTitle
	}
	return TruncateTitle(line)
}

// TruncateTitle caps a title at 48 visible characters. When truncation
// happens the result ends in a single-width ellipsis and is still exactly
// 48 cells wide. Width is measured in terminal cells, not bytes, so CJK
// titles truncate correctly.
func TruncateTitle(title string) string {
	title = strings.TrimSpace(title)
	if runewidth.StringWidth(title) <= titleWidth {
		return title
	}
	return runewidth.Truncate(title, titleWidth, "…")
}
