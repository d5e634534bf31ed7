package app

import "fmt"

// Session holds one user's conversation collection plus the view state the
// chat screen renders: the active conversation id, a detached copy of its
// transcript, and the ephemeral UI modes (open context menu, rename in
// progress, pending account-delete confirmation).
//
// All methods are synchronous and are driven by one discrete UI event at a
// time. They mutate in-memory structures only and cannot fail; calling one
// with an id that is not in the collection is a contract violation and
// panics.
//
// The working transcript is an eager snapshot: Activate copies the owning
// conversation's transcript into it, AppendTurn writes it back. The view
// layer renders the snapshot, never the collection directly.
type Session struct {
	conversations []*Conversation
	activeID      string
	working       []Turn

	menuID                  string
	renamingID              string
	renameDraft             string
	confirmingAccountDelete bool

	// onChange, when set, observes the collection after every mutation.
	// It must not mutate the conversations it is handed.
	onChange func([]*Conversation)
}

// NewSession returns a session holding a single fresh active conversation.
// The collection is never empty, not even at birth.
func NewSession() *Session {
	s := &Session{}
	s.NewConversation()
	return s
}

// SetOnChange installs the post-mutation observer (the conversation
// archive, in practice).
func (s *Session) SetOnChange(fn func([]*Conversation)) {
	s.onChange = fn
}

// Restore replaces the collection with previously archived conversations.
// The last one becomes active. An empty argument is a no-op.
func (s *Session) Restore(conversations []*Conversation) {
	if len(conversations) == 0 {
		return
	}
	s.conversations = conversations
	s.activate(conversations[len(conversations)-1].ID)
}

// NewConversation appends an empty "New chat" conversation, makes it active
// and clears the working transcript.
func (s *Session) NewConversation() *Conversation {
	conv := NewConversation()
	s.conversations = append(s.conversations, conv)
	s.activeID = conv.ID
	s.working = nil
	s.changed()
	return conv
}

// Activate switches the displayed conversation. The working transcript
// becomes a copy of the target's transcript; an open context menu closes.
func (s *Session) Activate(id string) {
	s.mustIndex(id)
	s.activate(id)
	s.menuID = ""
}

func (s *Session) activate(id string) {
	s.activeID = id
	src := s.conversations[s.mustIndex(id)].Transcript
	s.working = append([]Turn(nil), src...)
}

// AppendTurn appends to the working transcript and synchronizes it back
// onto the active conversation. If the conversation still carries the
// sentinel title, a title is derived from its first user turn.
func (s *Session) AppendTurn(turn Turn) {
	s.working = append(s.working, turn)
	s.syncWorking()
}

// AppendTurnTo records a turn in a specific conversation, which need not be
// the active one. Answers arrive asynchronously, so by the time one lands
// the user may have switched away or deleted the conversation that asked.
// When the target is active this is AppendTurn; when it is another stored
// conversation the turn is written to its transcript directly; when the
// conversation is gone the turn is dropped and false is returned.
func (s *Session) AppendTurnTo(id string, turn Turn) bool {
	if id == s.activeID {
		s.AppendTurn(turn)
		return true
	}
	for _, conv := range s.conversations {
		if conv.ID != id {
			continue
		}
		conv.Transcript = append(conv.Transcript, turn)
		conv.touch()
		if conv.Title == DefaultTitle {
			conv.Title = conv.DerivedTitle()
		}
		s.changed()
		return true
	}
	return false
}

// syncWorking writes the working transcript onto the active conversation.
func (s *Session) syncWorking() {
	conv := s.conversations[s.mustIndex(s.activeID)]
	conv.Transcript = append([]Turn(nil), s.working...)
	conv.touch()
	if conv.Title == DefaultTitle {
		conv.Title = conv.DerivedTitle()
	}
	s.changed()
}

// Rename sets a conversation's title. An empty (after trimming) title falls
// back to the auto-derived one, or the sentinel default when the
// conversation has no user turn yet. Rename mode is cleared either way.
func (s *Session) Rename(id, title string) {
	conv := s.conversations[s.mustIndex(id)]
	title = TruncateTitle(title)
	if title == "" {
		title = conv.DerivedTitle()
	}
	conv.Title = title
	conv.touch()
	s.renamingID = ""
	s.renameDraft = ""
	s.changed()
}

// Delete removes a conversation. The collection never ends up empty: when
// the last conversation is deleted a fresh one is created and activated.
// When the deleted conversation was active, the last remaining conversation
// in collection order becomes active. That tie-break is "last created",
// not "last viewed", mirroring the product's observed behavior.
func (s *Session) Delete(id string) {
	i := s.mustIndex(id)
	s.conversations = append(s.conversations[:i], s.conversations[i+1:]...)
	if s.menuID == id {
		s.menuID = ""
	}
	if s.renamingID == id {
		s.renamingID = ""
		s.renameDraft = ""
	}
	if len(s.conversations) == 0 {
		s.NewConversation()
		return
	}
	if s.activeID == id {
		s.activate(s.conversations[len(s.conversations)-1].ID)
	}
	s.changed()
}

// ToggleContextMenu opens the row menu for a conversation, or closes it if
// it is already open. At most one menu is open at a time.
func (s *Session) ToggleContextMenu(id string) {
	s.mustIndex(id)
	if s.menuID == id {
		s.menuID = ""
	} else {
		s.menuID = id
	}
}

// StartRename moves a row from the context menu into rename mode, seeding
// the draft with the current title.
func (s *Session) StartRename(id string) {
	conv := s.conversations[s.mustIndex(id)]
	s.renamingID = id
	s.renameDraft = conv.Title
	s.menuID = ""
}

// CancelRename leaves rename mode without touching the title.
func (s *Session) CancelRename() {
	s.renamingID = ""
	s.renameDraft = ""
}

// RequestAccountDelete and ResolveAccountDelete drive the only confirmed
// deletion in the application. Conversation deletes are immediate.
func (s *Session) RequestAccountDelete() { s.confirmingAccountDelete = true }
func (s *Session) ResolveAccountDelete() { s.confirmingAccountDelete = false }

func (s *Session) ConfirmingAccountDelete() bool { return s.confirmingAccountDelete }

// Conversations returns the collection in creation order.
func (s *Session) Conversations() []*Conversation {
	return s.conversations
}

// Active returns the currently displayed conversation.
func (s *Session) Active() *Conversation {
	return s.conversations[s.mustIndex(s.activeID)]
}

func (s *Session) ActiveID() string { return s.activeID }

// WorkingTranscript is the detached snapshot the view renders.
func (s *Session) WorkingTranscript() []Turn { return s.working }

func (s *Session) MenuID() string      { return s.menuID }
func (s *Session) RenamingID() string  { return s.renamingID }
func (s *Session) RenameDraft() string { return s.renameDraft }

func (s *Session) mustIndex(id string) int {
	for i, conv := range s.conversations {
		if conv.ID == id {
			return i
		}
	}
	panic(fmt.Errorf("%w: %s", ErrUnknownConversation, id))
}

func (s *Session) changed() {
	if s.onChange != nil {
		s.onChange(s.conversations)
	}
}
