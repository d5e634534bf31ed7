package app

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	tmp := t.TempDir()
	cfg := DefaultConfig()
	cfg.UsersFile = filepath.Join(tmp, "users_db.json")
	cfg.ArchiveDir = filepath.Join(tmp, "archive")
	cfg.IndexDir = filepath.Join(tmp, "chroma_db")
	return cfg
}

func TestNewApplication_MockMode(t *testing.T) {
	a, err := NewApplication(context.Background(), testConfig(t), true)
	if err != nil {
		t.Fatalf("NewApplication = %v", err)
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	answer, err := a.Ask(ctx, "when is enrollment?")
	if err != nil {
		t.Fatalf("Ask = %v", err)
	}
	if !strings.Contains(answer, "when is enrollment?") {
		t.Fatalf("mock answer should echo the query, got %q", answer)
	}
}

func TestNewApplication_MissingAPIKeyIsFatal(t *testing.T) {
	cfg := testConfig(t)
	cfg.GeminiAPIKey = ""
	if _, err := NewApplication(context.Background(), cfg, false); err == nil {
		t.Fatal("missing API key outside mock mode must fail startup")
	}
}

func TestAsk_NotReadyNeverCallsResponder(t *testing.T) {
	a, err := NewApplication(context.Background(), testConfig(t), true)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	retriever := &MockRetriever{Err: ErrNotReady}
	responder := &MockResponder{}
	a.Retriever = retriever
	a.Responder = responder

	session := NewSession()
	turnsBefore := len(session.WorkingTranscript())

	_, err = a.Ask(context.Background(), "anything")
	if !errors.Is(err, ErrNotReady) {
		t.Fatalf("Ask = %v, want ErrNotReady", err)
	}
	if responder.Calls != 0 {
		t.Fatalf("responder called %d times, want 0", responder.Calls)
	}
	if len(session.WorkingTranscript()) != turnsBefore {
		t.Fatal("session turn count changed")
	}
}

func TestAsk_NilRetrieverShortCircuits(t *testing.T) {
	a, err := NewApplication(context.Background(), testConfig(t), true)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	responder := &MockResponder{}
	a.Retriever = nil
	a.Responder = responder

	if _, err := a.Ask(context.Background(), "q"); !errors.Is(err, ErrNotReady) {
		t.Fatalf("Ask = %v, want ErrNotReady", err)
	}
	if responder.Calls != 0 {
		t.Fatalf("responder called %d times, want 0", responder.Calls)
	}
}

func TestAsk_GenerationErrorPropagates(t *testing.T) {
	a, err := NewApplication(context.Background(), testConfig(t), true)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	a.Responder = &MockResponder{Err: &GenerationError{Err: errors.New("upstream down")}}

	_, err = a.Ask(context.Background(), "q")
	var gerr *GenerationError
	if !errors.As(err, &gerr) {
		t.Fatalf("Ask = %v, want *GenerationError", err)
	}
}

func TestSessionFor_RestoresAndSyncsArchive(t *testing.T) {
	cfg := testConfig(t)
	a, err := NewApplication(context.Background(), cfg, true)
	if err != nil {
		t.Fatal(err)
	}
	if a.Archive == nil {
		t.Fatal("archive should open in a writable temp dir")
	}

	session := a.SessionFor("bob")
	session.AppendTurn(Turn{Role: RoleUser, Text: "remember me"})
	wantID := session.ActiveID()
	if err := a.Close(); err != nil {
		t.Fatal(err)
	}

	// A second process start sees the archived conversation.
	b, err := NewApplication(context.Background(), cfg, true)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	restored := b.SessionFor("bob")
	if restored.ActiveID() != wantID {
		t.Fatalf("restored active = %s, want %s", restored.ActiveID(), wantID)
	}
	if len(restored.WorkingTranscript()) != 1 {
		t.Fatalf("restored transcript len = %d, want 1", len(restored.WorkingTranscript()))
	}
}

func TestDeleteAccount_RemovesUserAndArchive(t *testing.T) {
	cfg := testConfig(t)
	a, err := NewApplication(context.Background(), cfg, true)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	if err := a.Users.Create("bob", "secret1", "secret1"); err != nil {
		t.Fatal(err)
	}
	session := a.SessionFor("bob")
	session.AppendTurn(Turn{Role: RoleUser, Text: "hello"})

	if !a.DeleteAccount("bob") {
		t.Fatal("DeleteAccount = false")
	}
	if a.Users.Verify("bob", "secret1") {
		t.Fatal("bob still verifies after account deletion")
	}
	if convs, err := a.Archive.Load("bob"); err != nil || convs != nil {
		t.Fatalf("archive not dropped: convs=%v err=%v", convs, err)
	}
}
