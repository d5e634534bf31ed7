package app

import (
	"path/filepath"
	"testing"
)

func testArchive(t *testing.T) *ConversationArchive {
	t.Helper()
	a, err := OpenConversationArchive(filepath.Join(t.TempDir(), "archive"))
	if err != nil {
		t.Fatalf("OpenConversationArchive = %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestArchive_SaveAndLoad(t *testing.T) {
	a := testArchive(t)

	conv := NewConversation()
	conv.Title = "Fees"
	conv.Transcript = []Turn{
		{Role: RoleUser, Text: "How much is tuition?"},
		{Role: RoleAssistant, Text: "It depends on the program."},
	}
	if err := a.Save("bob", []*Conversation{conv}); err != nil {
		t.Fatalf("Save = %v", err)
	}

	loaded, err := a.Load("bob")
	if err != nil {
		t.Fatalf("Load = %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("got %d conversations, want 1", len(loaded))
	}
	if loaded[0].ID != conv.ID || loaded[0].Title != "Fees" {
		t.Fatalf("loaded = %+v", loaded[0])
	}
	if len(loaded[0].Transcript) != 2 {
		t.Fatalf("transcript len = %d, want 2", len(loaded[0].Transcript))
	}
}

func TestArchive_LoadUnknownOwnerIsNil(t *testing.T) {
	a := testArchive(t)
	loaded, err := a.Load("nobody")
	if err != nil {
		t.Fatalf("Load = %v", err)
	}
	if loaded != nil {
		t.Fatalf("loaded = %v, want nil", loaded)
	}
}

func TestArchive_OwnersAreIsolated(t *testing.T) {
	a := testArchive(t)
	if err := a.Save("alice", []*Conversation{NewConversation()}); err != nil {
		t.Fatal(err)
	}
	if loaded, _ := a.Load("bob"); loaded != nil {
		t.Fatal("bob sees alice's conversations")
	}
}

func TestArchive_Drop(t *testing.T) {
	a := testArchive(t)
	if err := a.Save("bob", []*Conversation{NewConversation()}); err != nil {
		t.Fatal(err)
	}
	if err := a.Drop("bob"); err != nil {
		t.Fatalf("Drop = %v", err)
	}
	if loaded, _ := a.Load("bob"); loaded != nil {
		t.Fatal("archive survived Drop")
	}
}
