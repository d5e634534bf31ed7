package app

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// ConversationArchive persists each user's conversation list in a local
// BadgerDB so the sidebar survives a restart. Writes are best-effort: the
// session core never waits on or fails because of the archive.
type ConversationArchive struct {
	db *badger.DB
}

func OpenConversationArchive(dir string) (*ConversationArchive, error) {
	opts := badger.DefaultOptions(dir).
		WithLoggingLevel(badger.ERROR)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open conversation archive: %w", err)
	}
	return &ConversationArchive{db: db}, nil
}

func (a *ConversationArchive) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func archiveKey(owner string) []byte {
	return []byte("conversations/" + owner)
}

// Save overwrites the owner's archived conversation list.
func (a *ConversationArchive) Save(owner string, conversations []*Conversation) error {
	payload, err := json.Marshal(conversations)
	if err != nil {
		return err
	}
	return a.db.Update(func(txn *badger.Txn) error {
		return txn.Set(archiveKey(owner), payload)
	})
}

// Load returns the owner's archived conversations, or nil when the owner
// has none (a fresh account, or a wiped archive).
func (a *ConversationArchive) Load(owner string) ([]*Conversation, error) {
	var conversations []*Conversation
	err := a.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(archiveKey(owner))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &conversations)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("load archive for %s: %w", owner, err)
	}
	return conversations, nil
}

// Drop removes the owner's archive. Called when the account is deleted.
func (a *ConversationArchive) Drop(owner string) error {
	return a.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(archiveKey(owner))
	})
}
