package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/genai"
)

// Application owns the long-lived collaborators: config, logger, the user
// store, the retrieval capability and the responder. One Application is
// shared by every screen of the TUI.
type Application struct {
	Config    Config
	Logger    *Logger
	Users     *UserStore
	Knowledge *KnowledgeBase
	Retriever Retriever
	Responder Responder
	Archive   *ConversationArchive
}

// NewApplication wires the process-lifetime collaborators. In mock mode no
// network clients are constructed and canned retrieval/generation is used.
// A missing API key outside mock mode is a configuration error: the caller
// halts startup with the message.
func NewApplication(ctx context.Context, cfg Config, mockMode bool) (*Application, error) {
	logger := NewLogger(DefaultLogWriter())

	a := &Application{
		Config: cfg,
		Logger: logger,
		Users:  NewUserStore(cfg.UsersFile),
	}

	if archive, err := OpenConversationArchive(cfg.ArchiveDir); err != nil {
		// The archive is a convenience; the session works without it.
		logger.Warn("conversation archive unavailable", map[string]interface{}{
			"dir": cfg.ArchiveDir, "error": err.Error(),
		})
	} else {
		a.Archive = archive
	}

	if mockMode {
		a.Retriever = &MockRetriever{}
		a.Responder = &MockResponder{}
		return a, nil
	}

	if cfg.GeminiAPIKey == "" {
		return nil, errors.New("GEMINI_API_KEY not found; set it in the environment or config file")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.GeminiAPIKey})
	if err != nil {
		return nil, fmt.Errorf("create GenAI client: %w", err)
	}

	kb, err := OpenKnowledgeBase(cfg.IndexDir, GeminiEmbedder(client, cfg.EmbeddingModel), logger)
	if err != nil {
		return nil, err
	}
	if !kb.Ready() {
		// First start on this machine: build the index from the corpus.
		// An absent corpus is not fatal; queries stay disabled until
		// `mapa ingest` succeeds.
		if _, err := kb.Ingest(ctx, cfg.CorpusPaths); err != nil {
			logger.Warn("knowledge base not ready", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	a.Knowledge = kb
	a.Retriever = kb
	a.Responder = NewGeminiResponder(client, cfg.AnswerModel, time.Duration(cfg.AnswerTimeout)*time.Second)
	return a, nil
}

// Ready reports whether query submission is allowed at all.
func (a *Application) Ready() bool {
	if a.Knowledge != nil {
		return a.Knowledge.Ready()
	}
	return a.Retriever != nil
}

// Ask runs the retrieve-then-generate pipeline for one query. With no
// retrieval capability it short-circuits with ErrNotReady and the responder
// is never contacted.
func (a *Application) Ask(ctx context.Context, query string) (string, error) {
	if !a.Ready() {
		return "", ErrNotReady
	}
	passages, err := a.Retriever.Retrieve(ctx, query, a.Config.RetrievalDepth)
	if err != nil {
		return "", err
	}
	answer, err := a.Responder.Generate(ctx, query, passages)
	if err != nil {
		a.Logger.Error("generation failed", map[string]interface{}{"error": err.Error()})
		return "", err
	}
	return answer, nil
}

// SessionFor builds the per-user session, restoring archived conversations
// when there are any and keeping the archive in sync afterwards.
func (a *Application) SessionFor(username string) *Session {
	session := NewSession()
	if a.Archive == nil {
		return session
	}
	if restored, err := a.Archive.Load(username); err != nil {
		a.Logger.Warn("archive load failed", map[string]interface{}{
			"user": username, "error": err.Error(),
		})
	} else {
		session.Restore(restored)
	}
	session.SetOnChange(func(conversations []*Conversation) {
		if err := a.Archive.Save(username, conversations); err != nil {
			a.Logger.Warn("archive save failed", map[string]interface{}{
				"user": username, "error": err.Error(),
			})
		}
	})
	return session
}

// DeleteAccount removes the user from the credential table and drops their
// archived conversations. Returns false when the account could not be
// removed; the archive cleanup is best-effort.
func (a *Application) DeleteAccount(username string) bool {
	if !a.Users.Delete(username) {
		return false
	}
	if a.Archive != nil {
		if err := a.Archive.Drop(username); err != nil {
			a.Logger.Warn("archive drop failed", map[string]interface{}{
				"user": username, "error": err.Error(),
			})
		}
	}
	return true
}

// Close releases process-lifetime resources.
func (a *Application) Close() error {
	if a.Archive != nil {
		return a.Archive.Close()
	}
	return nil
}
