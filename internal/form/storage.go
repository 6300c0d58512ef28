package form

import (
	"context"
	"encoding/json"
	"log"

	"github.com/a3tai/harvest-report/internal/harvest"
	"github.com/a3tai/harvest-report/internal/store"
)

// DraftStore persists the in-progress form between sessions
type DraftStore interface {
	SaveDraft(ctx context.Context, d harvest.Draft)
	LoadDraft(ctx context.Context) (*harvest.Draft, bool)
	ClearDraft(ctx context.Context)
}

// DraftStorage keeps the draft as JSON under a single key. Storage errors
// are logged and otherwise ignored: a draft that cannot be read is the same
// as no draft.
type DraftStorage struct {
	kv store.KV
}

// NewDraftStorage creates a DraftStorage on top of kv
func NewDraftStorage(kv store.KV) *DraftStorage {
	return &DraftStorage{kv: kv}
}

// SaveDraft writes d to the store
func (s *DraftStorage) SaveDraft(ctx context.Context, d harvest.Draft) {
	data, err := json.Marshal(d)
	if err != nil {
		log.Printf("Error encoding draft: %v", err)
		return
	}
	if err := s.kv.Set(ctx, store.KeyDraft, string(data)); err != nil {
		log.Printf("Error saving draft: %v", err)
	}
}

// LoadDraft returns the saved draft, if any
func (s *DraftStorage) LoadDraft(ctx context.Context) (*harvest.Draft, bool) {
	raw, ok, err := s.kv.Get(ctx, store.KeyDraft)
	if err != nil {
		log.Printf("Error loading draft: %v", err)
		return nil, false
	}
	if !ok || raw == "" {
		return nil, false
	}

	var d harvest.Draft
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		log.Printf("Error decoding draft: %v", err)
		return nil, false
	}
	return &d, true
}

// ClearDraft removes the saved draft
func (s *DraftStorage) ClearDraft(ctx context.Context) {
	if err := s.kv.Delete(ctx, store.KeyDraft); err != nil {
		log.Printf("Error clearing draft: %v", err)
	}
}
