package form

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/a3tai/harvest-report/internal/harvest"
)

// DefaultDebounce is the quiescence window before a draft is saved
const DefaultDebounce = 500 * time.Millisecond

// Manager owns the form state. Changes go through Reduce; accepted changes
// schedule a debounced draft save once the saved draft has been loaded.
type Manager struct {
	drafts   DraftStore
	debounce *Debouncer

	mu       sync.Mutex
	state    State
	resets   uint64
	loadOnce sync.Once

	// saveMu orders draft writes against the delete done by Reset
	saveMu sync.Mutex
}

// NewManager creates a manager persisting drafts to drafts after window of
// inactivity.
func NewManager(drafts DraftStore, window time.Duration) *Manager {
	if window <= 0 {
		window = DefaultDebounce
	}
	return &Manager{
		drafts:   drafts,
		debounce: NewDebouncer(window),
	}
}

// Load restores the saved draft. Only the first call does any work.
func (m *Manager) Load(ctx context.Context) {
	m.loadOnce.Do(func() {
		draft, _ := m.drafts.LoadDraft(ctx)
		m.apply(DraftLoaded{Draft: draft})
	})
}

// Loaded reports whether the draft load has completed
func (m *Manager) Loaded() bool {
	return m.State().Loaded
}

// State returns a copy of the current state
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Change sets field to value. The field's error is cleared either way; it
// returns false when the value was rejected (malformed tonnage text).
func (m *Manager) Change(field Field, value string) bool {
	accepted := field != FieldTons || AcceptsTonsInput(value)

	m.mu.Lock()
	m.state = Reduce(m.state, FieldChanged{Field: field, Value: value})
	next, resets := m.state, m.resets
	m.mu.Unlock()

	if accepted && next.Loaded {
		m.scheduleSave(next.Draft(), resets)
	}
	return accepted
}

// Submit validates the form. On success it returns an immutable snapshot
// of the record; the draft is left in place until the caller resets.
func (m *Manager) Submit() (*harvest.Record, harvest.Result) {
	m.mu.Lock()
	defer m.mu.Unlock()

	res := harvest.Validate(m.state.Input())
	m.state = Reduce(m.state, Validated{Errors: res.Errors})
	if !res.IsValid {
		return nil, res
	}

	tons, _ := harvest.ParseTons(m.state.TonsInput)
	return &harvest.Record{
		FullName: strings.TrimSpace(m.state.Fields.FullName),
		Crop:     m.state.Fields.Crop,
		Tons:     tons,
	}, res
}

// Reset clears the form and deletes the saved draft
func (m *Manager) Reset(ctx context.Context) {
	m.debounce.Cancel()

	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.mu.Lock()
	m.state = Reduce(m.state, Reset{})
	m.resets++
	m.mu.Unlock()

	m.drafts.ClearDraft(ctx)
}

// Flush writes a pending draft save immediately
func (m *Manager) Flush() {
	m.debounce.Flush()
}

func (m *Manager) apply(a Action) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Reduce(m.state, a)
	return m.state
}

// scheduleSave queues a save of d. A save that starts after a Reset newer
// than resets is dropped.
func (m *Manager) scheduleSave(d harvest.Draft, resets uint64) {
	if d.IsEmpty() {
		m.debounce.Cancel()
		return
	}
	m.debounce.Schedule(func() {
		m.saveMu.Lock()
		defer m.saveMu.Unlock()

		m.mu.Lock()
		stale := m.resets != resets
		m.mu.Unlock()
		if stale {
			return
		}
		m.drafts.SaveDraft(context.Background(), d)
	})
}
