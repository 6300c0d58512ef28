package form

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/harvest-report/internal/harvest"
)

type recordingDrafts struct {
	mu      sync.Mutex
	saved   []harvest.Draft
	initial *harvest.Draft
	cleared int
}

func (r *recordingDrafts) SaveDraft(_ context.Context, d harvest.Draft) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, d)
}

func (r *recordingDrafts) LoadDraft(_ context.Context) (*harvest.Draft, bool) {
	return r.initial, r.initial != nil
}

func (r *recordingDrafts) ClearDraft(_ context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cleared++
}

func (r *recordingDrafts) saves() []harvest.Draft {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]harvest.Draft(nil), r.saved...)
}

const testWindow = 40 * time.Millisecond

func newLoadedManager(t *testing.T, drafts *recordingDrafts) *Manager {
	t.Helper()
	m := NewManager(drafts, testWindow)
	m.Load(context.Background())
	require.True(t, m.Loaded())
	return m
}

func TestManager_DebouncedSave(t *testing.T) {
	drafts := &recordingDrafts{}
	m := newLoadedManager(t, drafts)

	m.Change(FieldFullName, "J")
	m.Change(FieldFullName, "Ju")
	m.Change(FieldFullName, "Juan")

	assert.Eventually(t, func() bool { return len(drafts.saves()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(2 * testWindow)

	saves := drafts.saves()
	require.Len(t, saves, 1)
	assert.Equal(t, harvest.Draft{FullName: "Juan"}, saves[0])
}

func TestManager_EmptyFormNotPersisted(t *testing.T) {
	drafts := &recordingDrafts{}
	m := newLoadedManager(t, drafts)

	m.Change(FieldFullName, "J")
	m.Change(FieldFullName, "")

	time.Sleep(3 * testWindow)
	assert.Empty(t, drafts.saves())
}

func TestManager_NoSaveBeforeLoad(t *testing.T) {
	drafts := &recordingDrafts{}
	m := NewManager(drafts, testWindow)

	m.Change(FieldFullName, "Juan")
	time.Sleep(3 * testWindow)
	assert.Empty(t, drafts.saves())
	assert.False(t, m.Loaded())
}

func TestManager_LoadIsOneShot(t *testing.T) {
	drafts := &recordingDrafts{initial: &harvest.Draft{FullName: "Juan Perez", Crop: harvest.CropMaiz, Tons: 3}}
	m := NewManager(drafts, testWindow)
	m.Load(context.Background())

	m.Change(FieldFullName, "Pedro")
	m.Load(context.Background())

	st := m.State()
	assert.Equal(t, "Pedro", st.Fields.FullName)
	assert.Equal(t, harvest.CropMaiz, st.Fields.Crop)
	assert.Equal(t, "3", st.TonsInput)
}

func TestManager_RejectedTonsInput(t *testing.T) {
	drafts := &recordingDrafts{}
	m := newLoadedManager(t, drafts)

	assert.True(t, m.Change(FieldTons, "12,5"))
	assert.False(t, m.Change(FieldTons, "12,5x"))

	st := m.State()
	assert.Equal(t, "12,5", st.TonsInput)
	assert.Equal(t, 12.5, st.Fields.Tons)
}

func TestManager_Submit(t *testing.T) {
	drafts := &recordingDrafts{}
	m := newLoadedManager(t, drafts)

	rec, res := m.Submit()
	assert.Nil(t, rec)
	assert.False(t, res.IsValid)
	assert.Equal(t, harvest.MsgFullNameRequired, m.State().Errors.FullName)

	m.Change(FieldFullName, "  Juan Perez ")
	assert.Empty(t, m.State().Errors.FullName, "change clears the field error")
	assert.Equal(t, harvest.MsgCropRequired, m.State().Errors.Crop)

	m.Change(FieldCrop, "Maiz")
	m.Change(FieldTons, "12,5")

	rec, res = m.Submit()
	require.NotNil(t, rec)
	assert.True(t, res.IsValid)
	assert.Equal(t, harvest.Record{FullName: "Juan Perez", Crop: harvest.CropMaiz, Tons: 12.5}, *rec)
	assert.Zero(t, drafts.cleared, "submit does not clear the draft")

	// The snapshot does not follow later edits
	m.Change(FieldFullName, "Otro Nombre")
	assert.Equal(t, "Juan Perez", rec.FullName)
}

func TestManager_Reset(t *testing.T) {
	drafts := &recordingDrafts{}
	m := newLoadedManager(t, drafts)

	m.Change(FieldFullName, "Juan")
	m.Change(FieldTons, "4")
	m.Reset(context.Background())

	time.Sleep(3 * testWindow)
	assert.Empty(t, drafts.saves(), "pending save is cancelled")
	assert.Equal(t, 1, drafts.cleared)
	assert.Equal(t, State{Loaded: true}, m.State())
}

func TestManager_Flush(t *testing.T) {
	drafts := &recordingDrafts{}
	m := NewManager(drafts, time.Hour)
	m.Load(context.Background())

	m.Change(FieldCrop, "Soja")
	m.Flush()

	saves := drafts.saves()
	require.Len(t, saves, 1)
	assert.Equal(t, harvest.CropSoja, saves[0].Crop)
}

// orderedDrafts records the order of saves and clears. SaveDraft signals
// started and waits for release.
type orderedDrafts struct {
	mu      sync.Mutex
	events  []string
	started chan struct{}
	release chan struct{}
}

func (o *orderedDrafts) SaveDraft(_ context.Context, _ harvest.Draft) {
	close(o.started)
	<-o.release
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, "save")
}

func (o *orderedDrafts) LoadDraft(_ context.Context) (*harvest.Draft, bool) {
	return nil, false
}

func (o *orderedDrafts) ClearDraft(_ context.Context) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, "clear")
}

func TestManager_ResetWaitsForRunningSave(t *testing.T) {
	drafts := &orderedDrafts{started: make(chan struct{}), release: make(chan struct{})}
	m := NewManager(drafts, time.Millisecond)
	m.Load(context.Background())

	m.Change(FieldFullName, "Juan")
	select {
	case <-drafts.started:
	case <-time.After(time.Second):
		t.Fatal("draft save never started")
	}

	done := make(chan struct{})
	go func() {
		m.Reset(context.Background())
		close(done)
	}()

	// Reset must not delete the draft while the save is still writing it
	time.Sleep(20 * time.Millisecond)
	close(drafts.release)
	<-done

	drafts.mu.Lock()
	defer drafts.mu.Unlock()
	assert.Equal(t, []string{"save", "clear"}, drafts.events)
	assert.Empty(t, m.State().Fields.FullName)
}
