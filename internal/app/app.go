// Package app ties the form, the renderer and the saver together into the
// operations the user interfaces expose.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/a3tai/harvest-report/internal/form"
	"github.com/a3tai/harvest-report/internal/harvest"
	"github.com/a3tai/harvest-report/internal/pdf"
	"github.com/a3tai/harvest-report/internal/save"
	"github.com/a3tai/harvest-report/internal/security"
	"github.com/a3tai/harvest-report/internal/store"
)

// ErrNoReport is returned by LastReport before any report was saved
var ErrNoReport = errors.New("no report has been saved yet")

// Renderer turns a validated record into a PDF document
type Renderer interface {
	Render(ctx context.Context, rec harvest.Record, reportID string) ([]byte, error)
}

// Outcome is what a Generate call produced. Result is nil when the form
// did not validate.
type Outcome struct {
	Validation harvest.Result `json:"validation"`
	Result     *save.Result   `json:"result,omitempty"`
	ReportID   string         `json:"report_id,omitempty"`
}

// Saved reports whether a file was written
func (o *Outcome) Saved() bool {
	return o.Result != nil
}

// LastReport describes the most recently saved report
type LastReport struct {
	URI        string          `json:"uri"`
	Path       string          `json:"path"`
	Inspection *pdf.Inspection `json:"inspection,omitempty"`
	// ReadError explains why Inspection is missing
	ReadError string `json:"read_error,omitempty"`
}

// Options configures New
type Options struct {
	Form     *form.Manager
	Renderer Renderer
	Saver    save.Saver
	KV       store.KV
	FS       afero.Fs
	// ReportDirs are listed by ListReports and bound LastReport reads. The
	// folder chosen on the folder platform is added automatically.
	ReportDirs []string

	Now   func() time.Time
	NewID func() string
}

// App is the application core shared by the user interfaces
type App struct {
	form       *form.Manager
	renderer   Renderer
	saver      save.Saver
	kv         store.KV
	fs         afero.Fs
	reportDirs []string
	now        func() time.Time
	newID      func() string

	// generateMu keeps one report generation in flight
	generateMu sync.Mutex
}

// New validates opts and creates an App
func New(opts Options) (*App, error) {
	switch {
	case opts.Form == nil:
		return nil, fmt.Errorf("form manager cannot be nil")
	case opts.Renderer == nil:
		return nil, fmt.Errorf("renderer cannot be nil")
	case opts.Saver == nil:
		return nil, fmt.Errorf("saver cannot be nil")
	case opts.KV == nil:
		return nil, fmt.Errorf("key-value store cannot be nil")
	case opts.FS == nil:
		return nil, fmt.Errorf("file system cannot be nil")
	}

	a := &App{
		form:       opts.Form,
		renderer:   opts.Renderer,
		saver:      opts.Saver,
		kv:         opts.KV,
		fs:         opts.FS,
		reportDirs: opts.ReportDirs,
		now:        opts.Now,
		newID:      opts.NewID,
	}
	if a.now == nil {
		a.now = time.Now
	}
	if a.newID == nil {
		a.newID = uuid.NewString
	}
	return a, nil
}

// Form returns the form manager
func (a *App) Form() *form.Manager {
	return a.form
}

// Generate validates the form and, when it is valid, renders and saves the
// report, remembers where it went and resets the form. Validation failures
// are reported in the outcome, not as an error. On render or save errors
// the form and its draft are kept.
func (a *App) Generate(ctx context.Context) (*Outcome, error) {
	a.generateMu.Lock()
	defer a.generateMu.Unlock()

	rec, res := a.form.Submit()
	out := &Outcome{Validation: res}
	if rec == nil {
		return out, nil
	}

	id := a.newID()
	data, err := a.renderer.Render(ctx, *rec, id)
	if err != nil {
		return out, fmt.Errorf("failed to generate report: %w", err)
	}

	name := harvest.FileName(rec.FullName, a.now())
	saved, err := a.saver.Save(ctx, data, name)
	if err != nil {
		return out, fmt.Errorf("failed to save report: %w", err)
	}
	out.Result = saved
	out.ReportID = id

	if err := a.kv.Set(ctx, store.KeyLastReportURI, saved.FullPath); err != nil {
		log.Printf("Cannot remember last report %s: %v", saved.FullPath, err)
	}
	log.Printf("Report %s saved to %s (%s)", id, saved.FullPath, saved.Location)

	a.form.Reset(ctx)
	return out, nil
}

// LastReport returns the last saved report. Its text is included when the
// file can still be read.
func (a *App) LastReport(ctx context.Context) (*LastReport, error) {
	uri, ok, err := a.kv.Get(ctx, store.KeyLastReportURI)
	if err != nil {
		return nil, fmt.Errorf("cannot read last report: %w", err)
	}
	if !ok || uri == "" {
		return nil, ErrNoReport
	}

	path, err := save.PathFromURI(uri)
	if err != nil {
		return nil, err
	}
	last := &LastReport{URI: uri, Path: path}

	guard, err := security.NewPathValidator(a.roots(ctx)...)
	if err != nil {
		return nil, err
	}
	if err := guard.ValidatePath(path); err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(a.fs, path)
	if err != nil {
		last.ReadError = err.Error()
		return last, nil
	}
	info, err := pdf.Inspect(data)
	if err != nil {
		last.ReadError = err.Error()
		return last, nil
	}
	last.Inspection = info
	return last, nil
}

// ListReports lists saved reports in every report directory, newest first
func (a *App) ListReports(ctx context.Context) ([]pdf.FileInfo, error) {
	var all []pdf.FileInfo
	for _, dir := range a.roots(ctx) {
		files, err := pdf.ListReports(a.fs, dir)
		if err != nil {
			return nil, err
		}
		all = append(all, files...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].ModifiedTime > all[j].ModifiedTime
	})
	return all, nil
}

// Close writes any pending draft
func (a *App) Close() {
	a.form.Flush()
}

// roots returns the configured report directories plus the chosen folder
func (a *App) roots(ctx context.Context) []string {
	roots := append([]string{}, a.reportDirs...)
	uri, ok, err := a.kv.Get(ctx, store.KeyFolderHandle)
	if err != nil || !ok {
		return roots
	}
	dir, err := save.PathFromURI(uri)
	if err != nil {
		log.Printf("Ignoring saved folder %q: %v", uri, err)
		return roots
	}
	for _, r := range roots {
		if r == dir {
			return roots
		}
	}
	return append(roots, dir)
}
