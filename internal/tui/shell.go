// Package tui is the interactive terminal front end of the harvest form.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/a3tai/harvest-report/internal/app"
	"github.com/a3tai/harvest-report/internal/form"
	"github.com/a3tai/harvest-report/internal/harvest"
)

// Texts shown by the terminal form
const (
	TitleText        = "Generar PDF de Cosecha"
	LoadingText      = "Cargando..."
	NameLabel        = "Nombre completo *"
	NamePlaceholder  = "E.g: Juan"
	CropLabel        = "Cosecha"
	TonsLabel        = "Toneladas cosechadas *"
	TonsHelp         = "Número mayor a 0, con coma o punto decimal"
	TonsRejectedText = "Solo se aceptan números, por ejemplo 12,5"
	SuccessTitle     = "PDF generado exitosamente"
	RetryText        = "¿Intentar de nuevo?"
	AnotherText      = "¿Generar otro reporte?"
)

// Shell runs the harvest form in a terminal
type Shell struct {
	app    *app.App
	driver PromptDriver
}

// NewShell creates a shell for a driving prompts through driver
func NewShell(a *app.App, driver PromptDriver) *Shell {
	return &Shell{app: a, driver: driver}
}

// Run asks for the form fields until a report is generated and the user
// does not want another one. It returns ErrAborted when the user quits
// from a prompt.
func (s *Shell) Run(ctx context.Context) error {
	m := s.app.Form()
	if !m.Loaded() {
		if err := s.driver.Info(ctx, LoadingText); err != nil {
			return err
		}
		m.Load(ctx)
	}
	if err := s.driver.Info(ctx, TitleText); err != nil {
		return err
	}

	for {
		if err := s.fill(ctx); err != nil {
			return err
		}

		out, err := s.app.Generate(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			if ierr := s.driver.Info(ctx, fmt.Sprintf("Error: No se pudo generar el PDF: %v", err)); ierr != nil {
				return ierr
			}
			retry, cerr := s.driver.Confirm(ctx, ConfirmConfig{Message: RetryText, Default: true})
			if cerr != nil {
				return cerr
			}
			if !retry {
				return err
			}
			continue
		}
		if !out.Saved() {
			continue
		}

		msg := fmt.Sprintf("%s\nEl PDF se guardó en:\n%s\n\nArchivo: %s", SuccessTitle, out.Result.Location, out.Result.FileName)
		if out.Result.FullPath != "" {
			msg += "\n" + out.Result.FullPath
		}
		if err := s.driver.Info(ctx, msg); err != nil {
			return err
		}

		again, err := s.driver.Confirm(ctx, ConfirmConfig{Message: AnotherText})
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

// fill prompts for every field, pre-filled with the current values. The
// error of a field, if any, is printed before its prompt.
func (s *Shell) fill(ctx context.Context) error {
	m := s.app.Form()
	st := m.State()

	if err := s.showError(ctx, st.Errors.FullName); err != nil {
		return err
	}
	name, err := s.driver.Input(ctx, InputConfig{
		Message: NameLabel,
		Default: st.Fields.FullName,
		Help:    NamePlaceholder,
	})
	if err != nil {
		return err
	}
	m.Change(form.FieldFullName, name)

	if err := s.showError(ctx, st.Errors.Crop); err != nil {
		return err
	}
	options := cropOptions()
	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:      CropLabel,
		Options:      options,
		DefaultIndex: defaultCropIndex(options, st.Fields.Crop),
	})
	if err != nil {
		return err
	}
	crop := ""
	if idx >= 0 && idx < len(options) {
		crop = options[idx]
	}
	m.Change(form.FieldCrop, crop)

	if err := s.showError(ctx, st.Errors.Tons); err != nil {
		return err
	}
	current := st.TonsInput
	for {
		tons, err := s.driver.Input(ctx, InputConfig{
			Message: TonsLabel,
			Default: current,
			Help:    TonsHelp,
		})
		if err != nil {
			return err
		}
		if m.Change(form.FieldTons, tons) {
			return nil
		}
		if err := s.driver.Info(ctx, TonsRejectedText); err != nil {
			return err
		}
	}
}

func (s *Shell) showError(ctx context.Context, msg string) error {
	if msg == "" {
		return nil
	}
	return s.driver.Info(ctx, "✗ "+msg)
}

func cropOptions() []string {
	crops := harvest.Crops()
	out := make([]string, len(crops))
	for i, c := range crops {
		out[i] = string(c)
	}
	return out
}

func defaultCropIndex(options []string, current harvest.Crop) int {
	if i := indexOf(options, string(current)); i >= 0 {
		return i
	}
	return indexOf(options, string(harvest.DefaultCrop))
}
