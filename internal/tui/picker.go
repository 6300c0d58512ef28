package tui

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/a3tai/harvest-report/internal/save"
)

// FolderPicker asks in the terminal for the folder reports are kept in
type FolderPicker struct {
	driver  PromptDriver
	fs      afero.Fs
	suggest string
}

// NewFolderPicker creates a picker proposing suggest as the default folder
func NewFolderPicker(driver PromptDriver, fs afero.Fs, suggest string) *FolderPicker {
	return &FolderPicker{driver: driver, fs: fs, suggest: suggest}
}

// PickDirectory implements save.DirectoryPicker. Declining the question
// denies the grant.
func (p *FolderPicker) PickDirectory(ctx context.Context) (save.Grant, error) {
	ok, err := p.driver.Confirm(ctx, ConfirmConfig{
		Message: "¿Elegir una carpeta pública para guardar los reportes?",
		Default: true,
		Help:    "La carpeta se recuerda para los próximos reportes",
	})
	if err != nil {
		return save.Grant{}, err
	}
	if !ok {
		return save.Grant{}, nil
	}

	dir, err := p.driver.Input(ctx, InputConfig{
		Message:   "Carpeta",
		Default:   p.suggest,
		Validator: p.validate,
	})
	if err != nil {
		return save.Grant{}, err
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return save.Grant{}, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	if err := p.validate(abs); err != nil {
		return save.Grant{}, err
	}
	return save.Grant{URI: save.FileURI(abs), Granted: true}, nil
}

func (p *FolderPicker) validate(dir string) error {
	if dir == "" {
		return fmt.Errorf("la carpeta es requerida")
	}
	exists, err := afero.DirExists(p.fs, dir)
	if err != nil || !exists {
		return fmt.Errorf("la carpeta %s no existe", dir)
	}
	return nil
}
