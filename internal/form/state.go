// Package form holds the in-progress harvest form: its state, the pure
// transitions applied to it, and the debounced draft persistence behind it.
package form

import (
	"regexp"
	"strings"

	"github.com/a3tai/harvest-report/internal/harvest"
)

// Field names one of the form inputs
type Field string

const (
	FieldFullName Field = "full_name"
	FieldCrop     Field = "crop"
	FieldTons     Field = "tons"
)

// ParseField maps a field name to a Field
func ParseField(s string) (Field, bool) {
	switch f := Field(strings.TrimSpace(s)); f {
	case FieldFullName, FieldCrop, FieldTons:
		return f, true
	}
	return "", false
}

// Fields are the current typed values of the form
type Fields struct {
	FullName string
	Crop     harvest.Crop
	Tons     float64
}

// State is everything a shell needs to draw the form
type State struct {
	Fields Fields
	// TonsInput is the tonnage exactly as typed, so a trailing separator
	// survives while the user is still typing.
	TonsInput string
	Errors    harvest.FieldErrors
	Loaded    bool
}

// Draft returns the persistable part of the state
func (s State) Draft() harvest.Draft {
	return harvest.Draft{
		FullName: s.Fields.FullName,
		Crop:     s.Fields.Crop,
		Tons:     s.Fields.Tons,
	}
}

// Input returns the validator input for the current state
func (s State) Input() harvest.Input {
	return harvest.Input{
		FullName: s.Fields.FullName,
		Crop:     s.Fields.Crop,
		Tons:     s.TonsInput,
	}
}

// Action is a state transition
type Action interface {
	isAction()
}

// FieldChanged records a new value typed or selected for Field
type FieldChanged struct {
	Field Field
	Value string
}

// DraftLoaded marks the one-shot draft load as complete. Draft is nil when
// nothing was saved.
type DraftLoaded struct {
	Draft *harvest.Draft
}

// Validated stores the errors of a validation pass
type Validated struct {
	Errors harvest.FieldErrors
}

// Reset clears the form
type Reset struct{}

func (FieldChanged) isAction() {}
func (DraftLoaded) isAction()  {}
func (Validated) isAction()    {}
func (Reset) isAction()        {}

var tonsInputPattern = regexp.MustCompile(`^[0-9]*[,.]?[0-9]*$`)

// AcceptsTonsInput reports whether raw has the shape of a decimal number
// being typed: digits, at most one comma or dot, digits.
func AcceptsTonsInput(raw string) bool {
	return tonsInputPattern.MatchString(raw)
}

// Reduce applies a to s and returns the new state. It never mutates s.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case FieldChanged:
		return reduceFieldChanged(s, a)
	case DraftLoaded:
		next := State{Loaded: true}
		if a.Draft != nil {
			next.Fields = Fields{
				FullName: a.Draft.FullName,
				Crop:     a.Draft.Crop,
				Tons:     a.Draft.Tons,
			}
			if a.Draft.Tons != 0 {
				next.TonsInput = strings.Replace(harvest.FormatTons(a.Draft.Tons), ".", ",", 1)
			}
		}
		return next
	case Validated:
		s.Errors = a.Errors
		return s
	case Reset:
		return State{Loaded: s.Loaded}
	}
	return s
}

func reduceFieldChanged(s State, a FieldChanged) State {
	switch a.Field {
	case FieldFullName:
		s.Errors.FullName = ""
		s.Fields.FullName = a.Value
	case FieldCrop:
		s.Errors.Crop = ""
		crop, _ := harvest.ParseCrop(a.Value)
		s.Fields.Crop = crop
	case FieldTons:
		s.Errors.Tons = ""
		if !AcceptsTonsInput(a.Value) {
			return s
		}
		s.TonsInput = a.Value
		tons, ok := harvest.ParseTons(a.Value)
		if !ok {
			tons = 0
		}
		s.Fields.Tons = tons
	}
	return s
}
