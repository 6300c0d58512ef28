package harvest

import "strings"

// Crop is one of the fixed crop types a report can be filed for.
// The zero value means no crop has been selected.
type Crop string

const (
	CropSoja    Crop = "Soja"
	CropMaiz    Crop = "Maiz"
	CropTrigo   Crop = "Trigo"
	CropGirasol Crop = "Girasol"
	CropCebada  Crop = "Cebada"

	// DefaultCrop is the option preselected by interactive shells
	DefaultCrop = CropSoja
)

var crops = []Crop{CropSoja, CropMaiz, CropTrigo, CropGirasol, CropCebada}

// Crops returns the fixed set of selectable crops in display order
func Crops() []Crop {
	out := make([]Crop, len(crops))
	copy(out, crops)
	return out
}

// Valid reports whether c is a member of the fixed crop set
func (c Crop) Valid() bool {
	for _, known := range crops {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCrop matches s against the crop set ignoring case and surrounding space.
func ParseCrop(s string) (Crop, bool) {
	s = strings.TrimSpace(s)
	for _, known := range crops {
		if strings.EqualFold(s, string(known)) {
			return known, true
		}
	}
	return Crop(s), false
}

// Record is a validated harvest entry, ready to be rendered.
type Record struct {
	FullName string
	Crop     Crop
	Tons     float64
}

// Input is the raw, unvalidated shape of the form. Tons holds the text the
// user typed and may use either a comma or a dot as decimal separator.
type Input struct {
	FullName string
	Crop     Crop
	Tons     string
}

// FieldErrors carries one message per field; an empty string means the
// field passed validation.
type FieldErrors struct {
	FullName string `json:"full_name,omitempty"`
	Crop     string `json:"crop,omitempty"`
	Tons     string `json:"tons,omitempty"`
}

// Empty reports whether no field has an error
func (e FieldErrors) Empty() bool {
	return e.FullName == "" && e.Crop == "" && e.Tons == ""
}

// Result is the outcome of a validation pass
type Result struct {
	IsValid bool
	Errors  FieldErrors
}

// Draft is a partially filled form persisted between sessions. No
// validation is applied to it.
type Draft struct {
	FullName string  `json:"full_name,omitempty"`
	Crop     Crop    `json:"crop,omitempty"`
	Tons     float64 `json:"tons,omitempty"`
}

// IsEmpty reports whether the draft carries no data worth persisting
func (d Draft) IsEmpty() bool {
	return d.FullName == "" && d.Crop == "" && d.Tons == 0
}
