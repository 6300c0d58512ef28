package harvest

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// minNameLetters is the exclusive lower bound on letters in a full name
const minNameLetters = 3

// Validate checks every field of in independently and reports all failures
// at once. It has no side effects.
func Validate(in Input) Result {
	errs := FieldErrors{
		FullName: validateFullName(in.FullName),
		Crop:     validateCrop(in.Crop),
		Tons:     validateTons(in.Tons),
	}
	return Result{IsValid: errs.Empty(), Errors: errs}
}

func validateFullName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return MsgFullNameRequired
	}
	if utf8.RuneCountInString(lettersOnly(name)) <= minNameLetters {
		return MsgFullNameTooShort
	}
	return ""
}

func validateCrop(c Crop) string {
	if c == "" {
		return MsgCropRequired
	}
	if !c.Valid() {
		return MsgCropInvalid
	}
	return ""
}

func validateTons(raw string) string {
	tons, ok := ParseTons(raw)
	if !ok {
		return MsgTonsRequired
	}
	if tons <= 0 {
		return MsgTonsNotPositive
	}
	return ""
}

// ParseTons converts a tonnage typed with either decimal separator into a
// number. ok is false when the text is not a finite number.
func ParseTons(raw string) (float64, bool) {
	raw = strings.TrimSpace(strings.Replace(raw, ",", ".", 1))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// FormatTons renders a tonnage in its shortest decimal form using a dot
func FormatTons(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// lettersOnly drops every rune that is not a Latin letter, keeping the
// accented letters used in Spanish names.
func lettersOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if isNameLetter(r) {
			return r
		}
		return -1
	}, s)
}

func isNameLetter(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	}
	return strings.ContainsRune("ÁÉÍÓÚÜÑáéíóúüñ", r)
}
