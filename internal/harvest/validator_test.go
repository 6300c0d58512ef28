package harvest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validInput() Input {
	return Input{FullName: "Juan Perez", Crop: CropMaiz, Tons: "12.5"}
}

func TestValidate_FullName(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr string
	}{
		{name: "empty", value: "", wantErr: MsgFullNameRequired},
		{name: "only spaces", value: "   ", wantErr: MsgFullNameRequired},
		{name: "too short", value: "Jo", wantErr: MsgFullNameTooShort},
		{name: "exactly three letters", value: "Ana", wantErr: MsgFullNameTooShort},
		{name: "digits do not count", value: "Al 12345", wantErr: MsgFullNameTooShort},
		{name: "accented name", value: "Juan Pérez", wantErr: ""},
		{name: "four letters", value: "Luis", wantErr: ""},
		{name: "accents count as letters", value: "Íñé Ü", wantErr: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			in.FullName = tt.value
			res := Validate(in)
			assert.Equal(t, tt.wantErr, res.Errors.FullName)
			assert.Equal(t, tt.wantErr == "", res.IsValid)
		})
	}
}

func TestValidate_Crop(t *testing.T) {
	tests := []struct {
		name    string
		crop    Crop
		wantErr string
	}{
		{name: "unset", crop: "", wantErr: MsgCropRequired},
		{name: "soja", crop: CropSoja, wantErr: ""},
		{name: "cebada", crop: CropCebada, wantErr: ""},
		{name: "unknown", crop: "Arroz", wantErr: MsgCropInvalid},
		{name: "wrong case is not canonical", crop: "soja", wantErr: MsgCropInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			in.Crop = tt.crop
			res := Validate(in)
			assert.Equal(t, tt.wantErr, res.Errors.Crop)
		})
	}
}

func TestValidate_Tons(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr string
	}{
		{name: "empty", raw: "", wantErr: MsgTonsRequired},
		{name: "not a number", raw: "abc", wantErr: MsgTonsRequired},
		{name: "zero", raw: "0", wantErr: MsgTonsNotPositive},
		{name: "negative", raw: "-5", wantErr: MsgTonsNotPositive},
		{name: "comma decimal", raw: "12,5", wantErr: ""},
		{name: "dot decimal", raw: "12.5", wantErr: ""},
		{name: "trailing separator", raw: "7,", wantErr: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			in.Tons = tt.raw
			res := Validate(in)
			assert.Equal(t, tt.wantErr, res.Errors.Tons)
		})
	}
}

func TestValidate_ReportsAllFields(t *testing.T) {
	res := Validate(Input{})
	assert.False(t, res.IsValid)
	assert.Equal(t, FieldErrors{
		FullName: MsgFullNameRequired,
		Crop:     MsgCropRequired,
		Tons:     MsgTonsRequired,
	}, res.Errors)
}

func TestValidate_Deterministic(t *testing.T) {
	inputs := []Input{validInput(), {FullName: "Jo", Tons: "0"}, {}}
	first := make([]Result, len(inputs))
	for i, in := range inputs {
		first[i] = Validate(in)
	}
	// Same inputs in reverse order must produce identical results.
	for i := len(inputs) - 1; i >= 0; i-- {
		assert.Equal(t, first[i], Validate(inputs[i]))
	}
}

func TestParseTons(t *testing.T) {
	comma, ok := ParseTons("12,5")
	assert.True(t, ok)
	dot, ok := ParseTons("12.5")
	assert.True(t, ok)
	assert.Equal(t, 12.5, comma)
	assert.Equal(t, comma, dot)

	_, ok = ParseTons("NaN")
	assert.False(t, ok)
	_, ok = ParseTons("")
	assert.False(t, ok)
}

func TestParseCrop(t *testing.T) {
	c, ok := ParseCrop("  maiz ")
	assert.True(t, ok)
	assert.Equal(t, CropMaiz, c)

	c, ok = ParseCrop("Arroz")
	assert.False(t, ok)
	assert.Equal(t, Crop("Arroz"), c)

	assert.Len(t, Crops(), 5)
}

func TestFormatTons(t *testing.T) {
	assert.Equal(t, "12.5", FormatTons(12.5))
	assert.Equal(t, "3", FormatTons(3))
}
