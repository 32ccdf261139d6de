package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type patchDTO struct {
	Name    *string  `json:"name"`
	Price   *float64 `json:"unit_price"`
	Ignored *string  `json:"-"`
	NoTag   *string
}

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

func TestUpdatesFromPtrDTOOnlyNonNil(t *testing.T) {
	in := patchDTO{Name: strPtr("Kesim"), Ignored: strPtr("x"), NoTag: strPtr("y")}
	got := UpdatesFromPtrDTO(&in, nil)

	assert.Equal(t, map[string]any{"name": "Kesim"}, got)
}

func TestUpdatesFromPtrDTORenames(t *testing.T) {
	in := patchDTO{Price: f64Ptr(9.5)}
	got := UpdatesFromPtrDTO(&in, map[string]string{"unit_price": "price"})

	assert.Equal(t, map[string]any{"price": 9.5}, got)
}

func TestNormalizePtrDTO(t *testing.T) {
	in := patchDTO{Name: strPtr("  Kesim  "), Price: f64Ptr(1.005)}
	NormalizePtrDTO(&in)

	assert.Equal(t, "Kesim", *in.Name)
	assert.InDelta(t, 1.0, *in.Price, 0.011) // rounded to 2 decimals
	assert.Nil(t, in.Ignored)
}

func TestParseIntDefault(t *testing.T) {
	assert.Equal(t, 7, ParseIntDefault("7", 1))
	assert.Equal(t, 7, ParseIntDefault(" 7 ", 1))
	assert.Equal(t, 1, ParseIntDefault("x", 1))
	assert.Equal(t, 1, ParseIntDefault("-2", 1))
	assert.Equal(t, 20, ParseIntDefault("", 20))
}
