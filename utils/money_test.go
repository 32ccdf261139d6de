package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.23, Round2(1.234))
	assert.Equal(t, 1.24, Round2(1.236))
	assert.Equal(t, -1.23, Round2(-1.234))
	assert.Equal(t, 0.0, Round2(0))
}

func TestFormatEURTurkishConventions(t *testing.T) {
	assert.Equal(t, "12.345,60 €", FormatEUR(12345.6))
	assert.Equal(t, "0,00 €", FormatEUR(0))
	assert.Equal(t, "524,48 €", FormatEUR(524.484))
}
