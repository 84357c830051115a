package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCategoria(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty input", "", "Sin categorizar"},
		{"only commas", " , , ", "Sin categorizar"},
		{"canonical passthrough", "Hotel 3*", "Hotel 3*"},
		{"case insensitive", "hotel 3*", "Hotel 3*"},
		{"uppercase", "APART HOTEL", "Apart Hotel"},
		{"synonym hotel 4*", "Hotel 4*", "Hotel 3*"},
		{"synonym hostería 3*", "hostería 3*", "Hostería 2*"},
		{"unmatched token verbatim", "Cabañas", "Cabañas"},
		{"multiple tokens", "hotel, apart hotel", "Hotel, Apart Hotel"},
		{"dedupe after normalization", "hotel 3*, Hotel 4*, HOTEL 3*", "Hotel 3*"},
		{"mixed matched and unmatched", "Cabañas, hotel", "Cabañas, Hotel"},
		{"whitespace tolerant", "  hotel 2*  ,  hotel  ", "Hotel 2*, Hotel"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCategoria(tt.in))
		})
	}
}

func TestValidarFecha(t *testing.T) {
	assert.NoError(t, ValidarFecha("2025-01-03"))
	assert.Error(t, ValidarFecha(""))
	assert.Error(t, ValidarFecha("03/01/2025"))
	assert.Error(t, ValidarFecha("2025-13-01"))
	assert.Error(t, ValidarFecha("2025-02-30"))
}
