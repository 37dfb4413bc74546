package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"ascii lowercase", "Hospital", "hospital"},
		{"turkish diacritics", "Göz Hastanesi", "goz hastanesi"},
		{"dotted capital I", "İstanbul", "istanbul"},
		{"dotless i preserved", "Kadın", "kadın"},
		{"soft g", "Doğum", "dogum"},
		{"s cedilla", "Diş", "dis"},
		{"mixed", "Özel Çocuk Kliniği", "ozel cocuk klinigi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fold(tt.input))
		})
	}
}
