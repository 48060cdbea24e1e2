package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		addr  string
		valid bool
	}{
		{"ana@acme.com", true},
		{"a@b.co", true},
		{"", false},
		{"@acme.com", false},
		{"ana@", false},
		{"ana acme@acme.com", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.valid, isValidEmail(tt.addr), tt.addr)
	}
}
