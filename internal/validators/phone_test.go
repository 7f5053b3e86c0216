package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPhoneValid(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{"+254700000001", true},
		{"0700000001", true},
		{"  +254700000001  ", true},
		{"123456", false},
		{"1234567890123456", false},
		{"+2547000abc01", false},
		{"", false},
		{"+", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.valid, IsPhoneValid(tt.phone), tt.phone)
	}
}
