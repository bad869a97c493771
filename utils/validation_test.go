package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		valid bool
	}{
		{"kenyan international", "+254712345678", true},
		{"with spaces and dashes", "+254 712-345-678", true},
		{"local without plus", "254712345678", true},
		{"too short", "+25", false},
		{"six digits still short", "+123456", false},
		{"seven digits minimum", "+1234567", true},
		{"letters", "notaphone", false},
		{"leading zero", "0712345678", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidatePhone(tt.phone))
		})
	}
}

func TestNormalizePlate(t *testing.T) {
	assert.Equal(t, "KDA 123X", NormalizePlate("  kda 123x "))
	assert.Equal(t, "KCB 456Y", NormalizePlate("KCB 456Y"))
	assert.Equal(t, "", NormalizePlate("   "))
}
