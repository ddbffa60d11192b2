package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"net/minecraft/Block", "netminecraftblock"},
		{"net.minecraft.Block", "netminecraftblock"},
		{"Outer$Inner", "outerinner"},
		{"func_1234_a", "func1234a"},
		{"getHTTPResponse", "gethttpresponse"},
		{"sqlite", "sqlite"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeName(tt.input))
		})
	}
}

func TestTokenizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"OrderID", []string{"order", "id"}},
		{"customerName", []string{"customer", "name"}},
		{"XMLParser", []string{"xml", "parser"}},
		{"a/b/Foo$Bar", []string{"a", "b", "foo", "bar"}},
		{"field_70_a", []string{"field", "70", "a"}},
		{"ABcD", []string{"a", "bc", "d"}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, TokenizeName(tt.input))
		})
	}
}
