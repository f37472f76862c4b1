package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetDisplayWidth(t *testing.T) {
	assert.Equal(t, 0, GetDisplayWidth(""))
	assert.Equal(t, 5, GetDisplayWidth("hello"))
	assert.Equal(t, 4, GetDisplayWidth("文档"), "wide runes count double")
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		width    int
		expected string
	}{
		{name: "pads short text", text: "abc", width: 5, expected: "abc  "},
		{name: "exact width", text: "abcde", width: 5, expected: "abcde"},
		{name: "truncates with ellipsis", text: "abcdefgh", width: 5, expected: "abcd…"},
		{name: "empty text", text: "", width: 3, expected: "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PadRight(tt.text, tt.width))
		})
	}
}
