package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellString(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{name: "null", value: nil, expected: ""},
		{name: "double", value: 1.25, expected: "1.25"},
		{name: "real", value: float32(0.5), expected: "0.5"},
		{name: "text", value: "LA", expected: "LA"},
		{name: "integer", value: int64(7), expected: "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cellString(tt.value))
		})
	}
}
