package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampLimit(t *testing.T) {
	// Search uses default 10 capped at 50.
	assert.Equal(t, 10, clampLimit("", 10, 50))
	assert.Equal(t, 10, clampLimit("abc", 10, 50))
	assert.Equal(t, 10, clampLimit("0", 10, 50))
	assert.Equal(t, 10, clampLimit("-3", 10, 50))
	assert.Equal(t, 25, clampLimit("25", 10, 50))
	assert.Equal(t, 50, clampLimit("500", 10, 50))

	// Autocomplete uses default 8 capped at 20.
	assert.Equal(t, 8, clampLimit("", 8, 20))
	assert.Equal(t, 20, clampLimit("99", 8, 20))
}
