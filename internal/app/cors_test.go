package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOriginAllowed(t *testing.T) {
	patterns := []string{"studio.example", "*.studio.example", "localhost:*"}

	assert.True(t, originAllowed(patterns, "https://studio.example"))
	assert.True(t, originAllowed(patterns, "https://admin.studio.example"))
	assert.True(t, originAllowed(patterns, "http://localhost:3000"))
	assert.True(t, originAllowed(patterns, "http://localhost:5173"))

	assert.False(t, originAllowed(patterns, "https://evil.example"))
	assert.False(t, originAllowed(patterns, "https://studio.example.evil.example"))
	assert.False(t, originAllowed(nil, "https://studio.example"))
}
