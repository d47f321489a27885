package users

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guidebot/internal/models"
)

func TestRegisterAssignsIDAndTimestamp(t *testing.T) {
	r := NewRegistry()

	p := r.Register(models.UserProfile{Name: "Asha", Campus: "main"})
	assert.NotEmpty(t, p.UserID)
	assert.NotEmpty(t, p.CreatedAt)

	got, ok := r.Get(p.UserID)
	require.True(t, ok)
	assert.Equal(t, "Asha", got.Name)
	assert.Equal(t, 1, r.Count())
}

func TestRegisterKeepsProvidedID(t *testing.T) {
	r := NewRegistry()

	p := r.Register(models.UserProfile{UserID: "u-42", Email: "a@example.edu"})
	assert.Equal(t, "u-42", p.UserID)

	// Re-registering the same ID replaces the profile, not adds.
	r.Register(models.UserProfile{UserID: "u-42", Email: "b@example.edu"})
	assert.Equal(t, 1, r.Count())

	got, ok := r.Get("u-42")
	require.True(t, ok)
	assert.Equal(t, "b@example.edu", got.Email)
}

func TestGetUnknown(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Get("nobody")
	assert.False(t, ok)
}
