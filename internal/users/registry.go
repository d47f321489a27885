package users

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"guidebot/internal/models"
)

// Registry holds registered user profiles in memory. It is constructed
// once at startup and handed to whichever component needs it; profiles are
// immutable after registration.
type Registry struct {
	mu       sync.Mutex
	profiles map[string]models.UserProfile
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{profiles: make(map[string]models.UserProfile)}
}

// Register stores a profile, assigning a random user ID and a creation
// timestamp when absent. Registering an existing ID replaces the profile.
func (r *Registry) Register(profile models.UserProfile) models.UserProfile {
	if profile.UserID == "" {
		profile.UserID = uuid.New().String()
	}
	if profile.CreatedAt == "" {
		profile.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.UserID] = profile
	return profile
}

// Get returns the profile for userID, if registered.
func (r *Registry) Get(userID string) (models.UserProfile, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	return p, ok
}

// Count reports the number of registered profiles.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.profiles)
}
