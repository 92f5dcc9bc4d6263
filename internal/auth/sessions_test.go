package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/school-portal/internal/domain"
)

func TestSessionRegistryLifecycle(t *testing.T) {
	reg := NewSessionRegistry(0, nil)

	created := reg.Create(domain.Session{Role: domain.SessionRoleParent, DisplayName: "Reema", Class: "أولى ابتدائي / 2"})
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, ok := reg.Get(created.ID)
	assert.True(t, ok)
	assert.Equal(t, created, got)

	assert.True(t, reg.End(created.ID))
	assert.False(t, reg.End(created.ID))
	_, ok = reg.Get(created.ID)
	assert.False(t, ok)
}

func TestSessionRegistryExpiry(t *testing.T) {
	reg := NewSessionRegistry(time.Hour, nil)
	clock := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	reg.now = func() time.Time { return clock }

	old := reg.Create(domain.Session{Role: domain.SessionRoleTeacher})
	clock = clock.Add(2 * time.Hour)

	_, ok := reg.Get(old.ID)
	assert.False(t, ok)

	stale := reg.Create(domain.Session{Role: domain.SessionRoleTeacher})
	clock = clock.Add(2 * time.Hour)
	reg.Create(domain.Session{Role: domain.SessionRoleAdmin})
	assert.Equal(t, 1, reg.Len())
	_, ok = reg.Get(stale.ID)
	assert.False(t, ok)
}
