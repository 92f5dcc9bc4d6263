package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/spec-kit/school-portal/internal/domain"
	"github.com/spec-kit/school-portal/internal/events"
)

const defaultFeedSize = 50

// ActivityService keeps the newest portal events for the admin live monitor.
type ActivityService struct {
	mu      sync.RWMutex
	entries []domain.ActivityEntry
	size    int
}

// NewActivityService creates a feed holding at most size entries.
func NewActivityService(size int) *ActivityService {
	if size <= 0 {
		size = defaultFeedSize
	}
	return &ActivityService{size: size, entries: make([]domain.ActivityEntry, 0, size)}
}

// RegisterHandlers subscribes the feed to every event type.
func (a *ActivityService) RegisterHandlers(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	for _, eventType := range events.AllEventTypes {
		dispatcher.Subscribe(eventType, a.record)
	}
}

// Recent returns up to limit entries, newest first. A non-positive limit returns the whole feed.
func (a *ActivityService) Recent(limit int) []domain.ActivityEntry {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if limit <= 0 || limit > len(a.entries) {
		limit = len(a.entries)
	}
	out := make([]domain.ActivityEntry, 0, limit)
	for i := len(a.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, a.entries[i])
	}
	return out
}

func (a *ActivityService) record(_ context.Context, event events.Event) error {
	entry := domain.ActivityEntry{
		ID:      event.ID,
		Type:    string(event.Type),
		Actor:   event.Actor.Name,
		Subject: event.SubjectID,
		At:      event.Timestamp,
	}
	switch payload := event.Payload.(type) {
	case events.StaffPayload:
		entry.Subject = payload.Name
		entry.Detail = staffDetail(payload)
	case events.SessionPayload:
		entry.Subject = payload.Email
		entry.Detail = string(payload.Role)
	case events.InboxPayload:
		entry.Subject = payload.ParentName
		entry.Detail = payload.Status
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.entries) == a.size {
		copy(a.entries, a.entries[1:])
		a.entries = a.entries[:len(a.entries)-1]
	}
	a.entries = append(a.entries, entry)
	return nil
}

func staffDetail(p events.StaffPayload) string {
	switch {
	case p.OldStatus != "" && p.NewStatus != "":
		return fmt.Sprintf("%s -> %s", p.OldStatus, p.NewStatus)
	case p.OldRole != "" && p.NewRole != "":
		return fmt.Sprintf("%s -> %s", p.OldRole, p.NewRole)
	case p.NewStatus != "":
		return string(p.NewStatus)
	default:
		return string(p.OldStatus)
	}
}
