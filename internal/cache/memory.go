// Package cache holds best-effort derived facts in process memory.
package cache

import (
	"slices"
	"sync"
	"time"

	"conferencecentral/internal/domain"
)

const (
	announcementKey       = "announcement"
	featuredSpeakerPrefix = "featured_speaker_"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Memory is a DerivedFactCache backed by a map. Entries expire after ttl;
// a zero ttl keeps them until overwritten or deleted.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemory returns an empty cache whose entries live for ttl.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

var _ domain.DerivedFactCache = (*Memory)(nil)

func (m *Memory) SetAnnouncement(text string) {
	m.set(announcementKey, text)
}

func (m *Memory) DeleteAnnouncement() {
	m.mu.Lock()
	delete(m.entries, announcementKey)
	m.mu.Unlock()
}

func (m *Memory) Announcement() (string, bool) {
	v, ok := m.get(announcementKey)
	if !ok {
		return "", false
	}
	text, ok := v.(string)
	return text, ok
}

func (m *Memory) SetFeaturedSpeaker(e domain.FeaturedSpeaker) {
	e.SessionNames = slices.Clone(e.SessionNames)
	m.set(featuredSpeakerPrefix+e.ConferenceID, e)
}

func (m *Memory) FeaturedSpeaker(conferenceID string) (domain.FeaturedSpeaker, bool) {
	v, ok := m.get(featuredSpeakerPrefix + conferenceID)
	if !ok {
		return domain.FeaturedSpeaker{}, false
	}
	e, ok := v.(domain.FeaturedSpeaker)
	if !ok {
		return domain.FeaturedSpeaker{}, false
	}
	e.SessionNames = slices.Clone(e.SessionNames)
	return e, true
}

func (m *Memory) set(key string, value any) {
	e := entry{value: value}
	if m.ttl > 0 {
		e.expiresAt = m.now().Add(m.ttl)
	}
	m.mu.Lock()
	m.entries[key] = e
	m.mu.Unlock()
}

func (m *Memory) get(key string) (any, bool) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt) {
		m.mu.Lock()
		// Re-check: a concurrent set may have refreshed the entry.
		if cur, ok := m.entries[key]; ok && cur.expiresAt.Equal(e.expiresAt) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return nil, false
	}
	return e.value, true
}
