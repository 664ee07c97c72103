package prefs

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// DomainSettings holds every key of a single defaults domain.
type DomainSettings map[string]Value

// Snapshot is a point-in-time copy of all captured domains. It is built
// once by the capturer and read-only afterwards; nothing else holds a
// writable reference to its maps.
type Snapshot struct {
	id         string
	capturedAt time.Time
	domains    map[string]DomainSettings
}

// NewSnapshot wraps the given domain map into a snapshot. Ownership of the
// map transfers to the snapshot; callers must not mutate it afterwards.
func NewSnapshot(domains map[string]DomainSettings) *Snapshot {
	if domains == nil {
		domains = make(map[string]DomainSettings)
	}
	return &Snapshot{
		id:         uuid.New().String(),
		capturedAt: time.Now(),
		domains:    domains,
	}
}

// ID returns the snapshot's unique identifier.
func (s *Snapshot) ID() string { return s.id }

// CapturedAt returns when the snapshot was taken.
func (s *Snapshot) CapturedAt() time.Time { return s.capturedAt }

// DomainCount returns the number of captured domains.
func (s *Snapshot) DomainCount() int { return len(s.domains) }

// KeyCount returns the total number of keys across all domains.
func (s *Snapshot) KeyCount() int {
	n := 0
	for _, settings := range s.domains {
		n += len(settings)
	}
	return n
}

// Domain returns the settings for one domain, if captured.
func (s *Snapshot) Domain(name string) (DomainSettings, bool) {
	settings, ok := s.domains[name]
	return settings, ok
}

// DomainNames returns all captured domain names, sorted.
func (s *Snapshot) DomainNames() []string {
	names := make([]string, 0, len(s.domains))
	for name := range s.domains {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
