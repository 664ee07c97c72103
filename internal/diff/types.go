package diff

import "prefdiff/internal/prefs"

// ChangeType tags the kind of a single change.
type ChangeType uint8

const (
	// Added means the key exists only in the second snapshot.
	Added ChangeType = iota
	// Removed means the key exists only in the first snapshot.
	Removed
	// Modified means the key exists in both snapshots with unequal values.
	Modified
)

// String returns the change type label used in the UI.
func (t ChangeType) String() string {
	switch t {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Modified:
		return "modified"
	default:
		return "unknown"
	}
}

// Change is one atomic difference between two snapshots. Old is nil for
// Added, New is nil for Removed, both are set for Modified.
type Change struct {
	Type   ChangeType
	Domain string
	Key    string
	Old    prefs.Value
	New    prefs.Value
}

// DomainDiff collects every change within one domain, sorted by key.
type DomainDiff struct {
	Domain  string
	Changes []Change
}

// Result is the complete diff between two snapshots. Diffs is sorted by
// domain name; domains without changes are omitted.
type Result struct {
	Diffs        []DomainDiff
	TotalChanges int
}
