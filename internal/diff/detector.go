package diff

import (
	"sort"

	"prefdiff/internal/prefs"
)

// Detect computes the difference between two snapshots. It is a pure
// function over the two inputs: no I/O, no failure modes, and the output
// is fully ordered so repeated runs over the same snapshots are identical.
func Detect(before, after *prefs.Snapshot) Result {
	var result Result

	// Domains present in the second snapshot: either brand new or
	// compared key by key against the first.
	for _, domain := range after.DomainNames() {
		afterSettings, _ := after.Domain(domain)

		var changes []Change
		if beforeSettings, ok := before.Domain(domain); ok {
			changes = detectDomainChanges(domain, beforeSettings, afterSettings)
		} else {
			for key, value := range afterSettings {
				changes = append(changes, Change{
					Type:   Added,
					Domain: domain,
					Key:    key,
					New:    value,
				})
			}
			sortChanges(changes)
		}

		if len(changes) > 0 {
			result.TotalChanges += len(changes)
			result.Diffs = append(result.Diffs, DomainDiff{Domain: domain, Changes: changes})
		}
	}

	// Domains present only in the first snapshot were deleted wholesale.
	for _, domain := range before.DomainNames() {
		if _, ok := after.Domain(domain); ok {
			continue
		}
		beforeSettings, _ := before.Domain(domain)

		var changes []Change
		for key, value := range beforeSettings {
			changes = append(changes, Change{
				Type:   Removed,
				Domain: domain,
				Key:    key,
				Old:    value,
			})
		}
		if len(changes) == 0 {
			continue
		}
		sortChanges(changes)

		result.TotalChanges += len(changes)
		result.Diffs = append(result.Diffs, DomainDiff{Domain: domain, Changes: changes})
	}

	sort.Slice(result.Diffs, func(i, j int) bool {
		return result.Diffs[i].Domain < result.Diffs[j].Domain
	})

	return result
}

// detectDomainChanges diffs the keys of a domain present in both snapshots.
func detectDomainChanges(domain string, before, after prefs.DomainSettings) []Change {
	var changes []Change

	for key, afterValue := range after {
		beforeValue, ok := before[key]
		switch {
		case !ok:
			changes = append(changes, Change{
				Type:   Added,
				Domain: domain,
				Key:    key,
				New:    afterValue,
			})
		case !prefs.Equal(beforeValue, afterValue):
			changes = append(changes, Change{
				Type:   Modified,
				Domain: domain,
				Key:    key,
				Old:    beforeValue,
				New:    afterValue,
			})
		}
	}

	for key, beforeValue := range before {
		if _, ok := after[key]; !ok {
			changes = append(changes, Change{
				Type:   Removed,
				Domain: domain,
				Key:    key,
				Old:    beforeValue,
			})
		}
	}

	sortChanges(changes)
	return changes
}

func sortChanges(changes []Change) {
	sort.Slice(changes, func(i, j int) bool {
		return changes[i].Key < changes[j].Key
	})
}
