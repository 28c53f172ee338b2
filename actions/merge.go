// Package actions holds the pure required-action merge computation.
package actions

// Merge returns the required-action list with desired present exactly once.
// When desired is already in current (exact match), the input is returned
// as-is and changed is false, so no update needs to be issued. Otherwise a
// new list is returned with desired appended after every existing entry,
// preserving their relative order. Nil and empty inputs are equivalent.
func Merge(current []string, desired string) (merged []string, changed bool) {
	for _, action := range current {
		if action == desired {
			return current, false
		}
	}

	merged = make([]string, 0, len(current)+1)
	merged = append(merged, current...)
	merged = append(merged, desired)
	return merged, true
}

// Contains reports whether the action list already carries the tag.
func Contains(current []string, tag string) bool {
	_, changed := Merge(current, tag)
	return !changed
}
