package ds

// ShallowCopy gives the elements a backing array of their own. A nil slice stays nil so that
// "absent" and "empty" remain distinguishable after copying.
func ShallowCopy[T any](ts []T) []T {
	if ts == nil {
		return nil
	}
	return append(make([]T, 0, len(ts)), ts...)
}
