package ledger

// Prepend puts entry at the front of history and truncates to limit. The
// input slice is never modified.
func Prepend[T any](history []T, entry T, limit int) []T {
	n := len(history) + 1
	if n > limit {
		n = limit
	}
	out := make([]T, 0, n)
	out = append(out, entry)
	for _, h := range history {
		if len(out) == n {
			break
		}
		out = append(out, h)
	}
	return out
}
