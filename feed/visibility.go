package feed

import "github.com/CrestNiraj12/chantv/domain"

// HiddenSet reports whether a thread has been hidden by the user.
type HiddenSet interface {
	IsHidden(no int64) bool
}

// Visible returns threads not in hidden, preserving order. The input is
// never modified; a nil hidden set hides nothing.
func Visible(threads []domain.Thread, hidden HiddenSet) []domain.Thread {
	out := make([]domain.Thread, 0, len(threads))
	for _, t := range threads {
		if hidden != nil && hidden.IsHidden(t.No) {
			continue
		}
		out = append(out, t)
	}
	return out
}
