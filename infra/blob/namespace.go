// Package blob stores one opaque string per namespace, either as files in a
// directory or as rows in a SQLite table.
package blob

import (
	"fmt"

	"github.com/CrestNiraj12/chantv/domain"
)

const maxNamespaceLen = 64

// ValidateNamespace accepts lowercase letters, digits, '_' and '-'.
func ValidateNamespace(ns string) error {
	if ns == "" || len(ns) > maxNamespaceLen {
		return fmt.Errorf("%w: %q", domain.ErrInvalidNamespace, ns)
	}
	for _, r := range ns {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			return fmt.Errorf("%w: %q", domain.ErrInvalidNamespace, ns)
		}
	}
	return nil
}
