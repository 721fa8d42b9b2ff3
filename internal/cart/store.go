// Package cart implements the in-session shopping cart store.
//
// The store owns the canonical list of cart lines. Lines are kept in
// insertion order (the cart panel's display order) and there is at most one
// line per EAN; a line whose quantity would drop to zero is removed instead.
// The store is not safe for concurrent use on its own; the owning session
// serializes access.
package cart

import (
	"fmt"

	"github.com/chesuper/engine/internal/domain"
)

// Store holds the canonical cart lines
type Store struct {
	lines []domain.CartLine
}

// NewStore creates an empty cart store
func NewStore() *Store {
	return &Store{}
}

// SetQuantity adds delta to the quantity of the line with the given EAN.
// If no line exists and delta is positive, a new line with quantity 1 is
// appended (the magnitude of a first add is ignored). If the resulting
// quantity is zero or less the line is removed.
//
// Creating a new line requires a non-empty nombre, the same constraint
// ReplaceAll enforces, so every cart the store holds can be exported and
// imported back. Delta updates on an existing line may omit it.
//
// The returned bool reports whether a line for the EAN exists after the
// call; when true, the returned line is its current state.
func (s *Store) SetQuantity(ean, nombre, marca string, delta int) (domain.CartLine, bool, error) {
	for i := range s.lines {
		if s.lines[i].EAN != ean {
			continue
		}
		s.lines[i].Quantity += delta
		if s.lines[i].Quantity <= 0 {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return domain.CartLine{}, false, nil
		}
		return s.lines[i], true, nil
	}

	if delta > 0 {
		if nombre == "" {
			return domain.CartLine{}, false, fmt.Errorf("%w: a new cart line requires a nombre", domain.ErrInvalidRequest)
		}
		line := domain.CartLine{EAN: ean, Nombre: nombre, Marca: marca, Quantity: 1}
		s.lines = append(s.lines, line)
		return line, true, nil
	}

	return domain.CartLine{}, false, nil
}

// Remove deletes the line with the given EAN; no-op when absent
func (s *Store) Remove(ean string) {
	for i := range s.lines {
		if s.lines[i].EAN == ean {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return
		}
	}
}

// Clear empties the store. The destructive-action confirmation is the
// caller's responsibility at the UI boundary.
func (s *Store) Clear() {
	s.lines = nil
}

// ReplaceAll atomically swaps the store contents for the given lines.
// Every line must carry a non-empty EAN and nombre, a quantity of at least
// one, and EANs must be unique; any violation rejects the whole batch with
// ErrInvalidCartFormat and leaves the store untouched.
func (s *Store) ReplaceAll(lines []domain.CartLine) error {
	seen := make(map[string]struct{}, len(lines))
	for i, line := range lines {
		if line.EAN == "" {
			return fmt.Errorf("%w: line %d has empty ean", domain.ErrInvalidCartFormat, i)
		}
		if line.Nombre == "" {
			return fmt.Errorf("%w: line %d has empty nombre", domain.ErrInvalidCartFormat, i)
		}
		if line.Quantity < 1 {
			return fmt.Errorf("%w: line %d has quantity %d", domain.ErrInvalidCartFormat, i, line.Quantity)
		}
		if _, dup := seen[line.EAN]; dup {
			return fmt.Errorf("%w: duplicate ean %q", domain.ErrInvalidCartFormat, line.EAN)
		}
		seen[line.EAN] = struct{}{}
	}

	s.lines = make([]domain.CartLine, len(lines))
	copy(s.lines, lines)
	return nil
}

// Quantity returns the current quantity for an EAN, 0 when not in the cart
func (s *Store) Quantity(ean string) int {
	for i := range s.lines {
		if s.lines[i].EAN == ean {
			return s.lines[i].Quantity
		}
	}
	return 0
}

// Lines returns a copy of the cart lines in display order
func (s *Store) Lines() []domain.CartLine {
	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Items returns the slim item refs sent to the comparison services
func (s *Store) Items() []domain.CartItemRef {
	items := make([]domain.CartItemRef, len(s.lines))
	for i, line := range s.lines {
		items[i] = domain.CartItemRef{EAN: line.EAN, Quantity: line.Quantity}
	}
	return items
}

// Totals returns the distinct product count and the unit sum
func (s *Store) Totals() domain.CartTotals {
	totals := domain.CartTotals{DistinctProducts: len(s.lines)}
	for i := range s.lines {
		totals.TotalUnits += s.lines[i].Quantity
	}
	return totals
}

// Empty reports whether the cart has no lines
func (s *Store) Empty() bool {
	return len(s.lines) == 0
}
