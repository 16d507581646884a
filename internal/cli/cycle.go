package cli

import (
	"github.com/prefyhq/prefy/internal/domain"
)

// cycleValue steps v by delta within the property's value domain, wrapping
// at both ends: through the level sequence, through 0..10, or toggling a
// binary. A dangling level reference steps from position 0, where it is
// displayed.
func cycleValue(doc *domain.Document, p domain.Property, v domain.Value, delta int) domain.Value {
	switch p.Type {
	case domain.PropertyScale:
		n, ok := v.Scale()
		if !ok {
			n = domain.MinScale
		}
		span := domain.MaxScale - domain.MinScale + 1
		return domain.ScaleValue(domain.MinScale + wrap(n-domain.MinScale+delta, span))
	case domain.PropertyBinary:
		b, _ := v.Binary()
		if delta%2 == 0 {
			return domain.BinaryValue(b)
		}
		return domain.BinaryValue(!b)
	default:
		if len(doc.Levels) == 0 {
			return v
		}
		id, _ := v.Level()
		i := max(doc.LevelIndex(id), 0)
		return domain.LevelValue(doc.Levels[wrap(i+delta, len(doc.Levels))].ID)
	}
}

// directValue maps a digit key to a value: the level at that 1-based
// position, or the scale number itself (0 means 10). ok is false when the
// digit has no meaning for the property.
func directValue(doc *domain.Document, p domain.Property, digit int) (domain.Value, bool) {
	switch p.Type {
	case domain.PropertyScale:
		if digit == 0 {
			return domain.ScaleValue(domain.MaxScale), true
		}
		return domain.ScaleValue(digit), true
	case domain.PropertyBinary:
		switch digit {
		case 0:
			return domain.BinaryValue(false), true
		case 1:
			return domain.BinaryValue(true), true
		}
		return domain.Value{}, false
	default:
		if digit < 1 || digit > len(doc.Levels) {
			return domain.Value{}, false
		}
		return domain.LevelValue(doc.Levels[digit-1].ID), true
	}
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}
