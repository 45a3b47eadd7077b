package models

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Direction is the ordering of a sort, either Asc or Desc
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Valid reports whether d is one of the two known directions
func (d Direction) Valid() bool {
	return d == Asc || d == Desc
}

// ParseDirection normalizes a raw direction: surrounding space is dropped and
// case is ignored. The result may still be invalid.
func ParseDirection(raw string) Direction {
	return Direction(strings.ToLower(strings.TrimSpace(raw)))
}

// Opposite flips the direction
func (d Direction) Opposite() Direction {
	if d == Asc {
		return Desc
	}
	return Asc
}

// Sortable Niveau attributes, in column order
var SortableFields = []string{"id", "classe", "tp", "td"}

// DefaultSort is used when nothing else is requested
var DefaultSort = SortSpec{Field: "id", Direction: Asc}

// IsSortableField reports whether field can be sorted on
func IsSortableField(field string) bool {
	return slices.Contains(SortableFields, field)
}

// SortSpec selects the attribute and direction a collection is ordered by
type SortSpec struct {
	Field     string
	Direction Direction
}

// String renders the canonical "<field>,<direction>" form
func (s SortSpec) String() string {
	return s.Field + "," + string(s.Direction)
}

// ParseSort parses a "<field>[,<direction>]" parameter strictly. A missing
// direction means ascending.
func ParseSort(raw string) (SortSpec, error) {
	field, dir, hasDir := strings.Cut(strings.TrimSpace(raw), ",")
	field = strings.TrimSpace(field)
	if !IsSortableField(field) {
		return SortSpec{}, fmt.Errorf("unknown sort field %q", field)
	}
	spec := SortSpec{Field: field, Direction: Asc}
	if hasDir {
		d := ParseDirection(dir)
		if !d.Valid() {
			return SortSpec{}, fmt.Errorf("invalid sort direction %q", dir)
		}
		spec.Direction = d
	}
	return spec, nil
}

// SortNiveaus orders list in place by spec. Ties fall back to ascending ID so
// the result is stable across calls.
func SortNiveaus(list []Niveau, spec SortSpec) {
	slices.SortStableFunc(list, func(a, b Niveau) int {
		c := compareField(a, b, spec.Field)
		if spec.Direction == Desc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

func compareField(a, b Niveau, field string) int {
	switch field {
	case "classe":
		return strings.Compare(a.Classe, b.Classe)
	case "tp":
		return strings.Compare(a.Tp, b.Tp)
	case "td":
		return strings.Compare(a.Td, b.Td)
	case "id":
		return cmp.Compare(a.ID, b.ID)
	default:
		return 0
	}
}
