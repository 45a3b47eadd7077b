package listview

import (
	"errors"
	"net/url"
	"strings"

	"isimm-manager/models"
)

// SortParam is the query parameter carrying the sort specification
const SortParam = "sort"

// ErrUnsortableField is returned when a header click names a column the
// backend cannot sort by
var ErrUnsortableField = errors.New("field is not sortable")

// InitialSortState derives the sort state from a location's query string.
// Each part of the "<field>,<direction>" value overrides the default only when
// it is valid on its own; nothing here ever fails.
func InitialSortState(search string) models.SortSpec {
	spec := models.DefaultSort

	values, err := url.ParseQuery(strings.TrimPrefix(search, "?"))
	if err != nil {
		return spec
	}
	raw := values.Get(SortParam)
	if raw == "" {
		return spec
	}

	field, dir, _ := strings.Cut(raw, ",")
	if field = strings.TrimSpace(field); models.IsSortableField(field) {
		spec.Field = field
	}
	if d := models.ParseDirection(dir); d.Valid() {
		spec.Direction = d
	}
	return spec
}

// Toggle moves the sort to field and flips the direction, whether or not the
// field changed.
func Toggle(current models.SortSpec, field string) models.SortSpec {
	return models.SortSpec{
		Field:     field,
		Direction: current.Direction.Opposite(),
	}
}

// CanonicalSearch is the query string a location carries for spec
func CanonicalSearch(spec models.SortSpec) string {
	return "?" + SortParam + "=" + spec.String()
}

// Sort icon names
const (
	IconSort     = "sort"
	IconSortUp   = "sort-up"
	IconSortDown = "sort-down"
)

// SortIcon picks the header icon for field under spec
func SortIcon(spec models.SortSpec, field string) string {
	if spec.Field != field {
		return IconSort
	}
	if spec.Direction == models.Asc {
		return IconSortUp
	}
	return IconSortDown
}
