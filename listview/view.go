package listview

import (
	"strconv"

	"isimm-manager/models"
)

// Link targets for the niveau screens
const (
	ListPath   = "/niveau"
	CreatePath = "/niveau/new"
)

// DetailPath is the detail screen of niveau id
func DetailPath(id int64) string { return ListPath + "/" + strconv.FormatInt(id, 10) }

// EditPath is the edit screen of niveau id
func EditPath(id int64) string { return DetailPath(id) + "/edit" }

// DeletePath is the delete confirmation screen of niveau id
func DeletePath(id int64) string { return DetailPath(id) + "/delete" }

// SemestrePath is the detail screen of semestre id
func SemestrePath(id int64) string { return "/semestre/" + strconv.FormatInt(id, 10) }

// Column is a table header
type Column struct {
	Field    string
	Label    string
	Sortable bool
	Icon     string
	// SortSearch is the query string selecting this column, empty when the
	// column is not sortable
	SortSearch string
}

// Row is one rendered niveau
type Row struct {
	ID           int64
	Classe       string
	Tp           string
	Td           string
	SemestreID   int64
	SemestrePath string // Empty without a semestre
	DetailPath   string
	EditPath     string
	DeletePath   string
}

// ViewState is everything needed to draw the list screen
type ViewState struct {
	Sort            models.SortSpec
	Loading         bool
	RefreshDisabled bool
	ShowTable       bool
	ShowNotFound    bool
	CreatePath      string
	Columns         []Column
	Rows            []Row
}

var columnLabels = map[string]string{
	"id":     "ID",
	"classe": "Classe",
	"tp":     "Tp",
	"td":     "Td",
}

// BuildView computes the screen for a collection snapshot. A non-empty
// collection is always shown, even while a reload is running; an empty one
// shows the not-found notice only once loading is over.
func BuildView(entities []models.Niveau, loading bool, spec models.SortSpec) ViewState {
	v := ViewState{
		Sort:            spec,
		Loading:         loading,
		RefreshDisabled: loading,
		CreatePath:      CreatePath,
	}
	if len(entities) == 0 {
		v.ShowNotFound = !loading
		return v
	}

	v.ShowTable = true
	for _, field := range models.SortableFields {
		v.Columns = append(v.Columns, Column{
			Field:      field,
			Label:      columnLabels[field],
			Sortable:   true,
			Icon:       SortIcon(spec, field),
			SortSearch: CanonicalSearch(Toggle(spec, field)),
		})
	}
	v.Columns = append(v.Columns, Column{Field: "semestre", Label: "Semestre", Icon: IconSort})

	v.Rows = make([]Row, 0, len(entities))
	for _, n := range entities {
		r := Row{
			ID:         n.ID,
			Classe:     n.Classe,
			Tp:         n.Tp,
			Td:         n.Td,
			DetailPath: DetailPath(n.ID),
			EditPath:   EditPath(n.ID),
			DeletePath: DeletePath(n.ID),
		}
		if id := n.SemestreID(); id != 0 {
			r.SemestreID = id
			r.SemestrePath = SemestrePath(id)
		}
		v.Rows = append(v.Rows, r)
	}
	return v
}
