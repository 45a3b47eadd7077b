package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"isimm-manager/listview"
	"isimm-manager/models"
)

// sortingFetcher serves a fixed collection ordered the way the backend would
type sortingFetcher struct {
	niveaus []models.Niveau
	sorts   []string
	err     error
}

func (f *sortingFetcher) FetchNiveaus(_ context.Context, sort string) ([]models.Niveau, error) {
	f.sorts = append(f.sorts, sort)
	if f.err != nil {
		return nil, f.err
	}
	spec, err := models.ParseSort(sort)
	if err != nil {
		return nil, err
	}
	out := append([]models.Niveau(nil), f.niveaus...)
	models.SortNiveaus(out, spec)
	return out, nil
}

func TestRunList(t *testing.T) {
	t.Run("Should print each fetch with the synced location", func(t *testing.T) {
		f := &sortingFetcher{niveaus: []models.Niveau{
			{ID: 1, Classe: "LSI1", Tp: "TP1", Td: "TD1", Semestre: &models.SemestreRef{ID: 2}},
			{ID: 2, Classe: "ING1", Tp: "TP2", Td: "TD2"},
		}}
		var out bytes.Buffer

		err := runList(context.Background(), f, zap.NewNop(), "/niveau?sort=id,asc", []string{"classe"}, &out)

		require.NoError(t, err)
		assert.Equal(t, []string{"id,asc", "classe,desc"}, f.sorts)
		text := out.String()
		assert.Contains(t, text, "Location: /niveau?sort=id,asc")
		assert.Contains(t, text, "Location: /niveau?sort=classe,desc")

		second := text[strings.Index(text, "classe,desc"):]
		assert.Less(t, strings.Index(second, "LSI1"), strings.Index(second, "ING1"))
	})

	t.Run("Should report an empty collection", func(t *testing.T) {
		var out bytes.Buffer
		err := runList(context.Background(), &sortingFetcher{}, zap.NewNop(), "/niveau", nil, &out)

		require.NoError(t, err)
		assert.Contains(t, out.String(), "Location: /niveau?sort=id,asc")
		assert.Contains(t, out.String(), "No Niveaus found")
	})

	t.Run("Should reject an unsortable click before fetching", func(t *testing.T) {
		f := &sortingFetcher{}
		var out bytes.Buffer
		err := runList(context.Background(), f, zap.NewNop(), "/niveau", []string{"semestre"}, &out)

		assert.ErrorIs(t, err, listview.ErrUnsortableField)
		assert.Empty(t, f.sorts)
		assert.Empty(t, out.String())
	})

	t.Run("Should fail when the backend fails", func(t *testing.T) {
		var out bytes.Buffer
		err := runList(context.Background(), &sortingFetcher{err: errors.New("connection refused")}, zap.NewNop(), "/niveau", nil, &out)
		assert.ErrorContains(t, err, "connection refused")
	})
}
