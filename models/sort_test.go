package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSort(t *testing.T) {
	t.Run("Should parse field and direction", func(t *testing.T) {
		spec, err := ParseSort("classe,desc")
		require.NoError(t, err)
		assert.Equal(t, SortSpec{Field: "classe", Direction: Desc}, spec)
	})

	t.Run("Should default to ascending without direction", func(t *testing.T) {
		spec, err := ParseSort("td")
		require.NoError(t, err)
		assert.Equal(t, SortSpec{Field: "td", Direction: Asc}, spec)
	})

	t.Run("Should accept upper case direction", func(t *testing.T) {
		spec, err := ParseSort("tp,DESC")
		require.NoError(t, err)
		assert.Equal(t, Desc, spec.Direction)
	})

	t.Run("Should reject unknown field", func(t *testing.T) {
		_, err := ParseSort("semestre,asc")
		assert.Error(t, err)
	})

	t.Run("Should reject bad direction", func(t *testing.T) {
		_, err := ParseSort("id,up")
		assert.Error(t, err)
	})
}

func TestSortSpecString(t *testing.T) {
	assert.Equal(t, "id,asc", DefaultSort.String())
	assert.Equal(t, "classe,desc", SortSpec{Field: "classe", Direction: Desc}.String())
}

func TestDirectionOpposite(t *testing.T) {
	assert.Equal(t, Desc, Asc.Opposite())
	assert.Equal(t, Asc, Desc.Opposite())
}

func TestSortNiveaus(t *testing.T) {
	list := []Niveau{
		{ID: 3, Classe: "B", Tp: "x"},
		{ID: 1, Classe: "C", Tp: "x"},
		{ID: 2, Classe: "A", Tp: "y"},
	}

	t.Run("Should sort by classe ascending", func(t *testing.T) {
		SortNiveaus(list, SortSpec{Field: "classe", Direction: Asc})
		assert.Equal(t, []int64{2, 3, 1}, ids(list))
	})

	t.Run("Should sort by id descending", func(t *testing.T) {
		SortNiveaus(list, SortSpec{Field: "id", Direction: Desc})
		assert.Equal(t, []int64{3, 2, 1}, ids(list))
	})

	t.Run("Should break ties by ascending id", func(t *testing.T) {
		SortNiveaus(list, SortSpec{Field: "tp", Direction: Desc})
		assert.Equal(t, []int64{2, 1, 3}, ids(list))
	})

	t.Run("Should not order by id for an unknown field", func(t *testing.T) {
		SortNiveaus(list, SortSpec{Field: "semestre", Direction: Desc})
		assert.Equal(t, []int64{1, 2, 3}, ids(list))
	})
}

func TestParseDirection(t *testing.T) {
	assert.Equal(t, Desc, ParseDirection(" DESC "))
	assert.Equal(t, Asc, ParseDirection("Asc"))
	assert.False(t, ParseDirection("up").Valid())
}

func TestNiveauPatchApply(t *testing.T) {
	td := "new td"
	n := Niveau{ID: 1, Classe: "c", Tp: "p", Td: "d"}
	NiveauPatch{ID: 1, Td: &td}.Apply(&n)
	assert.Equal(t, Niveau{ID: 1, Classe: "c", Tp: "p", Td: "new td"}, n)
}

func ids(list []Niveau) []int64 {
	out := make([]int64, 0, len(list))
	for _, n := range list {
		out = append(out, n.ID)
	}
	return out
}
