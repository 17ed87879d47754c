package mockdata

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formidamail/internal/model"
)

func TestGenerateFillsEmptyFields(t *testing.T) {
	g := New(42)
	rec := g.Generate(model.EmailRecord{})

	_, err := uuid.Parse(rec.ID)
	assert.NoError(t, err, "id should be a uuid")
	assert.NotEmpty(t, rec.Name)
	assert.Contains(t, rec.Name, " ", "name should be a first/last pair")
	assert.NotEmpty(t, rec.Title)
	assert.NotEmpty(t, rec.Body)
	assert.Contains(t, rec.Email, "@")
}

func TestGenerateKeepsOverrides(t *testing.T) {
	g := New(1)
	rec := g.Generate(model.EmailRecord{ID: "fixed", Name: "Taylor Swift"})

	assert.Equal(t, "fixed", rec.ID)
	assert.Equal(t, "Taylor Swift", rec.Name)
	assert.NotEmpty(t, rec.Title)
	assert.NotEmpty(t, rec.Body)
	assert.NotEmpty(t, rec.Email)
}

func TestGenerateBatch(t *testing.T) {
	g := New(7)

	assert.Empty(t, g.GenerateBatch(0))
	assert.Empty(t, g.GenerateBatch(-3))

	batch := g.GenerateBatch(50)
	require.Len(t, batch, 50)

	seen := make(map[string]bool, len(batch))
	for _, rec := range batch {
		assert.False(t, seen[rec.ID], "duplicate id %s", rec.ID)
		seen[rec.ID] = true
	}
}

func TestSameSeedDistinctIDs(t *testing.T) {
	a := New(99).Generate(model.EmailRecord{})
	b := New(99).Generate(model.EmailRecord{})

	assert.Equal(t, a.Name, b.Name, "text fields follow the seed")
	assert.NotEqual(t, a.ID, b.ID)
}
