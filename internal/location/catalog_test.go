package location_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gofulfil/internal/domain"
	"gofulfil/internal/location"
)

func TestResolve_KnownLocation(t *testing.T) {
	c := location.NewCatalog()

	loc, ok := c.Resolve("ZWOLLE-001")

	require.True(t, ok)
	assert.Equal(t, "ZWOLLE-001", loc.Identifier)
	assert.Equal(t, 1, loc.MaxNumberOfWarehouses)
	assert.Equal(t, 40, loc.MaxCapacity)
}

func TestResolve_AnotherKnownLocation(t *testing.T) {
	loc, ok := location.NewCatalog().Resolve("AMSTERDAM-001")

	require.True(t, ok)
	assert.Equal(t, 5, loc.MaxNumberOfWarehouses)
	assert.Equal(t, 100, loc.MaxCapacity)
}

func TestResolve_TrimsSpaces(t *testing.T) {
	_, ok := location.NewCatalog().Resolve("  TILBURG-001 ")
	assert.True(t, ok)
}

func TestResolve_UnknownOrEmpty(t *testing.T) {
	c := location.NewCatalog()

	for _, id := range []string{"NONEXISTENT-999", "", "   ", "zwolle-001"} {
		_, ok := c.Resolve(id)
		assert.False(t, ok, "identificador %q não deveria resolver", id)
	}
}

func TestAll_SortedByIdentifier(t *testing.T) {
	c := location.NewCatalogWith([]domain.Location{
		{Identifier: "B-1", MaxNumberOfWarehouses: 1, MaxCapacity: 10},
		{Identifier: "A-1", MaxNumberOfWarehouses: 2, MaxCapacity: 20},
	})

	all := c.All()

	require.Len(t, all, 2)
	assert.Equal(t, "A-1", all[0].Identifier)
	assert.Equal(t, "B-1", all[1].Identifier)
	assert.Len(t, location.NewCatalog().All(), 8)
}
