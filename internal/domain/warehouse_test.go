package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gofulfil/internal/domain"
)

func TestWarehouse_ArchiveIsOneShot(t *testing.T) {
	w := domain.Warehouse{BusinessUnitCode: "MWH.001", Status: domain.WarehouseActive}
	first := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	assert.True(t, w.Active())
	assert.True(t, w.Archive(first))
	assert.False(t, w.Active())
	assert.Equal(t, first, w.ArchivedAt)

	// Segunda transição não altera o timestamp original.
	assert.False(t, w.Archive(first.Add(time.Hour)))
	assert.Equal(t, first, w.ArchivedAt)
}

func TestWarehouse_ZeroStatusCountsAsActive(t *testing.T) {
	assert.True(t, domain.Warehouse{}.Active())
}

func TestWarehouseRequest_ToWarehouse(t *testing.T) {
	req := domain.WarehouseRequest{BusinessUnitCode: "MWH.002", Location: "AMSTERDAM-001", Capacity: 50, Stock: 5}

	w := req.ToWarehouse()

	assert.Equal(t, "MWH.002", w.BusinessUnitCode)
	assert.Equal(t, "AMSTERDAM-001", w.Location)
	assert.Equal(t, 50, w.Capacity)
	assert.Equal(t, 5, w.Stock)
	assert.True(t, w.CreatedAt.IsZero())
}

func TestWarehouse_JSONOmitsArchivedAtWhileActive(t *testing.T) {
	w := domain.Warehouse{
		BusinessUnitCode: "MWH.001", Location: "ZWOLLE-001", Capacity: 30, Stock: 10,
		Status: domain.WarehouseActive, CreatedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	raw, err := json.Marshal(w)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.NotContains(t, fields, "archivedAt")
	assert.Equal(t, "MWH.001", fields["businessUnitCode"])
	assert.Equal(t, "2024-03-01T10:00:00Z", fields["createdAt"])
}

func TestWarehouse_JSONCarriesArchivedAtOnceArchived(t *testing.T) {
	w := domain.Warehouse{BusinessUnitCode: "MWH.001", Status: domain.WarehouseActive}
	at := time.Date(2024, 3, 2, 8, 30, 0, 0, time.UTC)
	w.Archive(at)

	raw, err := json.Marshal(w)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Equal(t, "2024-03-02T08:30:00Z", fields["archivedAt"])
	assert.Equal(t, "archived", fields["status"])

	var back domain.Warehouse
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, at, back.ArchivedAt)
}
