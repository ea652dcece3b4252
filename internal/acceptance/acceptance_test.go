package acceptance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"gofulfil/internal/app"
	"gofulfil/internal/domain"
	"gofulfil/internal/pkg/logger"
	"gofulfil/internal/repository/memory"
)

type engineContext struct {
	store    *memory.Store
	services *app.Services
	err      error
}

func (e *engineContext) reset() {
	e.store = memory.NewStore()
	e.services = app.BuildMemory(e.store, app.Infra{Logger: logger.NewNop()})
	e.err = nil
}

func splitNames(list string) []string {
	var names []string
	for _, n := range strings.Split(list, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}

func (e *engineContext) theCatalogHasProducts(list string) error {
	var products []domain.Product
	for i, name := range splitNames(list) {
		products = append(products, domain.Product{ID: fmt.Sprintf("p-%d", i), Name: name})
	}
	e.store.Seed(products, nil)
	return nil
}

func (e *engineContext) theCatalogHasStores(list string) error {
	var stores []domain.Store
	for i, name := range splitNames(list) {
		stores = append(stores, domain.Store{ID: fmt.Sprintf("s-%d", i), Name: name})
	}
	e.store.Seed(nil, stores)
	return nil
}

func (e *engineContext) iCreateWarehouse(code, loc string, capacity, stock int) error {
	_, e.err = e.services.Warehouses.Create(context.Background(), domain.Warehouse{
		BusinessUnitCode: code, Location: loc, Capacity: capacity, Stock: stock,
	})
	return nil
}

func (e *engineContext) warehouseExists(code, loc string, capacity, stock int) error {
	if err := e.iCreateWarehouse(code, loc, capacity, stock); err != nil {
		return err
	}
	return e.err
}

func (e *engineContext) iReplaceWarehouse(code, loc string, capacity, stock int) error {
	_, e.err = e.services.Warehouses.Replace(context.Background(), code, domain.Warehouse{
		BusinessUnitCode: code, Location: loc, Capacity: capacity, Stock: stock,
	})
	return nil
}

func (e *engineContext) iArchiveWarehouse(code string) error {
	e.err = e.services.Warehouses.Archive(context.Background(), code)
	return nil
}

func (e *engineContext) iAssociate(product, store, warehouse string) error {
	e.err = e.services.Fulfillments.Associate(context.Background(), product, store, warehouse)
	return nil
}

func (e *engineContext) isAssociated(product, store, warehouse string) error {
	return e.services.Fulfillments.Associate(context.Background(), product, store, warehouse)
}

func (e *engineContext) theOperationSucceeds() error {
	if e.err != nil {
		return fmt.Errorf("expected success, got %v", e.err)
	}
	return nil
}

func (e *engineContext) theOperationFailsWith(substring string) error {
	if e.err == nil {
		return errors.New("expected the operation to fail but it succeeded")
	}
	if !strings.Contains(e.err.Error(), substring) {
		return fmt.Errorf("expected error containing %q, got %q", substring, e.err.Error())
	}
	return nil
}

func (e *engineContext) warehouseIsArchived(code string) error {
	w, err := e.services.Warehouses.Get(context.Background(), code)
	if err != nil {
		return err
	}
	if w.Active() {
		return fmt.Errorf("expected %s to be archived", code)
	}
	if w.ArchivedAt.IsZero() {
		return fmt.Errorf("expected %s to carry an archive timestamp", code)
	}
	return nil
}

func (e *engineContext) storeHasRecords(store string, n int) error {
	list, err := e.services.Fulfillments.ListByStore(context.Background(), store)
	if err != nil {
		return err
	}
	if len(list) != n {
		return fmt.Errorf("expected %d records for %s, got %d", n, store, len(list))
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	ec := &engineContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		ec.reset()
		return ctx, nil
	})

	// Given
	ctx.Step(`^the catalog has products "([^"]*)"$`, ec.theCatalogHasProducts)
	ctx.Step(`^the catalog has stores "([^"]*)"$`, ec.theCatalogHasStores)
	ctx.Step(`^warehouse "([^"]*)" exists at "([^"]*)" with capacity (\d+) and stock (\d+)$`, ec.warehouseExists)
	ctx.Step(`^product "([^"]*)" is associated with store "([^"]*)" through warehouse "([^"]*)"$`, ec.isAssociated)

	// When
	ctx.Step(`^I create warehouse "([^"]*)" at "([^"]*)" with capacity (\d+) and stock (\d+)$`, ec.iCreateWarehouse)
	ctx.Step(`^I replace warehouse "([^"]*)" with location "([^"]*)", capacity (\d+) and stock (\d+)$`, ec.iReplaceWarehouse)
	ctx.Step(`^I archive warehouse "([^"]*)"$`, ec.iArchiveWarehouse)
	ctx.Step(`^I associate product "([^"]*)" with store "([^"]*)" through warehouse "([^"]*)"$`, ec.iAssociate)

	// Then
	ctx.Step(`^the operation succeeds$`, ec.theOperationSucceeds)
	ctx.Step(`^the operation fails with "([^"]*)"$`, ec.theOperationFailsWith)
	ctx.Step(`^warehouse "([^"]*)" is archived$`, ec.warehouseIsArchived)
	ctx.Step(`^store "([^"]*)" has (\d+) fulfilment records?$`, ec.storeHasRecords)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
			Strict:   true,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
