package memory

import (
	"context"
	"sort"

	"gofulfil/internal/domain"
	"gofulfil/internal/service/operatorservice"
)

// WarehouseRepository é a visão de armazéns do Store.
type WarehouseRepository struct{ s *Store }

// Warehouses devolve o repositório de armazéns.
func (s *Store) Warehouses() *WarehouseRepository { return &WarehouseRepository{s: s} }

func (r *WarehouseRepository) FindByCode(_ context.Context, code string) (domain.Warehouse, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	w, ok := r.s.warehouses[code]
	return w, ok, nil
}

func (r *WarehouseRepository) Create(_ context.Context, w domain.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.warehouses[w.BusinessUnitCode] = w
	return nil
}

// Update preserva o código e a data de criação do registro armazenado.
func (r *WarehouseRepository) Update(_ context.Context, w domain.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.warehouses[w.BusinessUnitCode]
	if !ok {
		return nil
	}
	w.CreatedAt = current.CreatedAt
	r.s.warehouses[w.BusinessUnitCode] = w
	return nil
}

func (r *WarehouseRepository) CountActiveByLocation(_ context.Context, location string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, w := range r.s.warehouses {
		if w.Location == location && w.Active() {
			n++
		}
	}
	return n, nil
}

func (r *WarehouseRepository) List(_ context.Context) ([]domain.Warehouse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]domain.Warehouse, 0, len(r.s.warehouses))
	for _, w := range r.s.warehouses {
		list = append(list, w)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].BusinessUnitCode < list[j].BusinessUnitCode })
	return list, nil
}

// FulfillmentRepository é a visão de associações do Store.
type FulfillmentRepository struct{ s *Store }

// Fulfillments devolve o repositório de associações.
func (s *Store) Fulfillments() *FulfillmentRepository { return &FulfillmentRepository{s: s} }

// active percorre as associações cujo armazém não está arquivado. Chamar com mu travado.
func (r *FulfillmentRepository) active(match func(domain.Fulfillment) bool) []domain.Fulfillment {
	var out []domain.Fulfillment
	for _, f := range r.s.fulfillments {
		if w, ok := r.s.warehouses[f.WarehouseCode]; ok && !w.Active() {
			continue
		}
		if match(f) {
			out = append(out, f)
		}
	}
	return out
}

func distinct(list []domain.Fulfillment, key func(domain.Fulfillment) string) int {
	seen := make(map[string]struct{}, len(list))
	for _, f := range list {
		seen[key(f)] = struct{}{}
	}
	return len(seen)
}

func byWarehouse(f domain.Fulfillment) string { return f.WarehouseCode }
func byProduct(f domain.Fulfillment) string   { return f.ProductName }

func (r *FulfillmentRepository) Exists(_ context.Context, product, store, warehouse string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	want := domain.Fulfillment{ProductName: product, StoreName: store, WarehouseCode: warehouse}
	for _, f := range r.s.fulfillments {
		if f == want {
			return true, nil
		}
	}
	return false, nil
}

func (r *FulfillmentRepository) CountWarehousesForProductInStore(_ context.Context, product, store string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return distinct(r.active(func(f domain.Fulfillment) bool {
		return f.ProductName == product && f.StoreName == store
	}), byWarehouse), nil
}

func (r *FulfillmentRepository) CountDistinctWarehousesForStore(_ context.Context, store string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return distinct(r.active(func(f domain.Fulfillment) bool { return f.StoreName == store }), byWarehouse), nil
}

func (r *FulfillmentRepository) CountDistinctProductsForWarehouse(_ context.Context, warehouse string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return distinct(r.active(func(f domain.Fulfillment) bool { return f.WarehouseCode == warehouse }), byProduct), nil
}

func (r *FulfillmentRepository) IsWarehouseAssociatedWithStore(_ context.Context, warehouse, store string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.active(func(f domain.Fulfillment) bool {
		return f.WarehouseCode == warehouse && f.StoreName == store
	})) > 0, nil
}

func (r *FulfillmentRepository) IsProductAssociatedWithWarehouse(_ context.Context, product, warehouse string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.active(func(f domain.Fulfillment) bool {
		return f.ProductName == product && f.WarehouseCode == warehouse
	})) > 0, nil
}

func (r *FulfillmentRepository) Save(_ context.Context, f domain.Fulfillment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.fulfillments {
		if existing == f {
			return nil
		}
	}
	r.s.fulfillments = append(r.s.fulfillments, f)
	return nil
}

func (r *FulfillmentRepository) ListByStore(_ context.Context, store string) ([]domain.Fulfillment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := r.active(func(f domain.Fulfillment) bool { return f.StoreName == store })
	if list == nil {
		list = []domain.Fulfillment{}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].ProductName != list[j].ProductName {
			return list[i].ProductName < list[j].ProductName
		}
		return list[i].WarehouseCode < list[j].WarehouseCode
	})
	return list, nil
}

// CatalogRepository é a visão de produtos e lojas do Store.
type CatalogRepository struct{ s *Store }

// Catalog devolve o repositório de catálogo.
func (s *Store) Catalog() *CatalogRepository { return &CatalogRepository{s: s} }

func (r *CatalogRepository) FindProductByName(_ context.Context, name string) (domain.Product, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[name]
	return p, ok, nil
}

func (r *CatalogRepository) FindStoreByName(_ context.Context, name string) (domain.Store, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	st, ok := r.s.stores[name]
	return st, ok, nil
}

// OperatorRepository é a visão de operadores do Store.
type OperatorRepository struct{ s *Store }

// Operators devolve o repositório de operadores.
func (s *Store) Operators() *OperatorRepository { return &OperatorRepository{s: s} }

func (r *OperatorRepository) Save(_ context.Context, op domain.Operator) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, taken := r.s.operators[op.Email]; taken {
		return operatorservice.ErrEmailTaken
	}
	r.s.operators[op.Email] = op
	return nil
}

func (r *OperatorRepository) FindByEmail(_ context.Context, email string) (domain.Operator, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	op, ok := r.s.operators[email]
	return op, ok, nil
}

func (r *OperatorRepository) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.operators), nil
}
