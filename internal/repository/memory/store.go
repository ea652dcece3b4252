// Package memory implementa todos os repositórios em memória, com transações
// serializadas por um mutex. Serve ao modo de desenvolvimento (STORAGE_DRIVER=memory)
// e aos testes de aceitação.
package memory

import (
	"context"
	"sync"

	"gofulfil/internal/domain"
)

// Store guarda o estado compartilhado por todos os repositórios em memória.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	warehouses   map[string]domain.Warehouse
	fulfillments []domain.Fulfillment
	products     map[string]domain.Product
	stores       map[string]domain.Store
	operators    map[string]domain.Operator
}

// NewStore cria um Store vazio.
func NewStore() *Store {
	return &Store{
		warehouses: make(map[string]domain.Warehouse),
		products:   make(map[string]domain.Product),
		stores:     make(map[string]domain.Store),
		operators:  make(map[string]domain.Operator),
	}
}

// DefaultProducts e DefaultStores espelham as sementes da migração SQL.
var (
	DefaultProducts = []domain.Product{
		{ID: "b7a5b2a0-0001-4c1e-9d6a-000000000001", Name: "TONSTAD", Stock: 10},
		{ID: "b7a5b2a0-0001-4c1e-9d6a-000000000002", Name: "KALLAX", Stock: 5},
		{ID: "b7a5b2a0-0001-4c1e-9d6a-000000000003", Name: "BESTÅ", Stock: 3},
	}
	DefaultStores = []domain.Store{
		{ID: "c3d1e9f0-0002-4a7b-8e2c-000000000001", Name: "TONSTAD", QuantityProductsInStock: 10},
		{ID: "c3d1e9f0-0002-4a7b-8e2c-000000000002", Name: "KALLAX", QuantityProductsInStock: 5},
		{ID: "c3d1e9f0-0002-4a7b-8e2c-000000000003", Name: "BESTÅ", QuantityProductsInStock: 3},
	}
)

// Seed adiciona produtos e lojas ao catálogo.
func (s *Store) Seed(products []domain.Product, stores []domain.Store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range products {
		s.products[p.Name] = p
	}
	for _, st := range stores {
		s.stores[st.Name] = st
	}
}

type txKey struct{}

type snapshot struct {
	warehouses   map[string]domain.Warehouse
	fulfillments []domain.Fulfillment
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w := make(map[string]domain.Warehouse, len(s.warehouses))
	for k, v := range s.warehouses {
		w[k] = v
	}
	return snapshot{
		warehouses:   w,
		fulfillments: append([]domain.Fulfillment(nil), s.fulfillments...),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	s.warehouses = snap.warehouses
	s.fulfillments = snap.fulfillments
	s.mu.Unlock()
}

// WithinTx executa fn com exclusão mútua em relação a qualquer outra transação.
// Se fn falhar, armazéns e associações voltam ao estado anterior.
// Chamadas aninhadas reutilizam a transação externa.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, struct{}{})); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}
