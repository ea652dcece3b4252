// Package location resolve identificadores de local para seus limites físicos.
// Os dados são fixos: não existe caminho de escrita.
package location

import (
	"sort"
	"strings"

	"gofulfil/internal/domain"
)

// Catalog é o catálogo estático de locais conhecidos.
type Catalog struct {
	byID map[string]domain.Location
}

var defaultLocations = []domain.Location{
	{Identifier: "ZWOLLE-001", MaxNumberOfWarehouses: 1, MaxCapacity: 40},
	{Identifier: "ZWOLLE-002", MaxNumberOfWarehouses: 2, MaxCapacity: 50},
	{Identifier: "AMSTERDAM-001", MaxNumberOfWarehouses: 5, MaxCapacity: 100},
	{Identifier: "AMSTERDAM-002", MaxNumberOfWarehouses: 3, MaxCapacity: 75},
	{Identifier: "TILBURG-001", MaxNumberOfWarehouses: 1, MaxCapacity: 40},
	{Identifier: "HELMOND-001", MaxNumberOfWarehouses: 1, MaxCapacity: 45},
	{Identifier: "EINDHOVEN-001", MaxNumberOfWarehouses: 2, MaxCapacity: 70},
	{Identifier: "VETSBY-001", MaxNumberOfWarehouses: 1, MaxCapacity: 90},
}

// NewCatalog cria o catálogo com os locais padrão.
func NewCatalog() *Catalog {
	return NewCatalogWith(defaultLocations)
}

// NewCatalogWith cria um catálogo a partir de uma lista arbitrária (útil em testes).
// Identificadores repetidos: o último vence.
func NewCatalogWith(locations []domain.Location) *Catalog {
	c := &Catalog{byID: make(map[string]domain.Location, len(locations))}
	for _, l := range locations {
		c.byID[l.Identifier] = l
	}
	return c
}

// Resolve busca o local pelo identificador. Identificador vazio ou desconhecido
// retorna false; nunca falha.
func (c *Catalog) Resolve(identifier string) (domain.Location, bool) {
	id := strings.TrimSpace(identifier)
	if id == "" {
		return domain.Location{}, false
	}
	loc, ok := c.byID[id]
	return loc, ok
}

// All lista os locais ordenados pelo identificador.
func (c *Catalog) All() []domain.Location {
	out := make([]domain.Location, 0, len(c.byID))
	for _, l := range c.byID {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Identifier < out[j].Identifier })
	return out
}
