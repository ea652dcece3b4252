package domain

import (
	"encoding/json"
	"time"
)

// WarehouseStatus é o estado do ciclo de vida de um armazém.
// Um armazém nasce ativo e pode ser arquivado uma única vez (estado terminal).
type WarehouseStatus string

const (
	WarehouseActive   WarehouseStatus = "active"
	WarehouseArchived WarehouseStatus = "archived"
)

// Warehouse representa uma unidade física de fulfillment.
// O BusinessUnitCode é a identidade global; Location referencia um identificador do catálogo de locais.
type Warehouse struct {
	BusinessUnitCode string          `json:"businessUnitCode" example:"MWH.001"`
	Location         string          `json:"location" example:"ZWOLLE-001"`
	Capacity         int             `json:"capacity" example:"30"`
	Stock            int             `json:"stock" example:"10"`
	Status           WarehouseStatus `json:"status" example:"active"`
	CreatedAt        time.Time       `json:"createdAt"`
	// ArchivedAt só tem significado quando Status == WarehouseArchived.
	// Armazéns ativos omitem o campo no JSON (ver MarshalJSON).
	ArchivedAt time.Time `json:"archivedAt"`
}

// MarshalJSON omite archivedAt enquanto o armazém está ativo; omitempty
// não enxerga o valor zero de time.Time.
func (w Warehouse) MarshalJSON() ([]byte, error) {
	type plain Warehouse
	out := struct {
		plain
		ArchivedAt *time.Time `json:"archivedAt,omitempty"`
	}{plain: plain(w)}
	if !w.Active() {
		out.ArchivedAt = &w.ArchivedAt
	}
	return json.Marshal(out)
}

// Active indica se o armazém participa das contagens de capacidade
// (vagas por local e cardinalidades de associação).
func (w Warehouse) Active() bool {
	return w.Status != WarehouseArchived
}

// Archive aplica a transição ativo -> arquivado.
// Retorna false quando o armazém já estava arquivado (nada muda).
func (w *Warehouse) Archive(now time.Time) bool {
	if !w.Active() {
		return false
	}
	w.Status = WarehouseArchived
	w.ArchivedAt = now
	return true
}

// WarehouseRequest é o payload de criação/substituição recebido pela API.
type WarehouseRequest struct {
	BusinessUnitCode string `json:"businessUnitCode" example:"MWH.001"`
	Location         string `json:"location" example:"ZWOLLE-001"`
	Capacity         int    `json:"capacity" example:"30"`
	Stock            int    `json:"stock" example:"10"`
}

// ToWarehouse converte o payload em um candidato de domínio.
func (r WarehouseRequest) ToWarehouse() Warehouse {
	return Warehouse{
		BusinessUnitCode: r.BusinessUnitCode,
		Location:         r.Location,
		Capacity:         r.Capacity,
		Stock:            r.Stock,
	}
}
