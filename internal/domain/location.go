package domain

// Location é um dado de referência imutável com os limites físicos de um local.
type Location struct {
	Identifier            string `json:"identifier" example:"ZWOLLE-001"`
	MaxNumberOfWarehouses int    `json:"maxNumberOfWarehouses" example:"1"`
	MaxCapacity           int    `json:"maxCapacity" example:"40"`
}
