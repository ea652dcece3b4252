package domain

import "time"

// Operator é a conta de quem opera a API (cria armazéns, registra associações).
type Operator struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Nunca exposto no JSON
	Role         OperatorRole `json:"role"`
	CreatedAt    time.Time    `json:"created_at"`
}

// OperatorRole define o papel do operador no sistema.
type OperatorRole string

const (
	RoleAdmin    OperatorRole = "admin"
	RoleOperator OperatorRole = "operator"
	// RoleViewer só lê; é o papel do autocadastro.
	RoleViewer OperatorRole = "viewer"
)

// OperatorRegistration representa o payload de entrada para o registro.
type OperatorRegistration struct {
	Email    string `json:"email" example:"ops@gofulfil.local"`
	Password string `json:"password" example:"s3cret!!"`
}
