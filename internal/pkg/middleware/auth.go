package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"gofulfil/internal/domain"
	"gofulfil/internal/pkg/token"
)

// ContextKey é o tipo das chaves de contexto deste pacote.
type ContextKey int

const (
	OperatorClaimsKey ContextKey = iota
)

// OperatorClaims representa os dados do operador extraídos do token JWT.
type OperatorClaims struct {
	OperatorID string
	Role       domain.OperatorRole
}

// TokenService define o contrato de validação necessário para o middleware.
type TokenService interface {
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

func writeError(w http.ResponseWriter, status int, category, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(domain.ErrorResponse{Code: status, Category: category, Message: message})
}

// NewAuthMiddleware valida o JWT do header Authorization e anexa as claims ao contexto.
func NewAuthMiddleware(tokenSvc TokenService) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || tokenString == "" {
				writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Token de autorização ausente ou malformado.")
				return
			}

			claims, err := tokenSvc.ValidateToken(tokenString)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Token inválido ou expirado.")
				return
			}

			ctx := context.WithValue(r.Context(), OperatorClaimsKey, OperatorClaims{
				OperatorID: claims.OperatorID,
				Role:       domain.OperatorRole(claims.Role),
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// GetOperatorClaimsFromContext extrai as claims anexadas pelo NewAuthMiddleware.
func GetOperatorClaimsFromContext(ctx context.Context) (OperatorClaims, bool) {
	claims, ok := ctx.Value(OperatorClaimsKey).(OperatorClaims)
	return claims, ok
}

// PermissionMiddleware só deixa passar operadores com um dos papéis informados.
func PermissionMiddleware(requiredRoles ...domain.OperatorRole) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetOperatorClaimsFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Autorização necessária. Token não processado.")
				return
			}

			for _, role := range requiredRoles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Acesso negado. Você não tem a permissão necessária.")
		}
	}
}
