package warehouseservice

import (
	"context"
	"strings"

	"gofulfil/internal/domain"
	apperror "gofulfil/internal/errors"
)

// LocationResolver resolve um identificador de local para seus limites.
type LocationResolver interface {
	Resolve(identifier string) (domain.Location, bool)
}

// Validator aplica as regras de negócio de criação e substituição de armazéns
// contra o estado atual. Não escreve nada.
type Validator struct {
	repo      WarehouseRepository
	locations LocationResolver
}

// NewValidator cria o validador de armazéns.
func NewValidator(repo WarehouseRepository, locations LocationResolver) *Validator {
	return &Validator{repo: repo, locations: locations}
}

// Validate verifica o candidato. Para substituição, isReplacement deve ser true.
// Toda violação retorna *errors.ValidationError; falhas do repositório são propagadas sem tradução.
func (v *Validator) Validate(ctx context.Context, candidate domain.Warehouse, isReplacement bool) error {
	_, err := v.validate(ctx, &candidate, isReplacement)
	return err
}

// validate devolve também o registro existente (zero-value na criação),
// para que a substituição preserve os campos imutáveis. O local do candidato
// é reescrito com o identificador canônico do catálogo.
func (v *Validator) validate(ctx context.Context, candidate *domain.Warehouse, isReplacement bool) (domain.Warehouse, error) {
	if strings.TrimSpace(candidate.BusinessUnitCode) == "" {
		return domain.Warehouse{}, apperror.NewValidationError("o código de unidade de negócio é obrigatório")
	}

	// 1. Identidade
	existing, found, err := v.repo.FindByCode(ctx, candidate.BusinessUnitCode)
	if err != nil {
		return domain.Warehouse{}, err
	}
	if !isReplacement && found {
		return domain.Warehouse{}, apperror.NewValidationErrorf("código de unidade de negócio já existe: %s", candidate.BusinessUnitCode)
	}
	if isReplacement && !found {
		return domain.Warehouse{}, apperror.NewValidationErrorf("armazém a substituir não encontrado: %s", candidate.BusinessUnitCode)
	}
	if isReplacement && !existing.Active() {
		return domain.Warehouse{}, apperror.NewValidationErrorf("armazém a substituir está arquivado: %s", candidate.BusinessUnitCode)
	}
	if candidate.Capacity < 0 || candidate.Stock < 0 {
		return domain.Warehouse{}, apperror.NewValidationErrorf(
			"capacidade (%d) e estoque (%d) não podem ser negativos", candidate.Capacity, candidate.Stock)
	}

	if isReplacement {
		// 2. Regras exclusivas da substituição: o estoque é herdado sem alteração.
		if candidate.Capacity < existing.Stock {
			return domain.Warehouse{}, apperror.NewValidationErrorf(
				"nova capacidade (%d) não pode ser menor que o estoque atual (%d)", candidate.Capacity, existing.Stock)
		}
		if candidate.Stock != existing.Stock {
			return domain.Warehouse{}, apperror.NewValidationErrorf(
				"estoque do novo armazém (%d) deve ser igual ao estoque atual (%d)", candidate.Stock, existing.Stock)
		}
	}

	// 3. Local
	loc, ok := v.locations.Resolve(candidate.Location)
	if !ok {
		return domain.Warehouse{}, apperror.NewValidationErrorf("local inválido: %s", candidate.Location)
	}
	candidate.Location = loc.Identifier

	// 4. Vagas no local: criação, ou substituição que muda de local.
	moving := isReplacement && existing.Location != candidate.Location
	if !isReplacement || moving {
		count, err := v.repo.CountActiveByLocation(ctx, candidate.Location)
		if err != nil {
			return domain.Warehouse{}, err
		}
		if count >= loc.MaxNumberOfWarehouses {
			return domain.Warehouse{}, apperror.NewValidationErrorf("número máximo de armazéns atingido para o local: %s", candidate.Location)
		}
	}

	// 5. Coerência estoque/capacidade
	if candidate.Stock > candidate.Capacity {
		return domain.Warehouse{}, apperror.NewValidationErrorf(
			"estoque (%d) não pode exceder a capacidade (%d)", candidate.Stock, candidate.Capacity)
	}

	// 6. Teto de capacidade do local
	if candidate.Capacity > loc.MaxCapacity {
		return domain.Warehouse{}, apperror.NewValidationErrorf(
			"capacidade do armazém (%d) excede o limite do local %s (%d)", candidate.Capacity, loc.Identifier, loc.MaxCapacity)
	}

	return existing, nil
}
