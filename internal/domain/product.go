package domain

// Product é um item do catálogo. Aqui ele é apenas consultado pelo nome;
// o cadastro de produtos pertence a outro sistema.
type Product struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

// Store é uma loja física atendida pelos armazéns.
type Store struct {
	ID                      string `json:"id"`
	Name                    string `json:"name"`
	QuantityProductsInStock int    `json:"quantityProductsInStock"`
}
