package domain

// Fulfillment associa um Produto a uma Loja através de um Armazém.
// Não possui identidade própria além da tripla (produto, loja, armazém).
type Fulfillment struct {
	ProductName   string `json:"productName" example:"KALLAX"`
	StoreName     string `json:"storeName" example:"HAARLEM"`
	WarehouseCode string `json:"warehouseBusinessUnitCode" example:"MWH.001"`
}

// Limites de cardinalidade das associações.
const (
	MaxWarehousesPerProductPerStore = 2
	MaxWarehousesPerStore           = 3
	MaxProductsPerWarehouse         = 5
)
