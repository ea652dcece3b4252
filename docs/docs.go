// Package docs registra a especificação OpenAPI servida em /swagger/.
// Gerado a partir das anotações dos handlers com `swag init -g cmd/main.go`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/warehouses": {
            "get": {
                "produces": ["application/json"],
                "tags": ["warehouses"],
                "summary": "Lista todos os armazéns",
                "responses": {
                    "200": {"description": "Lista de armazéns", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Warehouse"}}},
                    "500": {"description": "Erro interno do servidor", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["warehouses"],
                "summary": "Cria um novo armazém",
                "parameters": [{"description": "Dados do armazém", "name": "warehouse", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.WarehouseRequest"}}],
                "responses": {
                    "201": {"description": "Armazém criado com sucesso", "schema": {"$ref": "#/definitions/domain.Warehouse"}},
                    "400": {"description": "Regra de negócio violada ou payload inválido", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "409": {"description": "Conflito de escrita concorrente", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/warehouses/{code}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["warehouses"],
                "summary": "Obtém um armazém pelo código",
                "parameters": [{"type": "string", "description": "Código de unidade de negócio", "name": "code", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Armazém encontrado", "schema": {"$ref": "#/definitions/domain.Warehouse"}},
                    "404": {"description": "Armazém não encontrado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["warehouses"],
                "summary": "Substitui um armazém",
                "parameters": [
                    {"type": "string", "description": "Código de unidade de negócio", "name": "code", "in": "path", "required": true},
                    {"description": "Novos dados", "name": "warehouse", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.WarehouseRequest"}}
                ],
                "responses": {
                    "200": {"description": "Armazém substituído", "schema": {"$ref": "#/definitions/domain.Warehouse"}},
                    "400": {"description": "Regra de negócio violada", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["warehouses"],
                "summary": "Arquiva um armazém",
                "parameters": [{"type": "string", "description": "Código de unidade de negócio", "name": "code", "in": "path", "required": true}],
                "responses": {"204": {"description": "Arquivado (ou nada a fazer)"}}
            }
        },
        "/fulfillments": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["fulfillments"],
                "summary": "Associa produto, loja e armazém",
                "parameters": [{"description": "Trio produto/loja/armazém", "name": "fulfillment", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.Fulfillment"}}],
                "responses": {
                    "201": {"description": "Associação registrada", "schema": {"$ref": "#/definitions/domain.Fulfillment"}},
                    "400": {"description": "Referência inexistente ou limite de cardinalidade", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/stores/{name}/fulfillments": {
            "get": {
                "produces": ["application/json"],
                "tags": ["fulfillments"],
                "summary": "Lista as associações de uma loja",
                "parameters": [{"type": "string", "description": "Nome da loja", "name": "name", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Associações ativas", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Fulfillment"}}},
                    "404": {"description": "Loja não encontrada", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/locations": {
            "get": {
                "produces": ["application/json"],
                "tags": ["locations"],
                "summary": "Lista os locais conhecidos",
                "responses": {"200": {"description": "Locais e seus limites", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Location"}}}}
            }
        },
        "/operators": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["operators"],
                "summary": "Cadastra um operador com permissão de escrita",
                "parameters": [{"description": "Credenciais do novo operador", "name": "registration", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.OperatorRegistration"}}],
                "responses": {
                    "201": {"description": "Operador criado", "schema": {"$ref": "#/definitions/domain.Operator"}},
                    "403": {"description": "Apenas admins", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "409": {"description": "Email já cadastrado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/operators/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["operators"],
                "summary": "Registra um novo operador",
                "parameters": [{"description": "Credenciais de registro", "name": "registration", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.OperatorRegistration"}}],
                "responses": {
                    "201": {"description": "Operador criado", "schema": {"$ref": "#/definitions/domain.Operator"}},
                    "409": {"description": "Email já cadastrado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/operators/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["operators"],
                "summary": "Autentica um operador e retorna um JWT",
                "parameters": [{"description": "Credenciais", "name": "login", "in": "body", "required": true, "schema": {"$ref": "#/definitions/operator.LoginRequest"}}],
                "responses": {
                    "200": {"description": "Token JWT emitido", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Credenciais inválidas", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.ErrorResponse": {
            "type": "object",
            "properties": {
                "category": {"type": "string", "example": "VALIDATION_ERROR"},
                "code": {"type": "integer", "example": 400},
                "message": {"type": "string", "example": "Erro de Validação: local inválido: ROTTERDAM-001"}
            }
        },
        "domain.Fulfillment": {
            "type": "object",
            "properties": {
                "productName": {"type": "string", "example": "KALLAX"},
                "storeName": {"type": "string", "example": "HAARLEM"},
                "warehouseBusinessUnitCode": {"type": "string", "example": "MWH.001"}
            }
        },
        "domain.Location": {
            "type": "object",
            "properties": {
                "identifier": {"type": "string", "example": "ZWOLLE-001"},
                "maxCapacity": {"type": "integer", "example": 40},
                "maxNumberOfWarehouses": {"type": "integer", "example": 1}
            }
        },
        "domain.Operator": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "email": {"type": "string"},
                "id": {"type": "string"},
                "role": {"type": "string"}
            }
        },
        "domain.OperatorRegistration": {
            "type": "object",
            "properties": {
                "email": {"type": "string", "example": "ops@gofulfil.local"},
                "password": {"type": "string", "example": "s3cret!!"}
            }
        },
        "domain.Warehouse": {
            "type": "object",
            "properties": {
                "archivedAt": {"type": "string"},
                "businessUnitCode": {"type": "string", "example": "MWH.001"},
                "capacity": {"type": "integer", "example": 30},
                "createdAt": {"type": "string"},
                "location": {"type": "string", "example": "ZWOLLE-001"},
                "status": {"type": "string", "example": "active"},
                "stock": {"type": "integer", "example": 10}
            }
        },
        "domain.WarehouseRequest": {
            "type": "object",
            "properties": {
                "businessUnitCode": {"type": "string", "example": "MWH.001"},
                "capacity": {"type": "integer", "example": 30},
                "location": {"type": "string", "example": "ZWOLLE-001"},
                "stock": {"type": "integer", "example": 10}
            }
        },
        "operator.LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string", "example": "ops@gofulfil.local"},
                "password": {"type": "string", "example": "s3cret!!"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "gofulfil API",
	Description:      "Motor de restrições de fulfillment: armazéns, locais e associações produto-loja-armazém.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
