// Package docs registers the OpenAPI description of the property catalog API
// with swag so gin-swagger can serve it at /swagger/index.html.
//
// Regenerate from the handler annotations with:
//
//	swag init -g cmd/server/main.go -o docs
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
        "/properties": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Properties"],
                "summary": "List properties",
                "operationId": "listProperties",
                "parameters": [
                    {"type": "string", "description": "Exact commune name", "name": "commune", "in": "query"},
                    {"enum": ["Bodega", "Estacionamiento", "Pack", "Oficina"], "type": "string", "description": "Property type", "name": "propertyType", "in": "query"},
                    {"type": "string", "description": "Sale status", "name": "status", "in": "query"},
                    {"type": "integer", "description": "Minimum price (UF)", "name": "minPrice", "in": "query"},
                    {"type": "integer", "description": "Maximum price (UF)", "name": "maxPrice", "in": "query"},
                    {"type": "number", "description": "Minimum annual yield (%)", "name": "minYield", "in": "query"},
                    {"type": "number", "description": "Maximum annual yield (%)", "name": "maxYield", "in": "query"},
                    {"type": "string", "description": "Free-text search", "name": "q", "in": "query"},
                    {"enum": ["price-asc", "price-desc", "yield-desc", "size-desc"], "type": "string", "default": "price-asc", "description": "Sort order", "name": "sort", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Property"}}},
                    "400": {"description": "Unparseable filter", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Properties"],
                "summary": "Create a property",
                "operationId": "createProperty",
                "parameters": [
                    {"description": "Property", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreatePropertyRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Property"}},
                    "400": {"description": "Invalid property", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Property ID already taken", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/properties/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Properties"],
                "summary": "Get a property",
                "operationId": "getProperty",
                "parameters": [
                    {"type": "string", "description": "Property ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Property"}},
                    "404": {"description": "Property not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Properties"],
                "summary": "Update a property",
                "operationId": "updateProperty",
                "parameters": [
                    {"type": "string", "description": "Property ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.PropertyPatch"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Property"}},
                    "400": {"description": "Invalid patch", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Property not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/communes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Communes"],
                "summary": "List communes",
                "operationId": "listCommunes",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Commune"}}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/search": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Properties"],
                "summary": "Search properties",
                "operationId": "searchProperties",
                "parameters": [
                    {"type": "string", "description": "Search text", "name": "q", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Property"}}},
                    "400": {"description": "Missing query", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/calculate": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Calculator"],
                "summary": "Project an investment",
                "operationId": "calculateInvestment",
                "parameters": [
                    {"type": "boolean", "description": "Include the yearly schedule", "name": "breakdown", "in": "query"},
                    {"description": "Projection parameters", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/calculator.Input"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.CalculateResponse"}},
                    "400": {"description": "Out-of-range input", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/investments": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Investments"],
                "summary": "Record an investment",
                "operationId": "createInvestment",
                "parameters": [
                    {"type": "string", "description": "User ID (demo header)", "name": "X-User-ID", "in": "header"},
                    {"type": "string", "description": "Client retry key", "name": "Idempotency-Key", "in": "header"},
                    {"description": "Investment", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateInvestmentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Investment"}, "headers": {"Idempotent-Replayed": {"type": "string", "description": "true when served from a previous request"}}},
                    "400": {"description": "Invalid investment or unknown user/property", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Same Idempotency-Key still in progress", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "429": {"description": "Rate limited", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/portfolio/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Portfolio"],
                "summary": "Portfolio summary",
                "operationId": "portfolioStats",
                "parameters": [
                    {"type": "string", "description": "User ID (demo header)", "name": "X-User-ID", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.PortfolioStats"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/portfolio/investments": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Portfolio"],
                "summary": "List the acting user's investments",
                "operationId": "listPortfolioInvestments",
                "parameters": [
                    {"type": "string", "description": "User ID (demo header)", "name": "X-User-ID", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Investment"}}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/users": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Register a user",
                "operationId": "registerUser",
                "parameters": [
                    {"description": "Account", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.RegisterUserRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.User"}},
                    "400": {"description": "Invalid user", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Username or email taken", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/users/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Get a user",
                "operationId": "getUser",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.User"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "calculator.Input": {
            "type": "object",
            "properties": {
                "amount": {"type": "number", "example": 200},
                "expectedYield": {"type": "number", "example": 12},
                "period": {"type": "integer", "example": 3},
                "propertyType": {"type": "string", "example": "Bodega"}
            }
        },
        "calculator.YearPoint": {
            "type": "object",
            "properties": {
                "year": {"type": "integer"},
                "balance": {"type": "number"},
                "profit": {"type": "number"}
            }
        },
        "handlers.CalculateResponse": {
            "type": "object",
            "properties": {
                "initialAmount": {"type": "number"},
                "futureValue": {"type": "number"},
                "totalProfit": {"type": "number"},
                "monthlyIncome": {"type": "number"},
                "yearlyReturn": {"type": "number"},
                "totalROI": {"type": "number"},
                "period": {"type": "integer"},
                "breakdown": {"type": "array", "items": {"$ref": "#/definitions/calculator.YearPoint"}}
            }
        },
        "domain.Property": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "address": {"type": "string"},
                "commune": {"type": "string"},
                "propertyType": {"type": "string", "enum": ["Bodega", "Estacionamiento", "Pack", "Oficina"]},
                "unitNumber": {"type": "string"},
                "size": {"type": "string", "example": "2.40"},
                "floor": {"type": "string"},
                "status": {"type": "string", "enum": ["Disponible", "Reservado", "Vendido", "En verde", "Entrega inmediata"]},
                "price": {"type": "integer"},
                "originalPrice": {"type": "integer"},
                "discount": {"type": "integer"},
                "annualYield": {"type": "string", "example": "8.1"},
                "viewCount": {"type": "integer"},
                "imageUrl": {"type": "string"},
                "isAvailable": {"type": "boolean"},
                "createdAt": {"type": "string", "format": "date-time"}
            }
        },
        "domain.PropertyPatch": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "address": {"type": "string"},
                "commune": {"type": "string"},
                "propertyType": {"type": "string"},
                "unitNumber": {"type": "string"},
                "size": {"type": "string"},
                "floor": {"type": "string"},
                "status": {"type": "string"},
                "price": {"type": "integer"},
                "originalPrice": {"type": "integer"},
                "discount": {"type": "integer"},
                "annualYield": {"type": "string"},
                "imageUrl": {"type": "string"},
                "isAvailable": {"type": "boolean"}
            }
        },
        "domain.Commune": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "propertyCount": {"type": "integer"},
                "averageYield": {"type": "string"},
                "minPrice": {"type": "integer"},
                "maxPrice": {"type": "integer"}
            }
        },
        "domain.Investment": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "userId": {"type": "string"},
                "propertyId": {"type": "string"},
                "investmentAmount": {"type": "integer"},
                "purchaseDate": {"type": "string", "format": "date-time"},
                "status": {"type": "string", "enum": ["Active", "Completed", "Cancelled"]}
            }
        },
        "domain.PortfolioStats": {
            "type": "object",
            "properties": {
                "totalValue": {"type": "integer"},
                "propertiesCount": {"type": "integer"},
                "monthlyIncome": {"type": "number"},
                "averageYield": {"type": "number"}
            }
        },
        "domain.User": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "username": {"type": "string"},
                "email": {"type": "string"},
                "createdAt": {"type": "string", "format": "date-time"}
            }
        },
        "handlers.CreatePropertyRequest": {
            "type": "object",
            "required": ["name", "address", "commune", "propertyType", "status"],
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "address": {"type": "string"},
                "commune": {"type": "string"},
                "propertyType": {"type": "string"},
                "unitNumber": {"type": "string"},
                "size": {"type": "string"},
                "floor": {"type": "string"},
                "status": {"type": "string"},
                "price": {"type": "integer"},
                "originalPrice": {"type": "integer"},
                "discount": {"type": "integer"},
                "annualYield": {"type": "string"},
                "imageUrl": {"type": "string"},
                "isAvailable": {"type": "boolean"}
            }
        },
        "handlers.CreateInvestmentRequest": {
            "type": "object",
            "required": ["propertyId"],
            "properties": {
                "userId": {"type": "string"},
                "propertyId": {"type": "string", "example": "prop-ceppi-1"},
                "investmentAmount": {"type": "integer"},
                "status": {"type": "string", "enum": ["Active", "Completed", "Cancelled"]},
                "purchaseDate": {"type": "string", "format": "date-time"}
            }
        },
        "handlers.RegisterUserRequest": {
            "type": "object",
            "required": ["username", "email", "password"],
            "properties": {
                "username": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "request_id": {"type": "string"},
                "code": {"type": "string", "example": "not_found"},
                "message": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Property Catalog API",
	Description:      "Listings, yield calculator, investments and portfolio stats for the property marketing site.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
