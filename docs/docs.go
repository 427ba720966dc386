// Package docs registers the OpenAPI description served at /swagger.
// Regenerate with `swag init -g cmd/main.go` after changing handler annotations.
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        },
        "/api/v1/predictions": {
            "get": {
                "description": "Stored predictions, newest first. Dates filter on prediction_date (inclusive).",
                "produces": ["application/json"],
                "tags": ["predictions"],
                "summary": "List predictions",
                "parameters": [
                    {"type": "string", "example": "Wheat", "description": "Crop type", "name": "crop", "in": "query"},
                    {"type": "string", "description": "District", "name": "district", "in": "query"},
                    {"type": "string", "example": "2026-01-01", "description": "Start date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD')", "name": "from", "in": "query"},
                    {"type": "string", "example": "2026-12-31", "description": "End date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD')", "name": "to", "in": "query"},
                    {"type": "integer", "description": "Max rows (default 100, max 1000)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "count, predictions", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/predictions/latest": {
            "get": {
                "produces": ["application/json"],
                "tags": ["predictions"],
                "summary": "Latest prediction",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Prediction"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "models.Prediction": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "crop_type": {"type": "string"},
                "district": {"type": "string"},
                "year": {"type": "integer"},
                "predicted_price": {"type": "number"},
                "current_price": {"type": "number"},
                "prediction_date": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Crop Price Forecast API",
	Description:      "Session-gated JSON view of recorded crop price predictions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
