// Package docs registers the OpenAPI description served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/health": {"get": {"tags": ["system"], "summary": "Health check", "responses": {"200": {"description": "OK"}}}},
        "/auth/sign-up": {"post": {"tags": ["auth"], "summary": "Register an admin", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/auth/sign-in": {"post": {"tags": ["auth"], "summary": "Sign in", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/api/v1/services": {"get": {"tags": ["catalog"], "summary": "List service categories", "responses": {"200": {"description": "OK"}}}},
        "/api/v1/sessions": {"post": {"tags": ["sessions"], "summary": "Mount a discovery view", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}},
        "/api/v1/sessions/{id}": {
            "get": {"tags": ["sessions"], "summary": "Get view output", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["sessions"], "summary": "Unmount a discovery view", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}}
        },
        "/api/v1/sessions/{id}/filter": {"put": {"tags": ["sessions"], "summary": "Set search text and service filter", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}},
        "/api/v1/sessions/{id}/page": {"put": {"tags": ["sessions"], "summary": "Go to page", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/api/v1/sessions/{id}/select": {"post": {"tags": ["sessions"], "summary": "Select a company from the list", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/api/v1/sessions/{id}/map-click": {"post": {"tags": ["sessions"], "summary": "Report a marker click", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/api/v1/sessions/{id}/selection": {"delete": {"tags": ["sessions"], "summary": "Close the detail panel", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/api/v1/sessions/{id}/detail": {"get": {"tags": ["sessions"], "summary": "Get the detail panel", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/api/v1/companies": {"post": {"tags": ["companies"], "summary": "Create a company", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}}},
        "/api/v1/events": {"get": {"tags": ["events"], "summary": "List selection events", "security": [{"BearerAuth": []}], "parameters": [
            {"name": "session", "in": "query", "type": "string"},
            {"name": "from", "in": "query", "type": "string"},
            {"name": "to", "in": "query", "type": "string"},
            {"name": "type", "in": "query", "type": "string", "enum": ["SELECT", "CLEAR", "SELECT_MISS"]}
        ], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Pet Discovery API",
	Description:      "Location-based discovery of pet-care companies: filtering, pagination and list/map selection sync.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
