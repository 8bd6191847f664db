// Package docs registers the OpenAPI description served at /swagger/*.
// Regenerate with: swag init -g cmd/api/main.go -o docs
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
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {"description": "Login credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.loginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorBody"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorBody"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handler.errorBody"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorBody"}}
                }
            }
        },
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [
                    {"description": "User registration details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.registerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.User"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorBody"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorBody"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.User"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorBody"}}
                }
            }
        },
        "/v1/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "List users",
                "parameters": [
                    {"type": "integer", "default": 0, "name": "skip", "in": "query"},
                    {"type": "integer", "default": 100, "name": "limit", "in": "query"},
                    {"enum": ["superadmin", "admin1", "admin2", "user"], "type": "string", "name": "role", "in": "query"},
                    {"type": "boolean", "name": "is_active", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorBody"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Create user",
                "parameters": [
                    {"description": "Account", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.createUserRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.User"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorBody"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorBody"}}
                }
            }
        },
        "/v1/users/{username}/role": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Change role",
                "parameters": [
                    {"type": "string", "name": "username", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.changeRoleRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.User"}}}
            }
        },
        "/v1/users/{username}/active": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Set active flag",
                "parameters": [
                    {"type": "string", "name": "username", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.setActiveRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.User"}}}
            }
        },
        "/v1/employees": {"get": {"security": [{"BearerAuth": []}], "tags": ["records"], "summary": "List employees", "responses": {"200": {"description": "OK"}}}},
        "/v1/employees/{id}": {"get": {"security": [{"BearerAuth": []}], "tags": ["records"], "summary": "Get employee", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/v1/departments": {"get": {"security": [{"BearerAuth": []}], "tags": ["records"], "summary": "List departments", "responses": {"200": {"description": "OK"}}}},
        "/v1/projects": {"get": {"security": [{"BearerAuth": []}], "tags": ["records"], "summary": "List projects", "responses": {"200": {"description": "OK"}}}},
        "/v1/projects/{id}": {"get": {"security": [{"BearerAuth": []}], "tags": ["records"], "summary": "Get project", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/v1/customers": {"get": {"security": [{"BearerAuth": []}], "tags": ["records"], "summary": "List customers", "responses": {"200": {"description": "OK"}}}},
        "/v1/materials": {"get": {"security": [{"BearerAuth": []}], "tags": ["records"], "summary": "List materials", "responses": {"200": {"description": "OK"}}}},
        "/v1/time-entries": {"get": {"security": [{"BearerAuth": []}], "tags": ["records"], "summary": "List time entries", "responses": {"200": {"description": "OK"}}}},
        "/v1/leave-requests": {"get": {"security": [{"BearerAuth": []}], "tags": ["records"], "summary": "List leave requests", "responses": {"200": {"description": "OK"}}}},
        "/v1/tools": {"get": {"security": [{"BearerAuth": []}], "tags": ["records"], "summary": "List tools", "responses": {"200": {"description": "OK"}}}},
        "/v1/analytics/dashboard": {"get": {"security": [{"BearerAuth": []}], "tags": ["analytics"], "summary": "Dashboard analytics", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/v1/audit": {"get": {"security": [{"BearerAuth": []}], "tags": ["audit"], "summary": "List audit events", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/health": {"get": {"tags": ["health"], "summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}},
        "/health/ready": {"get": {"tags": ["health"], "summary": "Readiness probe", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}}
    },
    "definitions": {
        "domain.User": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "username": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string"},
                "is_active": {"type": "boolean"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"},
                "last_login_at": {"type": "string"}
            }
        },
        "handler.errorBody": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "required_roles": {"type": "array", "items": {"type": "string"}}
            }
        },
        "handler.loginRequest": {
            "type": "object",
            "properties": {"username": {"type": "string"}, "password": {"type": "string"}}
        },
        "handler.loginResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "token_type": {"type": "string"},
                "expires_in": {"type": "integer"},
                "user": {"$ref": "#/definitions/domain.User"}
            }
        },
        "handler.registerRequest": {
            "type": "object",
            "required": ["email", "password", "username"],
            "properties": {
                "username": {"type": "string", "maxLength": 50, "minLength": 3},
                "email": {"type": "string"},
                "password": {"type": "string", "maxLength": 72, "minLength": 8}
            }
        },
        "handler.createUserRequest": {
            "type": "object",
            "required": ["email", "password", "role", "username"],
            "properties": {
                "username": {"type": "string", "maxLength": 50, "minLength": 3},
                "email": {"type": "string"},
                "password": {"type": "string", "maxLength": 72, "minLength": 8},
                "role": {"type": "string", "enum": ["superadmin", "admin1", "admin2", "user"]}
            }
        },
        "handler.changeRoleRequest": {
            "type": "object",
            "required": ["role"],
            "properties": {"role": {"type": "string", "enum": ["superadmin", "admin1", "admin2", "user"]}}
        },
        "handler.setActiveRequest": {
            "type": "object",
            "required": ["is_active"],
            "properties": {"is_active": {"type": "boolean"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "SME Back-Office API",
	Description:      "Authentication, role-based access control and read access to SME back-office records.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
