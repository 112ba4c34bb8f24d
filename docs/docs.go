// Package docs registers the OpenAPI description served under /swagger.
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
        "/api": {
            "post": {
                "description": "Actions: register, login, getUserData, work, getBusinesses, buyBusiness, collectIncome.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["legacy"],
                "summary": "Legacy action endpoint",
                "parameters": [
                    {"type": "string", "description": "Action name", "name": "action", "in": "query", "required": true},
                    {"description": "Action arguments", "name": "body", "in": "body", "schema": {"$ref": "#/definitions/handler.actionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.FailureResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.FailureResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.FailureResponse"}}
                }
            }
        },
        "/v1/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new player",
                "parameters": [{"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.credentialsRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.successResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.FailureResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.FailureResponse"}}
                }
            }
        },
        "/v1/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [{"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.credentialsRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.loginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.FailureResponse"}}
                }
            }
        },
        "/v1/businesses": {
            "get": {
                "produces": ["application/json"],
                "tags": ["game"],
                "summary": "List businesses",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.businessesResponse"}}}
            }
        },
        "/v1/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["game"],
                "summary": "Current player",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.userDataResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.FailureResponse"}}
                }
            }
        },
        "/v1/me/work": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["game"],
                "summary": "Work",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.workResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handler.FailureResponse"}}
                }
            }
        },
        "/v1/me/businesses": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["game"],
                "summary": "Buy a business",
                "parameters": [{"description": "Business to buy", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.buyBusinessRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.buyBusinessResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.FailureResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.FailureResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.FailureResponse"}}
                }
            }
        },
        "/v1/me/income": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["game"],
                "summary": "Collect income",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.collectIncomeResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.FailureResponse"}}
                }
            }
        },
        "/health": {
            "get": {"produces": ["application/json"], "tags": ["health"], "summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}
        },
        "/health/ready": {
            "get": {"produces": ["application/json"], "tags": ["health"], "summary": "Readiness probe", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}
        }
    },
    "definitions": {
        "domain.BusinessDefinition": {
            "type": "object",
            "properties": {
                "cost": {"type": "integer"},
                "id": {"type": "integer"},
                "income_per_hour": {"type": "integer"},
                "name": {"type": "string"}
            }
        },
        "domain.OwnedBusiness": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "last_collection_time": {"type": "integer"},
                "purchase_time": {"type": "integer"}
            }
        },
        "handler.FailureResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "error": {"type": "string"},
                "retry_after": {"type": "integer"},
                "success": {"type": "boolean"}
            }
        },
        "handler.actionRequest": {
            "type": "object",
            "properties": {
                "businessId": {"type": "integer"},
                "password": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "handler.buyBusinessRequest": {
            "type": "object",
            "properties": {"businessId": {"type": "integer"}}
        },
        "handler.buyBusinessResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "newBalance": {"type": "integer"},
                "newBusiness": {"$ref": "#/definitions/domain.OwnedBusiness"},
                "success": {"type": "boolean"}
            }
        },
        "handler.businessesResponse": {
            "type": "object",
            "properties": {
                "businesses": {"type": "array", "items": {"$ref": "#/definitions/domain.BusinessDefinition"}},
                "success": {"type": "boolean"}
            }
        },
        "handler.collectIncomeResponse": {
            "type": "object",
            "properties": {
                "collected": {"type": "integer"},
                "message": {"type": "string"},
                "newBalance": {"type": "integer"},
                "success": {"type": "boolean"},
                "updatedBusinesses": {"type": "array", "items": {"$ref": "#/definitions/domain.OwnedBusiness"}}
            }
        },
        "handler.credentialsRequest": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "password": {"type": "string", "maxLength": 72},
                "username": {"type": "string", "maxLength": 64}
            }
        },
        "handler.loginResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/handler.userResponse"}
            }
        },
        "handler.successResponse": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}}
        },
        "handler.userDataResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "user": {"$ref": "#/definitions/handler.userResponse"}
            }
        },
        "handler.userResponse": {
            "type": "object",
            "properties": {
                "balance": {"type": "integer"},
                "businesses": {"type": "array", "items": {"$ref": "#/definitions/domain.OwnedBusiness"}},
                "last_work_time": {"type": "integer"},
                "pending_income": {"type": "integer"},
                "username": {"type": "string"}
            }
        },
        "handler.workResponse": {
            "type": "object",
            "properties": {
                "last_work_time": {"type": "integer"},
                "message": {"type": "string"},
                "newBalance": {"type": "integer"},
                "success": {"type": "boolean"}
            }
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
	Title:            "Tycoon API",
	Description:      "Idle business game backend.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
