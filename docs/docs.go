// Package docs holds the OpenAPI document served at /swagger. It mirrors the
// swag annotations in cmd/server and internal/api/handler; regenerate it with
// `swag init -g cmd/server/main.go` after changing them.
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
        "/api/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [
                    {
                        "description": "User registration details",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.registerRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.userResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {
                        "description": "Login credentials",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.loginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.userResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/auth/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            }
        },
        "/api/auth/session": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current session",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionResponse"}}
                }
            }
        },
        "/api/auth/profile": {
            "patch": {
                "security": [{"CookieAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Update profile",
                "parameters": [
                    {
                        "description": "Fields to change",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.profileRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.userResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/bookings/{id}": {
            "get": {
                "security": [{"CookieAuth": []}],
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "Get one of my bookings",
                "parameters": [
                    {"type": "string", "description": "Booking record id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.bookingResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/bookings/{id}/voucher": {
            "get": {
                "security": [{"CookieAuth": []}],
                "produces": ["application/pdf"],
                "tags": ["bookings"],
                "summary": "Download a booking voucher",
                "parameters": [
                    {"type": "string", "description": "Booking record id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/listings": {
            "get": {
                "produces": ["application/json"],
                "tags": ["content"],
                "summary": "List published listings",
                "parameters": [
                    {"type": "string", "description": "Destination slug", "name": "destination", "in": "query"},
                    {"type": "boolean", "description": "Only featured listings", "name": "featured", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.listingsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/listings/{slug}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["content"],
                "summary": "Get a listing",
                "parameters": [
                    {"type": "string", "description": "Listing slug", "name": "slug", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.listingResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/destinations": {
            "get": {
                "produces": ["application/json"],
                "tags": ["content"],
                "summary": "List destinations",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.destinationsResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/blog": {
            "get": {
                "produces": ["application/json"],
                "tags": ["content"],
                "summary": "List blog posts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.postsResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/blog/{slug}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["content"],
                "summary": "Get a blog post",
                "parameters": [
                    {"type": "string", "description": "Post slug", "name": "slug", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.postResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/provider/listings": {
            "get": {
                "security": [{"CookieAuth": []}],
                "produces": ["application/json"],
                "tags": ["content"],
                "summary": "List my listings (service providers)",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.listingsResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handler.messageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "handler.registerRequest": {
            "type": "object",
            "required": ["email", "password", "fullName", "userType"],
            "properties": {
                "email": {"type": "string", "maxLength": 254},
                "password": {"type": "string", "maxLength": 72},
                "fullName": {"type": "string", "maxLength": 200},
                "userType": {"type": "string", "example": "Traveler"},
                "phoneNumber": {"type": "string", "maxLength": 40}
            }
        },
        "handler.loginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handler.profileRequest": {
            "type": "object",
            "properties": {
                "fullName": {"type": "string", "maxLength": 200},
                "phoneNumber": {"type": "string", "maxLength": 40}
            }
        },
        "domain.User": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "userId": {"type": "string"},
                "email": {"type": "string"},
                "fullName": {"type": "string"},
                "userType": {"type": "string"},
                "phoneNumber": {"type": "string"},
                "accountStatus": {"type": "string"},
                "joinDate": {"type": "string"},
                "profilePhoto": {"type": "string"}
            }
        },
        "handler.userResponse": {
            "type": "object",
            "properties": {"user": {"$ref": "#/definitions/domain.User"}}
        },
        "handler.sessionResponse": {
            "type": "object",
            "properties": {"user": {"$ref": "#/definitions/domain.User"}}
        },
        "handler.bookingResponse": {
            "type": "object",
            "properties": {"booking": {"type": "object"}}
        },
        "handler.listingsResponse": {
            "type": "object",
            "properties": {"listings": {"type": "array", "items": {"type": "object"}}}
        },
        "handler.listingResponse": {
            "type": "object",
            "properties": {"listing": {"type": "object"}}
        },
        "handler.destinationsResponse": {
            "type": "object",
            "properties": {"destinations": {"type": "array", "items": {"type": "object"}}}
        },
        "handler.postsResponse": {
            "type": "object",
            "properties": {"posts": {"type": "array", "items": {"type": "object"}}}
        },
        "handler.postResponse": {
            "type": "object",
            "properties": {"post": {"type": "object"}}
        }
    },
    "securityDefinitions": {
        "CookieAuth": {
            "type": "apiKey",
            "name": "auth_token",
            "in": "cookie"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "TourHub Marketplace API",
	Description:      "Accounts, sessions, bookings and published content for the TourHub tours marketplace.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
