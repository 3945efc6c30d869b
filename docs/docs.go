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
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Create an account",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/credentials"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Exchange credentials for a bearer token",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/credentials"}}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/auth/federated": {
            "post": {
                "tags": ["auth"],
                "summary": "Sign in with an ID token from the federated issuer",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "501": {"description": "Not Implemented"}}
            }
        },
        "/auth/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Revoke the current token",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/habits": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["habits"],
                "summary": "List habits, newest first",
                "parameters": [{"type": "string", "in": "query", "name": "category"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Habit"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["habits"],
                "summary": "Create a habit",
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Habit"}}, "400": {"description": "Bad Request"}}
            }
        },
        "/habits/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["habits"], "summary": "Get a habit", "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["habits"], "summary": "Update a habit", "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["habits"], "summary": "Delete a habit", "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/habits/{id}/reminders": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["habits"], "summary": "Arm the reminders of a habit for one day", "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}, {"type": "string", "in": "query", "name": "date"}], "responses": {"200": {"description": "OK"}}}
        },
        "/habits/{id}/checkins": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["checkins"], "summary": "List check-ins", "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}, {"type": "string", "in": "query", "name": "from"}, {"type": "string", "in": "query", "name": "to"}], "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.CheckIn"}}}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["checkins"], "summary": "Record the state of a habit for one day", "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.CheckIn"}}}}
        },
        "/habits/{id}/checkins/{date}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["checkins"], "summary": "Check-in of one day", "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}, {"type": "string", "in": "path", "name": "date", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/checkins/{id}": {
            "delete": {"security": [{"BearerAuth": []}], "tags": ["checkins"], "summary": "Delete a check-in", "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/habits/{id}/stats": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["stats"], "summary": "Completion statistics for one habit", "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.HabitStats"}}}}
        },
        "/stats": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["stats"], "summary": "Statistics for every habit of the caller", "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.HabitStats"}}}}}
        },
        "/categories": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["categories"], "summary": "List categories", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["categories"], "summary": "Create a category", "responses": {"201": {"description": "Created"}}}
        },
        "/notifications": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["notifications"], "summary": "Delivered reminders of the caller", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["notifications"], "summary": "Prune the caller's old reminders", "parameters": [{"type": "integer", "in": "query", "name": "max_age_minutes"}], "responses": {"204": {"description": "No Content"}}}
        }
    },
    "definitions": {
        "credentials": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "domain.Habit": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "user_id": {"type": "string"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "category": {"type": "string"},
                "is_active": {"type": "boolean"},
                "color": {"type": "string"},
                "repeat_days": {"type": "array", "items": {"type": "integer"}},
                "schedule_times": {"type": "array", "items": {"type": "string"}},
                "notification_minutes_before": {"type": "integer"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "domain.CheckIn": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "habit_id": {"type": "string"},
                "user_id": {"type": "string"},
                "date": {"type": "string"},
                "completed": {"type": "boolean"},
                "time_spent": {"type": "integer"},
                "notes": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        },
        "domain.HabitStats": {
            "type": "object",
            "properties": {
                "habit_id": {"type": "string"},
                "total_days_completed": {"type": "integer"},
                "total_days_incomplete": {"type": "integer"},
                "streak_days": {"type": "integer"},
                "completion_rate": {"type": "integer"},
                "last_completed_date": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Kanso Habits API",
	Description:      "Habit tracking with daily check-ins, statistics and reminders.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
