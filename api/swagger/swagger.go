package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "SlotBook API",
        "description": "Shareable daily appointment schedules with conflict-free booking",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Schedules", "description": "Schedule lifecycle"},
        {"name": "Appointments", "description": "Booking and bulk clearing"},
        {"name": "Views", "description": "Rendered slot grid"},
        {"name": "Preferences", "description": "Per-schedule view window and granularity"},
        {"name": "Exports", "description": "Agenda downloads"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/schedules": {
            "post": {
                "tags": ["Schedules"],
                "summary": "Create schedule",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateScheduleRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/{id}": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Get schedule metadata",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown slug"}
                }
            },
            "delete": {
                "tags": ["Schedules"],
                "summary": "Delete schedule and its appointments",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "409": {"description": "Partially deleted"}
                }
            }
        },
        "/schedules/{id}/appointments": {
            "get": {
                "tags": ["Appointments"],
                "summary": "List appointments",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Appointments"],
                "summary": "Book appointment",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BookAppointmentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Slot taken"}
                }
            },
            "delete": {
                "tags": ["Appointments"],
                "summary": "Delete all appointments",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/schedules/{id}/view": {
            "get": {
                "tags": ["Views"],
                "summary": "Render the schedule grid",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "start", "in": "query", "type": "string"},
                    {"name": "end", "in": "query", "type": "string"},
                    {"name": "granularity", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/{id}/preferences": {
            "get": {
                "tags": ["Preferences"],
                "summary": "Get view preferences",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Preferences"],
                "summary": "Save view preferences",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SavePreferenceRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/{id}/export": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download the agenda",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        }
    },
    "definitions": {
        "Schedule": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "icon": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "Appointment": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "schedule_id": {"type": "string"},
                "name": {"type": "string"},
                "start_time": {"type": "string"},
                "end_time": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "ViewConfig": {
            "type": "object",
            "properties": {
                "window_start": {"type": "string"},
                "window_end": {"type": "string"},
                "granularity_minutes": {"type": "integer"}
            }
        },
        "CreateScheduleRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "icon": {"type": "string"},
                "window_start": {"type": "string"},
                "window_end": {"type": "string"},
                "granularity_minutes": {"type": "integer"}
            },
            "required": ["title"]
        },
        "BookAppointmentRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "start_time": {"type": "string"},
                "duration_minutes": {"type": "integer"}
            },
            "required": ["name", "start_time", "duration_minutes"]
        },
        "SavePreferenceRequest": {
            "type": "object",
            "properties": {
                "window_start": {"type": "string"},
                "window_end": {"type": "string"},
                "granularity_minutes": {"type": "integer"}
            },
            "required": ["window_start", "window_end"]
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
