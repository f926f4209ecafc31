// Package docs is generated by swaggo/swag from the handler annotations.
// Regenerate with `swag init -g cmd/api/main.go`.
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
				"tags": [
					"Health"
				],
				"summary": "Health check",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/assistant/commands": {
			"post": {
				"tags": [
					"Assistant"
				],
				"summary": "Dispatch a voice command",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/assistant.CommandRequest"
						}
					}
				]
			}
		},
		"/assistant/commands/audio": {
			"post": {
				"tags": [
					"Assistant"
				],
				"summary": "Dispatch a recorded voice command",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/assistant.AudioCommandRequest"
						}
					}
				]
			}
		},
		"/assistant/classify": {
			"post": {
				"tags": [
					"Assistant"
				],
				"summary": "Classify a transcript",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/assistant.ClassifyRequest"
						}
					}
				]
			}
		},
		"/assistant/symptoms/analyze": {
			"post": {
				"tags": [
					"Assistant"
				],
				"summary": "Analyze symptoms",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/assistant.AnalyzeSymptomsRequest"
						}
					}
				]
			}
		},
		"/assistant/medications/reminders": {
			"post": {
				"tags": [
					"Assistant"
				],
				"summary": "Set a medication reminder",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/assistant.MedicationReminderRequest"
						}
					}
				]
			}
		},
		"/appointments": {
			"get": {
				"tags": [
					"Appointments"
				],
				"summary": "List upcoming appointments",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Max results (1-100)",
						"name": "limit",
						"in": "query"
					}
				]
			}
		},
		"/appointments/{id}": {
			"get": {
				"tags": [
					"Appointments"
				],
				"summary": "Get appointment",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/appointments/{id}/status": {
			"patch": {
				"tags": [
					"Appointments"
				],
				"summary": "Change appointment status",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/appointment.UpdateStatusRequest"
						}
					}
				]
			}
		},
		"/appointments/{id}/call/start": {
			"post": {
				"tags": [
					"Appointments"
				],
				"summary": "Start the video call",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/appointments/{id}/call/end": {
			"post": {
				"tags": [
					"Appointments"
				],
				"summary": "End the video call",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/appointments/{id}/summary": {
			"post": {
				"tags": [
					"Appointments"
				],
				"summary": "Summarize a consultation",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK"
					}
				},
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/appointment.SummarizeCallRequest"
						}
					}
				]
			},
			"get": {
				"tags": [
					"Appointments"
				],
				"summary": "Get consultation summary",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/symptoms": {
			"get": {
				"tags": [
					"Symptoms"
				],
				"summary": "Symptom history",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Patient ID (doctors only)",
						"name": "patient_id",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Max results (1-100)",
						"name": "limit",
						"in": "query"
					}
				]
			}
		},
		"/alerts": {
			"get": {
				"tags": [
					"Alerts"
				],
				"summary": "Active emergency alerts",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Max results (1-100)",
						"name": "limit",
						"in": "query"
					}
				]
			},
			"post": {
				"tags": [
					"Alerts"
				],
				"summary": "Raise an emergency alert",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK"
					}
				},
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/alert.RaiseAlertRequest"
						}
					}
				]
			}
		},
		"/alerts/{id}/resolve": {
			"post": {
				"tags": [
					"Alerts"
				],
				"summary": "Resolve an emergency alert",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/alerts/stream": {
			"get": {
				"tags": [
					"Alerts"
				],
				"summary": "Alert stream",
				"produces": [
					"application/json"
				],
				"responses": {
					"101": {
						"description": "Switching Protocols"
					}
				},
				"description": "Websocket pushing every created or resolved alert as JSON",
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/webhooks/livekit": {
			"post": {
				"tags": [
					"Webhooks"
				],
				"summary": "LiveKit Webhook",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/webhooks/voice": {
			"post": {
				"tags": [
					"Webhooks"
				],
				"summary": "Voice agent webhook",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "hex HMAC-SHA256 of the body",
						"name": "X-Voice-Signature",
						"in": "header",
						"required": true
					},
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/assistant.VoiceWebhookRequest"
						}
					}
				]
			}
		}
	},
	"definitions": {
		"assistant.CommandRequest": {
			"type": "object",
			"required": [
				"transcript"
			],
			"properties": {
				"transcript": {
					"type": "string"
				},
				"anchor": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"assistant.AudioCommandRequest": {
			"type": "object",
			"required": [
				"audio_url"
			],
			"properties": {
				"audio_url": {
					"type": "string"
				},
				"anchor": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"assistant.ClassifyRequest": {
			"type": "object",
			"required": [
				"transcript"
			],
			"properties": {
				"transcript": {
					"type": "string"
				},
				"anchor": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"assistant.AnalyzeSymptomsRequest": {
			"type": "object",
			"required": [
				"description"
			],
			"properties": {
				"description": {
					"type": "string"
				}
			}
		},
		"assistant.MedicationReminderRequest": {
			"type": "object",
			"required": [
				"dosage",
				"frequency",
				"medicationName",
				"time"
			],
			"properties": {
				"dosage": {
					"type": "string"
				},
				"frequency": {
					"type": "string"
				},
				"medicationName": {
					"type": "string"
				},
				"time": {
					"type": "string"
				}
			}
		},
		"assistant.VoiceWebhookRequest": {
			"type": "object",
			"required": [
				"caller_id",
				"transcript"
			],
			"properties": {
				"caller_id": {
					"type": "string"
				},
				"transcript": {
					"type": "string"
				},
				"anchor": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"appointment.UpdateStatusRequest": {
			"type": "object",
			"required": [
				"status"
			],
			"properties": {
				"status": {
					"type": "string",
					"enum": [
						"scheduled",
						"upcoming",
						"completed",
						"cancelled"
					]
				}
			}
		},
		"appointment.SummarizeCallRequest": {
			"type": "object",
			"required": [
				"transcript"
			],
			"properties": {
				"transcript": {
					"type": "string"
				}
			}
		},
		"alert.RaiseAlertRequest": {
			"type": "object",
			"properties": {
				"reason": {
					"type": "string"
				},
				"location": {
					"type": "string"
				}
			}
		}
	},
	"securityDefinitions": {
		"BearerAuth": {
			"description": "Type \"Bearer\" followed by a space and JWT token.",
			"type": "apiKey",
			"name": "Authorization",
			"in": "header"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:		  "1.0",
	Host:			 "",
	BasePath:		 "/v1",
	Schemes:		  []string{},
	Title:			"Telehealth Assistant API",
	Description:	  "Voice command pipeline, appointments and emergency alerts for the telehealth app",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:		"{{",
	RightDelim:	   "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
