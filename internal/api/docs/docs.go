// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

// Package docs holds the OpenAPI (Swagger 2.0) document for the HTTP API
// and registers it with swag so http-swagger can serve it at
// /swagger/doc.json.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "AGPL-3.0-or-later",
            "url": "https://www.gnu.org/licenses/agpl-3.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/recommend": {
            "post": {
                "description": "Ranks catalog assessments for the given criteria. Issues a user_id when none is supplied and records a view for the top three results.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Recommendations"],
                "summary": "Get validated recommendations",
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/RecommendRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "Ranked recommendations with quality tier", "schema": {"$ref": "#/definitions/RecommendResponse"}},
                    "400": {"description": "No criteria or invalid fields", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "429": {"description": "Rate limit exceeded", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/feedback": {
            "post": {
                "description": "Records a 1-5 rating and updates the feature weights.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Recommendations"],
                "summary": "Submit rating feedback",
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/FeedbackRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "Feedback recorded", "schema": {"$ref": "#/definitions/StatusResponse"}},
                    "400": {"description": "Invalid rating or unknown assessment", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "429": {"description": "Rate limit exceeded", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/interaction": {
            "post": {
                "description": "Records a view, click, select or rate event.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Recommendations"],
                "summary": "Record an interaction",
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/InteractionRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "Interaction recorded", "schema": {"$ref": "#/definitions/StatusResponse"}},
                    "400": {"description": "Invalid interaction", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/insights": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Insights"],
                "summary": "Engine metrics, feature weights and model info",
                "responses": {
                    "200": {"description": "Insights snapshot", "schema": {"type": "object"}}
                }
            }
        },
        "/api/assessments": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Catalog"],
                "summary": "List the assessment catalog",
                "responses": {
                    "200": {"description": "Catalog items", "schema": {"type": "object"}}
                }
            }
        },
        "/api/db/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Persistence health and statistics",
                "responses": {
                    "200": {"description": "Store status", "schema": {"$ref": "#/definitions/DBHealthResponse"}},
                    "500": {"description": "Statistics unavailable", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Service health",
                "responses": {
                    "200": {"description": "Healthy", "schema": {"$ref": "#/definitions/HealthResponse"}},
                    "503": {"description": "No embeddings loaded", "schema": {"$ref": "#/definitions/HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "RecommendRequest": {
            "type": "object",
            "properties": {
                "user_id": {"type": "string"},
                "role": {"type": "string", "enum": ["Developer", "Manager", "Analyst", "Sales", "Support", "Executive"]},
                "level": {"type": "string"},
                "industry": {"type": "string"},
                "goal": {"type": "string"},
                "query": {"type": "string"},
                "top_k": {"type": "integer", "minimum": 1, "maximum": 50, "default": 10}
            }
        },
        "RecommendResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "user_id": {"type": "string"},
                "quality": {"type": "string", "enum": ["high", "medium", "low", "no_match"]},
                "message": {"type": "string"},
                "recommendations": {"type": "array", "items": {"type": "object"}},
                "suggestions": {"type": "array", "items": {"type": "string"}},
                "metadata": {"type": "object"}
            }
        },
        "FeedbackRequest": {
            "type": "object",
            "required": ["user_id", "assessment_id", "rating"],
            "properties": {
                "user_id": {"type": "string"},
                "assessment_id": {"type": "integer"},
                "rating": {"type": "integer", "minimum": 1, "maximum": 5},
                "context": {"$ref": "#/definitions/FeedbackContext"}
            }
        },
        "FeedbackContext": {
            "type": "object",
            "properties": {
                "features": {"type": "object", "additionalProperties": {"type": "number"}},
                "predicted_score": {"type": "number"}
            }
        },
        "InteractionRequest": {
            "type": "object",
            "required": ["user_id", "assessment_id"],
            "properties": {
                "user_id": {"type": "string"},
                "assessment_id": {"type": "integer"},
                "interaction_type": {"type": "string", "enum": ["view", "click", "select", "rate"], "default": "view"}
            }
        },
        "StatusResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"}
            }
        },
        "HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "model_status": {"type": "string"},
                "embeddings_loaded": {"type": "boolean"},
                "uptime_seconds": {"type": "number"},
                "timestamp": {"type": "string", "format": "date-time"}
            }
        },
        "DBHealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "driver": {"type": "string"},
                "breaker_state": {"type": "string"},
                "statistics": {"type": "object"},
                "timestamp": {"type": "string", "format": "date-time"}
            }
        },
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string"},
                        "message": {"type": "string"},
                        "details": {"type": "object"},
                        "request_id": {"type": "string"}
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Assessrec API",
	Description:      "Hybrid assessment recommendation engine: content, collaborative, rule and feedback signals ranked under learned weights.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
