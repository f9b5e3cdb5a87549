package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Student Early Warning API",
        "description": "Dropout risk prediction and monitoring service",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Risk", "description": "Dropout risk predictions"},
        {"name": "Monitoring", "description": "Per-student monitoring summaries"},
        {"name": "Dashboard", "description": "Student self-service dashboard"},
        {"name": "Records", "description": "Raw record ingestion"}
    ],
    "paths": {
        "/students/{id}/risk": {
            "get": {
                "tags": ["Risk"],
                "summary": "Dropout risk for one student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Student not found"}
                }
            }
        },
        "/students/risk/batch": {
            "post": {
                "tags": ["Risk"],
                "summary": "Dropout risk for a list of students",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BatchRiskRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}/monitoring": {
            "get": {
                "tags": ["Monitoring"],
                "summary": "Monitoring summary for one student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Student not found"}
                }
            }
        },
        "/students/{id}/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Self-service dashboard for the student behind a user id",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Student not found"}
                }
            }
        },
        "/students/{id}/academics": {
            "get": {
                "tags": ["Records"],
                "summary": "Academic history for a student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Records"],
                "summary": "Append a semester academic record",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateAcademicRecordRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}/attendance": {
            "get": {
                "tags": ["Records"],
                "summary": "Attendance history for a student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Records"],
                "summary": "Append a semester attendance record",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateAttendanceRecordRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}/financial": {
            "get": {
                "tags": ["Records"],
                "summary": "Current financial standing for a student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Records"],
                "summary": "Replace the student's financial standing",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetFinancialRecordRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}/curricular": {
            "get": {
                "tags": ["Records"],
                "summary": "Curricular history for a student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Records"],
                "summary": "Append a semester curricular snapshot",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCurricularUnitRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/model/reload": {
            "post": {
                "tags": ["Risk"],
                "summary": "Reload the risk model artifact",
                "parameters": [
                    {"name": "payload", "in": "body", "required": false, "schema": {"$ref": "#/definitions/ReloadModelRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "RiskAssessment": {
            "type": "object",
            "properties": {
                "student_id": {"type": "string"},
                "risk_level": {"type": "string", "enum": ["unknown", "low", "medium", "high"]},
                "previous_risk_level": {"type": "string"},
                "dropout_probability": {"type": "number"},
                "confidence": {"type": "number"},
                "risk_factors": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/RiskFactor"}
                },
                "model_version": {"type": "string"},
                "prediction_date": {"type": "string"}
            }
        },
        "RiskFactor": {
            "type": "object",
            "properties": {
                "factor": {"type": "string"},
                "value": {"type": "string"},
                "impact": {"type": "string"},
                "recommendation": {"type": "string"}
            }
        },
        "BatchRiskRequest": {
            "type": "object",
            "properties": {
                "student_ids": {
                    "type": "array",
                    "items": {"type": "string"}
                }
            }
        },
        "ReloadModelRequest": {
            "type": "object",
            "properties": {
                "path": {"type": "string"}
            }
        },
        "CreateAcademicRecordRequest": {
            "type": "object",
            "properties": {
                "semester": {"type": "integer"},
                "gpa": {"type": "number"},
                "backlogs": {"type": "integer"}
            },
            "required": ["semester"]
        },
        "CreateAttendanceRecordRequest": {
            "type": "object",
            "properties": {
                "semester": {"type": "integer"},
                "percentage": {"type": "number"},
                "absentee_days": {"type": "integer"}
            },
            "required": ["semester"]
        },
        "SetFinancialRecordRequest": {
            "type": "object",
            "properties": {
                "tuition_status": {"type": "string", "enum": ["on-time", "delayed"]},
                "scholarship": {"type": "boolean"},
                "loan_dependency": {"type": "boolean"}
            },
            "required": ["tuition_status"]
        },
        "CreateCurricularUnitRequest": {
            "type": "object",
            "properties": {
                "semester": {"type": "integer"},
                "enrolled_units": {"type": "integer"},
                "approved_units": {"type": "integer"},
                "average_grade": {"type": "number"}
            },
            "required": ["semester"]
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
