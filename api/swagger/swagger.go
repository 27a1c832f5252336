package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Portfolio API",
        "description": "Course grades, GPA and admission risk for college portfolios",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": ["http", "https"],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"BearerAuth": []}],
    "tags": [
        {"name": "Courses", "description": "Courses and their stored grades"},
        {"name": "Assignments", "description": "Assignments, category weights and live course grades"},
        {"name": "GPA", "description": "Unweighted and weighted GPA with yearly trend"},
        {"name": "Admissions", "description": "Test scores and admission risk per university"},
        {"name": "Transcript", "description": "Transcript downloads"}
    ],
    "paths": {
        "/courses": {
            "get": {"tags": ["Courses"], "summary": "List courses", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "post": {
                "tags": ["Courses"], "summary": "Create course",
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/CourseRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/courses/{id}": {
            "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}],
            "get": {"tags": ["Courses"], "summary": "Get course", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "put": {
                "tags": ["Courses"], "summary": "Replace course",
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/CourseRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {"tags": ["Courses"], "summary": "Delete course", "responses": {"204": {"description": "Deleted"}}}
        },
        "/courses/recalculate": {
            "post": {"tags": ["Courses"], "summary": "Recalculate every course grade in the background", "responses": {"202": {"description": "Queued", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "503": {"description": "Queue full", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/courses/{id}/assignments": {
            "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}],
            "get": {"tags": ["Assignments"], "summary": "List course assignments", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "post": {
                "tags": ["Assignments"], "summary": "Add assignment to course",
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/AssignmentRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/courses/{id}/breakdown": {
            "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}],
            "get": {"tags": ["Assignments"], "summary": "Course grade breakdown", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/courses/{id}/weights": {
            "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}],
            "put": {
                "tags": ["Assignments"], "summary": "Replace category weights of a course",
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/SetWeightsRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Invalid weights", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/assignments/{id}": {
            "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}],
            "put": {
                "tags": ["Assignments"], "summary": "Replace assignment",
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/AssignmentRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {"tags": ["Assignments"], "summary": "Delete assignment", "responses": {"204": {"description": "Deleted"}}}
        },
        "/gpa": {
            "get": {"tags": ["GPA"], "summary": "GPA summary", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/admissions/risk": {
            "get": {"tags": ["Admissions"], "summary": "Admission risk for every target university", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/admissions/risk/{universityId}": {
            "get": {
                "tags": ["Admissions"], "summary": "Admission risk for one university",
                "parameters": [{"in": "path", "name": "universityId", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/test-scores": {
            "get": {"tags": ["Admissions"], "summary": "List test scores", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "post": {
                "tags": ["Admissions"], "summary": "Record a test score",
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/TestScoreRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/transcript/export": {
            "get": {
                "tags": ["Transcript"], "summary": "Download transcript",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [{"in": "query", "name": "format", "type": "string", "enum": ["csv", "pdf"]}],
                "responses": {"200": {"description": "File"}, "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        }
    },
    "definitions": {
        "CourseRequest": {
            "type": "object",
            "required": ["name", "year", "semester", "level"],
            "properties": {
                "name": {"type": "string"},
                "year": {"type": "integer", "description": "Grade level 9-12 or calendar year"},
                "semester": {"type": "string", "enum": ["Fall", "Spring", "Summer", "Winter"]},
                "level": {"type": "string", "enum": ["Regular", "Honors", "AP", "IB", "DualEnrollment"]},
                "grade": {"type": "number", "minimum": 0, "maximum": 100}
            }
        },
        "AssignmentRequest": {
            "type": "object",
            "required": ["name", "assignment_type", "total_points"],
            "properties": {
                "name": {"type": "string"},
                "assignment_type": {"type": "string", "enum": ["Homework", "Quiz", "Test", "Project", "Lab", "Participation", "Midterm", "FinalExam", "Other"]},
                "total_points": {"type": "number"},
                "earned_points": {"type": "number"},
                "weight_percentage": {"type": "number", "minimum": 0, "maximum": 100},
                "due_date": {"type": "string", "format": "date-time"}
            }
        },
        "SetWeightsRequest": {
            "type": "object",
            "properties": {
                "weights": {"type": "object", "additionalProperties": {"type": "number"}}
            }
        },
        "TestScoreRequest": {
            "type": "object",
            "required": ["test_type", "score", "taken_at"],
            "properties": {
                "test_type": {"type": "string", "enum": ["SAT", "ACT"]},
                "score": {"type": "number"},
                "taken_at": {"type": "string", "format": "date"}
            }
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
