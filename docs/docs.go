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
        "/tournaments": {
            "get": {
                "produces": ["application/json"],
                "tags": ["tournaments"],
                "summary": "List tournaments",
                "parameters": [
                    {"type": "string", "description": "registration, active or completed", "name": "status", "in": "query"},
                    {"type": "integer", "description": "Page size (default 20, max 100)", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "Offset", "name": "offset", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tournaments"],
                "summary": "Create a tournament",
                "parameters": [
                    {"description": "Tournament", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.CreateTournamentInput"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"},
                    "409": {"description": "Name already taken"},
                    "422": {"description": "Unsupported bracket type"}
                }
            }
        },
        "/tournaments/{tournamentID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["tournaments"],
                "summary": "Get a tournament with its teams",
                "parameters": [{"type": "integer", "description": "Tournament ID", "name": "tournamentID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/tournaments/{tournamentID}/teams": {
            "get": {
                "produces": ["application/json"],
                "tags": ["teams"],
                "summary": "List teams in registration order",
                "parameters": [{"type": "integer", "description": "Tournament ID", "name": "tournamentID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["teams"],
                "summary": "Register a team in a tournament",
                "parameters": [
                    {"type": "integer", "description": "Tournament ID", "name": "tournamentID", "in": "path", "required": true},
                    {"description": "Team", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.RegisterTeamInput"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "403": {"description": "Registration closed"},
                    "404": {"description": "Not Found"},
                    "409": {"description": "Name taken or tournament full"}
                }
            }
        },
        "/tournaments/{tournamentID}/teams/{teamID}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["teams"],
                "summary": "Withdraw a team",
                "parameters": [
                    {"type": "integer", "description": "Tournament ID", "name": "tournamentID", "in": "path", "required": true},
                    {"type": "integer", "description": "Team ID", "name": "teamID", "in": "path", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}, "403": {"description": "Registration closed"}, "404": {"description": "Not Found"}}
            }
        },
        "/tournaments/{tournamentID}/bracket": {
            "get": {
                "produces": ["application/json"],
                "tags": ["brackets"],
                "summary": "Get the current bracket",
                "parameters": [{"type": "integer", "description": "Tournament ID", "name": "tournamentID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["brackets"],
                "summary": "Generate the tournament bracket",
                "parameters": [
                    {"type": "integer", "description": "Tournament ID", "name": "tournamentID", "in": "path", "required": true},
                    {"description": "Generation options", "name": "input", "in": "body", "schema": {"$ref": "#/definitions/services.GenerateInput"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "404": {"description": "Not Found"},
                    "409": {"description": "Tournament already finished"},
                    "422": {"description": "Team count does not fit the bracket type"}
                }
            }
        },
        "/tournaments/{tournamentID}/bracket/image": {
            "get": {
                "produces": ["image/png"],
                "tags": ["brackets"],
                "summary": "Render the bracket as PNG",
                "parameters": [{"type": "integer", "description": "Tournament ID", "name": "tournamentID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "file"}}, "404": {"description": "Not Found"}, "422": {"description": "Bracket type has no image"}}
            }
        },
        "/tournaments/{tournamentID}/bracket/results": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["brackets"],
                "summary": "Record a match winner",
                "parameters": [
                    {"type": "integer", "description": "Tournament ID", "name": "tournamentID", "in": "path", "required": true},
                    {"description": "Result", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.ReportResultInput"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Unknown match or winner"},
                    "404": {"description": "Not Found"},
                    "409": {"description": "Match decided, not ready, or concurrent update"}
                }
            }
        },
        "/tournaments/{tournamentID}/bracket/simulate": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["brackets"],
                "summary": "Play out the bracket at random without saving it",
                "parameters": [{"type": "integer", "description": "Tournament ID", "name": "tournamentID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/ws/tournaments/{tournamentID}": {
            "get": {
                "tags": ["brackets"],
                "summary": "Subscribe to live bracket updates",
                "parameters": [{"type": "integer", "description": "Tournament ID", "name": "tournamentID", "in": "path", "required": true}],
                "responses": {"101": {"description": "Switching Protocols"}, "404": {"description": "Not Found"}}
            }
        }
    },
    "definitions": {
        "services.CreateTournamentInput": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"},
                "bracket_type": {"type": "string", "enum": ["single_elimination", "groups", "round_robin"]},
                "max_teams": {"type": "integer"}
            }
        },
        "services.RegisterTeamInput": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "captain_discord_id": {"type": "string"}
            }
        },
        "services.GenerateInput": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "shuffle": {"type": "boolean", "default": true},
                "group_size": {"type": "integer"}
            }
        },
        "services.ReportResultInput": {
            "type": "object",
            "properties": {
                "round": {"type": "integer"},
                "match": {"type": "integer"},
                "winner_team_id": {"type": "integer"}
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
	Title:            "Bracket Service API",
	Description:      "Tournament rosters, bracket generation and live results.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
