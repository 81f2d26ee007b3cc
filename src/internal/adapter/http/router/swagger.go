package router

import (
	"fmt"
	"net/http"
)

func registerSwaggerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})

	mux.HandleFunc("/swagger/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, swaggerHTML, "/swagger/openapi.json")
	})

	mux.HandleFunc("/swagger/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(openAPI))
	})
}

const swaggerHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>FX Transfer API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function() {
      window.ui = SwaggerUIBundle({
        url: "%s",
        dom_id: "#swagger-ui"
      });
    };
  </script>
</body>
</html>`

const openAPI = `{
  "openapi": "3.0.3",
  "info": {
    "title": "FX Transfer API",
    "version": "1.0.0"
  },
  "paths": {
    "/quotes": {
      "get": {
        "summary": "List ask and bid quotes per currency",
        "security": [{"BasicAuth": []}],
        "responses": {
          "200": {"description": "Quotes fetched"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      },
      "put": {
        "summary": "Create or replace the quote of one currency",
        "security": [{"BasicAuth": []}],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["currency", "ask", "bid"],
                "properties": {
                  "currency": {"type": "string", "pattern": "^[A-Za-z]{3}$"},
                  "ask": {"type": "string"},
                  "bid": {"type": "string"}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Quote saved"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/rates": {
      "get": {
        "summary": "Compute a cross rate between two currencies",
        "security": [{"BasicAuth": []}],
        "parameters": [
          {"name": "from", "in": "query", "required": true, "schema": {"type": "string", "pattern": "^[A-Za-z]{3}$"}},
          {"name": "to", "in": "query", "required": true, "schema": {"type": "string", "pattern": "^[A-Za-z]{3}$"}},
          {"name": "kind", "in": "query", "required": false, "schema": {"type": "string", "enum": ["ask", "bid", "mid"], "default": "mid"}},
          {"name": "precision", "in": "query", "required": false, "schema": {"type": "integer", "minimum": 1, "maximum": 64, "default": 10}}
        ],
        "responses": {
          "200": {"description": "Rate computed"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "422": {"description": "Unknown currency or zero quote"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/convert": {
      "get": {
        "summary": "Convert an amount at the mid rate without touching accounts",
        "security": [{"BasicAuth": []}],
        "parameters": [
          {"name": "amount", "in": "query", "required": true, "schema": {"type": "string"}},
          {"name": "from", "in": "query", "required": true, "schema": {"type": "string", "pattern": "^[A-Za-z]{3}$"}},
          {"name": "to", "in": "query", "required": true, "schema": {"type": "string", "pattern": "^[A-Za-z]{3}$"}}
        ],
        "responses": {
          "200": {"description": "Amount converted"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "422": {"description": "Unknown currency or zero quote"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/accounts": {
      "post": {
        "summary": "Create account",
        "security": [{"BasicAuth": []}],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["currency"],
                "properties": {
                  "id": {"type": "string"},
                  "currency": {"type": "string", "pattern": "^[A-Za-z]{3}$"},
                  "initialBalance": {"type": "string"}
                }
              }
            }
          }
        },
        "responses": {
          "201": {"description": "Created"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "409": {"description": "Account already exists"},
          "500": {"description": "Server error"}
        }
      },
      "get": {
        "summary": "Get account by id",
        "security": [{"BasicAuth": []}],
        "parameters": [
          {"name": "id", "in": "query", "required": true, "schema": {"type": "string"}}
        ],
        "responses": {
          "200": {"description": "Account fetched"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Account not found"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/transfers": {
      "post": {
        "summary": "Transfer between two accounts at the mid rate",
        "security": [{"BasicAuth": []}],
        "requestBody": {"$ref": "#/components/requestBodies/Transfer"},
        "responses": {
          "200": {"description": "Transaction successful"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Account not found"},
          "409": {"description": "Account changed, retry transfer"},
          "422": {"description": "Unknown currency or zero quote"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/transfers/preview": {
      "post": {
        "summary": "Compute a transfer without storing it",
        "security": [{"BasicAuth": []}],
        "requestBody": {"$ref": "#/components/requestBodies/Transfer"},
        "responses": {
          "200": {"description": "Transfer previewed"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Account not found"},
          "422": {"description": "Unknown currency or zero quote"},
          "500": {"description": "Server error"}
        }
      }
    }
  },
  "components": {
    "securitySchemes": {
      "BasicAuth": {"type": "http", "scheme": "basic"}
    },
    "requestBodies": {
      "Transfer": {
        "required": true,
        "content": {
          "application/json": {
            "schema": {
              "type": "object",
              "required": ["sourceAccountId", "targetAccountId", "amount"],
              "properties": {
                "sourceAccountId": {"type": "string"},
                "targetAccountId": {"type": "string"},
                "amount": {"type": "string"}
              }
            }
          }
        }
      }
    }
  }
}`
