// Package docs registra el documento OpenAPI que sirve /swagger.
// Se regenera desde las anotaciones de los handlers con go generate
// (ver cmd/api/main.go); router_test verifica que cubra todas las rutas.
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
        "/calculations": {
            "get": {
                "description": "Lista los cálculos guardados, más nuevos primero.",
                "produces": ["application/json"],
                "tags": ["calculations"],
                "summary": "Listar historial",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Máximo a devolver (1-200). Por defecto 50",
                        "name": "limit",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {"$ref": "#/definitions/calculations.calculationResponse"}
                        }
                    },
                    "500": {"description": "internal error", "schema": {"type": "string"}}
                }
            },
            "post": {
                "description": "Ejecuta el motor PK (parser de puntos, AUC, k, dosis) con los parámetros enviados y guarda el resultado en el historial. Los puntos mal formados no son error: producen una lista vacía de muestras.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["calculations"],
                "summary": "Calcular y guardar",
                "parameters": [
                    {
                        "description": "Parámetros y puntos en formato t:c,t:c",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/pk.Input"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/calculations.calculationResponse"}},
                    "400": {"description": "invalid json / route inválida", "schema": {"type": "string"}},
                    "500": {"description": "internal error", "schema": {"type": "string"}}
                }
            }
        },
        "/calculations/{calculationID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["calculations"],
                "summary": "Obtener un cálculo",
                "parameters": [
                    {"type": "string", "description": "ID del cálculo", "name": "calculationID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/calculations.calculationResponse"}},
                    "404": {"description": "calculation not found", "schema": {"type": "string"}}
                }
            }
        },
        "/calculations/{calculationID}/curve.png": {
            "get": {
                "produces": ["image/png"],
                "tags": ["calculations"],
                "summary": "Gráfico concentración-tiempo",
                "parameters": [
                    {"type": "string", "description": "ID del cálculo", "name": "calculationID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "404": {"description": "calculation not found", "schema": {"type": "string"}}
                }
            }
        },
        "/calculations/{calculationID}/samples.csv": {
            "get": {
                "description": "Devuelve las muestras parseadas (ordenadas por tiempo) con columnas time_h,concentration.",
                "produces": ["text/csv"],
                "tags": ["calculations"],
                "summary": "Exportar muestras en CSV",
                "parameters": [
                    {"type": "string", "description": "ID del cálculo", "name": "calculationID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "CSV", "schema": {"type": "string"}},
                    "404": {"description": "calculation not found", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "calculations.calculationResponse": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "display": {"$ref": "#/definitions/display.Result"},
                "id": {"type": "string"},
                "input": {"$ref": "#/definitions/pk.Input"},
                "result": {"$ref": "#/definitions/pk.Result"}
            }
        },
        "display.Result": {
            "type": "object",
            "properties": {
                "auc": {"type": "string"},
                "auc_inf": {"type": "string"},
                "cmax": {"type": "string"},
                "half_life": {"type": "string"},
                "k_from_clearance": {"type": "string"},
                "k_from_half_life": {"type": "string"},
                "k_from_terminal_slope": {"type": "string"},
                "k_selected": {"type": "string"},
                "k_source": {"type": "string"},
                "loading_dose": {"type": "string"},
                "maintenance_dose": {"type": "string"},
                "maintenance_rate": {"type": "string"},
                "terminal_r_squared": {"type": "string"},
                "tmax": {"type": "string"}
            }
        },
        "pk.Input": {
            "type": "object",
            "properties": {
                "cl": {"type": "number"},
                "css_target": {"type": "number"},
                "dose": {"type": "number"},
                "f": {"type": "number"},
                "ka": {"type": "number"},
                "points": {"type": "string"},
                "route": {"$ref": "#/definitions/pk.Route"},
                "t_half": {"type": "number"},
                "tau": {"type": "number"},
                "vd": {"type": "number"}
            }
        },
        "pk.RateEstimate": {
            "type": "object",
            "properties": {
                "from_clearance": {"type": "number"},
                "from_half_life": {"type": "number"},
                "from_terminal_slope": {"type": "number"},
                "selected": {"type": "number"},
                "source": {"type": "string", "enum": ["", "terminal_slope", "clearance", "half_life"]},
                "terminal_points": {"type": "integer"},
                "terminal_r_squared": {"type": "number"}
            }
        },
        "pk.Result": {
            "type": "object",
            "properties": {
                "auc": {"type": "number"},
                "auc_inf": {"type": "number"},
                "cmax": {"type": "number"},
                "half_life": {"type": "number"},
                "loading_dose": {"type": "number"},
                "maintenance_dose": {"type": "number"},
                "maintenance_rate": {"type": "number"},
                "rates": {"$ref": "#/definitions/pk.RateEstimate"},
                "samples": {"type": "array", "items": {"$ref": "#/definitions/pk.Sample"}},
                "tmax": {"type": "number"}
            }
        },
        "pk.Route": {
            "type": "string",
            "enum": ["oral", "iv_bolus"],
            "x-enum-varnames": ["RouteOral", "RouteIVBolus"]
        },
        "pk.Sample": {
            "type": "object",
            "properties": {
                "concentration": {"type": "number"},
                "time": {"type": "number"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "PK dosing form API",
	Description:      "Calculadora farmacocinética educativa: AUC, constante de eliminación, vida media y dosis de carga/mantenimiento.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
