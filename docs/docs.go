// Package docs registra la especificación OpenAPI de la API en el registro de swag.
// El mismo swagger.json lo sirve la UI de /docs.
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:embed swagger.json
var docTemplate string

// SwaggerInfo metadatos de la especificación.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Loan API",
	Description:      "Préstamos en cuotas con límite de crédito por cliente.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
