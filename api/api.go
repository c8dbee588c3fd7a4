// Package api embeds the OpenAPI document of the order service. The HTTP
// adapter validates requests against it and serves it under /swagger.
package api

import (
	_ "embed"
)

//go:embed openapi.yaml
var OpenAPI []byte
