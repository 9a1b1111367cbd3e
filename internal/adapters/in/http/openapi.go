package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openAPISource []byte

// OpenAPIDoc is the validated API description. It satisfies swag.Swagger so
// echo-swagger can serve it.
type OpenAPIDoc struct {
	spec *openapi3.T
	json []byte
}

var (
	docOnce sync.Once
	doc     *OpenAPIDoc
	docErr  error
)

// LoadOpenAPI parses and validates the embedded document once and registers
// it with swag. Later calls return the cached result.
func LoadOpenAPI(ctx context.Context) (*OpenAPIDoc, error) {
	docOnce.Do(func() {
		doc, docErr = loadOpenAPI(ctx, openAPISource)
		if docErr == nil {
			swag.Register(swag.Name, doc)
		}
	})
	return doc, docErr
}

func loadOpenAPI(ctx context.Context, source []byte) (*OpenAPIDoc, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	spec, err := loader.LoadFromData(source)
	if err != nil {
		return nil, fmt.Errorf("load openapi: %w", err)
	}
	if err = spec.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi: %w", err)
	}

	raw, err := json.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("marshal openapi: %w", err)
	}
	return &OpenAPIDoc{spec: spec, json: raw}, nil
}

func (d *OpenAPIDoc) ReadDoc() string {
	return string(d.json)
}

// Operation finds the documented operation for an echo route path such as
// /api/tasks/:id.
func (d *OpenAPIDoc) Operation(method, echoPath string) *openapi3.Operation {
	item := d.spec.Paths.Find(toOpenAPIPath(echoPath))
	if item == nil {
		return nil
	}
	return item.GetOperation(method)
}

func toOpenAPIPath(echoPath string) string {
	out := make([]byte, 0, len(echoPath)+4)
	for i := 0; i < len(echoPath); i++ {
		if echoPath[i] != ':' {
			out = append(out, echoPath[i])
			continue
		}
		j := i + 1
		for j < len(echoPath) && echoPath[j] != '/' {
			j++
		}
		out = append(out, '{')
		out = append(out, echoPath[i+1:j]...)
		out = append(out, '}')
		i = j - 1
	}
	return string(out)
}

// OpenAPI godoc
//
//	@Summary	This API's OpenAPI document
//	@Tags		system
//	@Produce	json
//	@Success	200
//	@Router		/api/openapi.json [get]
func (s *Server) OpenAPI(c echo.Context) error {
	d, err := LoadOpenAPI(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, d.json)
}
