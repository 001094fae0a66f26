package openapi

import (
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/abhinavs1920/krop/route"
)

// FromRoutes builds an OpenAPI document by reflecting over the
// declarative structure of every route in rs. Paths are keyed by the
// route's URI template, so two routes on the same path but different
// methods share one path item.
func FromRoutes(info Info, rs *route.Routes) *Document {
	doc := &Document{
		OpenAPI: "3.1.0",
		Info:    info,
		Paths:   make(map[string]*PathItem),
	}

	for _, r := range rs.List() {
		req := r.Endpoint().Request()
		template := req.Path().Template()

		item, ok := doc.Paths[template]
		if !ok {
			item = &PathItem{}
			doc.Paths[template] = item
		}

		item.set(req.Method(), operationFor(r.Endpoint()))
	}

	return doc
}

func (p *PathItem) set(method string, op *Operation) {
	switch method {
	case http.MethodGet:
		p.Get = op
	case http.MethodPut:
		p.Put = op
	case http.MethodPost:
		p.Post = op
	case http.MethodDelete:
		p.Delete = op
	case http.MethodPatch:
		p.Patch = op
	}
}

func operationFor(e *route.Endpoint) *Operation {
	req := e.Request()

	op := &Operation{
		OperationID: e.OperationID(),
		Summary:     e.Summary(),
	}

	for _, c := range req.Path().Captures() {
		op.Parameters = append(op.Parameters, &Parameter{
			Name:     c.Name(),
			In:       "path",
			Required: true,
			Schema:   schemaFor(c.Param().Type()),
		})
	}

	if query := req.Query(); query != nil {
		for _, q := range query.Params() {
			// The whole-query-string shape has no name and no
			// parameter-level representation.
			if q.Name() == "" {
				continue
			}
			op.Parameters = append(op.Parameters, &Parameter{
				Name:        q.Name(),
				In:          "query",
				Description: q.Describe(),
				Required:    q.Required(),
				Schema:      schemaFor(q.Type()),
			})
		}
	}

	for _, h := range req.Headers() {
		op.Parameters = append(op.Parameters, &Parameter{
			Name:        h.Name(),
			In:          "header",
			Description: h.Describe(),
			Required:    h.Required(),
			Schema:      schemaFor(h.Type()),
		})
	}

	if entity := req.Entity(); entity != nil {
		op.RequestBody = &RequestBody{
			Required: true,
			Content: map[string]*MediaType{
				entity.ContentType(): {Schema: schemaFor(entity.Type())},
			},
		}
	}

	resp := e.Response()
	response := &Response{Description: http.StatusText(resp.Status())}
	if resp.Type() != nil {
		response.Content = map[string]*MediaType{
			resp.ContentType(): {Schema: schemaFor(resp.Type())},
		}
	}
	op.Responses = map[string]*Response{
		strconv.Itoa(resp.Status()): response,
	}

	return op
}

var (
	uuidType   = reflect.TypeOf((*uuid.UUID)(nil)).Elem()
	valuesType = reflect.TypeOf((*url.Values)(nil)).Elem()
)

// schemaFor maps a Go type onto the JSON Schema subset the document
// uses. A nil type stands for the trailing path remainder, which is
// always a list of segments.
func schemaFor(t reflect.Type) *Schema {
	if t == nil {
		return &Schema{Type: "array", Items: &Schema{Type: "string"}}
	}

	switch t {
	case uuidType:
		return &Schema{Type: "string", Format: "uuid"}
	case valuesType:
		return &Schema{Type: "object"}
	}

	switch t.Kind() {
	case reflect.Pointer:
		return schemaFor(t.Elem())
	case reflect.Bool:
		return &Schema{Type: "boolean"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer"}
	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}
	case reflect.String:
		return &Schema{Type: "string"}
	case reflect.Slice, reflect.Array:
		return &Schema{Type: "array", Items: schemaFor(t.Elem())}
	case reflect.Struct:
		s := &Schema{Type: "object", Properties: make(map[string]*Schema)}
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			name := f.Name
			if tag, ok := f.Tag.Lookup("json"); ok {
				tagName, _, _ := strings.Cut(tag, ",")
				if tagName == "-" {
					continue
				}
				if tagName != "" {
					name = tagName
				}
			}
			s.Properties[name] = schemaFor(f.Type)
		}
		return s
	default:
		return &Schema{Type: "object"}
	}
}
