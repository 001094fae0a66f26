// Package openapi generates OpenAPI v3.1.0 documents from route
// declarations using Go reflection.
//
// Because routes carry their full interface as data -- method, path
// captures, query and header parameters, request entity, and response
// shape -- the document is derived rather than annotated: every
// parameter and schema comes straight from the values the routes were
// built from, with no schema files and no struct tags beyond the json
// tags the entities already use.
//
// The package targets the OpenAPI Specification v3.1.0 and uses the
// JSON Schema Draft 2020-12 vocabulary for schemas.
//
// See: https://spec.openapis.org/oas/v3.1.0
// See: https://json-schema.org/draft/2020-12/json-schema-core
//
// # Usage
//
// Build a document from assembled routes and serve it:
//
//	doc := openapi.FromRoutes(openapi.Info{Title: "Blog", Version: "1.0.0"}, routes)
//	http.Handle("/openapi.json", openapi.Handler(doc))
package openapi
