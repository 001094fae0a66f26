package openapi

import (
	"net/http"
	"sync"
)

// Handler serves the document as JSON, or as YAML when the Accept
// header asks for it. Serialization happens once, on first request.
//
// See: https://spec.openapis.org/oas/v3.1.0#openapi-document
func Handler(doc *Document) http.Handler {
	var (
		once       sync.Once
		jsonBody   []byte
		yamlBody   []byte
		renderErr  error
	)

	render := func() {
		jsonBody, renderErr = doc.JSON()
		if renderErr != nil {
			return
		}
		yamlBody, renderErr = doc.YAML()
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		once.Do(render)

		if renderErr != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		if wantsYAML(r.Header.Get("Accept")) {
			w.Header().Set("Content-Type", "application/yaml")
			w.Write(yamlBody)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write(jsonBody)
	})
}

func wantsYAML(accept string) bool {
	switch accept {
	case "application/yaml", "text/yaml", "application/x-yaml":
		return true
	}
	return false
}
