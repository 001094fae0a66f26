package route

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrMissing is returned when a required query parameter or header is
	// absent from the request.
	ErrMissing = errors.New("required parameter is missing")

	// ErrInvalid is returned when a present query parameter or header value
	// cannot be decoded.
	ErrInvalid = errors.New("invalid parameter value")

	// ErrUnsupportedMediaType is returned by entity decoders when the
	// request carries a Content-Type the entity does not accept. It is
	// distinct from a malformed body so dispatch can respond with 415
	// instead of 400.
	ErrUnsupportedMediaType = errors.New("unsupported media type")
)

// Problem describes a request that matched a route's shape but failed
// validation or handling. It is written exactly once as a plain-text
// response; a Problem never aborts processing of other requests.
type Problem struct {
	Status int
	Detail string
}

// Error implements the error interface.
func (p *Problem) Error() string {
	return fmt.Sprintf("%d %s: %s", p.Status, http.StatusText(p.Status), p.Detail)
}

// Write writes the problem as a plain-text response.
func (p *Problem) Write(w http.ResponseWriter) {
	http.Error(w, p.Detail, p.Status)
}

func badRequest(detail string) *Problem {
	return &Problem{Status: http.StatusBadRequest, Detail: detail}
}

func serverError(w http.ResponseWriter) {
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
