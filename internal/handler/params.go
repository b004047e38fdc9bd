package handler

import (
	"fmt"
	"net/http"
	"net/url"

	"cloud.google.com/go/civil"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// queryParams binds required query parameters and remembers the first
// failure, so a handler reads all its inputs and checks Err once.
type queryParams struct {
	values url.Values
	err    error
}

func newQueryParams(r *http.Request) *queryParams {
	return &queryParams{values: r.URL.Query()}
}

func (q *queryParams) bind(name string, dest any) {
	if q.err != nil {
		return
	}
	if err := runtime.BindQueryParameter("form", true, true, name, q.values, dest); err != nil {
		q.err = fmt.Errorf("%w: %v", errBadRequest, err)
	}
}

func (q *queryParams) String(name string) string {
	var v string
	q.bind(name, &v)
	return v
}

func (q *queryParams) Int(name string) int {
	var v int
	q.bind(name, &v)
	return v
}

// Date binds a YYYY-MM-DD parameter. The runtime binder lets an absent
// struct-typed parameter through even when required, so presence is checked
// here.
func (q *queryParams) Date(name string) civil.Date {
	if q.err == nil && q.values.Get(name) == "" {
		q.err = fmt.Errorf("%w: query parameter %q is required", errBadRequest, name)
	}
	var v openapi_types.Date
	q.bind(name, &v)
	return civil.DateOf(v.Time)
}

// Err returns the first binding failure, wrapping errBadRequest.
func (q *queryParams) Err() error {
	return q.err
}
