package api

import (
	"fmt"
	"net/http"
)

// Route is one method and path pattern served by a handler
type Route struct {
	Method  string
	Path    string
	Handler http.HandlerFunc
}

func NewRoute(method, path string, handler http.HandlerFunc) Route {
	return Route{
		Method:  method,
		Path:    path,
		Handler: handler,
	}
}

// String returns the pattern format expected by Go 1.22+ ServeMux: "METHOD /path"
func (r *Route) String() string {
	if r.Method == "" {
		return r.Path
	}
	return r.Method + " " + r.Path
}

// HandlerRegistrar is an interface for packages to register their API handlers
type HandlerRegistrar interface {
	RegisterHandler(route Route) error
}

// EndpointHandler is implemented by components that expose routes
type EndpointHandler interface {
	RegisterHandlers(registrar HandlerRegistrar) error
}

// RegisterRoutes registers routes in order and stops at the first failure.
func RegisterRoutes(registrar HandlerRegistrar, routes ...Route) error {
	for _, route := range routes {
		if err := registrar.RegisterHandler(route); err != nil {
			return fmt.Errorf("register %s: %w", route.String(), err)
		}
	}
	return nil
}
