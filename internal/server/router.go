package server

import (
	"net/http"
	"sort"
	"strings"
)

// BasicRouter dispatches on path with [http.ServeMux], then on method with a per-path table.
type BasicRouter struct {
	mux         *http.ServeMux
	middlewares []Middleware
	paths       map[string]methodTable
}

// NewBasicRouter creates a new [BasicRouter] instance.
func NewBasicRouter() *BasicRouter {
	return &BasicRouter{
		mux:   http.NewServeMux(),
		paths: make(map[string]methodTable),
	}
}

// Use appends middleware; it only wraps routes registered afterward.
func (r *BasicRouter) Use(middleware ...Middleware) {
	r.middlewares = append(r.middlewares, middleware...)
}

// Handle registers handler for method on path, wrapped with the current middleware.
//
// An empty method is the fallback for every method without its own handler. Requests with an unregistered
// method and no fallback get a 405 listing the allowed methods.
func (r *BasicRouter) Handle(method, path string, handler http.Handler) {
	table, ok := r.paths[path]
	if !ok {
		table = methodTable{}
		r.paths[path] = table
		r.mux.Handle(path, table)
	}
	table[strings.ToUpper(method)] = r.Apply(handler)
}

// HandleFunc registers fn like [BasicRouter.Handle].
func (r *BasicRouter) HandleFunc(method, path string, fn http.HandlerFunc) {
	r.Handle(method, path, fn)
}

// ServeHTTP implements [http.Handler] for the entire router.
func (r *BasicRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Apply wraps handler so the first middleware added runs first.
func (r *BasicRouter) Apply(handler http.Handler) http.Handler {
	wrapped := handler
	for i := len(r.middlewares) - 1; i >= 0; i-- {
		wrapped = r.middlewares[i](wrapped)
	}
	return wrapped
}

// methodTable maps upper-case methods to handlers; "" is the fallback.
type methodTable map[string]http.Handler

func (t methodTable) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if h, ok := t[req.Method]; ok {
		h.ServeHTTP(w, req)
		return
	}
	if h, ok := t[""]; ok {
		h.ServeHTTP(w, req)
		return
	}

	w.Header().Set("Allow", t.allowed())
	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
}

func (t methodTable) allowed() string {
	methods := make([]string, 0, len(t))
	for m := range t {
		methods = append(methods, m)
	}
	sort.Strings(methods)
	return strings.Join(methods, ", ")
}
