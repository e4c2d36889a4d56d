package router

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

type HandlerFunc func(http.ResponseWriter, *http.Request)

// Router is a minimal HTTP router with wildcard segments ("*") in paths,
// enough for the job API without a full routing dependency.
type Router struct {
	mux    *http.ServeMux
	routes map[string]HandlerFunc // key = METHOD:PATH
	paths  map[string]bool
	logger *zap.Logger
}

func New(logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Router{
		mux:    http.NewServeMux(),
		routes: make(map[string]HandlerFunc),
		paths:  make(map[string]bool),
		logger: logger,
	}

	r.mux.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		key := req.Method + ":" + req.URL.Path
		if h, ok := r.routes[key]; ok {
			h(lrw, req)
		} else {
			// Among the wildcard routes that match, pick the most
			// specific one so /x/*/progress beats /x/*.
			best := ""
			for routePath := range r.paths {
				if !strings.Contains(routePath, "/*") || !matchWildcardRoute(req.URL.Path, routePath) {
					continue
				}
				if _, ok := r.routes[req.Method+":"+routePath]; !ok {
					continue
				}
				if best == "" || moreSpecific(routePath, best) {
					best = routePath
				}
			}

			if best != "" {
				r.routes[req.Method+":"+best](lrw, req)
			} else if r.paths[req.URL.Path] {
				http.Error(lrw, "Method Not Allowed", http.StatusMethodNotAllowed)
			} else {
				http.Error(lrw, "Not Found", http.StatusNotFound)
			}
		}

		r.logger.Info("request",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Int("status", lrw.statusCode),
			zap.Duration("duration", time.Since(start)),
		)
	})

	return r
}

// moreSpecific orders route patterns: more literal segments wins, then more
// segments overall.
func moreSpecific(a, b string) bool {
	literals := func(p string) (lit, total int) {
		for _, seg := range strings.Split(strings.Trim(p, "/"), "/") {
			total++
			if seg != "*" {
				lit++
			}
		}
		return
	}
	aLit, aTotal := literals(a)
	bLit, bTotal := literals(b)
	if aLit != bLit {
		return aLit > bLit
	}
	return aTotal > bTotal
}

// matchWildcardRoute checks whether a request path matches a wildcard route
// pattern. A trailing "*" matches any number of remaining segments; an
// interior "*" matches exactly one.
func matchWildcardRoute(requestPath, routePattern string) bool {
	requestSegments := strings.Split(strings.Trim(requestPath, "/"), "/")
	routeSegments := strings.Split(strings.Trim(routePattern, "/"), "/")

	if len(routeSegments) > 0 && routeSegments[len(routeSegments)-1] == "*" {
		if len(requestSegments) < len(routeSegments)-1 {
			return false
		}
		for i := 0; i < len(routeSegments)-1; i++ {
			if routeSegments[i] != "*" && requestSegments[i] != routeSegments[i] {
				return false
			}
		}
		return true
	}

	if len(requestSegments) != len(routeSegments) {
		return false
	}
	for i, seg := range routeSegments {
		if seg == "*" {
			continue
		}
		if requestSegments[i] != seg {
			return false
		}
	}
	return true
}

func (r *Router) register(method, path string, handler HandlerFunc) {
	r.routes[method+":"+path] = handler
	r.paths[path] = true
}

func (r *Router) GET(path string, handler HandlerFunc)  { r.register(http.MethodGet, path, handler) }
func (r *Router) POST(path string, handler HandlerFunc) { r.register(http.MethodPost, path, handler) }
func (r *Router) PUT(path string, handler HandlerFunc)  { r.register(http.MethodPut, path, handler) }
func (r *Router) DELETE(path string, handler HandlerFunc) {
	r.register(http.MethodDelete, path, handler)
}

// Routes exposes the route table for tests.
func (r *Router) Routes() map[string]HandlerFunc {
	return r.routes
}

// Handler returns the underlying mux, for tests and custom servers.
func (r *Router) Handler() http.Handler {
	return r.mux
}

// Start runs the server; it only returns on a listen failure.
func (r *Router) Start(addr string) error {
	r.logger.Info("server started", zap.String("addr", addr))
	return http.ListenAndServe(addr, r.mux)
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}
