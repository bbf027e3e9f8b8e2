package router

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
)

// Params holds the values captured by ":name" segments.
type Params map[string]string

type Handler func(Params)

type Route struct {
	Pattern    string
	Segments   []string
	ParamNames []string
	Handler    Handler
}

type Router struct {
	loc      Location
	routes   []*Route
	notFound Handler
	logger   *slog.Logger
	mu       sync.RWMutex
}

type Option func(*Router)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func New(loc Location, opts ...Option) *Router {
	r := &Router{
		loc:    loc,
		routes: make([]*Route, 0),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register appends pattern to the route table. Patterns are not validated;
// one that can never match is simply never chosen.
func (r *Router) Register(pattern string, handler Handler) {
	route := &Route{
		Pattern:  pattern,
		Segments: splitPath(pattern),
		Handler:  handler,
	}
	for _, seg := range route.Segments {
		if strings.HasPrefix(seg, ":") {
			route.ParamNames = append(route.ParamNames, seg[1:])
		}
	}

	r.mu.Lock()
	r.routes = append(r.routes, route)
	r.mu.Unlock()
}

func (r *Router) SetNotFound(handler Handler) {
	r.mu.Lock()
	r.notFound = handler
	r.mu.Unlock()
}

// Navigate changes the fragment. The handler runs later, when the location
// delivers its change event.
func (r *Router) Navigate(path string) {
	r.loc.SetHash(withMarker(path))
}

// Replace swaps the fragment without a history entry and dispatches before
// returning.
func (r *Router) Replace(path string) {
	r.loc.ReplaceHash(withMarker(path))
	r.Dispatch()
}

func (r *Router) CurrentPath() string {
	path := strings.TrimPrefix(r.loc.Hash(), "#")
	if path == "" {
		return "/"
	}
	return path
}

// Init attaches dispatch to the location's change event and dispatches the
// initial state once. The returned func detaches the listener.
func (r *Router) Init() func() {
	stop := r.loc.OnChange(r.Dispatch)
	r.Dispatch()
	return stop
}

func (r *Router) Dispatch() {
	path := r.CurrentPath()

	route, params, ok := r.Match(path)
	if ok {
		r.logger.Debug("route matched", "path", path, "pattern", route.Pattern)
		if route.Handler != nil {
			route.Handler(params)
		}
		return
	}

	r.mu.RLock()
	notFound := r.notFound
	r.mu.RUnlock()

	r.logger.Debug("no route matched", "path", path)
	if notFound != nil {
		notFound(Params{"path": path})
	}
}

// Match scans the table in registration order and returns the first route
// whose segments fit path.
func (r *Router) Match(path string) (*Route, Params, bool) {
	segments := splitPath(path)

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, route := range r.routes {
		if params := matchSegments(route.Segments, segments); params != nil {
			return route, params, true
		}
	}
	return nil, nil, false
}

func (r *Router) Routes() []*Route {
	r.mu.RLock()
	defer r.mu.RUnlock()

	routes := make([]*Route, len(r.routes))
	copy(routes, r.routes)
	return routes
}

func matchSegments(pattern, path []string) Params {
	if len(pattern) != len(path) {
		return nil
	}

	params := make(Params)
	for i, seg := range pattern {
		if strings.HasPrefix(seg, ":") {
			params[seg[1:]] = decodeSegment(path[i])
			continue
		}
		if seg != path[i] {
			return nil
		}
	}
	return params
}

func decodeSegment(seg string) string {
	decoded, err := url.PathUnescape(seg)
	if err != nil {
		return seg
	}
	return decoded
}

func splitPath(path string) []string {
	parts := strings.Split(path, "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

func withMarker(path string) string {
	if strings.HasPrefix(path, "#") {
		return path
	}
	return "#" + path
}

func (r *Router) String() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sb strings.Builder
	sb.WriteString("=== Router ===\n")
	sb.WriteString(fmt.Sprintf("Routes: %d\n\n", len(r.routes)))

	for i, route := range r.routes {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, route.Pattern))
		if len(route.ParamNames) > 0 {
			sb.WriteString(fmt.Sprintf("    params: %v\n", route.ParamNames))
		}
	}

	return sb.String()
}
