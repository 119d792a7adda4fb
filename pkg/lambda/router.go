package lambda

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

type route struct {
	method   string
	segments []string
	handler  HandlerFunc
}

// Router dispatches requests by method and path pattern. Patterns use
// {name} segments, e.g. /api/blogs/{postNo}.
type Router struct {
	routes  []route
	headers map[string]string
	logger  *logrus.Logger
}

// NewRouter creates a router that adds headers to every response
func NewRouter(headers map[string]string, logger *logrus.Logger) *Router {
	if logger == nil {
		logger = logrus.New()
	}
	return &Router{headers: headers, logger: logger}
}

// Handle registers h for method and pattern
func (rt *Router) Handle(method, pattern string, h HandlerFunc) {
	rt.routes = append(rt.routes, route{
		method:   method,
		segments: splitPath(pattern),
		handler:  h,
	})
}

// Serve routes a request. Preflight requests are answered with 204, unknown
// routes with 404, and handler errors with 500.
func (rt *Router) Serve(ctx context.Context, req *Request) *Response {
	if req.Method == http.MethodOptions {
		return rt.decorate(NoContent())
	}

	h, params, ok := rt.match(req.Method, req.Path)
	if !ok {
		resp, _ := JSONResponse(http.StatusNotFound, map[string]string{"error": "not found"})
		return rt.decorate(resp)
	}

	if req.PathParams == nil {
		req.PathParams = map[string]string{}
	}
	for k, v := range params {
		req.PathParams[k] = v
	}

	resp, err := h(ctx, req)
	if err != nil {
		rt.logger.WithFields(logrus.Fields{
			"method": req.Method,
			"path":   req.Path,
			"error":  err.Error(),
		}).Error("Handler failed")
		resp, _ = JSONResponse(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return rt.decorate(resp)
}

func (rt *Router) decorate(resp *Response) *Response {
	if resp.Headers == nil {
		resp.Headers = map[string]string{}
	}
	for k, v := range rt.headers {
		if _, set := resp.Headers[k]; !set {
			resp.Headers[k] = v
		}
	}
	return resp
}

func (rt *Router) match(method, path string) (HandlerFunc, map[string]string, bool) {
	segments := splitPath(path)
	for _, r := range rt.routes {
		if r.method != method || len(r.segments) != len(segments) {
			continue
		}

		params := map[string]string{}
		matched := true
		for i, seg := range r.segments {
			if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
				params[seg[1:len(seg)-1]] = segments[i]
				continue
			}
			if seg != segments[i] {
				matched = false
				break
			}
		}
		if matched {
			return r.handler, params, true
		}
	}
	return nil, nil, false
}

func splitPath(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
}

func decodeBase64(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}
