package lambda

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umanari145/blog-backend/internal/config"
	"github.com/umanari145/blog-backend/internal/repositories/memory"
	"github.com/umanari145/blog-backend/pkg/server"
)

func echoParam(name string) HandlerFunc {
	return func(ctx context.Context, req *Request) (*Response, error) {
		return JSONResponse(http.StatusOK, map[string]string{name: req.PathParam(name)})
	}
}

func TestRouterMatchesPatterns(t *testing.T) {
	rt := NewRouter(map[string]string{"Access-Control-Allow-Origin": "*"}, nil)
	rt.Handle(http.MethodGet, "/api/blogs", echoParam("none"))
	rt.Handle(http.MethodGet, "/api/blogs/{postNo}", echoParam("postNo"))

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"static", http.MethodGet, "/api/blogs", http.StatusOK, `{"none":""}`},
		{"param", http.MethodGet, "/api/blogs/post-001", http.StatusOK, `{"postNo":"post-001"}`},
		{"trailing slash", http.MethodGet, "/api/blogs/post-001/", http.StatusOK, `{"postNo":"post-001"}`},
		{"too deep", http.MethodGet, "/api/blogs/post-001/x", http.StatusNotFound, `{"error":"not found"}`},
		{"wrong method", http.MethodDelete, "/api/blogs", http.StatusNotFound, `{"error":"not found"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := rt.Serve(context.Background(), &Request{Method: tt.method, Path: tt.path})
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.JSONEq(t, tt.wantBody, string(resp.Body))
			assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])
		})
	}
}

func TestRouterPreflightAndHandlerError(t *testing.T) {
	rt := NewRouter(map[string]string{"Access-Control-Max-Age": "300"}, nil)
	rt.Handle(http.MethodGet, "/boom", func(context.Context, *Request) (*Response, error) {
		return nil, errors.New("exploded")
	})

	resp := rt.Serve(context.Background(), &Request{Method: http.MethodOptions, Path: "/anything"})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, resp.Body)
	assert.Equal(t, "300", resp.Headers["Access-Control-Max-Age"])

	resp = rt.Serve(context.Background(), &Request{Method: http.MethodGet, Path: "/boom"})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"error":"exploded"}`, string(resp.Body))
}

func TestJSONResponseDoesNotEscape(t *testing.T) {
	resp, err := JSONResponse(http.StatusOK, map[string]string{"title": "<b>日本語 & more</b>"})
	require.NoError(t, err)
	assert.Equal(t, `{"title":"<b>日本語 & more</b>"}`, string(resp.Body))
	assert.Equal(t, "application/json; charset=utf-8", resp.Headers["Content-Type"])
}

func TestAPIGatewayConversion(t *testing.T) {
	event := events.APIGatewayProxyRequest{
		HTTPMethod:            http.MethodPost,
		Path:                  "/api/login",
		Headers:               map[string]string{"content-type": "application/json"},
		QueryStringParameters: map[string]string{"page_no": "2"},
		Body:                  base64.StdEncoding.EncodeToString([]byte(`{"email":"a"}`)),
		IsBase64Encoded:       true,
	}

	req := NewRequestFromAPIGateway(event)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "2", req.Query("page_no"))
	assert.Equal(t, "", req.Query("tag"))
	assert.Equal(t, "application/json", req.Header("Content-Type"))
	assert.Equal(t, `{"email":"a"}`, string(req.Body))

	out := (&Response{StatusCode: 201, Headers: map[string]string{"X": "1"}, Body: []byte("{}")}).ToAPIGateway()
	assert.Equal(t, 201, out.StatusCode)
	assert.Equal(t, "{}", out.Body)
	assert.Equal(t, "1", out.Headers["X"])
}

func TestConnectionManagerReusesContainer(t *testing.T) {
	calls := 0
	cm := NewConnectionManager(func(ctx context.Context, cfg *config.Config) (*server.Container, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("cold start failed")
		}
		return server.NewContainerWithRepositories(cfg, nil, memory.NewSampleStore())
	})
	cm.Initialize(&config.Config{Database: config.DatabaseConfig{Driver: config.DriverMemory}})

	assert.False(t, cm.IsHealthy())

	_, err := cm.GetContainer(context.Background())
	require.Error(t, err)

	first, err := cm.GetContainer(context.Background())
	require.NoError(t, err)
	second, err := cm.GetContainer(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 2, calls)
	assert.True(t, cm.IsHealthy())

	require.NoError(t, cm.Cleanup())
	assert.False(t, cm.IsHealthy())
}
