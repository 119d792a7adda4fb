package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/umanari145/blog-backend/internal/models"
	"github.com/umanari145/blog-backend/internal/services"
	"github.com/umanari145/blog-backend/pkg/lambda"
)

// LoginResponse is the body of a successful login
type LoginResponse struct {
	User *models.User `json:"user"`
}

// AuthHandler handles credential checks
type AuthHandler struct {
	authService services.AuthService
	errors      *errorRenderer
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService services.AuthService, errors *errorRenderer) *AuthHandler {
	return &AuthHandler{authService: authService, errors: errors}
}

func (h *AuthHandler) login(ctx context.Context, req *models.LoginRequest) (int, interface{}) {
	user, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		return h.errors.render(err)
	}
	return http.StatusOK, LoginResponse{User: user}
}

// @Summary Login
// @Description Check an email and password pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.PureJSON(badRequest(err))
		return
	}
	c.PureJSON(h.login(c.Request.Context(), &req))
}

// HandleLogin serves POST /api/login
func (h *AuthHandler) HandleLogin(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	var body models.LoginRequest
	if err := json.Unmarshal(req.Body, &body); err != nil {
		return lambda.JSONResponse(badRequest(err))
	}
	return lambda.JSONResponse(h.login(ctx, &body))
}
