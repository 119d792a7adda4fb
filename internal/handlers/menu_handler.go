package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/umanari145/blog-backend/internal/services"
	"github.com/umanari145/blog-backend/pkg/lambda"
)

// MenuHandler serves the navigation facets
type MenuHandler struct {
	menuService services.MenuService
	errors      *errorRenderer
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menuService services.MenuService, errors *errorRenderer) *MenuHandler {
	return &MenuHandler{menuService: menuService, errors: errors}
}

func (h *MenuHandler) getMenus(ctx context.Context) (int, interface{}) {
	menus, err := h.menuService.GetMenus(ctx)
	if err != nil {
		return h.errors.render(err)
	}
	return http.StatusOK, menus
}

// @Summary Get menus
// @Description Post counts per category, per tag and per month
// @Tags menus
// @Produce json
// @Success 200 {object} models.Menus
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /menus [get]
func (h *MenuHandler) GetMenus(c *gin.Context) {
	c.PureJSON(h.getMenus(c.Request.Context()))
}

// HandleGet serves GET /api/menus
func (h *MenuHandler) HandleGet(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	return lambda.JSONResponse(h.getMenus(ctx))
}
