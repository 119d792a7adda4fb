package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/umanari145/blog-backend/internal/models"
	"github.com/umanari145/blog-backend/internal/query"
	"github.com/umanari145/blog-backend/internal/services"
	"github.com/umanari145/blog-backend/pkg/lambda"
)

// MessageResponse is the body of successful writes
type MessageResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// CreatedData carries the id of a newly created post
type CreatedData struct {
	ID string `json:"id"`
}

// BlogHandler handles blog post requests
type BlogHandler struct {
	blogService services.BlogService
	errors      *errorRenderer
}

// NewBlogHandler creates a new blog handler
func NewBlogHandler(blogService services.BlogService, errors *errorRenderer) *BlogHandler {
	return &BlogHandler{blogService: blogService, errors: errors}
}

func (h *BlogHandler) getPost(ctx context.Context, postNo string) (int, interface{}) {
	post, err := h.blogService.GetPost(ctx, postNo)
	if err != nil {
		return h.errors.render(err)
	}
	return http.StatusOK, post
}

func (h *BlogHandler) listPosts(ctx context.Context, params query.Params) (int, interface{}) {
	page, err := h.blogService.ListPosts(ctx, params)
	if err != nil {
		return h.errors.render(err)
	}
	return http.StatusOK, page
}

func (h *BlogHandler) createPost(ctx context.Context, post *models.Post) (int, interface{}) {
	post.ID = primitive.NilObjectID
	id, err := h.blogService.CreatePost(ctx, post)
	if err != nil {
		return h.errors.render(err)
	}
	return http.StatusCreated, MessageResponse{Message: "Blog created", Data: CreatedData{ID: id}}
}

func (h *BlogHandler) updatePost(ctx context.Context, postNo string, update *models.PostUpdate) (int, interface{}) {
	if err := h.blogService.UpdatePost(ctx, postNo, update); err != nil {
		return h.errors.render(err)
	}
	return http.StatusOK, MessageResponse{Message: "Blog updated"}
}

// @Summary Get a blog post
// @Description Get a single post by its post number
// @Tags blogs
// @Produce json
// @Param postNo path string true "Post number"
// @Success 200 {object} models.Post
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /blogs/{postNo} [get]
func (h *BlogHandler) GetPost(c *gin.Context) {
	c.PureJSON(h.getPost(c.Request.Context(), c.Param("postNo")))
}

// @Summary List blog posts
// @Description List posts ten per page, filtered by category, tag, month or search word.
// @Description Filters are exclusive and applied in that order of precedence.
// @Tags blogs
// @Produce json
// @Param category query string false "Category name"
// @Param tag query string false "Tag name"
// @Param year query string false "Year, used together with month"
// @Param month query string false "Month, used together with year"
// @Param search_word query string false "Substring of the post contents"
// @Param page_no query int false "Page number" default(1)
// @Success 200 {object} repositories.Page[models.Post]
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /blogs [get]
func (h *BlogHandler) ListPosts(c *gin.Context) {
	var params query.Params
	if err := c.ShouldBindQuery(&params); err != nil {
		c.PureJSON(badRequest(err))
		return
	}
	c.PureJSON(h.listPosts(c.Request.Context(), params))
}

// @Summary Create a blog post
// @Tags blogs
// @Accept json
// @Produce json
// @Param post body models.Post true "Post"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /blogs [post]
func (h *BlogHandler) CreatePost(c *gin.Context) {
	var post models.Post
	if err := c.ShouldBindJSON(&post); err != nil {
		c.PureJSON(badRequest(err))
		return
	}
	c.PureJSON(h.createPost(c.Request.Context(), &post))
}

// @Summary Update a blog post
// @Description Set the supplied fields on an existing post. Unknown posts are not created.
// @Tags blogs
// @Accept json
// @Produce json
// @Param postNo path string true "Post number"
// @Param post body models.PostUpdate true "Fields to change"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /blogs/{postNo} [put]
func (h *BlogHandler) UpdatePost(c *gin.Context) {
	var update models.PostUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.PureJSON(badRequest(err))
		return
	}
	c.PureJSON(h.updatePost(c.Request.Context(), c.Param("postNo"), &update))
}

// HandleGet serves GET /api/blogs/{postNo}
func (h *BlogHandler) HandleGet(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	return lambda.JSONResponse(h.getPost(ctx, req.PathParam("postNo")))
}

// HandleList serves GET /api/blogs
func (h *BlogHandler) HandleList(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	params := query.Params{
		Category:   req.Query("category"),
		Tag:        req.Query("tag"),
		Year:       req.Query("year"),
		Month:      req.Query("month"),
		SearchWord: req.Query("search_word"),
		PageNo:     req.Query("page_no"),
	}
	return lambda.JSONResponse(h.listPosts(ctx, params))
}

// HandleCreate serves POST /api/blogs
func (h *BlogHandler) HandleCreate(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	var post models.Post
	if err := json.Unmarshal(req.Body, &post); err != nil {
		return lambda.JSONResponse(badRequest(err))
	}
	return lambda.JSONResponse(h.createPost(ctx, &post))
}

// HandleUpdate serves PUT /api/blogs/{postNo}
func (h *BlogHandler) HandleUpdate(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	var update models.PostUpdate
	if err := json.Unmarshal(req.Body, &update); err != nil {
		return lambda.JSONResponse(badRequest(err))
	}
	return lambda.JSONResponse(h.updatePost(ctx, req.PathParam("postNo"), &update))
}
