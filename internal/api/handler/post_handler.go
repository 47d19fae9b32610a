package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dogukanakin/local-mcp/internal/api/metrics"
	"github.com/dogukanakin/local-mcp/internal/store"
)

// PostHandler handles HTTP requests for the post resource.
type PostHandler struct {
	store store.PostStore
}

func NewPostHandler(s store.PostStore) *PostHandler {
	return &PostHandler{store: s}
}

type createPostRequest struct {
	ID       string `json:"id"`
	Title    string `json:"title"     validate:"required,max=200"`
	Content  string `json:"content"   validate:"required"`
	AuthorID string `json:"author_id" validate:"required"`
	Status   string `json:"status"    validate:"omitempty,oneof=draft published archived"`
}

type updatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Status  *string `json:"status"`
}

// List handles GET /posts.
//
// page, per_page, author_id and status are accepted for forward
// compatibility but not honoured yet; the full list is always returned.
func (h *PostHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.ListPosts())
}

// Get handles GET /posts/:id.
func (h *PostHandler) Get(c echo.Context) error {
	p, err := h.store.GetPost(c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Create handles POST /posts.
func (h *PostHandler) Create(c echo.Context) error {
	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	p, err := h.store.CreatePost(store.Post{
		ID:       req.ID,
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: req.AuthorID,
		Status:   req.Status,
	})
	if err != nil {
		return err
	}
	metrics.PostsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, p)
}

// Update handles PUT /posts/:id with a partial payload.
func (h *PostHandler) Update(c echo.Context) error {
	var req updatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	fields := map[string]any{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Content != nil {
		fields["content"] = *req.Content
	}
	if req.Status != nil {
		switch *req.Status {
		case "draft", "published", "archived":
		default:
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "status must be one of: draft published archived")
		}
		fields["status"] = *req.Status
	}
	if len(fields) == 0 {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "no fields to update")
	}

	p, err := h.store.UpdatePost(c.Param("id"), fields)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /posts/:id.
func (h *PostHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := h.store.DeletePost(id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "post deleted", "id": id})
}
