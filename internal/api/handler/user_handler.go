package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dogukanakin/local-mcp/internal/api/metrics"
	"github.com/dogukanakin/local-mcp/internal/store"
)

// UserHandler handles HTTP requests for the user resource.
type UserHandler struct {
	store store.UserStore
}

func NewUserHandler(s store.UserStore) *UserHandler {
	return &UserHandler{store: s}
}

type createUserRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name"  validate:"required,max=100"`
	Email string `json:"email" validate:"required,email"`
}

type updateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// List handles GET /users.
//
// page, per_page and search are accepted for forward compatibility but not
// honoured yet; the full list is always returned.
func (h *UserHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.ListUsers())
}

// Get handles GET /users/:id.
func (h *UserHandler) Get(c echo.Context) error {
	u, err := h.store.GetUser(c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

// Create handles POST /users. The id may be caller-supplied (the tool layer
// generates one) or left empty for the store to assign.
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	u, err := h.store.CreateUser(store.User{ID: req.ID, Name: req.Name, Email: req.Email})
	if err != nil {
		return err
	}
	metrics.UsersCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, u)
}

// Update handles PUT /users/:id with a partial payload.
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if len(fields) == 0 {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "no fields to update")
	}

	u, err := h.store.UpdateUser(c.Param("id"), fields)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

// Delete handles DELETE /users/:id.
func (h *UserHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := h.store.DeleteUser(id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "user deleted", "id": id})
}
