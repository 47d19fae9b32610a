package operations

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dogukanakin/local-mcp/internal/apierror"
)

const maxUserNameLen = 100

// Users exposes the user resource operations against a backend reachable
// through the given Requester.
type Users struct {
	client Requester
}

func NewUsers(client Requester) *Users {
	return &Users{client: client}
}

// ListUsersParams filters a user listing. Pagination and search parameters
// are forwarded to the backend, which currently ignores them. This is a known
// limitation of the backend, not of this layer.
type ListUsersParams struct {
	Page    int    `json:"page,omitempty" jsonschema_description:"Page number (1-based)."`
	PerPage int    `json:"per_page,omitempty" jsonschema_description:"Items per page (default 10)."`
	Search  string `json:"search,omitempty" jsonschema_description:"Search query forwarded to the backend."`
}

// CreateUserParams carries the caller-supplied fields for a new user.
type CreateUserParams struct {
	Name  string `json:"name" jsonschema_description:"User's full name (required, max 100 characters)."`
	Email string `json:"email" jsonschema_description:"User's email address (required)."`
}

// UpdateUserParams is a partial update: only non-nil fields are sent.
type UpdateUserParams struct {
	Name  *string `json:"name,omitempty" jsonschema_description:"New name for the user."`
	Email *string `json:"email,omitempty" jsonschema_description:"New email address for the user."`
}

// List returns all users. See ListUsersParams for the filter passthrough
// limitation.
func (u *Users) List(ctx context.Context, params ListUsersParams) (any, error) {
	query := paginationQuery(params.Page, params.PerPage)
	if s := strings.TrimSpace(params.Search); s != "" {
		query.Set("search", s)
	}
	return u.client.Request(ctx, http.MethodGet, "/users", nil, query)
}

// Get fetches a single user by id.
func (u *Users) Get(ctx context.Context, id string) (any, error) {
	if id == "" {
		return nil, apierror.NewValidation("User ID is required", nil)
	}
	payload, err := u.client.Request(ctx, http.MethodGet, "/users/"+id, nil, nil)
	if err != nil {
		return nil, notFoundFor(err, "User", id)
	}
	return payload, nil
}

// Create validates the supplied fields, generates a fresh id locally and
// posts the new user. Validation failures never reach the transport.
func (u *Users) Create(ctx context.Context, params CreateUserParams) (any, error) {
	name := strings.TrimSpace(params.Name)
	email := strings.TrimSpace(params.Email)

	if name == "" {
		return nil, apierror.NewValidation("Name is required", nil)
	}
	if len(name) > maxUserNameLen {
		return nil, apierror.NewValidation("Name too long (max 100 characters)", nil)
	}
	if email == "" {
		return nil, apierror.NewValidation("Email is required", nil)
	}
	if !validEmail(email) {
		return nil, apierror.NewValidation("Invalid email format", nil)
	}

	body := map[string]any{
		"id":    generateID(),
		"name":  name,
		"email": strings.ToLower(email),
	}
	return u.client.Request(ctx, http.MethodPost, "/users", body, nil)
}

// Update sends a partial update containing only the fields the caller
// supplied. Supplying no fields at all is a validation error.
func (u *Users) Update(ctx context.Context, id string, params UpdateUserParams) (any, error) {
	if id == "" {
		return nil, apierror.NewValidation("User ID is required", nil)
	}

	body := map[string]any{}
	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			return nil, apierror.NewValidation("Name cannot be empty", nil)
		}
		if len(name) > maxUserNameLen {
			return nil, apierror.NewValidation("Name too long (max 100 characters)", nil)
		}
		body["name"] = name
	}
	if params.Email != nil {
		email := strings.TrimSpace(*params.Email)
		if email == "" {
			return nil, apierror.NewValidation("Email cannot be empty", nil)
		}
		if !validEmail(email) {
			return nil, apierror.NewValidation("Invalid email format", nil)
		}
		body["email"] = strings.ToLower(email)
	}
	if len(body) == 0 {
		return nil, apierror.NewValidation("No fields to update", nil)
	}

	payload, err := u.client.Request(ctx, http.MethodPut, "/users/"+id, body, nil)
	if err != nil {
		return nil, notFoundFor(err, "User", id)
	}
	return payload, nil
}

// Delete removes a user by id.
func (u *Users) Delete(ctx context.Context, id string) (any, error) {
	if id == "" {
		return nil, apierror.NewValidation("User ID is required", nil)
	}
	payload, err := u.client.Request(ctx, http.MethodDelete, "/users/"+id, nil, nil)
	if err != nil {
		return nil, notFoundFor(err, "User", id)
	}
	return payload, nil
}

// Search forwards a name/email query to the backend search endpoint. The
// backend does not implement search yet; the parameters pass through
// unhonoured (documented limitation).
func (u *Users) Search(ctx context.Context, queryText string, limit int) (any, error) {
	q := strings.TrimSpace(queryText)
	if q == "" {
		return nil, apierror.NewValidation("Search query is required", nil)
	}
	query := url.Values{"search": {q}}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	return u.client.Request(ctx, http.MethodGet, "/users/search", nil, query)
}
