package operations

import (
	"context"
	"net/http"
	"strings"

	"github.com/dogukanakin/local-mcp/internal/apierror"
)

const maxPostTitleLen = 200

// PostStatus is the lifecycle state of a post.
type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
	StatusArchived  PostStatus = "archived"
)

// ValidPostStatus reports whether s names a known status.
func ValidPostStatus(s PostStatus) bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// Posts exposes the post resource operations.
type Posts struct {
	client Requester
}

func NewPosts(client Requester) *Posts {
	return &Posts{client: client}
}

// ListPostsParams filters a post listing. The author/status filters are
// forwarded but not honoured by the backend yet (documented limitation).
type ListPostsParams struct {
	Page     int    `json:"page,omitempty" jsonschema_description:"Page number (1-based)."`
	PerPage  int    `json:"per_page,omitempty" jsonschema_description:"Items per page (default 10)."`
	AuthorID string `json:"author_id,omitempty" jsonschema_description:"Filter by author ID."`
	Status   string `json:"status,omitempty" jsonschema_description:"Filter by status: draft, published or archived."`
}

// CreatePostParams carries the caller-supplied fields for a new post.
type CreatePostParams struct {
	Title    string `json:"title" jsonschema_description:"Post title (required, max 200 characters)."`
	Content  string `json:"content" jsonschema_description:"Post content (required)."`
	AuthorID string `json:"author_id" jsonschema_description:"ID of the post author (required)."`
	Status   string `json:"status,omitempty" jsonschema_description:"Post status: draft (default), published or archived."`
}

// UpdatePostParams is a partial update: only non-nil fields are sent.
type UpdatePostParams struct {
	Title   *string `json:"title,omitempty" jsonschema_description:"New title for the post."`
	Content *string `json:"content,omitempty" jsonschema_description:"New content for the post."`
	Status  *string `json:"status,omitempty" jsonschema_description:"New status: draft, published or archived."`
}

// List returns all posts.
func (p *Posts) List(ctx context.Context, params ListPostsParams) (any, error) {
	query := paginationQuery(params.Page, params.PerPage)
	if a := strings.TrimSpace(params.AuthorID); a != "" {
		query.Set("author_id", a)
	}
	if s := strings.TrimSpace(params.Status); s != "" {
		if !ValidPostStatus(PostStatus(s)) {
			return nil, apierror.NewValidation("Invalid status (must be draft, published or archived)", nil)
		}
		query.Set("status", s)
	}
	return p.client.Request(ctx, http.MethodGet, "/posts", nil, query)
}

// ListByAuthor is a convenience filter over List.
func (p *Posts) ListByAuthor(ctx context.Context, authorID string) (any, error) {
	if strings.TrimSpace(authorID) == "" {
		return nil, apierror.NewValidation("Author ID is required", nil)
	}
	return p.List(ctx, ListPostsParams{AuthorID: authorID})
}

// Get fetches a single post by id.
func (p *Posts) Get(ctx context.Context, id string) (any, error) {
	if id == "" {
		return nil, apierror.NewValidation("Post ID is required", nil)
	}
	payload, err := p.client.Request(ctx, http.MethodGet, "/posts/"+id, nil, nil)
	if err != nil {
		return nil, notFoundFor(err, "Post", id)
	}
	return payload, nil
}

// Create validates the supplied fields, generates a fresh id locally and
// posts the new post. Status defaults to draft.
func (p *Posts) Create(ctx context.Context, params CreatePostParams) (any, error) {
	title := strings.TrimSpace(params.Title)
	content := strings.TrimSpace(params.Content)
	authorID := strings.TrimSpace(params.AuthorID)
	status := PostStatus(strings.TrimSpace(params.Status))

	if title == "" {
		return nil, apierror.NewValidation("Title is required", nil)
	}
	if len(title) > maxPostTitleLen {
		return nil, apierror.NewValidation("Title too long (max 200 characters)", nil)
	}
	if content == "" {
		return nil, apierror.NewValidation("Content is required", nil)
	}
	if authorID == "" {
		return nil, apierror.NewValidation("Author ID is required", nil)
	}
	if status == "" {
		status = StatusDraft
	}
	if !ValidPostStatus(status) {
		return nil, apierror.NewValidation("Invalid status (must be draft, published or archived)", nil)
	}

	body := map[string]any{
		"id":        generateID(),
		"title":     title,
		"content":   content,
		"author_id": authorID,
		"status":    string(status),
	}
	return p.client.Request(ctx, http.MethodPost, "/posts", body, nil)
}

// Update sends a partial update containing only the fields the caller
// supplied.
func (p *Posts) Update(ctx context.Context, id string, params UpdatePostParams) (any, error) {
	if id == "" {
		return nil, apierror.NewValidation("Post ID is required", nil)
	}

	body := map[string]any{}
	if params.Title != nil {
		title := strings.TrimSpace(*params.Title)
		if title == "" {
			return nil, apierror.NewValidation("Title cannot be empty", nil)
		}
		if len(title) > maxPostTitleLen {
			return nil, apierror.NewValidation("Title too long (max 200 characters)", nil)
		}
		body["title"] = title
	}
	if params.Content != nil {
		content := strings.TrimSpace(*params.Content)
		if content == "" {
			return nil, apierror.NewValidation("Content cannot be empty", nil)
		}
		body["content"] = content
	}
	if params.Status != nil {
		status := PostStatus(strings.TrimSpace(*params.Status))
		if !ValidPostStatus(status) {
			return nil, apierror.NewValidation("Invalid status (must be draft, published or archived)", nil)
		}
		body["status"] = string(status)
	}
	if len(body) == 0 {
		return nil, apierror.NewValidation("No fields to update", nil)
	}

	payload, err := p.client.Request(ctx, http.MethodPut, "/posts/"+id, body, nil)
	if err != nil {
		return nil, notFoundFor(err, "Post", id)
	}
	return payload, nil
}

// Delete removes a post by id.
func (p *Posts) Delete(ctx context.Context, id string) (any, error) {
	if id == "" {
		return nil, apierror.NewValidation("Post ID is required", nil)
	}
	payload, err := p.client.Request(ctx, http.MethodDelete, "/posts/"+id, nil, nil)
	if err != nil {
		return nil, notFoundFor(err, "Post", id)
	}
	return payload, nil
}

// Publish is an update setting status to published.
func (p *Posts) Publish(ctx context.Context, id string) (any, error) {
	status := string(StatusPublished)
	return p.Update(ctx, id, UpdatePostParams{Status: &status})
}

// Archive is an update setting status to archived.
func (p *Posts) Archive(ctx context.Context, id string) (any, error) {
	status := string(StatusArchived)
	return p.Update(ctx, id, UpdatePostParams{Status: &status})
}
