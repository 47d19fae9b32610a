package operations

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dogukanakin/local-mcp/internal/apierror"
)

func TestPostsCreateValidatesBeforeNetwork(t *testing.T) {
	cases := []struct {
		name    string
		params  CreatePostParams
		wantMsg string
	}{
		{"missing title", CreatePostParams{Content: "c", AuthorID: "a"}, "Title is required"},
		{"title too long", CreatePostParams{Title: strings.Repeat("x", 201), Content: "c", AuthorID: "a"}, "Title too long (max 200 characters)"},
		{"missing content", CreatePostParams{Title: "t", AuthorID: "a"}, "Content is required"},
		{"missing author", CreatePostParams{Title: "t", Content: "c"}, "Author ID is required"},
		{"bad status", CreatePostParams{Title: "t", Content: "c", AuthorID: "a", Status: "live"}, "Invalid status (must be draft, published or archived)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeRequester{}
			_, err := NewPosts(fake).Create(context.Background(), tc.params)
			wantValidation(t, err, tc.wantMsg)
			if len(fake.calls) != 0 {
				t.Errorf("transport saw %d calls, want 0", len(fake.calls))
			}
		})
	}
}

func TestPostsCreateDefaultsStatusToDraft(t *testing.T) {
	fake := &fakeRequester{reply: map[string]any{}}
	_, err := NewPosts(fake).Create(context.Background(), CreatePostParams{
		Title: "Hello", Content: "World", AuthorID: "u-1",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	body := fake.calls[0].body.(map[string]any)
	if body["status"] != "draft" {
		t.Errorf("status = %q, want draft", body["status"])
	}
	if id, _ := body["id"].(string); id == "" {
		t.Error("id missing, want locally generated identifier")
	}
}

func TestPostsUpdateRequiresAtLeastOneField(t *testing.T) {
	fake := &fakeRequester{}
	_, err := NewPosts(fake).Update(context.Background(), "p-1", UpdatePostParams{})
	wantValidation(t, err, "No fields to update")
	if len(fake.calls) != 0 {
		t.Errorf("transport saw %d calls, want 0", len(fake.calls))
	}
}

func TestPostsUpdateRejectsInvalidStatus(t *testing.T) {
	fake := &fakeRequester{}
	bad := "live"
	_, err := NewPosts(fake).Update(context.Background(), "p-1", UpdatePostParams{Status: &bad})
	wantValidation(t, err, "Invalid status (must be draft, published or archived)")
}

func TestPostsGetRewrites404WithID(t *testing.T) {
	fake := &fakeRequester{err: apierror.FromStatus(404, map[string]any{"error": "Post not found"})}
	_, err := NewPosts(fake).Get(context.Background(), "p-404")

	var apiErr *apierror.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("err type = %T", err)
	}
	if apiErr.Message != "Post with ID 'p-404' not found" {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestPostsPublishSendsStatusUpdate(t *testing.T) {
	fake := &fakeRequester{reply: map[string]any{}}
	_, err := NewPosts(fake).Publish(context.Background(), "p-1")
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	call := fake.calls[0]
	if call.method != "PUT" || call.path != "/posts/p-1" {
		t.Errorf("call = %s %s", call.method, call.path)
	}
	body := call.body.(map[string]any)
	if len(body) != 1 || body["status"] != "published" {
		t.Errorf("body = %v, want only status=published", body)
	}
}

func TestPostsArchiveSendsStatusUpdate(t *testing.T) {
	fake := &fakeRequester{reply: map[string]any{}}
	_, err := NewPosts(fake).Archive(context.Background(), "p-1")
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}
	body := fake.calls[0].body.(map[string]any)
	if body["status"] != "archived" {
		t.Errorf("body = %v, want status=archived", body)
	}
}

func TestPostsListValidatesStatusFilter(t *testing.T) {
	fake := &fakeRequester{}
	_, err := NewPosts(fake).List(context.Background(), ListPostsParams{Status: "nope"})
	wantValidation(t, err, "Invalid status (must be draft, published or archived)")
	if len(fake.calls) != 0 {
		t.Errorf("transport saw %d calls, want 0", len(fake.calls))
	}
}

func TestPostsListByAuthorRequiresID(t *testing.T) {
	fake := &fakeRequester{}
	_, err := NewPosts(fake).ListByAuthor(context.Background(), "  ")
	wantValidation(t, err, "Author ID is required")
}

func TestPostsListForwardsFilters(t *testing.T) {
	fake := &fakeRequester{reply: []any{}}
	_, err := NewPosts(fake).List(context.Background(), ListPostsParams{AuthorID: "u-1", Status: "published"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	q := fake.calls[0].query
	if q.Get("author_id") != "u-1" || q.Get("status") != "published" {
		t.Errorf("query = %v", q)
	}
}
