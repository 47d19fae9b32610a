package tools

import (
	"context"
	"encoding/json"

	"github.com/dogukanakin/local-mcp/internal/apierror"
	"github.com/dogukanakin/local-mcp/internal/envelope"
	"github.com/dogukanakin/local-mcp/internal/operations"
)

type GetPostInput struct {
	PostID string `json:"post_id" jsonschema_description:"ID of the post to fetch."`
}

type UpdatePostInput struct {
	PostID  string  `json:"post_id" jsonschema_description:"ID of the post to update."`
	Title   *string `json:"title,omitempty" jsonschema_description:"New title for the post."`
	Content *string `json:"content,omitempty" jsonschema_description:"New content for the post."`
	Status  *string `json:"status,omitempty" jsonschema_description:"New status: draft, published or archived."`
}

type DeletePostInput struct {
	PostID string `json:"post_id" jsonschema_description:"ID of the post to delete."`
}

type PublishPostInput struct {
	PostID string `json:"post_id" jsonschema_description:"ID of the post to publish."`
}

type ArchivePostInput struct {
	PostID string `json:"post_id" jsonschema_description:"ID of the post to archive."`
}

var (
	listPostsInputSchema   = GenerateSchema[operations.ListPostsParams]()
	getPostInputSchema     = GenerateSchema[GetPostInput]()
	createPostInputSchema  = GenerateSchema[operations.CreatePostParams]()
	updatePostInputSchema  = GenerateSchema[UpdatePostInput]()
	deletePostInputSchema  = GenerateSchema[DeletePostInput]()
	publishPostInputSchema = GenerateSchema[PublishPostInput]()
	archivePostInputSchema = GenerateSchema[ArchivePostInput]()
)

// PostTools returns the tool definitions for the post resource.
func PostTools(posts *operations.Posts) []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        "list_posts",
			Description: "List all posts. Author and status filters are forwarded to the backend but not honoured yet.",
			InputSchema: listPostsInputSchema,
			Function: func(ctx context.Context, input json.RawMessage) (string, error) {
				var in operations.ListPostsParams
				if errStr, ok := decodeInput(input, &in); !ok {
					return errStr, nil
				}
				return run(posts.List(ctx, in)), nil
			},
		},
		{
			Name:        "get_post",
			Description: "Fetch a single post by ID.",
			InputSchema: getPostInputSchema,
			Function: func(ctx context.Context, input json.RawMessage) (string, error) {
				var in GetPostInput
				if errStr, ok := decodeInput(input, &in); !ok {
					return errStr, nil
				}
				return run(posts.Get(ctx, in.PostID)), nil
			},
		},
		{
			Name:        "create_post",
			Description: "Create a new post with a title, content and author ID. Status defaults to draft.",
			InputSchema: createPostInputSchema,
			Function: func(ctx context.Context, input json.RawMessage) (string, error) {
				var in operations.CreatePostParams
				if errStr, ok := decodeInput(input, &in); !ok {
					return errStr, nil
				}
				return run(posts.Create(ctx, in)), nil
			},
		},
		{
			Name:        "update_post",
			Description: "Update an existing post. Only the supplied fields change; supplying none is an error.",
			InputSchema: updatePostInputSchema,
			Function: func(ctx context.Context, input json.RawMessage) (string, error) {
				var in UpdatePostInput
				if errStr, ok := decodeInput(input, &in); !ok {
					return errStr, nil
				}
				return run(posts.Update(ctx, in.PostID, operations.UpdatePostParams{
					Title:   in.Title,
					Content: in.Content,
					Status:  in.Status,
				})), nil
			},
		},
		{
			Name:        "delete_post",
			Description: "Delete a post by ID.",
			InputSchema: deletePostInputSchema,
			Function: func(ctx context.Context, input json.RawMessage) (string, error) {
				var in DeletePostInput
				if errStr, ok := decodeInput(input, &in); !ok {
					return errStr, nil
				}
				return run(posts.Delete(ctx, in.PostID)), nil
			},
		},
		{
			Name:        "publish_post",
			Description: "Set a post's status to published.",
			InputSchema: publishPostInputSchema,
			Function: func(ctx context.Context, input json.RawMessage) (string, error) {
				var in PublishPostInput
				if errStr, ok := decodeInput(input, &in); !ok {
					return errStr, nil
				}
				return run(posts.Publish(ctx, in.PostID)), nil
			},
		},
		{
			Name:        "archive_post",
			Description: "Set a post's status to archived.",
			InputSchema: archivePostInputSchema,
			Function: func(ctx context.Context, input json.RawMessage) (string, error) {
				var in ArchivePostInput
				if errStr, ok := decodeInput(input, &in); !ok {
					return errStr, nil
				}
				return run(posts.Archive(ctx, in.PostID)), nil
			},
		},
	}
}

// decodeInput unmarshals a tool input payload. Malformed input is a
// validation failure rendered into the envelope, not a raised error.
func decodeInput(input json.RawMessage, dst any) (string, bool) {
	if len(input) == 0 {
		return "", true
	}
	if err := json.Unmarshal(input, dst); err != nil {
		return envelope.RenderError(apierror.NewValidation("Invalid tool input: "+err.Error(), nil)), false
	}
	return "", true
}
