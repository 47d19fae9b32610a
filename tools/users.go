package tools

import (
	"context"
	"encoding/json"

	"github.com/dogukanakin/local-mcp/internal/envelope"
	"github.com/dogukanakin/local-mcp/internal/operations"
)

type GetUserInput struct {
	UserID string `json:"user_id" jsonschema_description:"ID of the user to fetch."`
}

type UpdateUserInput struct {
	UserID string  `json:"user_id" jsonschema_description:"ID of the user to update."`
	Name   *string `json:"name,omitempty" jsonschema_description:"New name for the user."`
	Email  *string `json:"email,omitempty" jsonschema_description:"New email address for the user."`
}

type DeleteUserInput struct {
	UserID string `json:"user_id" jsonschema_description:"ID of the user to delete."`
}

type SearchUsersInput struct {
	Query string `json:"query" jsonschema_description:"Text to search for in user names and emails."`
	Limit int    `json:"limit,omitempty" jsonschema_description:"Maximum results to return (default 10)."`
}

var (
	listUsersInputSchema   = GenerateSchema[operations.ListUsersParams]()
	getUserInputSchema     = GenerateSchema[GetUserInput]()
	createUserInputSchema  = GenerateSchema[operations.CreateUserParams]()
	updateUserInputSchema  = GenerateSchema[UpdateUserInput]()
	deleteUserInputSchema  = GenerateSchema[DeleteUserInput]()
	searchUsersInputSchema = GenerateSchema[SearchUsersInput]()
)

// UserTools returns the tool definitions for the user resource, bound to the
// given operations.
func UserTools(users *operations.Users) []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        "list_users",
			Description: "List all users. Pagination and search parameters are forwarded to the backend but not honoured yet.",
			InputSchema: listUsersInputSchema,
			Function: func(ctx context.Context, input json.RawMessage) (string, error) {
				var in operations.ListUsersParams
				if errStr, ok := decodeInput(input, &in); !ok {
					return errStr, nil
				}
				return run(users.List(ctx, in)), nil
			},
		},
		{
			Name:        "get_user",
			Description: "Fetch a single user by ID.",
			InputSchema: getUserInputSchema,
			Function: func(ctx context.Context, input json.RawMessage) (string, error) {
				var in GetUserInput
				if errStr, ok := decodeInput(input, &in); !ok {
					return errStr, nil
				}
				return run(users.Get(ctx, in.UserID)), nil
			},
		},
		{
			Name:        "create_user",
			Description: "Create a new user with a name and an email address. The ID is generated automatically.",
			InputSchema: createUserInputSchema,
			Function: func(ctx context.Context, input json.RawMessage) (string, error) {
				var in operations.CreateUserParams
				if errStr, ok := decodeInput(input, &in); !ok {
					return errStr, nil
				}
				return run(users.Create(ctx, in)), nil
			},
		},
		{
			Name:        "update_user",
			Description: "Update an existing user. Only the supplied fields change; supplying none is an error.",
			InputSchema: updateUserInputSchema,
			Function: func(ctx context.Context, input json.RawMessage) (string, error) {
				var in UpdateUserInput
				if errStr, ok := decodeInput(input, &in); !ok {
					return errStr, nil
				}
				return run(users.Update(ctx, in.UserID, operations.UpdateUserParams{
					Name:  in.Name,
					Email: in.Email,
				})), nil
			},
		},
		{
			Name:        "delete_user",
			Description: "Delete a user by ID.",
			InputSchema: deleteUserInputSchema,
			Function: func(ctx context.Context, input json.RawMessage) (string, error) {
				var in DeleteUserInput
				if errStr, ok := decodeInput(input, &in); !ok {
					return errStr, nil
				}
				return run(users.Delete(ctx, in.UserID)), nil
			},
		},
		{
			Name:        "search_users",
			Description: "Search users by name or email. The backend does not honour the query yet; results are unfiltered.",
			InputSchema: searchUsersInputSchema,
			Function: func(ctx context.Context, input json.RawMessage) (string, error) {
				var in SearchUsersInput
				if errStr, ok := decodeInput(input, &in); !ok {
					return errStr, nil
				}
				return run(users.Search(ctx, in.Query, in.Limit)), nil
			},
		},
	}
}

// run renders an operation outcome into the envelope string handed back to
// the agent.
func run(payload any, err error) string {
	if err != nil {
		return envelope.RenderError(err)
	}
	return envelope.Render(payload)
}
