// Package operations implements the validate-then-call logic for each entity
// type exposed to the agent. Validation always runs before any network call;
// identifiers are generated locally on create and never change afterwards.
package operations

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"

	"github.com/google/uuid"

	"github.com/dogukanakin/local-mcp/internal/apierror"
)

// Requester is the slice of the transport client the operations need. The
// real implementation is *apiclient.Client; tests substitute a recording
// fake.
type Requester interface {
	Request(ctx context.Context, method, path string, body any, query url.Values) (any, error)
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func generateID() string {
	return uuid.NewString()
}

// notFoundFor rewrites a backend 404 into a resource-specific not-found
// error with the target id embedded. Classification relies on the structured
// status code; the rendered message text is never inspected.
func notFoundFor(err error, resource, id string) error {
	var apiErr *apierror.Error
	if errors.As(err, &apiErr) && apiErr.StatusCode == 404 {
		return apierror.NewNotFound(fmt.Sprintf("%s with ID '%s' not found", resource, id))
	}
	return err
}

func paginationQuery(page, perPage int) url.Values {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if perPage > 0 {
		query.Set("per_page", strconv.Itoa(perPage))
	}
	return query
}
