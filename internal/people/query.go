package people

import (
	"fmt"
	"strings"

	"github.com/dogukanakin/local-mcp/internal/apierror"
)

// buildListQuery assembles the SELECT for List. Filter values only ever
// travel as bind parameters; the order-by column is checked against the
// whitelist before touching the statement text.
func buildListQuery(f Filter) (string, []any, error) {
	orderBy := f.OrderBy
	if orderBy == "" {
		orderBy = "id"
	}
	if _, ok := orderColumns[orderBy]; !ok {
		return "", nil, apierror.NewValidation(
			fmt.Sprintf("Invalid order_by column '%s'", orderBy), nil)
	}

	var (
		conds []string
		args  []any
	)
	if p := strings.TrimSpace(f.Profession); p != "" {
		args = append(args, p)
		conds = append(conds, fmt.Sprintf("profession = $%d", len(args)))
	}
	if f.MinAge > 0 {
		args = append(args, f.MinAge)
		conds = append(conds, fmt.Sprintf("age >= $%d", len(args)))
	}
	if f.MaxAge > 0 {
		args = append(args, f.MaxAge)
		conds = append(conds, fmt.Sprintf("age <= $%d", len(args)))
	}

	var b strings.Builder
	b.WriteString("SELECT id, name, age, profession, created_at FROM people")
	if len(conds) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conds, " AND "))
	}
	b.WriteString(" ORDER BY ")
	b.WriteString(orderBy)
	if f.Descending {
		b.WriteString(" DESC")
	}
	if f.Limit > 0 {
		args = append(args, f.Limit)
		b.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	}

	return b.String(), args, nil
}
