package postgres

import (
	"fmt"
	"strings"

	"github.com/smeworks/backoffice-api/internal/core/domain"
)

// where accumulates AND-ed conditions with positional arguments.
type where struct {
	conds []string
	args  []any
}

// eq adds "col = $n".
func (w *where) eq(col string, v any) {
	w.cmp(col, "=", v)
}

// cmp adds "col op $n".
func (w *where) cmp(col, op string, v any) {
	w.args = append(w.args, v)
	w.conds = append(w.conds, fmt.Sprintf("%s %s $%d", col, op, len(w.args)))
}

// raw adds a condition that takes no arguments.
func (w *where) raw(cond string) {
	w.conds = append(w.conds, cond)
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// page appends LIMIT/OFFSET placeholders and their arguments.
func (w *where) page(p domain.Page) string {
	p = p.Normalize()
	w.args = append(w.args, p.Limit, p.Skip)
	n := len(w.args)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", n-1, n)
}
