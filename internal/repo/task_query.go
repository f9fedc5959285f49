package repo

import (
	"strconv"
	"strings"

	dom "github.com/AlyonaQA/ptm-server/internal/domain"
)

// TaskFilter narrows a task listing. Both fields are optional; the owner
// constraint is always applied by the caller of buildTaskWhere.
type TaskFilter struct {
	Status *dom.Status
	Search string
}

// buildTaskWhere renders the selection predicate for an owner-scoped task
// query: owner_id AND [status] AND (title contains search OR description
// contains search). Search is a case-sensitive substring match. Returns the
// WHERE body (without the keyword) and the positional args.
func buildTaskWhere(ownerID string, f TaskFilter) (string, []any) {
	clauses := []string{"owner_id = $1"}
	args := []any{ownerID}

	if f.Status != nil {
		args = append(args, string(*f.Status))
		clauses = append(clauses, "status = $"+strconv.Itoa(len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := strconv.Itoa(len(args))
		clauses = append(clauses, "(title LIKE $"+n+" OR description LIKE $"+n+")")
	}
	return strings.Join(clauses, " AND "), args
}
