package repo

import (
	"testing"

	"github.com/AlyonaQA/ptm-server/internal/domain"

	"github.com/stretchr/testify/require"
)

func statusPtr(s domain.Status) *domain.Status { return &s }

func TestBuildTaskWhere(t *testing.T) {
	tests := []struct {
		name      string
		filter    TaskFilter
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "owner only",
			filter:    TaskFilter{},
			wantWhere: "owner_id = $1",
			wantArgs:  []any{"1"},
		},
		{
			name:      "owner and status",
			filter:    TaskFilter{Status: statusPtr(domain.StatusOpen)},
			wantWhere: "owner_id = $1 AND status = $2",
			wantArgs:  []any{"1", "OPEN"},
		},
		{
			name:      "owner and search",
			filter:    TaskFilter{Search: "TestSearch"},
			wantWhere: "owner_id = $1 AND (title LIKE $2 OR description LIKE $2)",
			wantArgs:  []any{"1", "%TestSearch%"},
		},
		{
			name:      "owner, status and search",
			filter:    TaskFilter{Status: statusPtr(domain.StatusOpen), Search: "TestSearch"},
			wantWhere: "owner_id = $1 AND status = $2 AND (title LIKE $3 OR description LIKE $3)",
			wantArgs:  []any{"1", "OPEN", "%TestSearch%"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			where, args := buildTaskWhere("1", tc.filter)
			require.Equal(t, tc.wantWhere, where)
			require.Equal(t, tc.wantArgs, args)
		})
	}
}

func TestBuildTaskWhere_SearchIsCaseSensitive(t *testing.T) {
	// LIKE, not ILIKE: substring matching must respect case.
	where, args := buildTaskWhere("u1", TaskFilter{Search: "Foo"})
	require.NotContains(t, where, "ILIKE")
	require.Equal(t, []any{"u1", "%Foo%"}, args)
}
