package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/hr-analytics/internal/analytics"
)

func TestDashboardQuery_ToFilterSpec(t *testing.T) {
	tests := []struct {
		name    string
		query   DashboardQuery
		want    analytics.FilterSpec
		wantErr bool
	}{
		{
			name:  "empty query means all",
			query: DashboardQuery{},
			want:  analytics.FilterSpec{},
		},
		{
			name:  "comma separated values split",
			query: DashboardQuery{Departments: []string{"Sales, HR"}, Genders: []string{"F"}},
			want:  analytics.FilterSpec{Departments: []string{"Sales", "HR"}, Genders: []string{"F"}},
		},
		{
			name:  "repeated params preserved",
			query: DashboardQuery{Statuses: []string{"Active", "Voluntarily Terminated"}},
			want:  analytics.FilterSpec{Statuses: []string{"Active", "Voluntarily Terminated"}},
		},
		{
			name:  "numeric performance bounds",
			query: DashboardQuery{PerfMin: "2", PerfMax: "4"},
			want:  analytics.FilterSpec{PerfMin: 2, PerfMax: 4},
		},
		{
			name:  "score names as bounds",
			query: DashboardQuery{PerfMin: "needs improvement", PerfMax: "Exceeds"},
			want:  analytics.FilterSpec{PerfMin: 2, PerfMax: 4},
		},
		{
			name:    "unknown score name",
			query:   DashboardQuery{PerfMin: "stellar"},
			wantErr: true,
		},
		{
			name:    "rank out of range",
			query:   DashboardQuery{PerfMax: "7"},
			wantErr: true,
		},
		{
			name:    "inverted range",
			query:   DashboardQuery{PerfMin: "4", PerfMax: "2"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.query.ToFilterSpec()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExportQuery_FiltersFlowThroughEmbedding(t *testing.T) {
	q := ExportQuery{
		DashboardQuery: DashboardQuery{Departments: []string{"Sales"}, PerfMin: "3"},
		Columns:        []string{"EmpID"},
	}
	spec, err := q.ToFilterSpec()
	require.NoError(t, err)
	assert.Equal(t, analytics.FilterSpec{Departments: []string{"Sales"}, PerfMin: 3}, spec)
}

func TestExportQuery_SelectedColumns(t *testing.T) {
	q := ExportQuery{Columns: []string{"EmpID,Salary", "Department"}}
	assert.Equal(t, []string{"EmpID", "Salary", "Department"}, q.SelectedColumns())

	assert.Nil(t, ExportQuery{}.SelectedColumns())
}
