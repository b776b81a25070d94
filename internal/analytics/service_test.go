package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/hr-analytics/internal/dataset"
	"github.com/spec-kit/hr-analytics/internal/domain"
)

func newTestService(rows []domain.Employee) *Service {
	ds := domain.NewDataset(rows, nil, "test.csv", time.Now())
	return NewService(Dependencies{
		Store:  dataset.NewStore(ds),
		Cache:  nil, // memoization disabled; Dashboard computes every time
		Logger: zap.NewNop(),
	})
}

func departmentRows(dept string, n int) []domain.Employee {
	rows := make([]domain.Employee, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, domain.Employee{Department: dept, Status: domain.StatusActive})
	}
	return rows
}

func TestService_DashboardFullBreakdownUnderFilter(t *testing.T) {
	var rows []domain.Employee
	rows = append(rows, departmentRows("Sales", 100)...)
	rows = append(rows, departmentRows("Engineering", 150)...)
	rows = append(rows, departmentRows("HR", 60)...)
	svc := newTestService(rows)

	d, err := svc.Dashboard(context.Background(), FilterSpec{Departments: []string{"Engineering"}})
	require.NoError(t, err)

	assert.Equal(t, 310, d.Meta.DatasetRows)
	assert.Equal(t, 150, d.Meta.FilteredRows)
	assert.Equal(t, 150, d.Summary.TotalCount)

	// Filtered-out departments show up with zero counts, not omitted.
	require.Len(t, d.DepartmentBreakdown, 3)
	byLabel := map[string]int{}
	for _, c := range d.DepartmentBreakdown {
		byLabel[c.Label] = c.Count
	}
	assert.Equal(t, map[string]int{"Sales": 0, "Engineering": 150, "HR": 0}, byLabel)
}

func TestService_DashboardEmptyResult(t *testing.T) {
	rows := []domain.Employee{
		{Department: "Sales", Status: domain.StatusActive, Performance: domain.PerformanceFullyMeets, Salary: fl(50000)},
		{Department: "Sales", Status: domain.StatusTerminated, Performance: domain.PerformanceNeedsImp, Salary: fl(45000)},
	}
	svc := newTestService(rows)

	// A performance range matching no one is a valid, non-error state.
	d, err := svc.Dashboard(context.Background(), FilterSpec{PerfMin: 4, PerfMax: 4})
	require.NoError(t, err)

	assert.Equal(t, 0, d.Summary.TotalCount)
	assert.Equal(t, 0.0, d.Summary.TerminationRate)
	assert.Nil(t, d.Summary.AverageSalary)
	assert.Empty(t, d.GenderSplit)
	assert.Empty(t, d.SalaryByDepartment)
	assert.Empty(t, d.SalaryByPerformance)
	assert.Empty(t, d.TerminationReasons)
	assert.Empty(t, d.AgeHistogram)
	assert.Empty(t, d.EngagementSatisfaction.Points)
	assert.Empty(t, d.ManagerEffectiveness)
	for _, c := range d.DepartmentBreakdown {
		assert.Equal(t, 0, c.Count)
	}
}

func TestService_DashboardDeterministic(t *testing.T) {
	rows := []domain.Employee{
		{Department: "Sales", Status: domain.StatusActive, Gender: "F", Salary: fl(50000), Age: fl(30)},
		{Department: "HR", Status: domain.StatusTerminated, Gender: "M", Salary: fl(40000), Age: fl(41)},
	}
	svc := newTestService(rows)
	spec := FilterSpec{Genders: []string{"F", "M"}}

	first, err := svc.Dashboard(context.Background(), spec)
	require.NoError(t, err)
	second, err := svc.Dashboard(context.Background(), spec)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestService_Options(t *testing.T) {
	rows := []domain.Employee{
		{Department: "Sales", Status: domain.StatusActive, Gender: "F", Performance: domain.PerformanceExceeds},
		{Department: "Engineering", Status: domain.StatusTerminated, Gender: "M", Performance: domain.PerformancePIP},
	}
	svc := newTestService(rows)

	opts := svc.Options()
	assert.Equal(t, []string{"Engineering", "Sales"}, opts.Departments)
	assert.Equal(t, []string{"F", "M"}, opts.Genders)
	assert.Equal(t, []string{"Active", "Voluntarily Terminated"}, opts.Statuses)
	assert.Equal(t, []string{"Exceeds", "Pip"}, opts.PerformanceScores)
}

func TestService_SummaryMatchesDashboard(t *testing.T) {
	rows := []domain.Employee{
		{Department: "Sales", Status: domain.StatusActive, Salary: fl(50000)},
		{Department: "Sales", Status: domain.StatusTerminated, Salary: fl(60000)},
	}
	svc := newTestService(rows)
	spec := FilterSpec{Departments: []string{"Sales"}}

	d, err := svc.Dashboard(context.Background(), spec)
	require.NoError(t, err)
	assert.Equal(t, d.Summary, svc.Summary(context.Background(), spec))
}

func TestService_FilteredPreservesOrder(t *testing.T) {
	rows := []domain.Employee{
		{ID: "1", Department: "Sales"},
		{ID: "2", Department: "HR"},
		{ID: "3", Department: "Sales"},
	}
	svc := newTestService(rows)

	got := svc.Filtered(FilterSpec{Departments: []string{"Sales"}})
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
}
