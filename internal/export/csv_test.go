package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/hr-analytics/internal/dataset"
	"github.com/spec-kit/hr-analytics/internal/domain"
	apperrors "github.com/spec-kit/hr-analytics/pkg/util/errorutil"
)

func fl(v float64) *float64 { return &v }

func sampleRows() []domain.Employee {
	hire := time.Date(2015, 3, 30, 0, 0, 0, 0, time.UTC)
	return []domain.Employee{
		{ID: "101", Name: "Smith John", Department: "Sales", Status: domain.StatusActive, Salary: fl(62506), HireDate: &hire},
		{ID: "102", Name: "Doe Jane", Department: "HR", Status: domain.StatusTerminated},
		{ID: "103", Name: "Roe Max", Department: "Sales", Status: domain.StatusActive, Salary: fl(48000)},
	}
}

func TestCSV_HeaderPlusNRows(t *testing.T) {
	out, err := CSV(sampleRows(), nil)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	assert.Len(t, lines, 4) // header + 3 rows
	assert.Equal(t, strings.Join(dataset.Columns(), ","), lines[0])
}

func TestCSV_RowOrderPreserved(t *testing.T) {
	out, err := CSV(sampleRows(), []string{dataset.ColEmployeeID})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	assert.Equal(t, []string{"EmpID", "101", "102", "103"}, lines)
}

func TestCSV_ColumnSelection(t *testing.T) {
	out, err := CSV(sampleRows(), []string{dataset.ColEmployeeName, dataset.ColSalary})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Employee_Name,Salary", lines[0])
	assert.Equal(t, "Smith John,62506", lines[1])
	assert.Equal(t, "Doe Jane,", lines[2]) // missing salary: empty cell
}

func TestCSV_DateFormatting(t *testing.T) {
	out, err := CSV(sampleRows(), []string{dataset.ColHireDate})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	assert.Equal(t, "2015-03-30", lines[1])
	assert.Equal(t, "", lines[2])
}

func TestCSV_EmptyInput(t *testing.T) {
	out, err := CSV(nil, nil)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	assert.Len(t, lines, 1) // header only
}

func TestCSV_UnknownColumn(t *testing.T) {
	_, err := CSV(sampleRows(), []string{"NoSuchColumn"})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}
