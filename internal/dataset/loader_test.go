package dataset

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/hr-analytics/internal/domain"
	apperrors "github.com/spec-kit/hr-analytics/pkg/util/errorutil"
)

var testRef = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

const testHeader = "EmpID,Employee_Name,Department,EmploymentStatus,Sex,DateofHire,DateofTermination,DOB,Salary,PerformanceScore,EngagementSurvey,EmpSatisfaction,ManagerID,ManagerName,TermReason,Position,RaceDesc\n"

func parseCSV(t *testing.T, rows string) *domain.Dataset {
	t.Helper()
	ds, err := parse(strings.NewReader(testHeader+rows), "test.csv", Options{ReferenceDate: testRef})
	require.NoError(t, err)
	return ds
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("does/not/exist.csv", Options{})
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "DATA_NOT_FOUND", domainErr.Code)
}

func TestParse_BasicRow(t *testing.T) {
	ds := parseCSV(t,
		"101,Smith John,Production,Active,M,7/5/2011,,07/10/83,62506,Exceeds,4.6,5,39,Michael Albert,N/A-StillEmployed,Production Technician,White\n")

	require.Equal(t, 1, ds.Len())
	e := ds.Rows()[0]
	assert.Equal(t, "101", e.ID)
	assert.Equal(t, "Production", e.Department)
	assert.Equal(t, domain.StatusActive, e.Status)
	assert.Equal(t, "M", e.Gender)
	assert.Equal(t, domain.PerformanceExceeds, e.Performance)

	require.NotNil(t, e.Salary)
	assert.Equal(t, 62506.0, *e.Salary)
	require.NotNil(t, e.BirthDate)
	assert.Equal(t, 1983, e.BirthDate.Year())
	require.NotNil(t, e.Age)
	assert.InDelta(t, 41.9, *e.Age, 0.2)
	require.NotNil(t, e.TenureYears)
	assert.InDelta(t, 13.9, *e.TenureYears, 0.2)
	assert.True(t, *e.TenureYears >= 0)
}

func TestParse_BirthDateCenturyFix(t *testing.T) {
	// A 2-digit year resolving after the reference year belongs to the
	// previous century: 70 means 1970, not 2070.
	ds := parseCSV(t,
		"102,Doe Jane,Sales,Active,F,1/15/2015,,6/1/70,55000,Fully Meets,4,4,12,Amy Dunn,,Sales Rep,White\n")

	e := ds.Rows()[0]
	require.NotNil(t, e.BirthDate)
	assert.Equal(t, 1970, e.BirthDate.Year())
	require.NotNil(t, e.Age)
	assert.InDelta(t, 55.0, *e.Age, 0.2)
}

func TestParse_NanTerminationDateIsMissing(t *testing.T) {
	ds := parseCSV(t,
		"103,Roe Max,IT/IS,Active,M,3/30/2015,Nan,2/18/86,72000,Fully Meets,5,4,10,Simon Roup,,DBA,Asian\n")

	e := ds.Rows()[0]
	assert.Nil(t, e.TerminationDate)
	assert.Empty(t, ds.Warnings())
}

func TestParse_TenureUsesTerminationDate(t *testing.T) {
	ds := parseCSV(t,
		"104,Gone Gary,Sales,Voluntarily Terminated,M,1/1/2010,1/1/2015,3/3/80,50000,Needs Improvement,3,3,15,Amy Dunn,Another Position,Sales Rep,White\n")

	e := ds.Rows()[0]
	assert.True(t, e.Terminated())
	require.NotNil(t, e.TenureYears)
	assert.InDelta(t, 5.0, *e.TenureYears, 0.05)
}

func TestParse_QualityWarnings(t *testing.T) {
	tests := []struct {
		name  string
		row   string
		issue domain.QualityIssue
	}{
		{
			name:  "unparsable salary",
			row:   "201,A,Sales,Active,F,1/1/2015,,1/1/90,not-a-number,Fully Meets,4,4,1,M,,P,W\n",
			issue: domain.IssueUnparsableNumber,
		},
		{
			name:  "unparsable hire date",
			row:   "202,B,Sales,Active,F,someday,,1/1/90,50000,Fully Meets,4,4,1,M,,P,W\n",
			issue: domain.IssueUnparsableDate,
		},
		{
			name:  "implausible age",
			row:   "203,C,Sales,Active,F,1/1/2015,,1/1/2030,50000,Fully Meets,4,4,1,M,,P,W\n",
			issue: domain.IssueImplausibleAge,
		},
		{
			name:  "negative tenure",
			row:   "204,D,Sales,Active,F,1/1/2030,,1/1/90,50000,Fully Meets,4,4,1,M,,P,W\n",
			issue: domain.IssueNegativeTenure,
		},
		{
			name:  "terminated without date",
			row:   "205,E,Sales,Voluntarily Terminated,F,1/1/2015,,1/1/90,50000,Fully Meets,4,4,1,M,Quit,P,W\n",
			issue: domain.IssueTerminationMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := parseCSV(t, tt.row)
			// The row is kept, never dropped.
			require.Equal(t, 1, ds.Len())
			require.NotEmpty(t, ds.Warnings())
			found := false
			for _, w := range ds.Warnings() {
				if w.Issue == tt.issue {
					found = true
				}
			}
			assert.True(t, found, "expected issue %s, got %v", tt.issue, ds.Warnings())
		})
	}
}

func TestParse_ImplausibleAgeLeavesAgeMissing(t *testing.T) {
	ds := parseCSV(t,
		"206,F,Sales,Active,F,1/1/2015,,1/1/2030,50000,Fully Meets,4,4,1,M,,P,W\n")
	assert.Nil(t, ds.Rows()[0].Age)
}

func TestParse_DuplicateIDWarning(t *testing.T) {
	ds := parseCSV(t,
		"301,A,Sales,Active,F,1/1/2015,,1/1/90,50000,Fully Meets,4,4,1,M,,P,W\n"+
			"301,B,Sales,Active,M,1/1/2016,,1/1/91,51000,Fully Meets,4,4,1,M,,P,W\n")

	require.Equal(t, 2, ds.Len())
	require.Len(t, ds.Warnings(), 1)
	assert.Equal(t, domain.IssueDuplicateID, ds.Warnings()[0].Issue)
}

func TestParse_CategoricalTitleCase(t *testing.T) {
	ds := parseCSV(t,
		"401,A,  production  ,ACTIVE,f,1/1/2015,,1/1/90,50000,exceeds,4,4,1,M,,tech,white\n")

	e := ds.Rows()[0]
	assert.Equal(t, "Production", e.Department)
	assert.Equal(t, domain.StatusActive, e.Status)
	assert.Equal(t, "F", e.Gender)
	assert.Equal(t, domain.PerformanceExceeds, e.Performance)
}

func TestParse_MissingManagerID(t *testing.T) {
	ds := parseCSV(t,
		"501,A,Sales,Active,F,1/1/2015,,1/1/90,50000,Fully Meets,4,4,,Amy Dunn,,P,W\n")
	assert.Nil(t, ds.Rows()[0].ManagerID)
}

func TestDataset_DistinctValues(t *testing.T) {
	ds := parseCSV(t,
		"601,A,Sales,Active,F,1/1/2015,,1/1/90,50000,Fully Meets,4,4,1,M,,P,W\n"+
			"602,B,Engineering,Active,M,1/1/2015,,1/1/90,60000,Exceeds,4,4,1,M,,P,W\n"+
			"603,C,Sales,Voluntarily Terminated,F,1/1/2010,1/1/2015,1/1/90,50000,Pip,4,4,1,M,Quit,P,W\n")

	assert.Equal(t, []string{"Sales", "Engineering"}, ds.Departments())
	assert.ElementsMatch(t, []string{"Active", "Voluntarily Terminated"}, ds.Statuses())
	assert.ElementsMatch(t, []string{"F", "M"}, ds.Genders())
	assert.ElementsMatch(t, []string{"Fully Meets", "Exceeds", "Pip"}, ds.PerformanceScores())
}
