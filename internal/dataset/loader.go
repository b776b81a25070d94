package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"

	"github.com/spec-kit/hr-analytics/internal/domain"
	apperrors "github.com/spec-kit/hr-analytics/pkg/util/errorutil"
)

// Column headers of the input CSV.
const (
	ColEmployeeName    = "Employee_Name"
	ColEmployeeID      = "EmpID"
	ColDepartment      = "Department"
	ColStatus          = "EmploymentStatus"
	ColGender          = "Sex"
	ColHireDate        = "DateofHire"
	ColTerminationDate = "DateofTermination"
	ColBirthDate       = "DOB"
	ColSalary          = "Salary"
	ColPerformance     = "PerformanceScore"
	ColEngagement      = "EngagementSurvey"
	ColSatisfaction    = "EmpSatisfaction"
	ColManagerID       = "ManagerID"
	ColManagerName     = "ManagerName"
	ColTermReason      = "TermReason"
	ColPosition        = "Position"
	ColRace            = "RaceDesc"
)

// Columns lists every known column in export order.
func Columns() []string {
	return []string{
		ColEmployeeID, ColEmployeeName, ColDepartment, ColPosition, ColStatus,
		ColGender, ColRace, ColHireDate, ColTerminationDate, ColBirthDate,
		ColSalary, ColPerformance, ColEngagement, ColSatisfaction,
		ColManagerID, ColManagerName, ColTermReason,
	}
}

const (
	dateLayout      = "1/2/2006"
	shortDateLayout = "1/2/06"
	daysPerYear     = 365.25
)

// Options tunes derivation during load.
type Options struct {
	// ReferenceDate anchors age and tenure derivation. Zero means now.
	ReferenceDate time.Time
	// MaxAgeYears caps plausible ages; beyond it the age is flagged missing.
	MaxAgeYears int
}

func (o Options) reference() time.Time {
	if o.ReferenceDate.IsZero() {
		return time.Now()
	}
	return o.ReferenceDate
}

func (o Options) maxAge() float64 {
	if o.MaxAgeYears <= 0 {
		return 100
	}
	return float64(o.MaxAgeYears)
}

// Load reads the CSV at path into an immutable Dataset. A missing or
// unreadable file is a DATA_NOT_FOUND domain error; malformed field values
// become quality warnings on the returned dataset instead of failures.
func Load(path string, opts Options) (*domain.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewDataNotFound(path, err)
	}
	defer f.Close()

	ds, err := parse(f, path, opts)
	if err != nil {
		return nil, err
	}
	return ds, nil
}

func parse(r io.Reader, source string, opts Options) (*domain.Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, apperrors.NewDataNotFound(source, fmt.Errorf("read header: %w", err))
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	if _, ok := idx[ColEmployeeID]; !ok {
		return nil, apperrors.NewDataNotFound(source, fmt.Errorf("missing required column %s", ColEmployeeID))
	}

	ref := opts.reference()
	maxAge := opts.maxAge()

	var (
		rows     []domain.Employee
		warnings []domain.QualityWarning
		seenIDs  = make(map[string]struct{})
		rowNum   int
	)

	warn := func(row int, id, column string, issue domain.QualityIssue, detail string) {
		warnings = append(warnings, domain.QualityWarning{
			Row:        row,
			EmployeeID: id,
			Column:     column,
			Issue:      issue,
			Detail:     detail,
		})
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed lines are a quality condition, not a load failure.
			rowNum++
			warn(rowNum, "", "", domain.IssueMalformedRow, err.Error())
			continue
		}
		rowNum++

		field := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(record) {
				return ""
			}
			return cleanValue(record[i])
		}

		id := field(ColEmployeeID)
		if _, dup := seenIDs[id]; dup && id != "" {
			warn(rowNum, id, ColEmployeeID, domain.IssueDuplicateID, "employee id seen before")
		}
		if id != "" {
			seenIDs[id] = struct{}{}
		}

		emp := domain.Employee{
			ID:                id,
			Name:              field(ColEmployeeName),
			Department:        titleCase(field(ColDepartment)),
			Position:          titleCase(field(ColPosition)),
			Status:            domain.EmploymentStatus(titleCase(field(ColStatus))),
			Gender:            titleCase(field(ColGender)),
			Race:              titleCase(field(ColRace)),
			Performance:       domain.PerformanceScore(titleCase(field(ColPerformance))),
			ManagerName:       field(ColManagerName),
			TerminationReason: titleCase(field(ColTermReason)),
		}

		if v := field(ColManagerID); v != "" {
			emp.ManagerID = &v
		}

		if v := field(ColHireDate); v != "" {
			if t, err := time.Parse(dateLayout, v); err == nil {
				emp.HireDate = &t
			} else {
				warn(rowNum, id, ColHireDate, domain.IssueUnparsableDate, v)
			}
		}
		if v := field(ColTerminationDate); v != "" {
			if t, err := time.Parse(dateLayout, v); err == nil {
				emp.TerminationDate = &t
			} else {
				warn(rowNum, id, ColTerminationDate, domain.IssueUnparsableDate, v)
			}
		}
		if v := field(ColBirthDate); v != "" {
			if t, ok := parseBirthDate(v, ref); ok {
				emp.BirthDate = &t
			} else {
				warn(rowNum, id, ColBirthDate, domain.IssueUnparsableDate, v)
			}
		}

		if v := field(ColSalary); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				emp.Salary = &f
			} else {
				warn(rowNum, id, ColSalary, domain.IssueUnparsableNumber, v)
			}
		}
		if v := field(ColEngagement); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				emp.EngagementScore = &f
			} else {
				warn(rowNum, id, ColEngagement, domain.IssueUnparsableNumber, v)
			}
		}
		if v := field(ColSatisfaction); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				emp.SatisfactionScore = &f
			} else {
				warn(rowNum, id, ColSatisfaction, domain.IssueUnparsableNumber, v)
			}
		}

		if emp.Terminated() && emp.TerminationDate == nil {
			warn(rowNum, id, ColTerminationDate, domain.IssueTerminationMismatch, "terminated status without termination date")
		}
		if !emp.Terminated() && emp.TerminationDate != nil {
			warn(rowNum, id, ColStatus, domain.IssueTerminationMismatch, "termination date on non-terminated status")
		}

		if emp.BirthDate != nil {
			age := yearsBetween(*emp.BirthDate, ref)
			if age < 0 || age > maxAge {
				warn(rowNum, id, ColBirthDate, domain.IssueImplausibleAge, fmt.Sprintf("derived age %.1f", age))
			} else {
				emp.Age = &age
			}
		}
		if emp.HireDate != nil {
			end := ref
			if emp.Terminated() && emp.TerminationDate != nil {
				end = *emp.TerminationDate
			}
			tenure := yearsBetween(*emp.HireDate, end)
			if tenure < 0 {
				warn(rowNum, id, ColHireDate, domain.IssueNegativeTenure, fmt.Sprintf("derived tenure %.1f", tenure))
			} else {
				emp.TenureYears = &tenure
			}
		}

		rows = append(rows, emp)
	}

	return domain.NewDataset(rows, warnings, source, time.Now()), nil
}

// parseBirthDate handles 2-digit years: a resolved year after the reference
// year belongs to the previous century. Explicit 4-digit years pass through
// untouched so implausible values surface as quality warnings downstream.
func parseBirthDate(v string, ref time.Time) (time.Time, bool) {
	if t, err := time.Parse(shortDateLayout, v); err == nil {
		if t.Year() > ref.Year() {
			t = t.AddDate(-100, 0, 0)
		}
		return t, true
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func yearsBetween(from, to time.Time) float64 {
	return to.Sub(from).Hours() / 24 / daysPerYear
}

// cleanValue trims whitespace and normalizes the missing-value spellings
// the source file uses.
func cleanValue(v string) string {
	v = strings.TrimSpace(v)
	switch strings.ToLower(v) {
	case "", "nan", "n/a", "na", "null":
		return ""
	}
	return v
}

// titleCase mirrors the original cleanup of categorical values: trimmed,
// with each word capitalized.
func titleCase(v string) string {
	if v == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(v))
	prevLetter := false
	for _, r := range v {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			b.WriteRune(r)
			prevLetter = false
		}
	}
	return b.String()
}

// LoadWithLogging wraps Load and reports quality warnings once per load.
func LoadWithLogging(path string, opts Options, logger *zap.Logger) (*domain.Dataset, error) {
	ds, err := Load(path, opts)
	if err != nil {
		return nil, err
	}
	if n := len(ds.Warnings()); n > 0 {
		logger.Warn("dataset loaded with quality warnings",
			zap.String("path", path),
			zap.Int("rows", ds.Len()),
			zap.Int("warnings", n),
		)
	} else {
		logger.Info("dataset loaded", zap.String("path", path), zap.Int("rows", ds.Len()))
	}
	return ds, nil
}
