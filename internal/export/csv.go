package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/spec-kit/hr-analytics/internal/dataset"
	"github.com/spec-kit/hr-analytics/internal/domain"
	apperrors "github.com/spec-kit/hr-analytics/pkg/util/errorutil"
)

const exportDateLayout = "2006-01-02"

// CSV serializes the filtered rows as comma-separated bytes: one header
// line plus one line per row, in the order given. columns selects and
// orders the output columns; empty means every known column. Values pass
// through unmodified apart from date formatting; missing values become
// empty cells.
func CSV(rows []domain.Employee, columns []string) ([]byte, error) {
	if len(columns) == 0 {
		columns = dataset.Columns()
	}
	for _, col := range columns {
		if !knownColumn(col) {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("unknown export column %q", col),
				map[string]any{"column": col, "known": dataset.Columns()},
			)
		}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(columns); err != nil {
		return nil, err
	}
	record := make([]string, len(columns))
	for i := range rows {
		for j, col := range columns {
			record[j] = cellValue(&rows[i], col)
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func knownColumn(col string) bool {
	for _, known := range dataset.Columns() {
		if known == col {
			return true
		}
	}
	return false
}

func cellValue(e *domain.Employee, col string) string {
	switch col {
	case dataset.ColEmployeeID:
		return e.ID
	case dataset.ColEmployeeName:
		return e.Name
	case dataset.ColDepartment:
		return e.Department
	case dataset.ColPosition:
		return e.Position
	case dataset.ColStatus:
		return string(e.Status)
	case dataset.ColGender:
		return e.Gender
	case dataset.ColRace:
		return e.Race
	case dataset.ColHireDate:
		return formatDate(e.HireDate)
	case dataset.ColTerminationDate:
		return formatDate(e.TerminationDate)
	case dataset.ColBirthDate:
		return formatDate(e.BirthDate)
	case dataset.ColSalary:
		return formatFloat(e.Salary)
	case dataset.ColPerformance:
		return string(e.Performance)
	case dataset.ColEngagement:
		return formatFloat(e.EngagementScore)
	case dataset.ColSatisfaction:
		return formatFloat(e.SatisfactionScore)
	case dataset.ColManagerID:
		if e.ManagerID == nil {
			return ""
		}
		return *e.ManagerID
	case dataset.ColManagerName:
		return e.ManagerName
	case dataset.ColTermReason:
		return e.TerminationReason
	default:
		return ""
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(exportDateLayout)
}

func formatFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
