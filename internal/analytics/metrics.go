package analytics

import "github.com/spec-kit/hr-analytics/internal/domain"

// Summary holds the scalar dashboard metrics. Averages are nil when no row
// carries a value for the column, never zero-filled.
type Summary struct {
	TotalCount         int      `json:"total_count"`
	ActiveCount        int      `json:"active_count"`
	TerminatedCount    int      `json:"terminated_count"`
	TerminationRate    float64  `json:"termination_rate"`
	AverageSalary      *float64 `json:"average_salary"`
	AverageTenureYears *float64 `json:"average_tenure_years"`
}

// Summarize computes the fixed-shape metrics over the filtered rows. An
// empty input yields zero counts and a zero termination rate.
func Summarize(rows []domain.Employee) Summary {
	s := Summary{TotalCount: len(rows)}
	for i := range rows {
		if rows[i].Status == domain.StatusActive {
			s.ActiveCount++
		}
		if rows[i].Terminated() {
			s.TerminatedCount++
		}
	}
	if s.TotalCount > 0 {
		s.TerminationRate = float64(s.TerminatedCount) / float64(s.TotalCount)
	}
	s.AverageSalary = meanOf(rows, func(e *domain.Employee) *float64 { return e.Salary })
	s.AverageTenureYears = meanOf(rows, func(e *domain.Employee) *float64 { return e.TenureYears })
	return s
}

// meanOf averages the non-missing values of one column. Missing values are
// skipped, not treated as zero; all-missing input returns nil.
func meanOf(rows []domain.Employee, value func(*domain.Employee) *float64) *float64 {
	var sum float64
	var n int
	for i := range rows {
		if v := value(&rows[i]); v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return nil
	}
	mean := sum / float64(n)
	return &mean
}
