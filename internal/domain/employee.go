package domain

import "time"

// EmploymentStatus enumerates employment lifecycle states.
type EmploymentStatus string

const (
	StatusActive             EmploymentStatus = "Active"
	StatusTerminated         EmploymentStatus = "Voluntarily Terminated"
	StatusTerminatedForCause EmploymentStatus = "Terminated For Cause"
)

// IsTerminated reports whether the status counts toward the termination rate.
func (s EmploymentStatus) IsTerminated() bool {
	return s == StatusTerminated || s == StatusTerminatedForCause
}

// PerformanceScore is an ordinal review rating.
type PerformanceScore string

const (
	PerformancePIP        PerformanceScore = "Pip"
	PerformanceNeedsImp   PerformanceScore = "Needs Improvement"
	PerformanceFullyMeets PerformanceScore = "Fully Meets"
	PerformanceExceeds    PerformanceScore = "Exceeds"
)

// PerformanceRank maps a score onto the ordinal scale 1..4. Unknown scores rank 0.
func PerformanceRank(score PerformanceScore) int {
	switch score {
	case PerformancePIP:
		return 1
	case PerformanceNeedsImp:
		return 2
	case PerformanceFullyMeets:
		return 3
	case PerformanceExceeds:
		return 4
	default:
		return 0
	}
}

// PerformanceRankBounds delimit the ordinal performance scale.
const (
	PerformanceRankMin = 1
	PerformanceRankMax = 4
)

// Employee is one row of the HR dataset.
type Employee struct {
	ID                string
	Name              string
	Department        string
	Position          string
	Status            EmploymentStatus
	Gender            string
	Race              string
	HireDate          *time.Time
	TerminationDate   *time.Time
	BirthDate         *time.Time
	Salary            *float64
	Performance       PerformanceScore
	EngagementScore   *float64
	SatisfactionScore *float64
	ManagerID         *string
	ManagerName       string
	TerminationReason string

	// Derived at load time, missing when the source dates are absent
	// or the derivation falls outside the plausible range.
	Age         *float64
	TenureYears *float64
}

// Terminated reports whether the employee counts as terminated.
func (e *Employee) Terminated() bool {
	return e.Status.IsTerminated()
}
