package domain

import "time"

// QualityIssue classifies a data quality warning raised during load.
type QualityIssue string

const (
	IssueMalformedRow        QualityIssue = "malformed_row"
	IssueUnparsableDate      QualityIssue = "unparsable_date"
	IssueUnparsableNumber    QualityIssue = "unparsable_number"
	IssueImplausibleAge      QualityIssue = "implausible_age"
	IssueNegativeTenure      QualityIssue = "negative_tenure"
	IssueDuplicateID         QualityIssue = "duplicate_id"
	IssueTerminationMismatch QualityIssue = "termination_mismatch"
)

// QualityWarning flags a malformed or inconsistent field on one row.
// Rows carrying warnings stay in the dataset; the offending value is
// left missing instead.
type QualityWarning struct {
	Row        int          `json:"row"`
	EmployeeID string       `json:"employee_id"`
	Column     string       `json:"column"`
	Issue      QualityIssue `json:"issue"`
	Detail     string       `json:"detail"`
}

// Dataset is the full employee table, immutable after load. Consumers
// receive it as a handle and must never mutate the rows.
type Dataset struct {
	rows     []Employee
	warnings []QualityWarning
	source   string
	loadedAt time.Time
}

// NewDataset wraps loaded rows and warnings into an immutable handle.
func NewDataset(rows []Employee, warnings []QualityWarning, source string, loadedAt time.Time) *Dataset {
	return &Dataset{rows: rows, warnings: warnings, source: source, loadedAt: loadedAt}
}

// Rows exposes the underlying rows. Callers must treat the slice as read-only.
func (d *Dataset) Rows() []Employee {
	return d.rows
}

// Len returns the row count.
func (d *Dataset) Len() int {
	return len(d.rows)
}

// Warnings returns quality warnings collected during load.
func (d *Dataset) Warnings() []QualityWarning {
	return d.warnings
}

// Source returns the file path the dataset was loaded from.
func (d *Dataset) Source() string {
	return d.source
}

// LoadedAt returns the load timestamp, used as the cache version.
func (d *Dataset) LoadedAt() time.Time {
	return d.loadedAt
}

// Departments returns the distinct departments in first-seen order.
func (d *Dataset) Departments() []string {
	return distinct(d.rows, func(e *Employee) string { return e.Department })
}

// Statuses returns the distinct employment statuses in first-seen order.
func (d *Dataset) Statuses() []string {
	return distinct(d.rows, func(e *Employee) string { return string(e.Status) })
}

// Genders returns the distinct gender values in first-seen order.
func (d *Dataset) Genders() []string {
	return distinct(d.rows, func(e *Employee) string { return e.Gender })
}

// PerformanceScores returns the distinct performance scores in first-seen order.
func (d *Dataset) PerformanceScores() []string {
	return distinct(d.rows, func(e *Employee) string { return string(e.Performance) })
}

func distinct(rows []Employee, key func(*Employee) string) []string {
	seen := make(map[string]struct{}, 8)
	var out []string
	for i := range rows {
		v := key(&rows[i])
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
