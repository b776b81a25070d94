package analytics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spec-kit/hr-analytics/internal/domain"
)

// FilterSpec captures the dashboard's filter selections. Empty slices mean
// "all" and deactivate the predicate. PerfMin/PerfMax bound the ordinal
// performance rank; zero means unbounded on that side.
type FilterSpec struct {
	Departments []string
	Statuses    []string
	Genders     []string
	PerfMin     int
	PerfMax     int
}

// performanceActive reports whether the rank range narrows the full scale.
func (f FilterSpec) performanceActive() bool {
	min, max := f.perfBounds()
	return min > domain.PerformanceRankMin || max < domain.PerformanceRankMax
}

func (f FilterSpec) perfBounds() (int, int) {
	min, max := f.PerfMin, f.PerfMax
	if min <= 0 {
		min = domain.PerformanceRankMin
	}
	if max <= 0 {
		max = domain.PerformanceRankMax
	}
	return min, max
}

// Validate rejects inverted or out-of-scale performance bounds.
func (f FilterSpec) Validate() error {
	min, max := f.perfBounds()
	if min > max {
		return fmt.Errorf("performance range inverted: min %d > max %d", min, max)
	}
	if f.PerfMin < 0 || f.PerfMax < 0 || f.PerfMin > domain.PerformanceRankMax || f.PerfMax > domain.PerformanceRankMax {
		return fmt.Errorf("performance bounds must be within %d..%d", domain.PerformanceRankMin, domain.PerformanceRankMax)
	}
	return nil
}

// Matches reports whether the row satisfies every active predicate.
func (f FilterSpec) Matches(e *domain.Employee) bool {
	if !matchSet(f.Departments, e.Department) {
		return false
	}
	if !matchSet(f.Statuses, string(e.Status)) {
		return false
	}
	if !matchSet(f.Genders, e.Gender) {
		return false
	}
	if f.performanceActive() {
		rank := domain.PerformanceRank(e.Performance)
		min, max := f.perfBounds()
		if rank < min || rank > max {
			return false
		}
	}
	return true
}

// Apply returns the rows of ds satisfying the spec, in source order. The
// dataset is never mutated; an empty result is valid.
func (f FilterSpec) Apply(ds *domain.Dataset) []domain.Employee {
	rows := ds.Rows()
	out := make([]domain.Employee, 0, len(rows))
	for i := range rows {
		if f.Matches(&rows[i]) {
			out = append(out, rows[i])
		}
	}
	return out
}

// Fingerprint renders the spec in canonical form for use as a cache key.
// Equivalent specs (ordering, case) produce identical fingerprints.
func (f FilterSpec) Fingerprint() string {
	min, max := f.perfBounds()
	return fmt.Sprintf("dept=%s|status=%s|gender=%s|perf=%d-%d",
		canonical(f.Departments), canonical(f.Statuses), canonical(f.Genders), min, max)
}

func canonical(values []string) string {
	if len(values) == 0 {
		return "all"
	}
	normalized := make([]string, 0, len(values))
	for _, v := range values {
		normalized = append(normalized, strings.ToLower(strings.TrimSpace(v)))
	}
	sort.Strings(normalized)
	return strings.Join(normalized, ",")
}

func matchSet(selection []string, value string) bool {
	if len(selection) == 0 {
		return true
	}
	for _, s := range selection {
		if strings.EqualFold(strings.TrimSpace(s), value) {
			return true
		}
	}
	return false
}
