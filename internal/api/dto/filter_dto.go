package dto

import (
	"strconv"
	"strings"

	"github.com/spec-kit/hr-analytics/internal/analytics"
	"github.com/spec-kit/hr-analytics/internal/domain"
	apperrors "github.com/spec-kit/hr-analytics/pkg/util/errorutil"
)

// DashboardQuery captures the raw filter query parameters sent by the UI.
// Multi-value params may be repeated or comma-separated; performance
// bounds accept a rank (1-4) or a score name.
type DashboardQuery struct {
	Departments []string
	Statuses    []string
	Genders     []string
	PerfMin     string
	PerfMax     string
}

// ToFilterSpec validates and converts the query into a filter spec.
func (q DashboardQuery) ToFilterSpec() (analytics.FilterSpec, error) {
	spec := analytics.FilterSpec{
		Departments: splitMulti(q.Departments),
		Statuses:    splitMulti(q.Statuses),
		Genders:     splitMulti(q.Genders),
	}

	var err error
	if spec.PerfMin, err = parsePerfBound(q.PerfMin); err != nil {
		return analytics.FilterSpec{}, err
	}
	if spec.PerfMax, err = parsePerfBound(q.PerfMax); err != nil {
		return analytics.FilterSpec{}, err
	}
	if err := spec.Validate(); err != nil {
		return analytics.FilterSpec{}, apperrors.NewValidationError(err.Error(), nil)
	}
	return spec, nil
}

// ExportQuery captures the export endpoint's parameters.
type ExportQuery struct {
	DashboardQuery
	Columns []string
}

// SelectedColumns returns the normalized column selection.
func (q ExportQuery) SelectedColumns() []string {
	return splitMulti(q.Columns)
}

func splitMulti(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// parsePerfBound accepts "" (unbounded), a rank 1..4, or a score name.
func parsePerfBound(v string) (int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(v); err == nil {
		if n < domain.PerformanceRankMin || n > domain.PerformanceRankMax {
			return 0, apperrors.NewValidationError("performance rank out of range", map[string]any{"value": v})
		}
		return n, nil
	}
	for _, score := range []domain.PerformanceScore{
		domain.PerformancePIP,
		domain.PerformanceNeedsImp,
		domain.PerformanceFullyMeets,
		domain.PerformanceExceeds,
	} {
		if strings.EqualFold(string(score), v) {
			return domain.PerformanceRank(score), nil
		}
	}
	return 0, apperrors.NewValidationError("unknown performance score", map[string]any{"value": v})
}
