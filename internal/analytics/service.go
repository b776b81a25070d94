package analytics

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/hr-analytics/internal/cache"
	"github.com/spec-kit/hr-analytics/internal/dataset"
	"github.com/spec-kit/hr-analytics/internal/domain"
)

// Dashboard is the full computed payload for one filter configuration.
type Dashboard struct {
	Summary                     Summary           `json:"summary"`
	DepartmentBreakdown         []CategoryCount   `json:"department_breakdown"`
	GenderSplit                 []CategoryCount   `json:"gender_split"`
	StatusBreakdown             []CategoryCount   `json:"status_breakdown"`
	PerformanceDistribution     []CategoryCount   `json:"performance_distribution"`
	SalaryByDepartment          []CategoryValue   `json:"salary_by_department"`
	SalaryByPerformance         []SalaryStats     `json:"salary_by_performance"`
	TerminationRateByDepartment []CategoryValue   `json:"termination_rate_by_department"`
	TerminationReasons          []CategoryCount   `json:"termination_reasons"`
	AgeHistogram                []HistogramBucket `json:"age_histogram"`
	RaceBreakdown               []CategoryCount   `json:"race_breakdown"`
	EngagementSatisfaction      ScatterResult     `json:"engagement_satisfaction"`
	ManagerEffectiveness        []ManagerStat     `json:"manager_effectiveness"`
	Meta                        DashboardMeta     `json:"meta"`
}

// DashboardMeta carries dataset provenance alongside the aggregates.
type DashboardMeta struct {
	DatasetRows     int                     `json:"dataset_rows"`
	FilteredRows    int                     `json:"filtered_rows"`
	DatasetLoadedAt time.Time               `json:"dataset_loaded_at"`
	QualityWarnings []domain.QualityWarning `json:"quality_warnings,omitempty"`
}

// FilterOptions lists the distinct values per filterable column, feeding
// the UI's dropdowns.
type FilterOptions struct {
	Departments       []string `json:"departments"`
	Statuses          []string `json:"statuses"`
	Genders           []string `json:"genders"`
	PerformanceScores []string `json:"performance_scores"`
}

// Service runs the filter → aggregate pipeline over the current dataset
// snapshot, memoizing full dashboard payloads per filter fingerprint.
type Service struct {
	store  *dataset.Store
	cache  *cache.ResultCache
	logger *zap.Logger
}

// Dependencies bundles service collaborators.
type Dependencies struct {
	Store  *dataset.Store
	Cache  *cache.ResultCache
	Logger *zap.Logger
}

// NewService constructs the service.
func NewService(deps Dependencies) *Service {
	return &Service{store: deps.Store, cache: deps.Cache, logger: deps.Logger}
}

// Snapshot returns the current immutable dataset handle.
func (s *Service) Snapshot() *domain.Dataset {
	return s.store.Snapshot()
}

// Dashboard computes (or recalls) the full payload for the given filters.
func (s *Service) Dashboard(ctx context.Context, spec FilterSpec) (*Dashboard, error) {
	ds := s.store.Snapshot()
	key := cache.Key(ds.LoadedAt(), spec.Fingerprint())

	if cached := s.cache.Get(ctx, key); cached != nil {
		var d Dashboard
		if err := json.Unmarshal(cached, &d); err == nil {
			return &d, nil
		}
		// Corrupt entries fall through to recomputation.
	}

	d := compute(ds, spec)

	if payload, err := json.Marshal(d); err == nil {
		s.cache.Set(ctx, key, payload)
	}
	return d, nil
}

// Summary computes just the scalar metrics for the given filters.
func (s *Service) Summary(ctx context.Context, spec FilterSpec) Summary {
	ds := s.store.Snapshot()
	return Summarize(spec.Apply(ds))
}

// Options returns the distinct filterable values of the current dataset.
func (s *Service) Options() FilterOptions {
	ds := s.store.Snapshot()
	return FilterOptions{
		Departments:       sortedCopy(ds.Departments()),
		Statuses:          sortedCopy(ds.Statuses()),
		Genders:           sortedCopy(ds.Genders()),
		PerformanceScores: sortedCopy(ds.PerformanceScores()),
	}
}

// Filtered returns the filtered rows for the given spec, in source order.
func (s *Service) Filtered(spec FilterSpec) []domain.Employee {
	return spec.Apply(s.store.Snapshot())
}

// compute runs every preparer over the filtered subset. Pure with respect
// to ds; re-running with the same inputs yields the same payload.
func compute(ds *domain.Dataset, spec FilterSpec) *Dashboard {
	rows := spec.Apply(ds)
	return &Dashboard{
		Summary:                     Summarize(rows),
		DepartmentBreakdown:         DepartmentBreakdown(rows, ds.Departments()),
		GenderSplit:                 GenderSplit(rows),
		StatusBreakdown:             StatusBreakdown(rows),
		PerformanceDistribution:     PerformanceDistribution(rows),
		SalaryByDepartment:          SalaryByDepartment(rows),
		SalaryByPerformance:         SalaryByPerformance(rows),
		TerminationRateByDepartment: TerminationRateByDepartment(rows),
		TerminationReasons:          TerminationReasons(rows),
		AgeHistogram:                AgeHistogram(rows),
		RaceBreakdown:               RaceBreakdown(rows),
		EngagementSatisfaction:      EngagementSatisfaction(rows),
		ManagerEffectiveness:        ManagerEffectiveness(rows),
		Meta: DashboardMeta{
			DatasetRows:     ds.Len(),
			FilteredRows:    len(rows),
			DatasetLoadedAt: ds.LoadedAt(),
			QualityWarnings: ds.Warnings(),
		},
	}
}

func sortedCopy(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	sort.Strings(out)
	return out
}
