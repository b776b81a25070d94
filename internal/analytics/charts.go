package analytics

import (
	"math"
	"sort"

	"github.com/spec-kit/hr-analytics/internal/domain"
)

// CategoryCount is one bar/slice of a count chart.
type CategoryCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// CategoryValue is one bar of a numeric aggregate chart.
type CategoryValue struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// HistogramBucket is one bin of a histogram.
type HistogramBucket struct {
	From  float64 `json:"from"`
	To    float64 `json:"to"`
	Count int     `json:"count"`
}

// ScatterPoint is one paired engagement/satisfaction sample.
type ScatterPoint struct {
	Engagement   float64  `json:"engagement"`
	Satisfaction float64  `json:"satisfaction"`
	Performance  string   `json:"performance,omitempty"`
	Department   string   `json:"department,omitempty"`
	Salary       *float64 `json:"salary,omitempty"`
}

// ScatterResult bundles paired samples with their Pearson correlation.
// Correlation is nil with fewer than two pairs or zero variance.
type ScatterResult struct {
	Points      []ScatterPoint `json:"points"`
	Correlation *float64       `json:"correlation"`
}

// SalaryStats summarizes the salary distribution within one group as
// box-plot quartiles.
type SalaryStats struct {
	Label  string  `json:"label"`
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// ManagerStat summarizes one manager's team.
type ManagerStat struct {
	ManagerID        string  `json:"manager_id"`
	ManagerName      string  `json:"manager_name"`
	TeamSize         int     `json:"team_size"`
	HighPerformerPct float64 `json:"high_performer_pct"`
}

// minManagerTeamSize excludes managers with too few reports for a
// meaningful high-performer percentage.
const minManagerTeamSize = 3

// ageBucketWidth is the histogram bin width in years.
const ageBucketWidth = 5

// DepartmentBreakdown counts rows per department over a fixed axis, so
// departments filtered down to zero still appear with a zero count and the
// chart axis stays stable across filter changes.
func DepartmentBreakdown(rows []domain.Employee, axis []string) []CategoryCount {
	counts := make(map[string]int, len(axis))
	for i := range rows {
		counts[rows[i].Department]++
	}
	out := make([]CategoryCount, 0, len(axis))
	seen := make(map[string]struct{}, len(axis))
	for _, dept := range axis {
		out = append(out, CategoryCount{Label: dept, Count: counts[dept]})
		seen[dept] = struct{}{}
	}
	// Departments outside the axis (e.g. appearing only after a reload)
	// are appended rather than dropped.
	var extra []string
	for dept := range counts {
		if _, ok := seen[dept]; !ok && dept != "" {
			extra = append(extra, dept)
		}
	}
	sort.Strings(extra)
	for _, dept := range extra {
		out = append(out, CategoryCount{Label: dept, Count: counts[dept]})
	}
	return out
}

// GenderSplit counts rows per gender. Zero-count values are omitted.
func GenderSplit(rows []domain.Employee) []CategoryCount {
	return countBy(rows, func(e *domain.Employee) string { return e.Gender })
}

// StatusBreakdown counts rows per employment status.
func StatusBreakdown(rows []domain.Employee) []CategoryCount {
	return countBy(rows, func(e *domain.Employee) string { return string(e.Status) })
}

// PerformanceDistribution counts rows per performance score.
func PerformanceDistribution(rows []domain.Employee) []CategoryCount {
	return countBy(rows, func(e *domain.Employee) string { return string(e.Performance) })
}

// RaceBreakdown counts rows per race description.
func RaceBreakdown(rows []domain.Employee) []CategoryCount {
	return countBy(rows, func(e *domain.Employee) string { return e.Race })
}

// TerminationReasons counts termination reasons among terminated rows only.
func TerminationReasons(rows []domain.Employee) []CategoryCount {
	terminated := make([]domain.Employee, 0, len(rows))
	for i := range rows {
		if rows[i].Terminated() {
			terminated = append(terminated, rows[i])
		}
	}
	return countBy(terminated, func(e *domain.Employee) string { return e.TerminationReason })
}

// SalaryByDepartment averages salary per department, skipping missing
// salaries, sorted by mean descending.
func SalaryByDepartment(rows []domain.Employee) []CategoryValue {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for i := range rows {
		e := &rows[i]
		if e.Department == "" || e.Salary == nil {
			continue
		}
		sums[e.Department] += *e.Salary
		counts[e.Department]++
	}
	out := make([]CategoryValue, 0, len(sums))
	for dept, sum := range sums {
		out = append(out, CategoryValue{Label: dept, Value: sum / float64(counts[dept])})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// SalaryByPerformance summarizes salary distributions per performance
// score, skipping missing salaries, ordered by ordinal rank with unknown
// scores last. Empty input yields an empty result.
func SalaryByPerformance(rows []domain.Employee) []SalaryStats {
	groups := make(map[string][]float64)
	for i := range rows {
		e := &rows[i]
		if e.Performance == "" || e.Salary == nil {
			continue
		}
		groups[string(e.Performance)] = append(groups[string(e.Performance)], *e.Salary)
	}
	out := make([]SalaryStats, 0, len(groups))
	for label, salaries := range groups {
		sort.Float64s(salaries)
		out = append(out, SalaryStats{
			Label:  label,
			Count:  len(salaries),
			Min:    salaries[0],
			Q1:     quantile(salaries, 0.25),
			Median: quantile(salaries, 0.5),
			Q3:     quantile(salaries, 0.75),
			Max:    salaries[len(salaries)-1],
		})
	}
	sort.Slice(out, func(i, j int) bool {
		ri := domain.PerformanceRank(domain.PerformanceScore(out[i].Label))
		rj := domain.PerformanceRank(domain.PerformanceScore(out[j].Label))
		if (ri == 0) != (rj == 0) {
			return rj == 0
		}
		if ri != rj {
			return ri < rj
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// quantile interpolates linearly between closest ranks of a sorted sample.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	if lo+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// TerminationRateByDepartment computes terminated/total per department,
// for departments present in the filtered rows.
func TerminationRateByDepartment(rows []domain.Employee) []CategoryValue {
	totals := make(map[string]int)
	terminated := make(map[string]int)
	var order []string
	for i := range rows {
		dept := rows[i].Department
		if dept == "" {
			continue
		}
		if totals[dept] == 0 {
			order = append(order, dept)
		}
		totals[dept]++
		if rows[i].Terminated() {
			terminated[dept]++
		}
	}
	sort.Strings(order)
	out := make([]CategoryValue, 0, len(order))
	for _, dept := range order {
		out = append(out, CategoryValue{Label: dept, Value: float64(terminated[dept]) / float64(totals[dept])})
	}
	return out
}

// AgeHistogram buckets non-missing ages into fixed five-year bins. Empty
// input yields an empty histogram.
func AgeHistogram(rows []domain.Employee) []HistogramBucket {
	var ages []float64
	for i := range rows {
		if rows[i].Age != nil {
			ages = append(ages, *rows[i].Age)
		}
	}
	if len(ages) == 0 {
		return []HistogramBucket{}
	}
	min, max := ages[0], ages[0]
	for _, a := range ages[1:] {
		if a < min {
			min = a
		}
		if a > max {
			max = a
		}
	}
	lo := int(math.Floor(min/ageBucketWidth)) * ageBucketWidth
	hi := int(math.Floor(max/ageBucketWidth))*ageBucketWidth + ageBucketWidth

	buckets := make([]HistogramBucket, 0, (hi-lo)/ageBucketWidth)
	for from := lo; from < hi; from += ageBucketWidth {
		buckets = append(buckets, HistogramBucket{From: float64(from), To: float64(from + ageBucketWidth)})
	}
	for _, a := range ages {
		idx := (int(math.Floor(a/ageBucketWidth))*ageBucketWidth - lo) / ageBucketWidth
		buckets[idx].Count++
	}
	return buckets
}

// EngagementSatisfaction pairs engagement and satisfaction samples for
// rows carrying both, plus their Pearson correlation.
func EngagementSatisfaction(rows []domain.Employee) ScatterResult {
	points := make([]ScatterPoint, 0, len(rows))
	var xs, ys []float64
	for i := range rows {
		e := &rows[i]
		if e.EngagementScore == nil || e.SatisfactionScore == nil {
			continue
		}
		points = append(points, ScatterPoint{
			Engagement:   *e.EngagementScore,
			Satisfaction: *e.SatisfactionScore,
			Performance:  string(e.Performance),
			Department:   e.Department,
			Salary:       e.Salary,
		})
		xs = append(xs, *e.EngagementScore)
		ys = append(ys, *e.SatisfactionScore)
	}
	return ScatterResult{Points: points, Correlation: pearson(xs, ys)}
}

// ManagerEffectiveness computes team size and the percentage of Exceeds
// performers per manager. Rows without a manager identifier are excluded
// from this aggregate only; managers with fewer than three reports are
// dropped.
func ManagerEffectiveness(rows []domain.Employee) []ManagerStat {
	type team struct {
		name string
		size int
		high int
	}
	teams := make(map[string]*team)
	for i := range rows {
		e := &rows[i]
		if e.ManagerID == nil {
			continue
		}
		t, ok := teams[*e.ManagerID]
		if !ok {
			t = &team{name: e.ManagerName}
			teams[*e.ManagerID] = t
		}
		t.size++
		if e.Performance == domain.PerformanceExceeds {
			t.high++
		}
	}
	out := make([]ManagerStat, 0, len(teams))
	for id, t := range teams {
		if t.size < minManagerTeamSize {
			continue
		}
		out = append(out, ManagerStat{
			ManagerID:        id,
			ManagerName:      t.name,
			TeamSize:         t.size,
			HighPerformerPct: float64(t.high) / float64(t.size) * 100,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TeamSize != out[j].TeamSize {
			return out[i].TeamSize > out[j].TeamSize
		}
		return out[i].ManagerID < out[j].ManagerID
	})
	return out
}

// countBy groups rows by key, omitting empty keys and zero counts, ordered
// by count descending then label.
func countBy(rows []domain.Employee, key func(*domain.Employee) string) []CategoryCount {
	counts := make(map[string]int)
	for i := range rows {
		k := key(&rows[i])
		if k == "" {
			continue
		}
		counts[k]++
	}
	out := make([]CategoryCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, CategoryCount{Label: k, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// pearson returns the correlation coefficient of two equal-length samples,
// or nil with fewer than two pairs or zero variance in either sample.
func pearson(xs, ys []float64) *float64 {
	n := len(xs)
	if n < 2 || n != len(ys) {
		return nil
	}
	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var cov, varX, varY float64
	for i := 0; i < n; i++ {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return nil
	}
	r := cov / math.Sqrt(varX*varY)
	return &r
}
