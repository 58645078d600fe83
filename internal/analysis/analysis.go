// Package analysis aggregates categorized ratings into distribution reports.
package analysis

import (
	"sort"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"
)

// CategorizedRating pairs a parsed rating value with its category name.
type CategorizedRating struct {
	Value    int    `json:"value" yaml:"value"`
	Category string `json:"category" yaml:"category"`
}

// ValueCount is the frequency of one distinct rating value.
type ValueCount struct {
	Value      int     `json:"value" yaml:"value"`
	Count      int     `json:"count" yaml:"count"`
	Proportion float64 `json:"proportion" yaml:"proportion"`
}

// CategoryCount is the frequency of one category.
type CategoryCount struct {
	Name       string  `json:"name" yaml:"name"`
	Count      int     `json:"count" yaml:"count"`
	Proportion float64 `json:"proportion" yaml:"proportion"`
}

// Report is the aggregated distribution of a run. Values are listed in
// ascending order, categories in table order. An empty input produces the
// zero report: no values, every category at count 0, mean and median 0.
type Report struct {
	Total      int             `json:"total" yaml:"total"`
	Values     []ValueCount    `json:"values" yaml:"values"`
	Categories []CategoryCount `json:"categories" yaml:"categories"`
	Mean       float64         `json:"mean" yaml:"mean"`
	Median     float64         `json:"median" yaml:"median"`
}

// Analyze builds the distribution report for a run. The categories argument
// fixes the category order and ensures zero-count categories are reported.
func Analyze(ratings []CategorizedRating, categories []string) *Report {
	report := &Report{
		Total:      len(ratings),
		Values:     []ValueCount{},
		Categories: []CategoryCount{},
	}

	valueCounts := lo.CountValuesBy(ratings, func(r CategorizedRating) int { return r.Value })
	values := lo.Keys(valueCounts)
	sort.Ints(values)
	for _, v := range values {
		report.Values = append(report.Values, ValueCount{
			Value:      v,
			Count:      valueCounts[v],
			Proportion: proportion(valueCounts[v], report.Total),
		})
	}

	categoryCounts := lo.CountValuesBy(ratings, func(r CategorizedRating) string { return r.Category })
	for _, name := range categories {
		report.Categories = append(report.Categories, CategoryCount{
			Name:       name,
			Count:      categoryCounts[name],
			Proportion: proportion(categoryCounts[name], report.Total),
		})
	}

	if report.Total > 0 {
		numeric := lo.Map(ratings, func(r CategorizedRating, _ int) float64 { return float64(r.Value) })
		report.Mean = stat.Mean(numeric, nil)
		report.Median = median(numeric)
	}

	return report
}

// Proportions returns the category proportions as a map. For any non-empty
// input the values sum to 1.0 within floating-point tolerance.
func (r *Report) Proportions() map[string]float64 {
	proportions := make(map[string]float64, len(r.Categories))
	for _, c := range r.Categories {
		proportions[c.Name] = c.Proportion
	}
	return proportions
}

func proportion(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total)
}

// median uses midpoint interpolation for even-length input, the usual
// convention for sample medians.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	switch {
	case n == 0:
		return 0
	case n%2 == 1:
		return sorted[n/2]
	default:
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
}
