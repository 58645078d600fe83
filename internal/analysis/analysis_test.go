package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func categorized(values []int, buckets map[int]string) []CategorizedRating {
	ratings := make([]CategorizedRating, 0, len(values))
	for _, v := range values {
		ratings = append(ratings, CategorizedRating{Value: v, Category: buckets[v]})
	}
	return ratings
}

var lowHigh = map[int]string{1: "low", 2: "low", 3: "high", 4: "high", 5: "high"}

func TestAnalyze_Proportions(t *testing.T) {
	ratings := categorized([]int{5, 5, 1}, lowHigh)

	report := Analyze(ratings, []string{"low", "high"})

	require.Equal(t, 3, report.Total)
	proportions := report.Proportions()
	assert.InDelta(t, 1.0/3.0, proportions["low"], 1e-9)
	assert.InDelta(t, 2.0/3.0, proportions["high"], 1e-9)
}

func TestAnalyze_ProportionsSumToOne(t *testing.T) {
	ratings := categorized([]int{1, 2, 2, 3, 3, 3, 4, 5, 5, 5, 5}, lowHigh)

	report := Analyze(ratings, []string{"low", "high"})

	var sum float64
	for _, p := range report.Proportions() {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestAnalyze_ValueCountsAscending(t *testing.T) {
	ratings := categorized([]int{5, 1, 5, 3, 5}, lowHigh)

	report := Analyze(ratings, []string{"low", "high"})

	require.Len(t, report.Values, 3)
	assert.Equal(t, ValueCount{Value: 1, Count: 1, Proportion: 0.2}, report.Values[0])
	assert.Equal(t, ValueCount{Value: 3, Count: 1, Proportion: 0.2}, report.Values[1])
	assert.Equal(t, ValueCount{Value: 5, Count: 3, Proportion: 0.6}, report.Values[2])
}

func TestAnalyze_CategoriesKeepTableOrder(t *testing.T) {
	ratings := []CategorizedRating{
		{Value: 5, Category: "positive"},
		{Value: 1, Category: "negative"},
		{Value: 5, Category: "positive"},
	}

	report := Analyze(ratings, []string{"negative", "neutral", "positive"})

	require.Len(t, report.Categories, 3)
	assert.Equal(t, "negative", report.Categories[0].Name)
	assert.Equal(t, "neutral", report.Categories[1].Name)
	assert.Equal(t, "positive", report.Categories[2].Name)
}

func TestAnalyze_ZeroCountCategoriesIncluded(t *testing.T) {
	ratings := []CategorizedRating{{Value: 1, Category: "negative"}}

	report := Analyze(ratings, []string{"negative", "neutral", "positive"})

	assert.Equal(t, CategoryCount{Name: "neutral", Count: 0, Proportion: 0}, report.Categories[1])
	assert.Equal(t, CategoryCount{Name: "positive", Count: 0, Proportion: 0}, report.Categories[2])
}

func TestAnalyze_MeanAndMedian(t *testing.T) {
	report := Analyze(categorized([]int{5, 5, 1}, lowHigh), []string{"low", "high"})
	assert.InDelta(t, 11.0/3.0, report.Mean, 1e-9)
	assert.InDelta(t, 5.0, report.Median, 1e-9)

	report = Analyze(categorized([]int{1, 2, 3, 4}, lowHigh), []string{"low", "high"})
	assert.InDelta(t, 2.5, report.Mean, 1e-9)
	assert.InDelta(t, 2.5, report.Median, 1e-9)
}

func TestAnalyze_EmptyInput(t *testing.T) {
	report := Analyze(nil, []string{"low", "high"})

	assert.Equal(t, 0, report.Total)
	assert.Empty(t, report.Values)
	require.Len(t, report.Categories, 2)
	assert.Equal(t, 0, report.Categories[0].Count)
	assert.Zero(t, report.Categories[0].Proportion)
	assert.Zero(t, report.Mean)
	assert.Zero(t, report.Median)
}

func TestAnalyze_Deterministic(t *testing.T) {
	ratings := categorized([]int{4, 2, 5, 2, 1, 3, 5}, lowHigh)

	first := Analyze(ratings, []string{"low", "high"})
	second := Analyze(ratings, []string{"low", "high"})

	assert.Equal(t, first, second)
}
