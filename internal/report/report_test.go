package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/starchartio/starchart/internal/analysis"
)

func TestWrite(t *testing.T) {
	rep := analysis.Analyze([]analysis.CategorizedRating{
		{Value: 5, Category: "high"},
		{Value: 5, Category: "high"},
		{Value: 1, Category: "low"},
	}, []string{"low", "high"})

	var buf bytes.Buffer
	Write(&buf, rep)
	out := buf.String()

	assert.Contains(t, out, "Rating distribution")
	assert.Contains(t, out, "Category distribution")
	assert.Contains(t, out, "Statistics")
	assert.Contains(t, out, "( 33.3%)")
	assert.Contains(t, out, "( 66.7%)")
	assert.Contains(t, out, "Total ratings")
	assert.Contains(t, out, "3.67")
	assert.Contains(t, out, "5.0")
}

func TestWrite_EmptyReport(t *testing.T) {
	rep := analysis.Analyze(nil, []string{"low", "high"})

	var buf bytes.Buffer
	Write(&buf, rep)
	out := buf.String()

	assert.Contains(t, out, "(no data)")
	assert.Contains(t, out, "(  0.0%)")
	assert.Contains(t, out, "Total ratings")
}

func TestBarWidth(t *testing.T) {
	assert.Equal(t, 30, barWidth(10, 10))
	assert.Equal(t, 15, barWidth(5, 10))
	assert.Equal(t, 1, barWidth(1, 1000))
	assert.Equal(t, 0, barWidth(0, 10))
}
