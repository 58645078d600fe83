package category

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starchartio/starchart/internal/config"
	"github.com/starchartio/starchart/internal/yamldoc"
)

var fiveStarScale = config.Scale{Min: 1, Max: 5}

const sentimentTable = `categories:
  - name: negative
    min: 1
    max: 3
  - name: neutral
    min: 3
    max: 4
  - name: positive
    min: 4
    max: 5
`

func TestLoadBytes_Valid(t *testing.T) {
	table, err := LoadBytes([]byte(sentimentTable), "labels.yaml", fiveStarScale)
	require.NoError(t, err)

	require.Len(t, table.Categories, 3)
	assert.Equal(t, []string{"negative", "neutral", "positive"}, table.Names())

	lines := []int{2, 5, 8}
	for i, cat := range table.Categories {
		assert.Equal(t, lines[i], cat.Position.Line)
	}
}

func TestTable_Categorize(t *testing.T) {
	table, err := LoadBytes([]byte(sentimentTable), "labels.yaml", fiveStarScale)
	require.NoError(t, err)

	testCases := []struct {
		value    float64
		expected string
	}{
		{value: 1, expected: "negative"},
		{value: 2, expected: "negative"},
		{value: 2.9, expected: "negative"},
		{value: 3, expected: "neutral"},
		{value: 3.9, expected: "neutral"},
		{value: 4, expected: "positive"},
		{value: 4.5, expected: "positive"},
		{value: 5, expected: "positive"},
	}

	for _, tc := range testCases {
		name, err := table.Categorize(tc.value)
		require.NoError(t, err, "value %v", tc.value)
		assert.Equal(t, tc.expected, name, "value %v", tc.value)
	}
}

func TestTable_Categorize_FinalBucketClosed(t *testing.T) {
	source := `categories:
  - name: low
    min: 1
    max: 3
  - name: high
    min: 3
    max: 5
`
	table, err := LoadBytes([]byte(source), "labels.yaml", fiveStarScale)
	require.NoError(t, err)

	name, err := table.Categorize(3)
	require.NoError(t, err)
	assert.Equal(t, "high", name)

	name, err = table.Categorize(5)
	require.NoError(t, err)
	assert.Equal(t, "high", name)

	name, err = table.Categorize(2.99)
	require.NoError(t, err)
	assert.Equal(t, "low", name)
}

func TestTable_Categorize_Unmatched(t *testing.T) {
	table, err := LoadBytes([]byte(sentimentTable), "labels.yaml", fiveStarScale)
	require.NoError(t, err)

	for _, value := range []float64{0.5, 5.5} {
		_, err := table.Categorize(value)
		require.Error(t, err)

		var unmatched *UnmatchedError
		require.ErrorAs(t, err, &unmatched)
		assert.Equal(t, value, unmatched.Value)
	}
}

func TestLoadBytes_CoverageViolations(t *testing.T) {
	testCases := []struct {
		name     string
		source   string
		expected string
	}{
		{
			name:     "Empty table",
			source:   "categories: []\n",
			expected: "at least one bucket",
		},
		{
			name: "Gap between buckets",
			source: "categories:\n" +
				"  - name: low\n    min: 1\n    max: 2\n" +
				"  - name: high\n    min: 3\n    max: 5\n",
			expected: `category "high" min 3 does not continue from "low" max 2`,
		},
		{
			name: "Overlapping buckets",
			source: "categories:\n" +
				"  - name: low\n    min: 1\n    max: 3\n" +
				"  - name: high\n    min: 2\n    max: 5\n",
			expected: `category "high" min 2 does not continue from "low" max 3`,
		},
		{
			name: "First bucket above scale min",
			source: "categories:\n" +
				"  - name: low\n    min: 2\n    max: 3\n" +
				"  - name: high\n    min: 3\n    max: 5\n",
			expected: "first category min 2 must equal scale min 1",
		},
		{
			name: "Last bucket below scale max",
			source: "categories:\n" +
				"  - name: low\n    min: 1\n    max: 3\n" +
				"  - name: high\n    min: 3\n    max: 4\n",
			expected: "last category max 4 must equal scale max 5",
		},
		{
			name: "Duplicate names",
			source: "categories:\n" +
				"  - name: same\n    min: 1\n    max: 3\n" +
				"  - name: same\n    min: 3\n    max: 5\n",
			expected: `duplicate category name "same"`,
		},
		{
			name: "Empty range",
			source: "categories:\n" +
				"  - name: only\n    min: 1\n    max: 1\n",
			expected: `category "only" min 1 must be less than max 1`,
		},
		{
			name: "Missing name",
			source: "categories:\n" +
				"  - min: 1\n    max: 5\n",
			expected: "category 1 has no name",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadBytes([]byte(tc.source), "labels.yaml", fiveStarScale)
			require.Error(t, err)

			var tableErr *TableError
			require.ErrorAs(t, err, &tableErr)
			assert.Contains(t, err.Error(), tc.expected)
		})
	}
}

func TestLoadBytes_CollectsAllViolations(t *testing.T) {
	source := "categories:\n" +
		"  - name: low\n    min: 2\n    max: 3\n" +
		"  - name: high\n    min: 3\n    max: 4\n"

	_, err := LoadBytes([]byte(source), "labels.yaml", fiveStarScale)
	require.Error(t, err)

	var multi *yamldoc.MultiError
	require.ErrorAs(t, err, &multi)
	assert.Len(t, multi.Errors, 2)
	assert.Contains(t, multi.Error(), "first category min 2")
	assert.Contains(t, multi.Error(), "last category max 4")
}

func TestLoadBytes_ViolationPositions(t *testing.T) {
	source := "categories:\n" +
		"  - name: low\n    min: 1\n    max: 3\n" +
		"  - name: high\n    min: 4\n    max: 5\n"

	_, err := LoadBytes([]byte(source), "labels.yaml", fiveStarScale)
	require.Error(t, err)

	var docErr *yamldoc.Error
	require.ErrorAs(t, err, &docErr)
	assert.Equal(t, 5, docErr.Position.Line)
	assert.Equal(t, "labels.yaml", docErr.Position.File)
}

func TestLoadBytes_UnknownKey(t *testing.T) {
	source := "categories:\n" +
		"  - name: low\n    min: 1\n    max: 5\n    colour: red\n"

	_, err := LoadBytes([]byte(source), "labels.yaml", fiveStarScale)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown key "colour"`)
}

func TestLoadBytes_ScalarEntry(t *testing.T) {
	source := "categories:\n  - negative\n"

	_, err := LoadBytes([]byte(source), "labels.yaml", fiveStarScale)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot unmarshal")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), fiveStarScale)
	require.Error(t, err)

	var tableErr *TableError
	require.ErrorAs(t, err, &tableErr)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoad_SetsSourceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sentimentTable), 0o644))

	table, err := Load(path, fiveStarScale)
	require.NoError(t, err)
	assert.Equal(t, path, table.SourceFile)
}
