package yamldoc

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPosition_String(t *testing.T) {
	testCases := []struct {
		name     string
		position Position
		expected string
	}{
		{
			name:     "With file",
			position: Position{Line: 3, Column: 7, File: "analysis.yaml"},
			expected: "analysis.yaml:3:7",
		},
		{
			name:     "Without file",
			position: Position{Line: 3, Column: 7},
			expected: "3:7",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.position.String())
		})
	}
}

func TestParse_ValidDocument(t *testing.T) {
	doc, err := Parse([]byte("data_path: ratings.txt\n"), "analysis.yaml")
	require.NoError(t, err)

	assert.Equal(t, "analysis.yaml", doc.File)
	assert.NotEmpty(t, doc.Source)
}

func TestParse_EmptyDocument(t *testing.T) {
	testCases := []struct {
		name string
		data string
	}{
		{name: "No bytes", data: ""},
		{name: "Whitespace only", data: "  \n\t\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.data), "analysis.yaml")
			require.Error(t, err)

			var docErr *Error
			require.ErrorAs(t, err, &docErr)
			assert.Equal(t, "empty file", docErr.Message)
			assert.Equal(t, 1, docErr.Position.Line)
		})
	}
}

func TestParse_MalformedYAML(t *testing.T) {
	source := "data_path: ratings.txt\n  bad indent: [\n"

	_, err := Parse([]byte(source), "analysis.yaml")
	require.Error(t, err)

	var docErr *Error
	require.ErrorAs(t, err, &docErr)
	assert.Equal(t, "analysis.yaml", docErr.Position.File)
	assert.Greater(t, docErr.Position.Line, 0)
}

func TestDocument_Decode_UnknownKey(t *testing.T) {
	source := strings.Join([]string{
		"data_path: ratings.txt",
		"data_pth: oops.txt",
		"",
	}, "\n")

	doc, err := Parse([]byte(source), "analysis.yaml")
	require.NoError(t, err)

	var out struct {
		DataPath string `yaml:"data_path"`
	}
	err = doc.Decode(&out)
	require.Error(t, err)

	var docErr *Error
	require.ErrorAs(t, err, &docErr)
	assert.Equal(t, `unknown key "data_pth"`, docErr.Message)
	assert.Equal(t, 2, docErr.Position.Line)
	assert.NotEmpty(t, docErr.Suggestion)
}

func TestDocument_Decode_KnownFields(t *testing.T) {
	doc, err := Parse([]byte("data_path: ratings.txt\n"), "analysis.yaml")
	require.NoError(t, err)

	var out struct {
		DataPath string `yaml:"data_path"`
	}
	require.NoError(t, doc.Decode(&out))
	assert.Equal(t, "ratings.txt", out.DataPath)
}

func TestDocument_Key(t *testing.T) {
	source := strings.Join([]string{
		"data_path: ratings.txt",
		"scale:",
		"  min: 1",
		"  max: 5",
		"",
	}, "\n")

	doc, err := Parse([]byte(source), "analysis.yaml")
	require.NoError(t, err)

	testCases := []struct {
		name         string
		key          string
		expectedLine int
	}{
		{name: "Top-level key", key: "scale", expectedLine: 2},
		{name: "Nested key", key: "min", expectedLine: 3},
		{name: "Missing key falls back to start", key: "output_path", expectedLine: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pos := doc.Key(tc.key)
			assert.Equal(t, tc.expectedLine, pos.Line)
			assert.Equal(t, "analysis.yaml", pos.File)
		})
	}
}

func TestLocateKey_ListEntry(t *testing.T) {
	source := []byte("categories:\n  - name: low\n    min: 1\n")

	pos := LocateKey(source, "name")
	assert.Equal(t, 2, pos.Line)
}

func TestExtractContext(t *testing.T) {
	source := []byte("line one\nline two\nline three\nline four\nline five\n")

	context := ExtractContext(source, Position{Line: 3, Column: 6}, 1)

	assert.Contains(t, context, ">>    3 | line three")
	assert.Contains(t, context, "   2 | line two")
	assert.Contains(t, context, "   4 | line four")
	assert.Contains(t, context, "^")
}

func TestExtractContext_OutOfRange(t *testing.T) {
	source := []byte("only line\n")

	assert.Empty(t, ExtractContext(source, Position{Line: 0}, 2))
	assert.Empty(t, ExtractContext(source, Position{Line: 40}, 2))
}

func TestError_Error(t *testing.T) {
	err := &Error{
		Message:    "unknown key \"data_pth\"",
		Position:   Position{Line: 2, Column: 1, File: "analysis.yaml"},
		Context:    ">>    2 | data_pth: oops.txt\n",
		Suggestion: "Remove the key",
	}

	msg := err.Error()
	assert.Contains(t, msg, "analysis.yaml:2:1")
	assert.Contains(t, msg, "unknown key")
	assert.Contains(t, msg, "Suggestion: Remove the key")
	assert.Contains(t, msg, "Context:")
}

func TestMultiError(t *testing.T) {
	multi := &MultiError{}
	assert.False(t, multi.HasErrors())
	assert.NoError(t, multi.ToError())

	multi.Add(nil)
	assert.False(t, multi.HasErrors())

	multi.Add(errors.New("first problem"))
	require.True(t, multi.HasErrors())
	assert.Equal(t, "first problem", multi.Error())

	multi.Add(errors.New("second problem"))
	msg := multi.Error()
	assert.Contains(t, msg, "2 problems:")
	assert.Contains(t, msg, "1. first problem")
	assert.Contains(t, msg, "2. second problem")
}

func TestMultiError_Unwrap(t *testing.T) {
	sentinel := errors.New("sentinel")

	multi := &MultiError{}
	multi.Add(errors.New("other"))
	multi.Add(sentinel)

	assert.True(t, errors.Is(multi.ToError(), sentinel))
}
