// Package rating reads the ratings data file and parses textual ratings
// into numeric values.
package rating

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/starchartio/starchart/internal/config"
)

// Raw is one non-blank row of the data file.
type Raw struct {
	Line int    `json:"line"`
	Text string `json:"text"`
}

// ReadFile loads the data file at path, one rating per line.
func ReadFile(path string) ([]Raw, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &NotFoundError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("reading data file %s: %w", path, err)
	}
	defer f.Close()

	return Read(f)
}

// Read collects the non-blank rows of r in order. Blank and whitespace-only
// lines are dropped; line numbers refer to the original file.
func Read(r io.Reader) ([]Raw, error) {
	var rows []Raw

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		rows = append(rows, Raw{Line: line, Text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading data file: %w", err)
	}

	return rows, nil
}

// numberPattern matches the first integer token of a rating, so "4 stars",
// "Rated 4/5" and plain "4" all parse the same way.
var numberPattern = regexp.MustCompile(`-?\d+`)

// Parser extracts numeric values from textual ratings on a fixed scale.
type Parser struct {
	scale config.Scale
}

// NewParser returns a parser accepting values within scale.
func NewParser(scale config.Scale) *Parser {
	return &Parser{scale: scale}
}

// Parse extracts the integer rating embedded in a row, ignoring surrounding
// text such as the word "stars". Rows without a numeric token fail with
// ErrNoDigits; values outside the scale fail with ErrOutOfRange.
func (p *Parser) Parse(raw Raw) (int, error) {
	token := numberPattern.FindString(raw.Text)
	if token == "" {
		return 0, &ParseError{Line: raw.Line, Input: raw.Text, Err: ErrNoDigits}
	}

	value, err := strconv.Atoi(token)
	if err != nil {
		return 0, &ParseError{Line: raw.Line, Input: raw.Text, Err: err}
	}

	if float64(value) < p.scale.Min || float64(value) > p.scale.Max {
		return 0, &ParseError{
			Line:  raw.Line,
			Input: raw.Text,
			Err:   fmt.Errorf("%w: %d is outside the scale %v to %v", ErrOutOfRange, value, p.scale.Min, p.scale.Max),
		}
	}

	return value, nil
}
