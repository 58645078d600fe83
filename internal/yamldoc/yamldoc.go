// Package yamldoc loads YAML documents with strict field checking and
// position-aware errors.
package yamldoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

const maxDocumentSize = 10 * 1024 * 1024

// Document is a well-formed YAML source retained for decoding and error
// context rendering.
type Document struct {
	Source []byte
	File   string
}

// Parse checks that data holds well-formed YAML and retains the source.
func Parse(data []byte, file string) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &Error{
			Message:  "empty file",
			Position: Position{Line: 1, Column: 1, File: file},
		}
	}

	if len(data) > maxDocumentSize {
		return nil, fmt.Errorf("file too large: %d bytes (max 10MB)", len(data))
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, WrapYAMLError(err, data, file)
	}

	return &Document{Source: data, File: file}, nil
}

// Decode unmarshals the document into out, rejecting keys that do not match
// a field of the target struct.
func (d *Document) Decode(out interface{}) error {
	dec := yaml.NewDecoder(bytes.NewReader(d.Source))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return WrapYAMLError(err, d.Source, d.File)
	}
	return nil
}

// Key returns the position of the given mapping key in the document.
func (d *Document) Key(key string) Position {
	pos := LocateKey(d.Source, key)
	pos.File = d.File
	return pos
}

// Context renders the source lines around a position for error reports.
func (d *Document) Context(pos Position) string {
	return ExtractContext(d.Source, pos, 2)
}

// WrapYAMLError converts a yaml.v3 error into a positioned Error. The
// library reports positions only inside its message strings, so the line
// number is recovered from the text.
func WrapYAMLError(err error, source []byte, file string) error {
	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) {
		multi := &MultiError{}
		for _, msg := range typeErr.Errors {
			multi.Add(positionedError(msg, source, file))
		}
		return multi.ToError()
	}

	return positionedError(err.Error(), source, file)
}

func positionedError(message string, source []byte, file string) *Error {
	pos := positionFromMessage(message)
	pos.File = file

	msg := strings.TrimPrefix(message, "yaml: ")
	var suggestion string
	if field, ok := unknownField(msg); ok {
		msg = fmt.Sprintf("unknown key %q", field)
		pos = LocateKey(source, field)
		pos.File = file
		suggestion = "Remove the key or check its spelling against the documented fields"
	}

	return &Error{
		Message:    msg,
		Position:   pos,
		Context:    ExtractContext(source, pos, 2),
		Suggestion: suggestion,
	}
}

// positionFromMessage scans a yaml.v3 error message for a "line N" marker.
func positionFromMessage(message string) Position {
	words := strings.Fields(message)
	for i, word := range words {
		if word == "line" && i+1 < len(words) {
			var line int
			if _, err := fmt.Sscanf(words[i+1], "%d", &line); err == nil {
				return Position{Line: line, Column: 1}
			}
		}
	}

	return Position{Line: 1, Column: 1}
}

// unknownField extracts the field name from a strict-decoding rejection such
// as "line 4: field foo not found in type config.fileConfig".
func unknownField(msg string) (string, bool) {
	i := strings.Index(msg, "field ")
	if i < 0 {
		return "", false
	}

	rest := msg[i+len("field "):]
	j := strings.Index(rest, " not found in type")
	if j < 0 {
		return "", false
	}

	return rest[:j], true
}
