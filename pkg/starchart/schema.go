package starchart

import (
	"github.com/starchartio/starchart/internal/config"
)

// Schema returns the JSON schema for analysis configuration files. The
// schema can be used to validate analysis YAML files and to provide
// autocompletion and inline documentation in editors.
//
// Returns:
//   - []byte: The JSON schema document, indented for readability
//   - error: Any error that occurred during schema generation
//
// Example:
//
//	schema, err := starchart.Schema()
//	if err != nil {
//		return fmt.Errorf("failed to get schema: %w", err)
//	}
//
//	var doc map[string]interface{}
//	if err := json.Unmarshal(schema, &doc); err != nil {
//		return fmt.Errorf("failed to parse schema: %w", err)
//	}
func Schema() ([]byte, error) {
	return config.NewSchema()
}
