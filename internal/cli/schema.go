package cli

import (
	"fmt"
	"io"

	"github.com/starchartio/starchart/internal/config"
)

// writeSchema prints the JSON schema of the analysis configuration so
// editors and CI can validate analysis files against it.
func writeSchema(w io.Writer) error {
	schema, err := config.NewSchema()
	if err != nil {
		return fmt.Errorf("generating schema: %w", err)
	}

	_, err = fmt.Fprintln(w, string(schema))
	return err
}
