package report

import (
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// SessionSchema returns the JSON Schema of a [Session] document.
func SessionSchema() (*jsonschema.Schema, error) {
	return schemaFor[Session]("block profiling session report")
}

// RepetitionsSchema returns the JSON Schema of a [Repetitions] document.
func RepetitionsSchema() (*jsonschema.Schema, error) {
	return schemaFor[Repetitions]("repetition profiling report")
}

func schemaFor[T any](title string) (*jsonschema.Schema, error) {
	s, err := jsonschema.For[T](nil)
	if err != nil {
		return nil, fmt.Errorf("infer %s schema: %w", title, err)
	}

	s.Title = title

	return s, nil
}
