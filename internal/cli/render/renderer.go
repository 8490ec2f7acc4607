package render

import (
	"encoding/json"
	"io"
)

// Renderer renders the result of a use case
type Renderer[T any] interface {
	Render(result T) error
}

// writeJSON prints v as indented JSON followed by a newline
func writeJSON(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
