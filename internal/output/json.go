package output

import (
	"encoding/json"
	"io"

	"github.com/CypherHippie/HeaderHunter/pkg/types"
)

// JSONFormatter renders results as indented JSON, one entry per URL.
type JSONFormatter struct{}

func (f *JSONFormatter) Format(w io.Writer, result types.ScanResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result.Sorted())
}
