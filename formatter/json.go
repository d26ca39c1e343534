package formatter

import (
	"bufio"
	"fmt"
	"io"

	"github.com/theoremus-urban-solutions/transport-catalogue/document"
	"github.com/theoremus-urban-solutions/transport-catalogue/jsontext"
)

// Output formats.
const (
	FormatJSON = "json"
	// FormatText writes every item of a list on its own compact line.
	FormatText = "text"
)

type ResponseBuilder struct {
	format string
	indent int
}

// NewResponseBuilder creates a builder for format. indent applies to
// FormatJSON only.
func NewResponseBuilder(format string, indent int) (*ResponseBuilder, error) {
	switch format {
	case "", FormatJSON:
		format = FormatJSON
	case FormatText:
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
	if indent < 0 {
		indent = 0
	}
	return &ResponseBuilder{format: format, indent: indent}, nil
}

// BuildJSON serializes v as one JSON document.
func (rb *ResponseBuilder) BuildJSON(v document.Value) ([]byte, error) {
	return jsontext.EncodeBytes(v, rb.indent)
}

// Write writes v to w in the builder's format.
func (rb *ResponseBuilder) Write(w io.Writer, v document.Value) error {
	if rb.format == FormatJSON {
		return jsontext.Encode(w, v, rb.indent)
	}

	list, err := v.AsList()
	if err != nil {
		return jsontext.Encode(w, v, 0)
	}
	bw := bufio.NewWriter(w)
	for _, item := range list.Values() {
		if err := jsontext.Encode(bw, item, 0); err != nil {
			return err
		}
	}
	return bw.Flush()
}
