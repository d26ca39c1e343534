package jsontext

import (
	"fmt"
	"io"

	"github.com/theoremus-urban-solutions/transport-catalogue/document"
)

// Encode writes v to w followed by a newline. indent is the number of spaces
// per level; 0 writes the compact form.
func Encode(w io.Writer, v document.Value, indent int) error {
	b, err := document.Marshal(v, indent)
	if err != nil {
		return fmt.Errorf("jsontext: encode: %w", err)
	}
	b = append(b, '\n')
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("jsontext: write: %w", err)
	}
	return nil
}

// EncodeBytes returns the encoded form of v without a trailing newline.
func EncodeBytes(v document.Value, indent int) ([]byte, error) {
	b, err := document.Marshal(v, indent)
	if err != nil {
		return nil, fmt.Errorf("jsontext: encode: %w", err)
	}
	return b, nil
}
