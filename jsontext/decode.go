package jsontext

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/theoremus-urban-solutions/transport-catalogue/document"
)

// ErrTrailingData is returned when input continues after the first document.
var ErrTrailingData = errors.New("jsontext: trailing data after document")

// DecodeBytes is Decode over an in-memory document.
func DecodeBytes(data []byte) (document.Value, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads exactly one JSON document from r.
func Decode(r io.Reader) (document.Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	b := document.NewBuilder()
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			if b.State() == document.Empty {
				return document.Value{}, fmt.Errorf("jsontext: empty input")
			}
			return document.Value{}, fmt.Errorf("jsontext: unexpected end of input: %w", io.ErrUnexpectedEOF)
		}
		if err != nil {
			return document.Value{}, fmt.Errorf("jsontext: %w", err)
		}
		if err := apply(b, tok); err != nil {
			return document.Value{}, err
		}
		if b.State() == document.Ready {
			break
		}
	}

	if _, err := dec.Token(); err != io.EOF {
		if err != nil {
			return document.Value{}, fmt.Errorf("jsontext: %w", err)
		}
		return document.Value{}, ErrTrailingData
	}
	return b.Build()
}

// apply feeds one token to the builder. Inside a map awaiting a key, a string
// token is the key; everywhere else it is a value.
func apply(b *document.Builder, tok json.Token) error {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return b.StartMap()
		case '}':
			return b.EndMap()
		case '[':
			return b.StartList()
		case ']':
			return b.EndList()
		}
		return fmt.Errorf("jsontext: unexpected delimiter %q", rune(v))
	case string:
		if b.State() == document.ExpectKeyOrEnd {
			return b.Key(v)
		}
		return b.Value(document.String(v))
	case json.Number:
		n, err := number(string(v))
		if err != nil {
			return err
		}
		return b.Value(n)
	case float64:
		return b.Value(document.Double(v))
	case bool:
		return b.Value(document.Bool(v))
	case nil:
		return b.Value(document.Null())
	default:
		return fmt.Errorf("jsontext: unexpected token %T", tok)
	}
}

// number keeps integral literals that fit in 64 bits as Int and turns every
// other literal into a Double.
func number(lit string) (document.Value, error) {
	if !strings.ContainsAny(lit, ".eE") {
		if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
			return document.Int(i), nil
		}
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return document.Value{}, fmt.Errorf("jsontext: number %q: %w", lit, err)
	}
	return document.Double(f), nil
}
