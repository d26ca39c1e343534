package document

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Marshal renders v as JSON text. indent is the number of spaces per nesting
// level; 0 renders compactly. Doubles always carry a fraction or an exponent
// so the text reads back as a double. NaN and infinities are rejected.
func Marshal(v Value, indent int) ([]byte, error) {
	p := printer{indent: strings.Repeat(" ", indent)}
	if err := p.value(v, 0); err != nil {
		return nil, err
	}
	return p.buf, nil
}

// MarshalJSON implements json.Marshaler with the compact form.
func (v Value) MarshalJSON() ([]byte, error) {
	return Marshal(v, 0)
}

// String renders v compactly. Non-finite doubles print as NaN, +Inf or -Inf.
func (v Value) String() string {
	p := printer{lenient: true}
	_ = p.value(v, 0)
	return string(p.buf)
}

type printer struct {
	buf     []byte
	indent  string
	lenient bool
}

func (p *printer) newline(depth int) {
	if p.indent == "" {
		return
	}
	p.buf = append(p.buf, '\n')
	for i := 0; i < depth; i++ {
		p.buf = append(p.buf, p.indent...)
	}
}

func (p *printer) value(v Value, depth int) error {
	switch v.kind {
	case KindNull:
		p.buf = append(p.buf, "null"...)
	case KindBool:
		p.buf = strconv.AppendBool(p.buf, v.payload.(bool))
	case KindInt:
		p.buf = strconv.AppendInt(p.buf, v.payload.(int64), 10)
	case KindDouble:
		return p.double(v.payload.(float64))
	case KindString:
		return p.str(v.payload.(string))
	case KindList:
		items := v.payload.([]Value)
		p.buf = append(p.buf, '[')
		for i, item := range items {
			if i > 0 {
				p.buf = append(p.buf, ',')
			}
			p.newline(depth + 1)
			if err := p.value(item, depth+1); err != nil {
				return err
			}
		}
		if len(items) > 0 {
			p.newline(depth)
		}
		p.buf = append(p.buf, ']')
	case KindMap:
		d := v.payload.(*mapData)
		p.buf = append(p.buf, '{')
		for i, k := range d.keys {
			if i > 0 {
				p.buf = append(p.buf, ',')
			}
			p.newline(depth + 1)
			if err := p.str(k); err != nil {
				return err
			}
			p.buf = append(p.buf, ':')
			if p.indent != "" {
				p.buf = append(p.buf, ' ')
			}
			if err := p.value(d.values[i], depth+1); err != nil {
				return err
			}
		}
		if len(d.keys) > 0 {
			p.newline(depth)
		}
		p.buf = append(p.buf, '}')
	}
	return nil
}

func (p *printer) double(f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		if !p.lenient {
			return fmt.Errorf("document: unsupported double value %v", f)
		}
		p.buf = strconv.AppendFloat(p.buf, f, 'g', -1, 64)
		return nil
	}
	start := len(p.buf)
	p.buf = strconv.AppendFloat(p.buf, f, 'g', -1, 64)
	if !strings.ContainsAny(string(p.buf[start:]), ".eE") {
		p.buf = append(p.buf, ".0"...)
	}
	return nil
}

// str writes s as a JSON string. Markup characters stay literal so embedded
// SVG text reads as written.
func (p *printer) str(s string) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	p.buf = append(p.buf, bytes.TrimSuffix(buf.Bytes(), []byte("\n"))...)
	return nil
}
