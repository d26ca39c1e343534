package svg

import (
	"io"
	"strings"
)

const (
	header   = "<?xml version=\"1.0\" encoding=\"UTF-8\" ?>\n"
	svgOpen  = "<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\">\n"
	svgClose = "</svg>"
	indent   = "  "
)

// Document is an ordered list of objects; later objects paint over earlier
// ones.
type Document struct {
	objects []Object
}

func (d *Document) Add(o Object) {
	d.objects = append(d.objects, o)
}

func (d *Document) Len() int { return len(d.objects) }

// Render writes the whole document to w.
func (d *Document) Render(w io.Writer) error {
	_, err := io.WriteString(w, d.String())
	return err
}

func (d *Document) String() string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString(svgOpen)
	for _, o := range d.objects {
		b.WriteString(indent)
		o.renderObject(&b)
		b.WriteByte('\n')
	}
	b.WriteString(svgClose)
	return b.String()
}
