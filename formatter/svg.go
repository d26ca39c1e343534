package formatter

import (
	"io"

	"github.com/theoremus-urban-solutions/transport-catalogue/svg"
)

// SVGContentType is the media type of rendered maps.
const SVGContentType = "image/svg+xml"

// WriteSVG writes a rendered map followed by a newline.
func WriteSVG(w io.Writer, doc *svg.Document) error {
	if err := doc.Render(w); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
