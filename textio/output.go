package textio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/theoremus-urban-solutions/transport-catalogue/catalogue"
	"github.com/theoremus-urban-solutions/transport-catalogue/internal/warnings"
)

// Run reads a text document from r, loads its base lines into a new
// catalogue and writes the stat answers to w. Bad base lines are logged and
// skipped.
func Run(r io.Reader, w io.Writer, agg *warnings.Aggregator) (*catalogue.Catalogue, error) {
	in, err := Read(r)
	if err != nil {
		return nil, err
	}
	cat := catalogue.New()
	if err := Apply(in.Base, cat, agg); err != nil {
		logrus.Warnf("text input: %v", err)
	}
	return cat, WriteStats(w, cat, in.Stats)
}

// Stat answers one stat line ("Bus <name>" or "Stop <name>").
func Stat(cat *catalogue.Catalogue, request string) string {
	kind, name, _ := strings.Cut(request, " ")
	name = strings.TrimSpace(name)

	switch kind {
	case "Bus":
		info, err := cat.BusInfo(name)
		if err != nil {
			break
		}
		return fmt.Sprintf("%s: %d stops on route, %d unique stops, %s route length, %s curvature",
			request, info.StopCount, info.UniqueStopCount, formatNumber(info.RouteLength), formatNumber(info.Curvature))
	case "Stop":
		buses, err := cat.BusesByStop(name)
		if err != nil {
			break
		}
		if len(buses) == 0 {
			return request + ": no buses"
		}
		return request + ": buses " + strings.Join(buses, " ")
	}
	return request + ": not found"
}

// WriteStats writes one answer line per stat request.
func WriteStats(w io.Writer, cat *catalogue.Catalogue, requests []string) error {
	bw := bufio.NewWriter(w)
	for _, req := range requests {
		if _, err := bw.WriteString(Stat(cat, req) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// formatNumber prints six significant digits.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', 6, 64)
}
