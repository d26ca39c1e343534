package formatter

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/theoremus-urban-solutions/transport-catalogue/catalogue"
)

const (
	busName     = "BUS"
	stopCount   = "STOPS"
	uniqueStops = "UNIQUE STOPS"
	routeLength = "ROUTE LENGTH (M)"
	curvature   = "CURVATURE"
)

// WriteStatsTable writes the statistics of every bus, sorted by name.
func WriteStatsTable(w io.Writer, cat *catalogue.Catalogue) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{busName, stopCount, uniqueStops, routeLength, curvature})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, bus := range cat.SortedBuses() {
		info := cat.Info(bus)
		table.Append([]string{
			info.Name,
			strconv.Itoa(info.StopCount),
			strconv.Itoa(info.UniqueStopCount),
			strconv.FormatFloat(info.RouteLength, 'f', 0, 64),
			strconv.FormatFloat(info.Curvature, 'f', 5, 64),
		})
	}
	stats := cat.Stats()
	table.SetFooter([]string{"TOTAL", strconv.Itoa(stats.Buses) + " buses", strconv.Itoa(stats.Stops) + " stops", strconv.Itoa(stats.Distances) + " distances", ""})
	table.Render()
}
