package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/theoremus-urban-solutions/transport-catalogue/config"
	"github.com/theoremus-urban-solutions/transport-catalogue/formatter"
	"github.com/theoremus-urban-solutions/transport-catalogue/handler"
	"github.com/theoremus-urban-solutions/transport-catalogue/internal/warnings"
	"github.com/theoremus-urban-solutions/transport-catalogue/reader"
	"github.com/theoremus-urban-solutions/transport-catalogue/renderer"
	"github.com/theoremus-urban-solutions/transport-catalogue/server"
	"github.com/theoremus-urban-solutions/transport-catalogue/textio"
)

func addSourceFlags(cmd *cobra.Command, src *sourceOpts) {
	cmd.Flags().StringVarP(&src.input, "input", "i", "", "JSON input document (default stdin)")
	cmd.Flags().StringVar(&src.gtfs, "gtfs", "", "GTFS zip path or URL (instead of --input)")
	cmd.Flags().StringVar(&src.agency, "agency", "", "import only this GTFS agency_id")
}

func newProcessCmd(root *rootOpts) *cobra.Command {
	src := &sourceOpts{}
	var output, vehicles, format string
	var workers, indent int

	cmd := &cobra.Command{
		Use:     "process",
		Short:   "answer the stat requests of a JSON input document",
		Example: `transport-catalogue process -i input.json -o answers.json`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			in, err := src.load(ctx, root)
			if err != nil {
				return err
			}
			_, rtCfg, err := root.feedConfig()
			if err != nil {
				return err
			}
			vs, err := vehiclesSource(vehicles, rtCfg)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("workers") {
				workers = config.Config.Processing.Workers
			}
			h := handler.FromInput(in, handler.WithVehicles(vs), handler.WithWorkers(workers))

			out, err := h.Process(ctx, in.StatRequests)
			if err != nil {
				return err
			}
			if format == "" {
				format = config.Config.Output.Format
			}
			if !cmd.Flags().Changed("indent") {
				indent = config.Config.Output.Indent
			}
			rb, err := formatter.NewResponseBuilder(format, indent)
			if err != nil {
				return err
			}
			w, err := createOutput(output)
			if err != nil {
				return err
			}
			defer func() { _ = w.Close() }()
			return rb.Write(w, out)
		},
	}
	addSourceFlags(cmd, src)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&vehicles, "vehicles", "", "GTFS-RT VehiclePositions file or URL (overrides config)")
	cmd.Flags().StringVar(&format, "format", "", "output format: json|text (overrides config)")
	cmd.Flags().IntVar(&indent, "indent", 0, "JSON indentation (overrides config)")
	cmd.Flags().IntVar(&workers, "workers", 0, "requests answered concurrently, 0 for one per CPU (overrides config)")
	return cmd
}

func newTextCmd() *cobra.Command {
	var input, output string
	cmd := &cobra.Command{
		Use:   "text",
		Short: "answer a line-oriented text document",
		Example: `printf '2\nStop A: 55.6, 37.2, 900m to B\nStop B: 55.61, 37.21\n1\nStop A\n' | \
  transport-catalogue text`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openInput(input)
			if err != nil {
				return err
			}
			defer func() { _ = r.Close() }()
			w, err := createOutput(output)
			if err != nil {
				return err
			}
			defer func() { _ = w.Close() }()

			agg := warnings.New()
			if _, err := textio.Run(r, w, agg); err != nil {
				return err
			}
			agg.LogAll(displayName(input))
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "text input document (default stdin)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func newRenderCmd(root *rootOpts) *cobra.Command {
	src := &sourceOpts{useConfigFeed: true}
	var output string
	cmd := &cobra.Command{
		Use:     "render",
		Short:   "render the bus network as an SVG map",
		Example: `transport-catalogue render -i input.json -o map.svg`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := src.load(cmd.Context(), root)
			if err != nil {
				return err
			}
			w, err := createOutput(output)
			if err != nil {
				return err
			}
			defer func() { _ = w.Close() }()
			return formatter.WriteSVG(w, renderer.New(in.Render).Render(in.Catalogue))
		},
	}
	addSourceFlags(cmd, src)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func newStatsCmd(root *rootOpts) *cobra.Command {
	src := &sourceOpts{useConfigFeed: true}
	cmd := &cobra.Command{
		Use:     "stats",
		Short:   "print the statistics of every bus as a table",
		Example: `transport-catalogue stats --gtfs ~/feeds/gtfs.zip`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := src.load(cmd.Context(), root)
			if err != nil {
				return err
			}
			formatter.WriteStatsTable(os.Stdout, in.Catalogue)
			return nil
		},
	}
	addSourceFlags(cmd, src)
	return cmd
}

func newImportGTFSCmd(root *rootOpts) *cobra.Command {
	var agency, output string
	var indent int
	cmd := &cobra.Command{
		Use:     "import-gtfs [path or URL]",
		Short:   "convert a GTFS feed into a JSON input document",
		Example: `transport-catalogue import-gtfs https://example.com/gtfs.zip -o input.json`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gtfsCfg, _, err := root.feedConfig()
			if err != nil {
				return err
			}
			location := gtfsCfg.Location()
			if len(args) == 1 {
				location = args[0]
			}
			if location == "" {
				return fmt.Errorf("no GTFS location given and none configured")
			}
			if agency == "" {
				agency = gtfsCfg.AgencyID
			}

			cat, err := loadGTFS(cmd.Context(), location, agency)
			if err != nil {
				return err
			}
			doc, err := reader.Export(cat)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("indent") {
				indent = config.Config.Output.Indent
			}
			rb, err := formatter.NewResponseBuilder(formatter.FormatJSON, indent)
			if err != nil {
				return err
			}
			w, err := createOutput(output)
			if err != nil {
				return err
			}
			defer func() { _ = w.Close() }()
			return rb.Write(w, doc)
		},
	}
	cmd.Flags().StringVar(&agency, "agency", "", "import only this agency_id (overrides config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().IntVar(&indent, "indent", 0, "JSON indentation (overrides config)")
	return cmd
}

func newServeCmd(root *rootOpts) *cobra.Command {
	src := &sourceOpts{useConfigFeed: true}
	var vehicles string
	var port int
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "serve requests over HTTP",
		Example: `transport-catalogue serve --port 8080 --gtfs ./gtfs.zip`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			_, rtCfg, err := root.feedConfig()
			if err != nil {
				return err
			}
			vs, err := vehiclesSource(vehicles, rtCfg)
			if err != nil {
				return err
			}
			hopts := []handler.Option{handler.WithVehicles(vs), handler.WithWorkers(config.Config.Processing.Workers)}
			opts := []server.Option{server.WithHandlerOptions(hopts...)}

			if preload, err := src.preload(root); err != nil {
				return err
			} else if preload {
				in, err := src.load(ctx, root)
				if err != nil {
					return err
				}
				opts = append(opts, server.WithCatalogue(handler.FromInput(in, hopts...)))
			}

			srvCfg := config.Config.Server
			if cmd.Flags().Changed("port") {
				srvCfg.Port = port
			}
			return server.New(srvCfg, opts...).Run(ctx)
		},
	}
	addSourceFlags(cmd, src)
	cmd.Flags().StringVar(&vehicles, "vehicles", "", "GTFS-RT VehiclePositions file or URL (overrides config)")
	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides config)")
	return cmd
}

// preload reports whether serve has a catalogue to load at startup. The
// server never reads stdin.
func (s *sourceOpts) preload(root *rootOpts) (bool, error) {
	if s.input != "" && s.input != "-" {
		return true, nil
	}
	location, _, err := s.gtfsLocation(root)
	return location != "", err
}
