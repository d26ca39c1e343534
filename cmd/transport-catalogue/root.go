package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/theoremus-urban-solutions/transport-catalogue/config"
	"github.com/theoremus-urban-solutions/transport-catalogue/internal"
)

type rootOpts struct {
	cfgFile  string
	logLevel string
	feed     string
}

var longRootCmdDescription = `transport-catalogue answers questions about a bus network: statistics of
buses and stops, the fastest route between two stops, live vehicles and a
rendered SVG map. The network is read from a JSON input document, a
line-oriented text document or a GTFS feed.
`

func newRootCmd() *cobra.Command {
	opts := &rootOpts{}
	cmd := &cobra.Command{
		Use:           "transport-catalogue",
		Short:         "Query and render a bus network",
		Long:          longRootCmdDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is config.yml, ./config/config.yml or ~/.transport-catalogue/config.yml)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug|info|warn|error (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.feed, "feed", "", "feed name from config.feeds[]")

	cmd.AddCommand(
		newProcessCmd(opts),
		newTextCmd(),
		newRenderCmd(opts),
		newStatsCmd(opts),
		newImportGTFSCmd(opts),
		newServeCmd(opts),
	)
	return cmd
}

func (o *rootOpts) init() error {
	var paths []string
	if o.cfgFile != "" {
		paths = []string{o.cfgFile}
	}
	if err := config.LoadAppConfig(paths...); err != nil {
		return err
	}
	level := config.Config.Log.Level
	if o.logLevel != "" {
		level = o.logLevel
	}
	// stdout carries the command output.
	return internal.InitLogging(level, os.Stderr)
}

// feedConfig returns the GTFS and GTFS-RT settings of the selected feed.
func (o *rootOpts) feedConfig() (config.GTFSConfig, config.GTFSRTConfig, error) {
	return config.SelectFeed(o.feed)
}
