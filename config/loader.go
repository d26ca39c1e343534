package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// Config is the global application configuration
var Config = Default()

var defaultPaths = []string{"config.yml", "./config/config.yml", "~/.transport-catalogue/config.yml"}

// LoadAppConfig loads and validates the application configuration into
// Config. The first readable path wins. Without paths the default locations
// are searched, and finding none of them leaves Config at its defaults.
func LoadAppConfig(paths ...string) error {
	explicit := len(paths) > 0
	if !explicit {
		paths = defaultPaths
	}

	for _, p := range paths {
		path, err := homedir.Expand(p)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return err
		}
		cfg, err := Parse(data)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		Config = cfg
		return nil
	}

	if explicit {
		return fmt.Errorf("no configuration file found in %v", paths)
	}
	Config = Default()
	return nil
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(data []byte) (AppConfig, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, err
	}
	if err := validator.New().Struct(cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// SelectFeed returns the GTFS and GTFS-RT sections of the named feed. An empty
// name picks the first configured feed, or the top-level sections when there
// are no feeds. An unknown name is an error.
func SelectFeed(name string) (GTFSConfig, GTFSRTConfig, error) {
	if name != "" {
		for _, f := range Config.Feeds {
			if f.Name == name {
				return f.GTFS, withRTDefaults(f.GTFSRT), nil
			}
		}
		return GTFSConfig{}, GTFSRTConfig{}, fmt.Errorf("no feed named %q", name)
	}
	if len(Config.Feeds) > 0 {
		return Config.Feeds[0].GTFS, withRTDefaults(Config.Feeds[0].GTFSRT), nil
	}
	return Config.GTFS, Config.GTFSRT, nil
}

// withRTDefaults fills the timings a feed entry left out from the top-level
// gtfsrt section.
func withRTDefaults(c GTFSRTConfig) GTFSRTConfig {
	if c.TimeoutMS == 0 {
		c.TimeoutMS = Config.GTFSRT.TimeoutMS
	}
	if c.CacheTTLMS == 0 {
		c.CacheTTLMS = Config.GTFSRT.CacheTTLMS
	}
	return c
}
