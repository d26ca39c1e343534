package config

import "time"

// ServerConfig contains server configuration
type ServerConfig struct {
	Port              int `yaml:"port" validate:"gt=0,lte=65535"`
	ShutdownTimeoutMS int `yaml:"shutdownTimeoutMS" validate:"gte=0"`
}

// LogConfig contains logging configuration
type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

// OutputConfig controls how responses are written
type OutputConfig struct {
	Format string `yaml:"format" validate:"oneof=json text"`
	Indent int    `yaml:"indent" validate:"gte=0,lte=16"`
}

// ProcessingConfig contains request processing configuration
type ProcessingConfig struct {
	// Workers bounds concurrently answered requests; 0 means one per CPU.
	Workers int `yaml:"workers" validate:"gte=0"`
}

// GTFSConfig contains GTFS static feed configuration
type GTFSConfig struct {
	StaticPath string `yaml:"staticPath"`
	StaticURL  string `yaml:"staticURL" validate:"omitempty,url"`
	AgencyID   string `yaml:"agency_id" validate:"omitempty"`
}

// Location returns the configured path, or the URL when no path is set.
func (c GTFSConfig) Location() string {
	if c.StaticPath != "" {
		return c.StaticPath
	}
	return c.StaticURL
}

// GTFSRTConfig contains GTFS-Realtime feed configuration
type GTFSRTConfig struct {
	VehiclePositionsURL string `yaml:"vehiclePositionsURL" validate:"omitempty,url"`
	TimeoutMS           int    `yaml:"timeoutMS" validate:"gte=0"`
	CacheTTLMS          int    `yaml:"cacheTTLMS" validate:"gte=0"`
}

func (c GTFSRTConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

func (c GTFSRTConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMS) * time.Millisecond
}

// Feed represents a single named GTFS feed configuration
type Feed struct {
	Name   string       `yaml:"name" validate:"required"`
	GTFS   GTFSConfig   `yaml:"gtfs" validate:"required"`
	GTFSRT GTFSRTConfig `yaml:"gtfsrt"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server     ServerConfig     `yaml:"server" validate:"required"`
	Log        LogConfig        `yaml:"log"`
	Output     OutputConfig     `yaml:"output"`
	Processing ProcessingConfig `yaml:"processing"`
	GTFS       GTFSConfig       `yaml:"gtfs"`
	GTFSRT     GTFSRTConfig     `yaml:"gtfsrt"`
	Feeds      []Feed           `yaml:"feeds" validate:"dive"`
}

// Default returns the configuration used when no file is found.
func Default() AppConfig {
	return AppConfig{
		Server:     ServerConfig{Port: 16181, ShutdownTimeoutMS: 5000},
		Log:        LogConfig{Level: "info"},
		Output:     OutputConfig{Format: "json", Indent: 2},
		Processing: ProcessingConfig{Workers: 0},
		GTFSRT:     GTFSRTConfig{TimeoutMS: 10000, CacheTTLMS: 15000},
	}
}
