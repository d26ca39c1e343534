// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// Keys missing from the file keep the values of Default. The package
// supports several feeds and allows feed selection by name.
package config
