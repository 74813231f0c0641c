// Package config holds the configuration of the products service.
package config

import (
	"strings"

	"github.com/HumayunBA/QA-API-Testing/internal/platform/config"
	"github.com/HumayunBA/QA-API-Testing/internal/platform/config/configloader"
)

var _ configloader.Validator = (*Config)(nil)

type Config struct {
	HTTPServer config.HTTPConfig       `koanf:"server"`
	Database   config.DatabaseConfig   `koanf:"database"`
	Store      StoreConfig             `koanf:"store"`
	GRPC       config.GrpcServerConfig `koanf:"grpc"`
	CORS       config.CORSConfig       `koanf:"cors"`
	Log        config.LogConfig        `koanf:"log"`
	Runtime    config.RuntimeConfig    `koanf:"runtime"`
}

func (c *Config) String() string {
	var b strings.Builder
	b.WriteString(c.HTTPServer.String())
	b.WriteString(c.Store.String())
	if c.Store.Driver == StoreDriverPostgres {
		b.WriteString(c.Database.String())
	}
	b.WriteString(c.GRPC.String())
	b.WriteString(c.CORS.String())
	b.WriteString(c.Log.String())
	b.WriteString(c.Runtime.String())
	return b.String()
}

// Validate checks if the configuration values are valid.
// The database section is only required by the postgres store driver.
func (c *Config) Validate() error {
	if err := c.HTTPServer.Validate(); err != nil {
		return err
	}
	if err := c.Store.Validate(); err != nil {
		return err
	}
	if c.Store.Driver == StoreDriverPostgres {
		if err := c.Database.Validate(); err != nil {
			return err
		}
	}
	if err := c.GRPC.Validate(); err != nil {
		return err
	}
	if err := c.CORS.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	return c.Runtime.Validate()
}
