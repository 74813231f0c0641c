package config

import (
	"fmt"
	"strings"

	"github.com/HumayunBA/QA-API-Testing/internal/product/store"
)

// Store drivers.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// StoreConfig selects the product store implementation and how product ids are assigned.
type StoreConfig struct {
	Driver string       `koanf:"driver"`
	IDMode store.IDMode `koanf:"idMode"`
}

// String returns a string representation of the store configuration.
func (c *StoreConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Store ---\n")
	b.WriteString(fmt.Sprintf("  driver: %s\n", c.Driver))
	b.WriteString(fmt.Sprintf("  idMode: %s\n", c.IDMode))
	return b.String()
}

// Validate fills in postgres and server-assigned ids when unset and rejects unknown values.
func (c *StoreConfig) Validate() error {
	if c.Driver == "" {
		c.Driver = StoreDriverPostgres
	}
	if c.IDMode == "" {
		c.IDMode = store.IDModeServer
	}
	switch c.Driver {
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		return fmt.Errorf("unsupported store driver: %q", c.Driver)
	}
	switch c.IDMode {
	case store.IDModeServer, store.IDModeClient:
	default:
		return fmt.Errorf("unsupported id mode: %q", c.IDMode)
	}
	return nil
}
