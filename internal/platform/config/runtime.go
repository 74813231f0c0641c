package config

import (
	"fmt"
	"net"
	"strings"
	"time"
)

// RuntimeConfig holds the process lifetime settings: how long a graceful stop may take
// and where the optional profiling listener binds. An empty PProfAddr disables profiling.
type RuntimeConfig struct {
	ShutdownTimeout time.Duration `koanf:"shutdownTimeout"`
	PProfAddr       string        `koanf:"pprofAddr"`
}

const defaultShutdownTimeout = 10 * time.Second

// PProfEnabled reports whether the profiling listener should start.
func (c *RuntimeConfig) PProfEnabled() bool {
	return c.PProfAddr != ""
}

func (c *RuntimeConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Runtime ---\n")
	b.WriteString(fmt.Sprintf("  shutdownTimeout: %s\n", c.ShutdownTimeout))
	if c.PProfEnabled() {
		b.WriteString(fmt.Sprintf("  pprofAddr: %s\n", c.PProfAddr))
	} else {
		b.WriteString("  pprofAddr: <disabled>\n")
	}
	return b.String()
}

func (c *RuntimeConfig) Validate() error {
	if c.ShutdownTimeout < 0 {
		return fmt.Errorf("runtime shutdownTimeout must not be negative: %s", c.ShutdownTimeout)
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = defaultShutdownTimeout
	}
	if c.PProfEnabled() {
		if _, _, err := net.SplitHostPort(c.PProfAddr); err != nil {
			return fmt.Errorf("invalid runtime pprofAddr %q: %w", c.PProfAddr, err)
		}
	}
	return nil
}
