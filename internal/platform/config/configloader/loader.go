// Package configloader merges yaml, .env and process environment into a typed configuration.
package configloader

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Validator is implemented by every configuration root.
type Validator interface {
	Validate() error
}

const (
	configFile  = "config.yaml"
	dotEnvFile  = ".env"
	keySplitter = "."
)

// Load builds T from config.yaml, then .env, then process environment variables
// prefixed with <SERVICENAME>_ (highest priority). The result is validated before return.
func Load[T Validator](serviceName string) (T, error) {
	var cfg T
	k := koanf.New(keySplitter)

	envPrefix := fmt.Sprintf("%s_", strings.ToUpper(serviceName))

	// 1. yaml file, keys lowercased so env keys land on the same paths
	fileK := koanf.New(keySplitter)
	if err := fileK.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("WARN: error loading YAML config file '%s': %v", configFile, err)
		}
	}
	if err := k.Load(confmap.Provider(lowerKeys(fileK.All()), keySplitter), nil); err != nil {
		log.Printf("WARN: error merging YAML config: %v", err)
	}

	// 2. .env file
	envTransformer := keyTransformer(envPrefix)
	if envFileMap, err := godotenv.Read(dotEnvFile); err == nil {
		envMap := make(map[string]any)
		for key, value := range envFileMap {
			if !strings.HasPrefix(strings.ToUpper(key), envPrefix) {
				continue
			}
			envMap[envTransformer(key)] = value
		}
		if err := k.Load(confmap.Provider(envMap, keySplitter), nil); err != nil {
			log.Printf("WARN: error loading .env config: %v", err)
		}
	} else if !os.IsNotExist(err) {
		log.Printf("WARN: error reading .env file: %v", err)
	}

	// 3. system environment
	if err := k.Load(env.Provider(envPrefix, keySplitter, envTransformer), nil); err != nil {
		log.Printf("WARN: error loading system env vars: %v", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// lowerKeys lowercases flattened koanf keys. Struct tags still match through the case-insensitive unmarshal.
func lowerKeys(flat map[string]any) map[string]any {
	out := make(map[string]any, len(flat))
	for key, value := range flat {
		out[strings.ToLower(key)] = value
	}
	return out
}

// keyTransformer maps PRODUCTS_SERVER_PORT to server.port.
func keyTransformer(envPrefix string) func(string) string {
	prefix := strings.ToLower(envPrefix)
	return func(key string) string {
		key = strings.ToLower(key)
		key = strings.TrimPrefix(key, prefix)
		return strings.ReplaceAll(key, "_", keySplitter)
	}
}
