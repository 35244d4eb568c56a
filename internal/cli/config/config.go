package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"cassdao/drivers/db/cassandra"
)

// Config represents the cassdao CLI configuration
type Config struct {
	Cassandra cassandra.Config `mapstructure:"cassandra"`
}

// Load reads cassdao.yaml (or the file at path, when non-empty) and
// CASSDAO_* environment variables on top of the driver defaults. Flags bound
// to v beforehand take precedence.
func Load(v *viper.Viper, path string) (*Config, error) {
	def := cassandra.DefaultConfig()
	v.SetDefault("cassandra.hosts", def.Hosts)
	v.SetDefault("cassandra.port", def.Port)
	v.SetDefault("cassandra.consistency", def.Consistency)
	v.SetDefault("cassandra.timeout", def.Timeout)
	v.SetDefault("cassandra.connect_timeout", def.ConnectTimeout)
	v.SetDefault("cassandra.page_size", def.PageSize)
	// Registered so AutomaticEnv can see them.
	v.SetDefault("cassandra.keyspace", "")
	v.SetDefault("cassandra.username", "")
	v.SetDefault("cassandra.password", "")
	v.SetDefault("cassandra.proto_version", 0)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("cassdao")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("cassdao")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if len(cfg.Cassandra.Hosts) == 0 {
		return nil, fmt.Errorf("cassandra.hosts must not be empty")
	}
	return &cfg, nil
}
