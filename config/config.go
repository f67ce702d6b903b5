package config

import (
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/viper"
	"golang.org/x/xerrors"
)

// EnvPrefix prefixes the environment variables that override file settings,
// e.g. FACETD_LISTEN_ADDR or FACETD_MONGODB_URI.
const EnvPrefix = "FACETD"

// Supported backends.
const (
	BackendMemory        = "memory"
	BackendElasticsearch = "elasticsearch"
	BackendMongoDB       = "mongodb"
)

// Config holds the settings of the facetd server.
type Config struct {
	ListenAddr    string              `mapstructure:"listen_addr"`
	Index         BackendConfig       `mapstructure:"index"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Setups        BackendConfig       `mapstructure:"setups"`
	MongoDB       MongoDBConfig       `mapstructure:"mongodb"`
	Facets        FacetsConfig        `mapstructure:"facets"`
	Log           LogConfig           `mapstructure:"log"`
	Seed          SeedConfig          `mapstructure:"seed"`
}

// BackendConfig selects the implementation of a storage concern.
type BackendConfig struct {
	Backend string `mapstructure:"backend"`
}

// ElasticsearchConfig is used when index.backend is elasticsearch.
type ElasticsearchConfig struct {
	Addresses    []string `mapstructure:"addresses"`
	Username     string   `mapstructure:"username"`
	Password     string   `mapstructure:"password"`
	PITKeepAlive string   `mapstructure:"pit_keep_alive"`
}

// MongoDBConfig is used when setups.backend is mongodb.
type MongoDBConfig struct {
	URI        string `mapstructure:"uri"`
	Database   string `mapstructure:"database"`
	Collection string `mapstructure:"collection"`
}

// FacetsConfig tunes the facet aggregator.
type FacetsConfig struct {
	MaxTermCandidates int `mapstructure:"max_term_candidates"`
	Workers           int `mapstructure:"workers"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

/*
SeedConfig points at JSON files loaded at startup. Documents maps index
names to document lists; Setups maps setup IDs to facet setups.
*/
type SeedConfig struct {
	Documents string `mapstructure:"documents"`
	Setups    string `mapstructure:"setups"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("index.backend", BackendMemory)
	v.SetDefault("elasticsearch.addresses", []string{"http://localhost:9200"})
	v.SetDefault("elasticsearch.username", "")
	v.SetDefault("elasticsearch.password", "")
	v.SetDefault("elasticsearch.pit_keep_alive", "1m")
	v.SetDefault("setups.backend", BackendMemory)
	v.SetDefault("mongodb.uri", "")
	v.SetDefault("mongodb.database", "facetsearch")
	v.SetDefault("mongodb.collection", "facet_setups")
	v.SetDefault("facets.max_term_candidates", 1024)
	v.SetDefault("facets.workers", 1)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("seed.documents", "")
	v.SetDefault("seed.setups", "")
}

/*
Load reads the configuration file at path, when one is given, and applies
FACETD_* environment overrides on top of it.
*/
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, xerrors.Errorf("read config %q: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, xerrors.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, xerrors.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate reports every setting that cannot be used.
func (cfg *Config) Validate() error {
	var err error
	if cfg.ListenAddr == "" {
		err = multierror.Append(err, xerrors.New("listen_addr must not be empty"))
	}
	switch cfg.Index.Backend {
	case BackendMemory:
	case BackendElasticsearch:
		if len(cfg.Elasticsearch.Addresses) == 0 {
			err = multierror.Append(err, xerrors.New("elasticsearch.addresses must list at least one node"))
		}
	default:
		err = multierror.Append(err, xerrors.Errorf("unsupported index.backend %q", cfg.Index.Backend))
	}
	switch cfg.Setups.Backend {
	case BackendMemory:
	case BackendMongoDB:
		if cfg.MongoDB.URI == "" {
			err = multierror.Append(err, xerrors.New("mongodb.uri must be set for the mongodb setups backend"))
		}
	default:
		err = multierror.Append(err, xerrors.Errorf("unsupported setups.backend %q", cfg.Setups.Backend))
	}
	if cfg.Facets.MaxTermCandidates <= 0 {
		err = multierror.Append(err, xerrors.New("facets.max_term_candidates must be positive"))
	}
	if cfg.Facets.Workers <= 0 {
		err = multierror.Append(err, xerrors.New("facets.workers must be positive"))
	}
	return err
}
