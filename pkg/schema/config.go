package schema

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/formio/pkg/errors"
)

// Backend names accepted by the server configuration.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Config is the contents of a formio configuration file.
type Config struct {
	Form   Schema `toml:"form"`
	Server Server `toml:"server"`
}

// Server configures the web app.
type Server struct {
	Addr          string   `toml:"addr"`
	SessionStore  string   `toml:"session_store"`
	DownloadStore string   `toml:"download_store"`
	SessionTTL    Duration `toml:"session_ttl"`
	MaxUpload     int64    `toml:"max_upload"`
	DataDir       string   `toml:"data_dir"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
	MongoURI      string   `toml:"mongo_uri"`
	MongoDatabase string   `toml:"mongo_database"`
}

// Duration is a time.Duration written as a string such as "24h".
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration as a Go duration string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Server defaults.
const (
	DefaultAddr       = ":8080"
	DefaultSessionTTL = 24 * time.Hour
	DefaultMaxUpload  = 1 << 20
	DefaultRedisAddr  = "localhost:6379"
	DefaultMongoURI   = "mongodb://localhost:27017"
	DefaultMongoDB    = "formio"
)

// SetDefaults fills unset server settings.
func (s *Server) SetDefaults() {
	if s.Addr == "" {
		s.Addr = DefaultAddr
	}
	if s.SessionStore == "" {
		s.SessionStore = BackendMemory
	}
	if s.DownloadStore == "" {
		s.DownloadStore = BackendMemory
	}
	if s.SessionTTL.Duration <= 0 {
		s.SessionTTL.Duration = DefaultSessionTTL
	}
	if s.MaxUpload <= 0 {
		s.MaxUpload = DefaultMaxUpload
	}
	if s.RedisAddr == "" {
		s.RedisAddr = DefaultRedisAddr
	}
	if s.MongoURI == "" {
		s.MongoURI = DefaultMongoURI
	}
	if s.MongoDatabase == "" {
		s.MongoDatabase = DefaultMongoDB
	}
}

// Validate checks the backend names.
func (s *Server) Validate() error {
	switch s.SessionStore {
	case BackendMemory, BackendFile, BackendRedis, BackendMongo:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown session store %q", s.SessionStore)
	}
	switch s.DownloadStore {
	case BackendMemory, BackendFile, BackendRedis:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown download store %q", s.DownloadStore)
	}
	return nil
}

// Parse decodes a TOML configuration, applies defaults and validates it.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSchema, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidSchema, "unknown config key %q", undecoded[0].String())
	}
	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads and parses the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Example returns the built-in configuration used when no file is given:
// a two-field calculator form.
func Example() *Config {
	cfg := &Config{
		Form: Schema{
			Title:  "Addisjon",
			Locale: "nb",
			Fields: []Field{
				{Name: "x", Title: "X-verdi", Kind: KindNumber, Default: 1.0},
				{Name: "y", Title: "Y-verdi", Kind: KindNumber, Default: 2.0},
			},
		},
	}
	_ = cfg.finish()
	return cfg
}

func (c *Config) finish() error {
	if err := c.Form.Validate(); err != nil {
		return err
	}
	c.Server.SetDefaults()
	return c.Server.Validate()
}
