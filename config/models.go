package config

import "time"

// Config holds the configuration of the gateway
// Use config.LoadConfig to create a new instance
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Log         LogConfig         `mapstructure:"log"`
	CORS        CORSConfig        `mapstructure:"cors"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Web         WebConfig         `mapstructure:"web"`
	Backend     BackendConfig     `mapstructure:"backend"`
	Attribution AttributionConfig `mapstructure:"attribution"`
	Profiling   ProfilingConfig   `mapstructure:"profiling"`
	Tracing     TracingConfig     `mapstructure:"tracing"`
}

type ServerConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port" validate:"min=1,max=65535"`
	MaxRequestSize int64  `mapstructure:"max_request_size" validate:"min=1"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format" validate:"omitempty,oneof=text json"`
}

// CORSConfig controls the CORS headers sent on /api routes. The front-end is
// usually served from another port during development.
type CORSConfig struct {
	Enabled        bool     `mapstructure:"enabled"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

type AuthConfig struct {
	Secret   string `mapstructure:"secret" validate:"required_if=Required true"`
	Required bool   `mapstructure:"required"`
}

type WebConfig struct {
	PublicDir string `mapstructure:"public_dir"`
	// NotFoundPage is an HTML file served for unmatched static resources. The
	// embedded page is used when empty.
	NotFoundPage string `mapstructure:"not_found_page"`
}

// BackendConfig holds the limits shared by all external analysis programs.
type BackendConfig struct {
	MaxConcurrent uint              `mapstructure:"max_concurrent" validate:"min=1"`
	MaxWait       time.Duration     `mapstructure:"max_wait"`
	Timeout       time.Duration     `mapstructure:"timeout" validate:"required"`
	Env           map[string]string `mapstructure:"env"`
}

type AttributionConfig struct {
	Command string            `mapstructure:"command" validate:"required"`
	Args    []string          `mapstructure:"args"`
	WorkDir string            `mapstructure:"work_dir"`
	Env     map[string]string `mapstructure:"env"`
	// ModelPathTemplate is a text/template rendered with .Language, .Genre and
	// .FeatureSet, relative to WorkDir.
	ModelPathTemplate string `mapstructure:"model_path_template" validate:"required"`
}

type ProfilingConfig struct {
	Command string            `mapstructure:"command" validate:"required"`
	Args    []string          `mapstructure:"args"`
	WorkDir string            `mapstructure:"work_dir"`
	Env     map[string]string `mapstructure:"env"`
}

type TracingConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Endpoint    string `mapstructure:"endpoint" validate:"required_if=Enabled true"`
	ServiceName string `mapstructure:"service_name"`
	Insecure    bool   `mapstructure:"insecure"`
}
