package config

import (
	"time"

	"github.com/spf13/viper"
)

// set sane defaults for all of the config options. when loading the config from
// the file or environment, any options that are not set keep these values.
var defaultConfig = Config{
	Server: ServerConfig{
		Port:           8080,
		MaxRequestSize: 5 << 20, // 5MB
	},
	Log: LogConfig{
		Level:  "info",
		Format: "text",
	},
	CORS: CORSConfig{
		Enabled:        true,
		AllowedOrigins: []string{"*"},
		AllowedHeaders: []string{"Origin", "X-Requested-With", "Content-Type", "Accept"},
	},
	Web: WebConfig{
		PublicDir: "public_html",
	},
	Backend: BackendConfig{
		MaxConcurrent: 4,
		MaxWait:       10 * time.Second,
		Timeout:       2 * time.Minute,
	},
	Attribution: AttributionConfig{
		Command:           "python3",
		Args:              []string{"glad-copy.py"},
		WorkDir:           "resources/glad",
		ModelPathTemplate: "models/{{.Language}}_{{.Genre}}_{{.FeatureSet}}",
	},
	Profiling: ProfilingConfig{
		Command: "python3",
		Args:    []string{"profile.py"},
		WorkDir: "resources/profiling",
	},
	Tracing: TracingConfig{
		ServiceName: "aagateway",
	},
}

// DefaultConfig returns a copy of the built-in defaults.
func DefaultConfig() Config {
	cfg := defaultConfig
	cfg.CORS.AllowedOrigins = append([]string(nil), defaultConfig.CORS.AllowedOrigins...)
	cfg.CORS.AllowedHeaders = append([]string(nil), defaultConfig.CORS.AllowedHeaders...)
	cfg.Attribution.Args = append([]string(nil), defaultConfig.Attribution.Args...)
	cfg.Profiling.Args = append([]string(nil), defaultConfig.Profiling.Args...)
	return cfg
}

// setDefaults registers every key with viper. Keys viper does not know about are
// not picked up from the environment by Unmarshal.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.max_request_size", d.Server.MaxRequestSize)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)

	v.SetDefault("cors.enabled", d.CORS.Enabled)
	v.SetDefault("cors.allowed_origins", d.CORS.AllowedOrigins)
	v.SetDefault("cors.allowed_headers", d.CORS.AllowedHeaders)

	v.SetDefault("auth.secret", d.Auth.Secret)
	v.SetDefault("auth.required", d.Auth.Required)

	v.SetDefault("web.public_dir", d.Web.PublicDir)
	v.SetDefault("web.not_found_page", d.Web.NotFoundPage)

	v.SetDefault("backend.max_concurrent", d.Backend.MaxConcurrent)
	v.SetDefault("backend.max_wait", d.Backend.MaxWait)
	v.SetDefault("backend.timeout", d.Backend.Timeout)

	v.SetDefault("attribution.command", d.Attribution.Command)
	v.SetDefault("attribution.args", d.Attribution.Args)
	v.SetDefault("attribution.work_dir", d.Attribution.WorkDir)
	v.SetDefault("attribution.model_path_template", d.Attribution.ModelPathTemplate)

	v.SetDefault("profiling.command", d.Profiling.Command)
	v.SetDefault("profiling.args", d.Profiling.Args)
	v.SetDefault("profiling.work_dir", d.Profiling.WorkDir)

	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.endpoint", d.Tracing.Endpoint)
	v.SetDefault("tracing.service_name", d.Tracing.ServiceName)
	v.SetDefault("tracing.insecure", d.Tracing.Insecure)
}
