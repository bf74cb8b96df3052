package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Version is reported by the welcome endpoint.
const Version = "1.0.0"

const (
	EnvDevelopment = "development"

	defaultPort            = "3000"
	defaultServiceName     = "workflow-demo"
	defaultShutdownTimeout = 5 * time.Second
)

// Keys shared by flags, environment bindings and Load.
const (
	keyPort            = "port"
	keyEnv             = "env"
	keyStage           = "stage"
	keyShutdownTimeout = "shutdown-timeout"
	keyServiceName     = "service-name"
	keyAllowedOrigins  = "cors-allowed-origins"
	keyOTLPEndpoint    = "otlp-endpoint"
)

type Config struct {
	Port        string
	Environment string
	// Debug is set only when the environment is explicitly development.
	// It gates panic detail in 500 responses and the console logger, so an
	// unconfigured deployment stays quiet.
	Debug           bool
	Stage           string
	ServiceName     string
	ShutdownTimeout time.Duration
	AllowedOrigins  []string

	// TelemetryEnabled turns on the OTLP exporters. It follows
	// OTEL_EXPORTER_OTLP_ENDPOINT so a bare deployment does not retry
	// exports against a collector that isn't there.
	TelemetryEnabled bool
}

// New returns a viper instance bound to the service's environment
// variables. The environment name has no default here so Load can tell an
// explicit "development" from an unset one.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault(keyPort, defaultPort)
	v.SetDefault(keyStage, EnvDevelopment)
	v.SetDefault(keyShutdownTimeout, defaultShutdownTimeout)
	v.SetDefault(keyServiceName, defaultServiceName)
	v.SetDefault(keyAllowedOrigins, "*")

	// BindEnv only errors on an empty key list.
	_ = v.BindEnv(keyPort, "PORT")
	_ = v.BindEnv(keyEnv, "APP_ENV", "NODE_ENV")
	_ = v.BindEnv(keyStage, "STAGE")
	_ = v.BindEnv(keyShutdownTimeout, "SHUTDOWN_TIMEOUT")
	_ = v.BindEnv(keyServiceName, "OTEL_SERVICE_NAME")
	_ = v.BindEnv(keyAllowedOrigins, "CORS_ALLOWED_ORIGINS")
	_ = v.BindEnv(keyOTLPEndpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")

	return v
}

// BindFlags registers the command-line overrides on flags and binds them to
// v. A flag only wins over the environment when it is set explicitly.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.String(keyPort, defaultPort, "listen port (env PORT)")
	flags.String(keyEnv, "", "environment name, reported as development when unset (env APP_ENV or NODE_ENV)")
	flags.String(keyStage, EnvDevelopment, "deployment stage (env STAGE)")
	flags.Duration(keyShutdownTimeout, defaultShutdownTimeout, "graceful shutdown bound (env SHUTDOWN_TIMEOUT)")

	for _, key := range []string{keyPort, keyEnv, keyStage, keyShutdownTimeout} {
		_ = v.BindPFlag(key, flags.Lookup(key))
	}
}

// Load resolves the configuration from v. Call it after the .env file has
// been applied.
func Load(v *viper.Viper) Config {
	env := v.GetString(keyEnv)
	cfg := Config{
		Port:             v.GetString(keyPort),
		Environment:      env,
		Debug:            env == EnvDevelopment,
		Stage:            v.GetString(keyStage),
		ServiceName:      v.GetString(keyServiceName),
		ShutdownTimeout:  v.GetDuration(keyShutdownTimeout),
		AllowedOrigins:   splitList(v.GetString(keyAllowedOrigins)),
		TelemetryEnabled: v.GetString(keyOTLPEndpoint) != "",
	}
	if cfg.Environment == "" {
		cfg.Environment = EnvDevelopment
	}
	return cfg
}

func (c Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %q", c.Port)
	}

	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive, got %s", c.ShutdownTimeout)
	}

	return nil
}

func (c Config) Addr() string {
	return ":" + c.Port
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
