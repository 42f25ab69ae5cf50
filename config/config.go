// Package config loads the process-wide settings from environment variables.
// The resulting Config is immutable after startup and is handed to the client
// factory explicitly, never read ambiently from call sites.
package config

import (
	"net/url"
	"os"

	"github.com/awsgate/awsgate"
)

const (
	// DefaultEndpoint is the LocalStack edge endpoint used when no
	// per-service endpoint is configured.
	DefaultEndpoint = "http://localhost:4566"

	defaultRegion = "us-east-1"

	// LocalStack accepts any credentials; these placeholders keep the SDK's
	// signing machinery satisfied without real keys.
	defaultAccessKey = "test"
	defaultSecretKey = "test"
)

// Config holds every setting the façade needs. One endpoint per target
// service so tests can point services at different backends.
type Config struct {
	ServerAddress string

	Region    string
	AccessKey string
	SecretKey string

	SNSEndpoint      string
	SQSEndpoint      string
	DynamoDBEndpoint string

	LogLevel string
}

// Load reads configuration from the environment, applying defaults, and
// validates it. It returns a ConfigurationError when a setting is
// structurally invalid.
func Load() (Config, error) {
	cfg := Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8000"),

		Region:    getEnv("AWS_REGION", defaultRegion),
		AccessKey: getEnv("AWS_ACCESS_KEY_ID", defaultAccessKey),
		SecretKey: getEnv("AWS_SECRET_ACCESS_KEY", defaultSecretKey),

		SNSEndpoint:      getEnv("SNS_ENDPOINT_URL", DefaultEndpoint),
		SQSEndpoint:      getEnv("SQS_ENDPOINT_URL", DefaultEndpoint),
		DynamoDBEndpoint: getEnv("DYNAMODB_ENDPOINT_URL", DefaultEndpoint),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the structural validity of the configuration. It performs
// no network I/O.
func (c Config) Validate() error {
	if c.Region == "" {
		return awsgate.NewConfigurationError("region must not be empty")
	}

	for name, endpoint := range map[string]string{
		"SNS_ENDPOINT_URL":      c.SNSEndpoint,
		"SQS_ENDPOINT_URL":      c.SQSEndpoint,
		"DYNAMODB_ENDPOINT_URL": c.DynamoDBEndpoint,
	} {
		u, err := url.Parse(endpoint)
		if err != nil {
			return awsgate.NewConfigurationError("%s: malformed endpoint %q: %v", name, endpoint, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return awsgate.NewConfigurationError("%s: endpoint %q must be http or https", name, endpoint)
		}
		if u.Host == "" {
			return awsgate.NewConfigurationError("%s: endpoint %q has no host", name, endpoint)
		}
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
