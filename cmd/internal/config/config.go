package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

const (
	EnvVarsPrefix = "/empresas/prod/"
	ssmRegion     = "us-east-2"
)

type Config struct {
	Production   bool
	Port         string
	DatabasePath string
	BodyLimit    string
	LogLevel     log.Lvl

	// Report archiving is off while S3Bucket is empty.
	S3Region string
	S3Bucket string

	// ReportSnapshotInterval schedules periodic archiving. Zero disables it.
	ReportSnapshotInterval time.Duration
}

// LoadEnv populates the process environment: from SSM Parameter Store in
// production, from an optional .env file otherwise.
func LoadEnv(ctx context.Context) error {
	if IsProduction() {
		cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(ssmRegion))
		if err != nil {
			return fmt.Errorf("unable to load SDK config: %w", err)
		}
		n, err := ExportParameters(ctx, ssm.NewFromConfig(cfg), EnvVarsPrefix)
		if err != nil {
			return fmt.Errorf("unable to load prod environment: %w", err)
		}
		log.Debugf("loaded %d prod environment variables", n)
		return nil
	}

	err := godotenv.Load()
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug("no .env file found, using process environment")
		return nil
	}
	return err
}

// ExportParameters sets one environment variable per parameter under prefix,
// named after the parameter path with the prefix removed.
func ExportParameters(ctx context.Context, client ssm.GetParametersByPathAPIClient, prefix string) (int, error) {
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(prefix),
		WithDecryption: aws.Bool(true),
		Recursive:      aws.Bool(true),
	})

	count := 0
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return count, err
		}

		for _, param := range out.Parameters {
			key := strings.TrimPrefix(aws.ToString(param.Name), prefix)
			if err := os.Setenv(key, aws.ToString(param.Value)); err != nil {
				return count, fmt.Errorf("unable to set environment variable %s: %w", key, err)
			}
			count++
		}
	}
	return count, nil
}

func Load() *Config {
	return &Config{
		Production:   IsProduction(),
		Port:         getEnv("PORT", "7070"),
		DatabasePath: getEnv("DATABASE_PATH", "database.db"),
		BodyLimit:    getEnv("BODY_LIMIT", "10M"),
		LogLevel:     ParseLogLevel(getEnv("LOG_LEVEL", "info")),
		S3Region:     getEnv("AWS_S3_REGION", "us-east-2"),
		S3Bucket:     os.Getenv("S3_BUCKET_NAME"),

		ReportSnapshotInterval: parseInterval(getEnv("REPORT_SNAPSHOT_INTERVAL", "0s")),
	}
}

func IsProduction() bool {
	return os.Getenv("GO_ENV") == "production"
}

// ParseLogLevel falls back to INFO for unknown names.
func ParseLogLevel(level string) log.Lvl {
	switch strings.ToLower(level) {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}

func parseInterval(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		log.Warnf("invalid interval %q, periodic task disabled", value)
		return 0
	}
	return d
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
