package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")
	ErrMissingJWTSecret   = errors.New("JWT_SECRET is required")
)

type Config struct {
	Env        string
	LogLevel   string
	ServerPort int
	JWTSecret  string
	Database   DatabaseConfig
	Archive    ArchiveConfig
}

type DatabaseConfig struct {
	URL string
}

// ArchiveConfig selects the object store used by audit exports.
// Backend is empty when no archive is configured.
type ArchiveConfig struct {
	Backend string
	Minio   MinioConfig
	GCS     GCSConfig
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type GCSConfig struct {
	Bucket          string
	ProjectID       string
	CredentialsFile string
}

// LoadConfig reads the process configuration from the environment through the
// global viper instance, so flags bound with viper.BindPFlag take effect.
func LoadConfig() (Config, error) {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}
	return Load(viper.GetViper())
}

// LoadDatabaseConfig is LoadConfig for commands that only talk to the database.
func LoadDatabaseConfig() (DatabaseConfig, error) {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}
	v := viper.GetViper()
	v.AutomaticEnv()
	url := strings.TrimSpace(v.GetString("DATABASE_URL"))
	if url == "" {
		return DatabaseConfig{}, ErrMissingDatabaseURL
	}
	return DatabaseConfig{URL: url}, nil
}

// Load builds a Config from v. DATABASE_URL and JWT_SECRET must be set.
func Load(v *viper.Viper) (Config, error) {
	v.AutomaticEnv()
	setDefaults(v)

	cfg := Config{
		Env:        v.GetString("ENV"),
		LogLevel:   v.GetString("LOG_LEVEL"),
		ServerPort: v.GetInt("SERVER_PORT"),
		JWTSecret:  v.GetString("JWT_SECRET"),
		Database: DatabaseConfig{
			URL: strings.TrimSpace(v.GetString("DATABASE_URL")),
		},
		Archive: ArchiveConfig{
			Backend: strings.ToLower(strings.TrimSpace(v.GetString("ARCHIVE_BACKEND"))),
			Minio: MinioConfig{
				Endpoint:  v.GetString("MINIO_ENDPOINT"),
				AccessKey: v.GetString("MINIO_ACCESS_KEY"),
				SecretKey: v.GetString("MINIO_SECRET_KEY"),
				Bucket:    v.GetString("MINIO_BUCKET"),
				UseSSL:    v.GetBool("MINIO_USE_SSL"),
			},
			GCS: GCSConfig{
				Bucket:          v.GetString("GCS_BUCKET"),
				ProjectID:       v.GetString("GCS_PROJECT_ID"),
				CredentialsFile: v.GetString("GCS_CREDENTIALS_FILE"),
			},
		},
	}

	if cfg.Database.URL == "" {
		return Config{}, ErrMissingDatabaseURL
	}
	if cfg.JWTSecret == "" {
		return Config{}, ErrMissingJWTSecret
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", "prod")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SERVER_PORT", 15520)
	v.SetDefault("MINIO_BUCKET", "janus-audit")
	v.SetDefault("MINIO_USE_SSL", false)
}
