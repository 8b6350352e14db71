package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DBDriver   string
	SQLitePath string
	PgHost     string
	PgPort     string
	PgUser     string
	PgPass     string
	PgDBName   string
	PgSSLMode  string

	StorageBackend string
	UploadFolder   string
	MaxUploadSize  int64
	ThumbSize      uint
	SyncOnStart    bool
	LogLevel       string

	S3 S3Config
}

type S3Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Region          string
}

// Load reads envFile (if present) into the process environment and builds
// the configuration from it. A missing env file is not an error.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	maxUpload, err := getInt("MAX_UPLOAD_SIZE", 10<<20)
	if err != nil {
		return nil, err
	}
	if maxUpload <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_SIZE must be positive, got %d", maxUpload)
	}
	thumbSize, err := getInt("THUMB_SIZE", 200)
	if err != nil {
		return nil, err
	}
	if thumbSize <= 0 {
		return nil, fmt.Errorf("THUMB_SIZE must be positive, got %d", thumbSize)
	}
	syncOnStart, err := getBool("SYNC_ON_START", false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:           getString("PORT", "8000"),
		DBDriver:       getString("DB_DRIVER", "sqlite"),
		SQLitePath:     getString("SQLITE_PATH", "images.db"),
		PgHost:         getString("PG_HOST", "localhost"),
		PgPort:         getString("PG_PORT", "5432"),
		PgUser:         os.Getenv("PG_USER"),
		PgPass:         os.Getenv("PG_PASS"),
		PgDBName:       os.Getenv("PG_DBNAME"),
		PgSSLMode:      getString("PG_SSLMODE", "disable"),
		StorageBackend: getString("STORAGE_BACKEND", "local"),
		UploadFolder:   getString("UPLOAD_FOLDER", "uploads"),
		MaxUploadSize:  maxUpload,
		ThumbSize:      uint(thumbSize),
		SyncOnStart:    syncOnStart,
		LogLevel:       getString("LOG_LEVEL", "info"),
		S3: S3Config{
			Endpoint:        os.Getenv("S3_ENDPOINT"),
			AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
			BucketName:      getString("S3_BUCKET_NAME", "images"),
			Region:          getString("S3_REGION", "us-east-1"),
		},
	}

	switch cfg.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}
	switch cfg.StorageBackend {
	case StorageLocal, StorageS3:
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}

	return cfg, nil
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	StorageLocal = "local"
	StorageS3    = "s3"
)

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
