package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the runtime settings of the catalog service.
type Config struct {
	AppPort        string
	LogMode        string
	DBDriver       string // "postgres" or "sqlite"
	DatabaseDSN    string
	JWTSecret      string
	JWTTTL         time.Duration
	RabbitMQURL    string // empty disables catalog events
	RabbitMQQueue  string
	HostAPI        string // public base URL used to build image URLs
	StorageDriver  string // "disk" or "s3"
	StaticDir      string
	MaxUploadBytes int64
	S3             S3Config
}

// S3Config holds the object store settings used when StorageDriver is "s3".
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// Load reads configuration from an optional .env file and the environment.
func Load() Config {
	// A missing .env file is fine; the environment still applies.
	_ = godotenv.Load()

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()

	return FromViper(v)
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("LOG_MODE", "development")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DATABASE_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=teslo port=5432 sslmode=disable")
	v.SetDefault("JWT_SECRET", "change_me")
	v.SetDefault("JWT_TTL", "2h")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_QUEUE", "catalog_events")
	v.SetDefault("HOST_API", "http://localhost:8080/api/v1")
	v.SetDefault("STORAGE_DRIVER", "disk")
	v.SetDefault("STATIC_DIR", "./static/products")
	v.SetDefault("MAX_UPLOAD_BYTES", 5<<20)
	v.SetDefault("S3_REGION", "auto")
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) Config {
	return Config{
		AppPort:        v.GetString("APP_PORT"),
		LogMode:        v.GetString("LOG_MODE"),
		DBDriver:       v.GetString("DB_DRIVER"),
		DatabaseDSN:    v.GetString("DATABASE_DSN"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		JWTTTL:         v.GetDuration("JWT_TTL"),
		RabbitMQURL:    v.GetString("RABBITMQ_URL"),
		RabbitMQQueue:  v.GetString("RABBITMQ_QUEUE"),
		HostAPI:        v.GetString("HOST_API"),
		StorageDriver:  v.GetString("STORAGE_DRIVER"),
		StaticDir:      v.GetString("STATIC_DIR"),
		MaxUploadBytes: v.GetInt64("MAX_UPLOAD_BYTES"),
		S3: S3Config{
			Bucket:          v.GetString("S3_BUCKET"),
			Region:          v.GetString("S3_REGION"),
			Endpoint:        v.GetString("S3_ENDPOINT"),
			AccessKeyID:     v.GetString("S3_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("S3_SECRET_ACCESS_KEY"),
		},
	}
}
