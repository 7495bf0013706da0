package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port          string
	AllowedOrigin string
	Timezone      string

	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AppName  string
	AppPhone string

	LogLevel  string
	LogFormat string
	LogOutput string

	GeminiAPIKey          string
	GeminiModel           string
	GeminiBaseURL         string
	InsightTTLSeconds     int
	InsightLimitPerMinute int

	ExportDir      string
	S3Bucket       string
	S3Region       string
	S3Endpoint     string
	S3AccessKey    string
	S3SecretKey    string
	S3Prefix       string
	S3UseSSL       bool
	S3UsePathStyle bool
}

// Load reads the process environment. Every key maps to the upper-case env
// variable of the same name.
func Load() Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("port", "8080")
	v.SetDefault("allowed_origin", "http://127.0.0.1:3000")
	v.SetDefault("timezone", "Local")
	v.SetDefault("redis_db", 0)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("log_output", "stdout")
	v.SetDefault("gemini_model", "gemini-1.5-flash")
	v.SetDefault("insight_ttl_seconds", 600)
	v.SetDefault("insight_limit_per_minute", 6)
	v.SetDefault("s3_region", "us-east-1")
	v.SetDefault("s3_use_path_style", true)

	ttl := v.GetInt("insight_ttl_seconds")
	if ttl < 1 {
		ttl = 600
	}

	return Config{
		Port:                  v.GetString("port"),
		AllowedOrigin:         v.GetString("allowed_origin"),
		Timezone:              strings.TrimSpace(v.GetString("timezone")),
		DatabaseURL:           strings.TrimSpace(v.GetString("database_url")),
		RedisAddr:             strings.TrimSpace(v.GetString("redis_addr")),
		RedisPassword:         v.GetString("redis_password"),
		RedisDB:               v.GetInt("redis_db"),
		AppName:               strings.TrimSpace(v.GetString("app_name")),
		AppPhone:              strings.TrimSpace(v.GetString("app_phone")),
		LogLevel:              v.GetString("log_level"),
		LogFormat:             v.GetString("log_format"),
		LogOutput:             v.GetString("log_output"),
		GeminiAPIKey:          strings.TrimSpace(v.GetString("gemini_api_key")),
		GeminiModel:           v.GetString("gemini_model"),
		GeminiBaseURL:         v.GetString("gemini_base_url"),
		InsightTTLSeconds:     ttl,
		InsightLimitPerMinute: v.GetInt("insight_limit_per_minute"),
		ExportDir:             strings.TrimSpace(v.GetString("export_dir")),
		S3Bucket:              strings.TrimSpace(v.GetString("s3_bucket")),
		S3Region:              v.GetString("s3_region"),
		S3Endpoint:            strings.TrimSpace(v.GetString("s3_endpoint")),
		S3AccessKey:           v.GetString("s3_access_key"),
		S3SecretKey:           v.GetString("s3_secret_key"),
		S3Prefix:              v.GetString("s3_prefix"),
		S3UseSSL:              v.GetBool("s3_use_ssl"),
		S3UsePathStyle:        v.GetBool("s3_use_path_style"),
	}
}

func (c Config) Address() string {
	return fmt.Sprintf(":%s", c.Port)
}

// Location resolves Timezone; empty and "Local" mean the host zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

func (c Config) InsightTTL() time.Duration {
	return time.Duration(c.InsightTTLSeconds) * time.Second
}

func (c Config) S3Enabled() bool {
	return c.S3Bucket != ""
}
