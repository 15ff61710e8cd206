package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/supportchat/internal/flagx"
	"github.com/dmitrijs2005/supportchat/internal/timex"
)

// JSONConfig is the on-disk shape of the optional config file. Only fields
// present in the file override the current values.
type JSONConfig struct {
	HTTPAddr             *string         `json:"http_addr"`
	GRPCAddr             *string         `json:"grpc_addr"`
	DatabaseDSN          *string         `json:"database_dsn"`
	SecretKey            *string         `json:"secret_key"`
	TokenTTL             *timex.Duration `json:"token_ttl"`
	GeminiAPIKey         *string         `json:"gemini_api_key"`
	GeminiModel          *string         `json:"gemini_model"`
	GeminiBaseURL        *string         `json:"gemini_base_url"`
	FAQSource            *string         `json:"faq_source"`
	S3Region             *string         `json:"s3_region"`
	S3Endpoint           *string         `json:"s3_endpoint"`
	S3AccessKey          *string         `json:"s3_access_key"`
	S3SecretKey          *string         `json:"s3_secret_key"`
	S3Bucket             *string         `json:"s3_bucket"`
	CORSAllowedOrigins   []string        `json:"cors_allowed_origins"`
	AllowUnscopedHistory *bool           `json:"allow_unscoped_history"`
	LogLevel             *string         `json:"log_level"`
	LogFormat            *string         `json:"log_format"`
	Environment          *string         `json:"environment"`
}

// parseJSON overlays values from the file named by -c/-config. Nothing
// happens when no file was requested.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var c JSONConfig
	if err := json.Unmarshal(b, &c); err != nil {
		return err
	}

	setString(&cfg.HTTPAddr, c.HTTPAddr)
	setString(&cfg.GRPCAddr, c.GRPCAddr)
	setString(&cfg.DatabaseDSN, c.DatabaseDSN)
	setString(&cfg.SecretKey, c.SecretKey)
	if c.TokenTTL != nil {
		cfg.TokenTTL = c.TokenTTL.Duration
	}
	setString(&cfg.GeminiAPIKey, c.GeminiAPIKey)
	setString(&cfg.GeminiModel, c.GeminiModel)
	setString(&cfg.GeminiBaseURL, c.GeminiBaseURL)
	setString(&cfg.FAQSource, c.FAQSource)
	setString(&cfg.S3Region, c.S3Region)
	setString(&cfg.S3Endpoint, c.S3Endpoint)
	setString(&cfg.S3AccessKey, c.S3AccessKey)
	setString(&cfg.S3SecretKey, c.S3SecretKey)
	setString(&cfg.S3Bucket, c.S3Bucket)
	if c.CORSAllowedOrigins != nil {
		cfg.CORSAllowedOrigins = c.CORSAllowedOrigins
	}
	if c.AllowUnscopedHistory != nil {
		cfg.AllowUnscopedHistory = *c.AllowUnscopedHistory
	}
	setString(&cfg.LogLevel, c.LogLevel)
	setString(&cfg.LogFormat, c.LogFormat)
	setString(&cfg.Environment, c.Environment)

	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
