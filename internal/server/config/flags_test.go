package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected *Config
		name     string
		args     []string
		wantErr  bool
	}{
		{
			name: "all flags",
			args: []string{
				"-a", "127.0.0.1:9090", "-g", ":6000", "-d", "memory://", "-s", "secret",
				"-t", "90", "-k", "key", "-m", "gemini-2.0-flash", "-f", "s3://faq/faq.txt",
				"-b", "bucket", "-l", "debug",
			},
			expected: &Config{
				HTTPAddr:     "127.0.0.1:9090",
				GRPCAddr:     ":6000",
				DatabaseDSN:  "memory://",
				SecretKey:    "secret",
				TokenTTL:     90 * time.Minute,
				GeminiAPIKey: "key",
				GeminiModel:  "gemini-2.0-flash",
				FAQSource:    "s3://faq/faq.txt",
				S3Bucket:     "bucket",
				LogLevel:     "debug",
			},
		},
		{
			name:     "foreign flags ignored",
			args:     []string{"-c", "cfg.json", "-x", "1", "-s", "only"},
			expected: &Config{SecretKey: "only"},
		},
		{
			name:    "bad ttl",
			args:    []string{"-t", "soon"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			err := parseFlags(cfg, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}
