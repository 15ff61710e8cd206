package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/supportchat/internal/flagx"
	"github.com/dmitrijs2005/supportchat/internal/timex"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling. Intervals may
// be strings like "30s" or integer nanoseconds.
type JSONConfig struct {
	ServerURL      string         `json:"server_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
}

// parseJSON overlays Config with values loaded from the file given by -c or
// -config. Empty fields in the file keep the current values.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	return nil
}
