package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/flfe/adminctl/internal/flagx"
	"github.com/flfe/adminctl/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like
// "500ms" or as integer nanoseconds. After parsing, values are copied into
// the runtime Config (which uses time.Duration).
type JsonConfig struct {
	BackendURL         string         `json:"backend_url"`
	HTTPTimeout        timex.Duration `json:"http_timeout"`
	PageSize           int            `json:"page_size"`
	DebounceInterval   timex.Duration `json:"debounce_interval"`
	CallbackListenAddr string         `json:"callback_listen_addr"`
	DatabasePath       string         `json:"database_path"`
}

// parseJson overlays Config with values loaded from a JSON file named by
// the -c/-config flag. Absent file path means no JSON is loaded. Fields
// left empty in the file keep their current values.
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later
// stages override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFileFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BackendURL != "" {
		cfg.BackendURL = jc.BackendURL
	}
	if jc.HTTPTimeout.Duration != 0 {
		cfg.HTTPTimeout = time.Duration(jc.HTTPTimeout.Duration)
	}
	if jc.PageSize != 0 {
		cfg.PageSize = jc.PageSize
	}
	if jc.DebounceInterval.Duration != 0 {
		cfg.DebounceInterval = time.Duration(jc.DebounceInterval.Duration)
	}
	if jc.CallbackListenAddr != "" {
		cfg.CallbackListenAddr = jc.CallbackListenAddr
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
}
