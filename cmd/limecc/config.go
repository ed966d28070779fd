package main

import (
	"os"

	"github.com/BurntSushi/toml"
)

// config is the optional limecc.toml settings file, grounded on the
// teacher's TOML-based world-data loading (internal/tqw/tqw.go's
// toml.Unmarshal over a tagged struct) rather than its server config
// (which is hand-parsed from flags/env, not TOML).
type config struct {
	Lookahead int  `toml:"lookahead"`
	NoTests   bool `toml:"no_tests"`
}

func defaultConfig() config {
	return config{Lookahead: 1}
}

// loadConfig reads path if it exists, leaving defaultConfig's values
// in place for anything the file doesn't set. A missing file is not
// an error: limecc.toml is entirely optional.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
