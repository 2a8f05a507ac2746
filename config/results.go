package config

import "fmt"

// ResultsConfig defines where and how run results are persisted.
type ResultsConfig struct {
	// Backend selects the store type: "fs" or "sqlite".
	Backend string `json:"backend"`
	// Dir is the output root for the fs backend. Each run gets a
	// timestamped directory under it, with a "latest" pointer file.
	Dir string `json:"dir"`
	// Path is the database file for the sqlite backend.
	Path string `json:"path"`
}

// SetDefaults applies sane defaults.
func (c *ResultsConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "fs"
	}
	if c.Dir == "" {
		c.Dir = "outputs"
	}
	if c.Path == "" {
		c.Path = "robogrid.db"
	}
}

// Validate checks mandatory fields.
func (c ResultsConfig) Validate() error {
	if c.Backend != "fs" && c.Backend != "sqlite" {
		return fmt.Errorf("unknown results backend %s", c.Backend)
	}
	return nil
}
