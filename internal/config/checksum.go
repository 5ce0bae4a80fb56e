package config

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"sort"
)

type checksumPayload struct {
	Source         SourceConfig `json:"source"`
	Duration       float64      `json:"duration"`
	SamplingFactor float64      `json:"sampling_factor"`
	Categories     []string     `json:"categories"`
}

// Checksum identifies the dataset a configuration produces: the source and
// the derivation parameters. Presentation settings do not change it.
//
// It is MD5 over a canonical JSON representation, cut to 6 hex characters.
func Checksum(cfg *Config) (string, error) {
	if cfg == nil {
		return "", nil
	}
	cats := append([]string(nil), cfg.Dashboard.Categories...)
	sort.Strings(cats)

	source := cfg.Source
	// credentials never feed into an identifier that ends up in logs
	source.InfluxDB.Token = ""
	source.SQL.DSN = ""

	payload := checksumPayload{
		Source:         source,
		Duration:       cfg.Dashboard.Duration,
		SamplingFactor: cfg.Dashboard.SamplingFactor,
		Categories:     cats,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	sum := md5.Sum(b)
	return hex.EncodeToString(sum[:])[:6], nil
}
