package config

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// parseTOML reads a rules document such as:
//
//	normalizers = ['/(dh)c?-?(\d{0,2})-?(\d{0,4})/i']
//	groupings = ['/boeing/i', '/(douglas|mcdonnell)/i']
//
//	[options]
//	threshold = 0.2
//
//	[checks.positives]
//	"BOEING 737-800" = "BOEING 737"
func parseTOML(content []byte) (*Rules, error) {
	r := Default()
	if err := toml.Unmarshal(content, r); err != nil {
		return nil, fmt.Errorf("failed to parse TOML rules: %w", err)
	}

	if r.Checks.Positives == nil {
		r.Checks.Positives = map[string]string{}
	}
	if r.Checks.Negatives == nil {
		r.Checks.Negatives = map[string]string{}
	}
	return r, nil
}
