package config

import (
	"bytes"

	"github.com/BurntSushi/toml"
)

// TOML parses TOML config files for koanf.
type TOML struct{}

// TOMLParser returns a koanf Parser backed by BurntSushi/toml.
func TOMLParser() *TOML {
	return &TOML{}
}

// Unmarshal decodes TOML bytes into a nested map.
func (p *TOML) Unmarshal(b []byte) (map[string]interface{}, error) {
	out := make(map[string]interface{})
	if _, err := toml.Decode(string(b), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Marshal encodes a nested map as TOML.
func (p *TOML) Marshal(o map[string]interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
