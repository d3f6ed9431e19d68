// Package config loads and validates caller-supplied profiles and the
// environment-driven data-source settings.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	json "github.com/goccy/go-json"
	"github.com/kidcost/kidcost/internal/datasource"
	"github.com/kidcost/kidcost/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of profile files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadProfile loads a profile from a YAML file and validates it before it
// can enter a session.
func (ip *InputParser) LoadProfile(filename string) (*domain.Profile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", filename, err)
	}

	var profile domain.Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile YAML: %w", err)
	}
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("profile validation failed: %w", err)
	}
	return &profile, nil
}

// DataSourceOptions resolves the data-source settings from the environment.
func DataSourceOptions() (datasource.Options, error) {
	var opts datasource.Options
	if err := env.Parse(&opts); err != nil {
		return datasource.Options{}, fmt.Errorf("parse data source env: %w", err)
	}
	return opts, nil
}

// profileKey namespaces saved profiles in the key-value store.
func profileKey(id string) string { return "kidcost:profile:" + id }

// SaveProfile persists a profile under an identifier. Invalid profiles are
// rejected rather than stored.
func SaveProfile(store datasource.KVStore, id string, profile *domain.Profile) error {
	if err := profile.Validate(); err != nil {
		return err
	}
	blob, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	return store.Set(profileKey(id), blob)
}

// LoadStoredProfile fetches a previously saved profile; the boolean is
// false when no profile exists under the identifier.
func LoadStoredProfile(store datasource.KVStore, id string) (*domain.Profile, bool, error) {
	blob, ok, err := store.Get(profileKey(id))
	if err != nil || !ok {
		return nil, false, err
	}
	var profile domain.Profile
	if err := json.Unmarshal(blob, &profile); err != nil {
		return nil, false, fmt.Errorf("decode profile: %w", err)
	}
	return &profile, true, nil
}
