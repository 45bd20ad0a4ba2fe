// Package config stores fieldctl connection profiles in ~/.fieldctl.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultProfile is the profile used when none is active.
const DefaultProfile = "default"

// Profile names an API endpoint and its token.
type Profile struct {
	APIURL string `json:"apiUrl"`
	Token  string `json:"token,omitempty"`
}

// File is the on-disk profile store.
type File struct {
	Active   string             `json:"active"`
	Profiles map[string]Profile `json:"profiles"`
}

// Path returns the profile file location, creating its directory.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".fieldctl")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return filepath.Join(dir, "profiles.json"), nil
}

// Load reads the profile file. A missing file yields an empty store.
func Load() (*File, error) {
	p, err := Path()
	if err != nil {
		return nil, err
	}
	f := &File{Active: DefaultProfile, Profiles: map[string]Profile{}}
	b, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(b, f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", p, err)
	}
	if f.Profiles == nil {
		f.Profiles = map[string]Profile{}
	}
	if f.Active == "" {
		f.Active = DefaultProfile
	}
	return f, nil
}

// Save writes the file atomically with owner-only permissions.
func Save(f *File) error {
	p, err := Path()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, p)
}

// Use marks an existing profile as active.
func (f *File) Use(name string) error {
	if _, ok := f.Profiles[name]; !ok {
		return fmt.Errorf("profile %q not found", name)
	}
	f.Active = name
	return nil
}
