package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultProfileFile is the default profile file name.
const DefaultProfileFile = ".mmotopvote"

// ErrProfileNotFound is returned when the profile file does not exist.
var ErrProfileNotFound = errors.New("profile file not found")

// Profile holds optional overrides loaded from the .mmotopvote YAML file.
// Only non-empty fields override the built-in defaults; credentials stay
// in the environment and are deliberately not part of the profile so the
// file can be committed or shared without leaking secrets.
type Profile struct {
	// VoteURL overrides the voting page URL.
	VoteURL string `yaml:"voteUrl,omitempty"`

	// ServerRate overrides the realm rate label to vote for.
	ServerRate string `yaml:"serverRate,omitempty"`

	// AccountName overrides the game account name. Unlike the login
	// credentials this is not secret, so a profile override is allowed.
	AccountName string `yaml:"accountName,omitempty"`

	// Headless overrides the headless setting when present.
	Headless *bool `yaml:"headless,omitempty"`
}

// LoadProfile loads a profile from a YAML file.
// If the file does not exist, it returns ErrProfileNotFound. Callers
// should treat that as fatal only when the path was explicitly specified.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided profile path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// FindProfileFile searches for the profile file in the following order:
// 1. If profilePath is specified, use it directly
// 2. Look for .mmotopvote in the current directory
// 3. Look for .mmotopvote in the user's home directory
// 4. Look for .mmotopvote in the XDG config directory
//
// Returns the path to the profile file if found, or empty string if not found.
func FindProfileFile(profilePath string) string {
	if profilePath != "" {
		if _, err := os.Stat(profilePath); err == nil {
			return profilePath
		}
		return ""
	}

	candidates := make([]string, 0, 3)
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultProfileFile))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultProfileFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), DefaultProfileFile))

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// Apply merges the profile's non-empty overrides into the configuration.
func (p *Profile) Apply(cfg *Config) {
	if p.VoteURL != "" {
		cfg.VoteURL = p.VoteURL
	}
	if p.ServerRate != "" {
		cfg.ServerRate = p.ServerRate
	}
	if p.AccountName != "" {
		cfg.AccountName = p.AccountName
	}
	if p.Headless != nil {
		cfg.Headless = *p.Headless
	}
}
