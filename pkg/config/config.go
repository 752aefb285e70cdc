// Package config loads the tgup run configuration: accounts, the default
// account, and destination aliases.
//
// The configuration file is YAML. Aliases map a shorthand produced by a
// routing expression (for example "videos") to a full chat identifier
// ("@my_video_channel"); strings with no alias pass through verbatim,
// since neither this package nor the engine knows anything about chat
// identifier formats.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/sahilm/fuzzy"
)

// Account identifies one messaging-service login.
type Account struct {
	Name    string `yaml:"name"`
	Session string `yaml:"session"`
}

// Config is the parsed run configuration.
type Config struct {
	DefaultAccount string            `yaml:"default_account"`
	Accounts       []Account         `yaml:"accounts"`
	Aliases        map[string]string `yaml:"aliases"`
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "tgup.yaml"
	}
	return filepath.Join(dir, "tgup", "config.yaml")
}

// Load reads and parses the configuration at path. A missing file yields
// an empty configuration rather than an error, so tgup works without any
// setup.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses YAML configuration bytes.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	seen := make(map[string]struct{}, len(cfg.Accounts))
	for _, acct := range cfg.Accounts {
		if acct.Name == "" {
			return nil, fmt.Errorf("parse config: account with empty name")
		}
		if _, dup := seen[acct.Name]; dup {
			return nil, fmt.Errorf("parse config: duplicate account %q", acct.Name)
		}
		seen[acct.Name] = struct{}{}
	}

	return &cfg, nil
}

// Account returns the named account. An unknown name produces an error
// carrying a fuzzy "did you mean" suggestion when one is close enough.
func (c *Config) Account(name string) (Account, error) {
	for _, acct := range c.Accounts {
		if acct.Name == name {
			return acct, nil
		}
	}

	if suggestion := c.suggestAccount(name); suggestion != "" {
		return Account{}, fmt.Errorf("unknown account %q (did you mean %q?)", name, suggestion)
	}
	return Account{}, fmt.Errorf("unknown account %q", name)
}

// AccountNames returns the configured account names in file order.
func (c *Config) AccountNames() []string {
	names := make([]string, len(c.Accounts))
	for i, acct := range c.Accounts {
		names[i] = acct.Name
	}
	return names
}

// ResolveAlias maps a routing result through the alias table. Unaliased
// destinations pass through unmodified.
func (c *Config) ResolveAlias(dest string) string {
	if resolved, ok := c.Aliases[dest]; ok {
		return resolved
	}
	return dest
}

// suggestAccount returns the best fuzzy match for name among the
// configured accounts, or "" when nothing is remotely close.
func (c *Config) suggestAccount(name string) string {
	matches := fuzzy.Find(strings.ToLower(name), c.AccountNames())
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}
