// Package config provides configuration file parsing for basket.
package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// Dir returns the basket config directory, respecting XDG_CONFIG_HOME.
// Defaults to ~/.config/basket if XDG_CONFIG_HOME is not set.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "basket"), nil
}

// AliasConfig holds the item aliases declared by the user. Each key is a
// label as it appears in datasets and the value is the canonical item label
// it is counted as (e.g. "soda" -> "cola").
type AliasConfig struct {
	Aliases map[string]string
}

// Canonical returns the canonical label for item, or item itself when no
// alias is declared.
func (c *AliasConfig) Canonical(item string) string {
	if c == nil {
		return item
	}
	if canonical, ok := c.Aliases[item]; ok {
		return canonical
	}
	return item
}

// LoadAliases reads the aliases file at {dir}/aliases and returns the parsed
// config. If the file does not exist, an empty config is returned without an
// error. Invalid or malformed lines are silently skipped.
func LoadAliases(dir string) (*AliasConfig, error) {
	cfg := &AliasConfig{
		Aliases: make(map[string]string),
	}

	path := filepath.Join(dir, "aliases")
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip blank lines and comments.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.IndexByte(line, '=')
		if idx <= 0 {
			continue // no "=" or "=" is first character
		}

		alias := strings.TrimSpace(line[:idx])
		item := strings.TrimSpace(line[idx+1:])

		if alias == "" || item == "" || alias == item {
			continue
		}

		cfg.Aliases[alias] = item
	}

	if err := scanner.Err(); err != nil {
		return cfg, err
	}

	return cfg, nil
}
