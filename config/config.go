// Package config reads and writes a repository's .gitlet/config file:
// nested [section] / [section "subsection"] blocks of key = value pairs.
package config

import (
	"fmt"
	"os"

	"gopkg.in/ini.v1"
)

// Config wraps an in-memory ini.File backing a single repository config file.
type Config struct {
	file *ini.File
}

// Load reads path, returning an empty Config if the file does not exist yet.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return &Config{file: ini.Empty()}, nil
		}
		return nil, err
	}

	f, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config: loading %s: %w", path, err)
	}
	return &Config{file: f}, nil
}

// sectionName builds the ini.v1 section name for section/subsection,
// e.g. ("remote", "origin") -> `remote "origin"`.
func sectionName(section, subsection string) string {
	if subsection == "" {
		return section
	}
	return fmt.Sprintf(`%s "%s"`, section, subsection)
}

// Get returns the value at section[.subsection].key, and whether it was present.
func Get(c *Config, section, subsection, key string) (string, bool) {
	sec, err := c.file.GetSection(sectionName(section, subsection))
	if err != nil {
		return "", false
	}
	if !sec.HasKey(key) {
		return "", false
	}
	return sec.Key(key).String(), true
}

// Set writes section[.subsection].key = value.
func Set(c *Config, section, subsection, key, value string) {
	c.file.Section(sectionName(section, subsection)).Key(key).SetValue(value)
}

// Save writes the config back to path.
func (c *Config) Save(path string) error {
	return c.file.SaveTo(path)
}

// IsBare reports whether core.bare is the literal string "true".
func (c *Config) IsBare() bool {
	v, ok := Get(c, "core", "", "bare")
	return ok && v == "true"
}

// SetBare writes core.bare as the literal string "true" or "false".
func (c *Config) SetBare(bare bool) {
	if bare {
		Set(c, "core", "", "bare", "true")
	} else {
		Set(c, "core", "", "bare", "false")
	}
}

// Remotes returns every configured remote name -> url.
func (c *Config) Remotes() map[string]string {
	out := map[string]string{}
	for _, sec := range c.file.Sections() {
		name := sec.Name()
		const prefix = `remote "`
		if len(name) > len(prefix) && name[:len(prefix)] == prefix && name[len(name)-1] == '"' {
			remoteName := name[len(prefix) : len(name)-1]
			out[remoteName] = sec.Key("url").String()
		}
	}
	return out
}

// RemoteURL returns the url configured for a remote, and whether it exists.
func (c *Config) RemoteURL(name string) (string, bool) {
	return Get(c, "remote", name, "url")
}

// AddRemote records remote.<name>.url = url, refusing a duplicate name.
func (c *Config) AddRemote(name, url string) error {
	if _, exists := c.RemoteURL(name); exists {
		return fmt.Errorf("remote %s already exists", name)
	}
	Set(c, "remote", name, "url", url)
	return nil
}

// Default returns the default repository config content for a freshly
// initialized repository (bare or not).
func Default(bare bool) *Config {
	c := &Config{file: ini.Empty()}
	Set(c, "core", "", "repositoryformatversion", "0")
	c.SetBare(bare)
	return c
}
