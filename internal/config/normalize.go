package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	c.normalizeLogging()
	c.normalizeTrackers()
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizeTrackers() {
	if c.Trackers == nil {
		c.Trackers = map[string]Tracker{}
		return
	}
	normalized := make(map[string]Tracker, len(c.Trackers))
	for name, settings := range c.Trackers {
		groups := make([]string, 0, len(settings.InternalGroups))
		for _, g := range settings.InternalGroups {
			if g = strings.TrimSpace(g); g != "" {
				groups = append(groups, g)
			}
		}
		settings.InternalGroups = groups
		normalized[strings.ToUpper(strings.TrimSpace(name))] = settings
	}
	c.Trackers = normalized
}
