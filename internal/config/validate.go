package config

import "fmt"

var validLogFormats = map[string]struct{}{
	"console": {},
	"json":    {},
}

var validLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if _, ok := validLogFormats[c.Logging.Format]; !ok {
		return fmt.Errorf("logging.format %q is not one of console, json", c.Logging.Format)
	}
	if _, ok := validLogLevels[c.Logging.Level]; !ok {
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	for name, settings := range c.Trackers {
		if name == "" {
			return fmt.Errorf("trackers: empty tracker name")
		}
		if settings.Internal && len(settings.InternalGroups) == 0 {
			return fmt.Errorf("trackers.%s: internal requires internal_groups", name)
		}
	}
	return nil
}
