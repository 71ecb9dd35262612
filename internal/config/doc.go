// Package config loads and validates tugboat's TOML configuration.
//
// The configuration covers three concerns: filesystem paths (state
// directory for the outcome history database), logging (format and
// level), and per-tracker settings consumed by the dupe checker's
// trump-target selector (whether the operator uploads internally on a
// tracker, and which internal group tags that tracker recognizes).
package config
